package plan

import (
	"errors"
	"fmt"

	"github.com/rafterlab/rafterplan/pkg/roof"
)

// Mount is a single attachment point fastened to a rafter. X always lies
// exactly on the rafter identified by Rafter; Y is the vertical placement
// of the hardware, at the center of the span it supports.
type Mount struct {
	X      float64
	Y      float64
	Rafter int // grid index of the rafter carrying this mount

	// Cantilevered marks a mount whose panel edge overhangs it by more
	// than the configured cantilever limit. The mount is still the best
	// available rafter; the flag tells the installer the overhang needs
	// attention.
	Cantilevered bool
}

// JointKind classifies how two adjacent panels meet.
type JointKind int

const (
	// JointHorizontal joins two panels that sit side by side in a row.
	JointHorizontal JointKind = iota
	// JointVertical joins two panels stacked one above the other.
	JointVertical
	// JointCorner joins two panels that meet only at a corner.
	JointCorner
)

// String returns the lowercase name of the joint kind.
func (k JointKind) String() string {
	switch k {
	case JointHorizontal:
		return "horizontal"
	case JointVertical:
		return "vertical"
	case JointCorner:
		return "corner"
	default:
		return fmt.Sprintf("JointKind(%d)", int(k))
	}
}

// Joint is a piece of coupling hardware between two adjacent panels.
// A and B are the indexes of the joined panels in the planned slice, with
// A < B. X and Y give the placement point on the shared boundary; SpanLo
// and SpanHi give the extent of that boundary along its axis (along y for
// horizontal joints, along x for vertical joints, both zero-length for
// corner joints).
type Joint struct {
	Kind   JointKind
	A, B   int
	X, Y   float64
	SpanLo float64
	SpanHi float64
}

// PanelPlan is the outcome of planning one panel: the panel itself, its
// mounts in left-to-right order, and the failure, if any, that prevented
// mounting it. Exactly one of Mounts and Err is meaningful.
type PanelPlan struct {
	Panel  roof.Panel
	Mounts []Mount
	Err    error
}

// Result is a complete per-panel mounting plan. Panels preserves the input
// order; Joints covers every adjacent pair, at most one joint per pair.
type Result struct {
	Panels []PanelPlan
	Joints []Joint
}

// Mounts returns all mounts in the plan, ordered by (Y, X). Panels that
// failed contribute nothing.
func (r *Result) Mounts() []Mount {
	var all []Mount
	for _, pp := range r.Panels {
		all = append(all, pp.Mounts...)
	}
	sortMounts(all)
	return all
}

// MountCount returns the total number of mounts across all panels.
func (r *Result) MountCount() int {
	n := 0
	for _, pp := range r.Panels {
		n += len(pp.Mounts)
	}
	return n
}

// Failed returns the indexes of panels that could not be planned.
func (r *Result) Failed() []int {
	var idx []int
	for i, pp := range r.Panels {
		if pp.Err != nil {
			idx = append(idx, i)
		}
	}
	return idx
}

// Err joins the per-panel failures into a single error, or returns nil
// when every panel was planned.
func (r *Result) Err() error {
	var errs []error
	for _, pp := range r.Panels {
		if pp.Err != nil {
			errs = append(errs, pp.Err)
		}
	}
	return errors.Join(errs...)
}

// RowPlan is the outcome of planning one row of panels as a continuous
// strip: the indexes of the member panels, the strip's extent, and the
// shared mounts supporting it.
type RowPlan struct {
	Panels []int // indexes into the planned slice, in input order
	Left   float64
	Right  float64
	Y      float64 // vertical placement of the row's mounts
	Mounts []Mount
	Err    error
}

// RowResult is a mounting plan computed row by row instead of per panel.
// Mounts are shared along each row strip; Joints are identical to the
// per-panel plan's joints.
type RowResult struct {
	Panels []roof.Panel
	Rows   []RowPlan
	Joints []Joint
}

// Mounts returns all row mounts ordered by (Y, X).
func (r *RowResult) Mounts() []Mount {
	var all []Mount
	for _, row := range r.Rows {
		all = append(all, row.Mounts...)
	}
	sortMounts(all)
	return all
}

// Err joins the per-row failures into a single error, or returns nil when
// every row was planned.
func (r *RowResult) Err() error {
	var errs []error
	for _, row := range r.Rows {
		if row.Err != nil {
			errs = append(errs, row.Err)
		}
	}
	return errors.Join(errs...)
}
