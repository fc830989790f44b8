package schema

import (
	"fmt"

	"github.com/rafterlab/rafterplan/pkg/plan"
	"github.com/rafterlab/rafterplan/pkg/roof"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Planning modes.
const (
	ModePanel = "panel" // mounts computed per panel
	ModeRow   = "row"   // mounts shared along row strips
)

// Joint kinds as serialized. These match [plan.JointKind] string values.
const (
	JointHorizontal = "horizontal"
	JointVertical   = "vertical"
	JointCorner     = "corner"
)

// =============================================================================
// Document - Mounting Plan Serialization
// =============================================================================

// Document is the canonical serialization format for mounting plans.
// Used for API responses, storage, caching, and artifact generation.
//
// The format is human-readable and designed for round-trip fidelity:
// plan → marshal → unmarshal produces an identical document. Exactly one
// of Placements (panel mode) and Rows (row mode) is populated, matching
// Mode.
type Document struct {
	Mode       string      `json:"mode" bson:"mode"`
	Site       string      `json:"site,omitempty" bson:"site,omitempty"`
	Config     Config      `json:"config" bson:"config"`
	Panels     []Panel     `json:"panels" bson:"panels"`
	Placements []Placement `json:"placements,omitempty" bson:"placements,omitempty"`
	Rows       []Row       `json:"rows,omitempty" bson:"rows,omitempty"`
	Joints     []Joint     `json:"joints" bson:"joints"`
}

// Config mirrors [plan.Config] with stable field names.
type Config struct {
	PanelWidth      float64 `json:"panel_width" bson:"panel_width"`
	PanelHeight     float64 `json:"panel_height" bson:"panel_height"`
	Spacing         float64 `json:"spacing" bson:"spacing"`
	FirstRafter     float64 `json:"first_rafter" bson:"first_rafter"`
	EdgeClearance   float64 `json:"edge_clearance" bson:"edge_clearance"`
	MaxSpan         float64 `json:"max_span" bson:"max_span"`
	CantileverLimit float64 `json:"cantilever_limit" bson:"cantilever_limit"`
	JointTolerance  float64 `json:"joint_tolerance" bson:"joint_tolerance"`
	RowTolerance    float64 `json:"row_tolerance,omitempty" bson:"row_tolerance,omitempty"`
}

// Panel is a serialized panel rectangle.
type Panel struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Placement is the per-panel outcome in panel mode. Panel indexes into
// [Document.Panels]. Failed panels carry Error and no mounts.
type Placement struct {
	Panel  int     `json:"panel" bson:"panel"`
	Mounts []Mount `json:"mounts,omitempty" bson:"mounts,omitempty"`
	Error  string  `json:"error,omitempty" bson:"error,omitempty"`
}

// Row is the per-row outcome in row mode. Panels lists the member panel
// indexes; Left and Right bound the continuous strip the row covers.
type Row struct {
	Panels []int   `json:"panels" bson:"panels"`
	Left   float64 `json:"left" bson:"left"`
	Right  float64 `json:"right" bson:"right"`
	Y      float64 `json:"y" bson:"y"`
	Mounts []Mount `json:"mounts,omitempty" bson:"mounts,omitempty"`
	Error  string  `json:"error,omitempty" bson:"error,omitempty"`
}

// Mount is a serialized attachment point.
type Mount struct {
	X            float64 `json:"x" bson:"x"`
	Y            float64 `json:"y" bson:"y"`
	Rafter       int     `json:"rafter" bson:"rafter"`
	Cantilevered bool    `json:"cantilevered,omitempty" bson:"cantilevered,omitempty"`
}

// Joint is a serialized panel-to-panel coupling. A and B index into
// [Document.Panels] with A < B.
type Joint struct {
	Kind   string  `json:"kind" bson:"kind"`
	A      int     `json:"a" bson:"a"`
	B      int     `json:"b" bson:"b"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	SpanLo float64 `json:"span_lo,omitempty" bson:"span_lo,omitempty"`
	SpanHi float64 `json:"span_hi,omitempty" bson:"span_hi,omitempty"`
}

// =============================================================================
// Plan ↔ Document Conversion
// =============================================================================

// FromResult converts a per-panel planning result to its serialization
// format. Panels keep their input order.
func FromResult(res *plan.Result, cfg plan.Config) Document {
	doc := Document{
		Mode:       ModePanel,
		Config:     ConfigFrom(cfg),
		Panels:     make([]Panel, len(res.Panels)),
		Placements: make([]Placement, len(res.Panels)),
		Joints:     jointsFrom(res.Joints),
	}
	for i, pp := range res.Panels {
		doc.Panels[i] = panelFrom(pp.Panel)
		doc.Placements[i] = Placement{Panel: i, Mounts: mountsFrom(pp.Mounts)}
		if pp.Err != nil {
			doc.Placements[i].Error = pp.Err.Error()
		}
	}
	return doc
}

// FromRowResult converts a row planning result to its serialization
// format.
func FromRowResult(res *plan.RowResult, cfg plan.Config) Document {
	doc := Document{
		Mode:   ModeRow,
		Config: ConfigFrom(cfg),
		Panels: make([]Panel, len(res.Panels)),
		Rows:   make([]Row, len(res.Rows)),
		Joints: jointsFrom(res.Joints),
	}
	for i, p := range res.Panels {
		doc.Panels[i] = panelFrom(p)
	}
	for i, row := range res.Rows {
		doc.Rows[i] = Row{
			Panels: row.Panels,
			Left:   row.Left,
			Right:  row.Right,
			Y:      row.Y,
			Mounts: mountsFrom(row.Mounts),
		}
		if row.Err != nil {
			doc.Rows[i].Error = row.Err.Error()
		}
	}
	return doc
}

// ConfigFrom converts a planner config to its serialization format.
func ConfigFrom(c plan.Config) Config {
	return Config{
		PanelWidth:      c.PanelWidth,
		PanelHeight:     c.PanelHeight,
		Spacing:         c.Spacing,
		FirstRafter:     c.FirstRafter,
		EdgeClearance:   c.EdgeClearance,
		MaxSpan:         c.MaxSpan,
		CantileverLimit: c.CantileverLimit,
		JointTolerance:  c.JointTolerance,
		RowTolerance:    c.RowTolerance,
	}
}

// PlanConfig converts a serialized config back to a planner config.
func (c Config) PlanConfig() plan.Config {
	return plan.Config{
		PanelWidth:      c.PanelWidth,
		PanelHeight:     c.PanelHeight,
		Spacing:         c.Spacing,
		FirstRafter:     c.FirstRafter,
		EdgeClearance:   c.EdgeClearance,
		MaxSpan:         c.MaxSpan,
		CantileverLimit: c.CantileverLimit,
		JointTolerance:  c.JointTolerance,
		RowTolerance:    c.RowTolerance,
	}
}

// RoofPanel converts a serialized panel back to its geometric form.
func (p Panel) RoofPanel() roof.Panel {
	return roof.Panel{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// Mounts returns every mount in the document regardless of mode,
// flattened in document order.
func (d *Document) Mounts() []Mount {
	var all []Mount
	for _, pl := range d.Placements {
		all = append(all, pl.Mounts...)
	}
	for _, row := range d.Rows {
		all = append(all, row.Mounts...)
	}
	return all
}

// MountCount returns the total number of mounts in the document.
func (d *Document) MountCount() int {
	n := 0
	for _, pl := range d.Placements {
		n += len(pl.Mounts)
	}
	for _, row := range d.Rows {
		n += len(row.Mounts)
	}
	return n
}

// Failures returns the recorded placement or row errors, in order.
func (d *Document) Failures() []string {
	var out []string
	for _, pl := range d.Placements {
		if pl.Error != "" {
			out = append(out, pl.Error)
		}
	}
	for _, row := range d.Rows {
		if row.Error != "" {
			out = append(out, row.Error)
		}
	}
	return out
}

// Validate checks the document's structural integrity: a known mode, the
// mode-matching section populated, panel indexes in range, and known
// joint kinds with ordered pairs. It does not re-run planning rules.
func (d *Document) Validate() error {
	switch d.Mode {
	case ModePanel:
		if len(d.Rows) > 0 {
			return fmt.Errorf("panel-mode document carries %d rows", len(d.Rows))
		}
		if len(d.Placements) != len(d.Panels) {
			return fmt.Errorf("document has %d placements for %d panels", len(d.Placements), len(d.Panels))
		}
		for i, pl := range d.Placements {
			if pl.Panel < 0 || pl.Panel >= len(d.Panels) {
				return fmt.Errorf("placement %d references unknown panel %d", i, pl.Panel)
			}
		}
	case ModeRow:
		if len(d.Placements) > 0 {
			return fmt.Errorf("row-mode document carries %d placements", len(d.Placements))
		}
		for i, row := range d.Rows {
			if len(row.Panels) == 0 {
				return fmt.Errorf("row %d has no panels", i)
			}
			for _, pi := range row.Panels {
				if pi < 0 || pi >= len(d.Panels) {
					return fmt.Errorf("row %d references unknown panel %d", i, pi)
				}
			}
		}
	default:
		return fmt.Errorf("unknown plan mode %q", d.Mode)
	}

	for i, j := range d.Joints {
		switch j.Kind {
		case JointHorizontal, JointVertical, JointCorner:
		default:
			return fmt.Errorf("joint %d has unknown kind %q", i, j.Kind)
		}
		if j.A >= j.B {
			return fmt.Errorf("joint %d pair (%d, %d) not ordered", i, j.A, j.B)
		}
		if j.A < 0 || j.B >= len(d.Panels) {
			return fmt.Errorf("joint %d references unknown panels (%d, %d)", i, j.A, j.B)
		}
	}
	return nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func panelFrom(p roof.Panel) Panel {
	return Panel{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

func mountsFrom(ms []plan.Mount) []Mount {
	if len(ms) == 0 {
		return nil
	}
	out := make([]Mount, len(ms))
	for i, m := range ms {
		out[i] = Mount{X: m.X, Y: m.Y, Rafter: m.Rafter, Cantilevered: m.Cantilevered}
	}
	return out
}

func jointsFrom(js []plan.Joint) []Joint {
	out := make([]Joint, len(js))
	for i, j := range js {
		out[i] = Joint{
			Kind:   j.Kind.String(),
			A:      j.A,
			B:      j.B,
			X:      j.X,
			Y:      j.Y,
			SpanLo: j.SpanLo,
			SpanHi: j.SpanHi,
		}
	}
	return out
}
