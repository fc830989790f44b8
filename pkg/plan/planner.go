package plan

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/rafterlab/rafterplan/pkg/roof"
)

// Planner computes mounting plans for a fixed configuration. Construct it
// with [New]; the zero value has no rafter grid and is not usable. A
// Planner is immutable and safe for concurrent use.
type Planner struct {
	cfg  Config
	grid roof.Grid
}

// New validates cfg and returns a planner for it.
func New(cfg Config) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := roof.NewGrid(cfg.FirstRafter, cfg.Spacing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Planner{cfg: cfg, grid: grid}, nil
}

// Config returns the planner's configuration.
func (p *Planner) Config() Config { return p.cfg }

// Grid returns the planner's rafter grid.
func (p *Planner) Grid() roof.Grid { return p.grid }

// Plan computes mounts for each panel independently, plus joints between
// every adjacent pair.
//
// Planning is collect-and-report: a panel whose mounting zone contains no
// rafter is recorded with a [NoRafterError] in its [PanelPlan] and the
// remaining panels still get full results. The returned error aggregates
// those per-panel failures (and is nil when all panels succeeded); the
// result is complete either way. Panels with non-positive dimensions are
// likewise recorded as failures and take part in no joints.
func (p *Planner) Plan(panels []roof.Panel) (*Result, error) {
	if len(panels) == 0 {
		return nil, ErrNoPanels
	}

	res := &Result{Panels: make([]PanelPlan, len(panels))}
	invalid := make([]bool, len(panels))
	for i, pl := range panels {
		pp := PanelPlan{Panel: pl}
		if err := pl.Validate(); err != nil {
			pp.Err = fmt.Errorf("panel %d: %w", i, err)
			invalid[i] = true
		} else if pp.Mounts = p.mountSpan(span{left: pl.Left(), right: pl.Right(), y: pl.CenterY()}); pp.Mounts == nil {
			pp.Err = &NoRafterError{
				Index:  i,
				Panel:  pl,
				ZoneLo: pl.Left() + p.cfg.EdgeClearance,
				ZoneHi: pl.Right() - p.cfg.EdgeClearance,
			}
		}
		res.Panels[i] = pp
	}
	res.Joints = p.joints(panels, func(i int) bool { return invalid[i] })
	return res, res.Err()
}

// PlanRows computes mounts for whole rows instead of single panels:
// panels are grouped into rows by bottom edge, each row is mounted as one
// continuous strip, and joints are computed exactly as in [Planner.Plan].
// Row mounting assumes the panels share rails along the row, which lets
// adjacent panels share mounts.
//
// Unlike per-panel planning, PlanRows rejects the whole input when any
// panel has non-positive dimensions, because a malformed panel corrupts
// the extent of its entire row. Rows whose strip contains no rafter are
// recorded with a wrapped [NoRafterError], and the returned error
// aggregates those failures; the result is complete either way.
func (p *Planner) PlanRows(panels []roof.Panel) (*RowResult, error) {
	if len(panels) == 0 {
		return nil, ErrNoPanels
	}
	var errs []error
	for i, pl := range panels {
		if err := pl.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("panel %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	rows := GroupRows(panels, p.cfg.rowTolerance())
	res := &RowResult{
		Panels: slices.Clone(panels),
		Rows:   make([]RowPlan, len(rows)),
	}
	for ri, members := range rows {
		s := rowSpan(panels, members)
		rp := RowPlan{Panels: members, Left: s.left, Right: s.right, Y: s.y}
		if rp.Mounts = p.mountSpan(s); rp.Mounts == nil {
			rp.Err = fmt.Errorf("row %d: %w", ri, &NoRafterError{
				Index:  members[0],
				Panel:  panels[members[0]],
				ZoneLo: s.left + p.cfg.EdgeClearance,
				ZoneHi: s.right - p.cfg.EdgeClearance,
			})
		}
		res.Rows[ri] = rp
	}
	res.Joints = p.joints(panels, nil)
	return res, res.Err()
}

// sortMounts orders mounts by (Y, X), the reading order installers expect
// on a plan sheet.
func sortMounts(ms []Mount) {
	slices.SortFunc(ms, func(a, b Mount) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
}
