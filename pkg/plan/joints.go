package plan

import (
	"math"

	"github.com/rafterlab/rafterplan/pkg/roof"
)

// jointBetween evaluates one unordered pair of panels and returns the
// joint between them, if any. At most one joint per pair: panels meeting
// at a corner get a corner joint; otherwise side-by-side panels get a
// horizontal joint and stacked panels a vertical one.
//
// Positions are computed on canonical panels (the leftmost for x, the
// lowest for y), so swapping the arguments yields the identical joint.
// A horizontal joint sits on the left panel's right edge at the middle of
// the shared vertical extent; a vertical joint sits on the lower panel's
// top edge at the middle of the shared horizontal extent; a corner joint
// sits on the shared corner itself.
func (p *Planner) jointBetween(ai, bi int, a, b roof.Panel) (Joint, bool) {
	tol := p.cfg.JointTolerance + roof.Epsilon

	l, r := a, b
	if r.Left() < l.Left() || (r.Left() == l.Left() && r.Bottom() < l.Bottom()) {
		l, r = r, l
	}
	lo, up := a, b
	if up.Bottom() < lo.Bottom() || (up.Bottom() == lo.Bottom() && up.Left() < lo.Left()) {
		lo, up = up, lo
	}

	xTouch := math.Abs(l.Right()-r.Left()) <= tol
	yTouch := math.Abs(lo.Top()-up.Bottom()) <= tol

	j := Joint{A: min(ai, bi), B: max(ai, bi)}
	switch {
	case xTouch && yTouch:
		j.Kind = JointCorner
		j.X = l.Right()
		j.Y = lo.Top()
	case xTouch && a.OverlapY(b) > tol:
		j.Kind = JointHorizontal
		j.X = l.Right()
		j.SpanLo = max(a.Bottom(), b.Bottom())
		j.SpanHi = min(a.Top(), b.Top())
		j.Y = (j.SpanLo + j.SpanHi) / 2
	case yTouch && a.OverlapX(b) > tol:
		j.Kind = JointVertical
		j.Y = lo.Top()
		j.SpanLo = max(a.Left(), b.Left())
		j.SpanHi = min(a.Right(), b.Right())
		j.X = (j.SpanLo + j.SpanHi) / 2
	default:
		return Joint{}, false
	}
	return j, true
}

// joints computes all joints between the given panels, skipping panels
// flagged invalid. The result is ordered by (first panel, second panel)
// index, which follows directly from the pairwise sweep.
func (p *Planner) joints(panels []roof.Panel, skip func(int) bool) []Joint {
	var js []Joint
	for i := 0; i < len(panels); i++ {
		if skip != nil && skip(i) {
			continue
		}
		for k := i + 1; k < len(panels); k++ {
			if skip != nil && skip(k) {
				continue
			}
			if j, ok := p.jointBetween(i, k, panels[i], panels[k]); ok {
				js = append(js, j)
			}
		}
	}
	return js
}
