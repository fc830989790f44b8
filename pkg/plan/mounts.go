package plan

import "github.com/rafterlab/rafterplan/pkg/roof"

// span is a horizontal strip of panel surface that needs mounts: a single
// panel in per-panel planning, or a whole row in row planning.
type span struct {
	left  float64
	right float64
	y     float64 // vertical placement for every mount under this strip
}

// mountSpan places mounts on the rafters beneath one strip.
//
// The mountable zone shrinks the strip inward by the edge clearance on
// both sides. The first and last mounts are the extreme rafters inside
// the zone. When a strip edge overhangs its extreme mount by more than
// the cantilever limit, the mount keeps its position but is flagged
// [Mount.Cantilevered]; there is no rafter closer to the edge, so moving
// it is not an option. Between the extremes, mounts are added greedily:
// from the current mount, jump to the farthest zone rafter no more than
// MaxSpan away, until the last mount is within one jump.
//
// A zone that contains no rafter (or collapses entirely) yields a nil
// mount slice; the caller wraps that in a [NoRafterError].
func (p *Planner) mountSpan(s span) []Mount {
	zoneLo := s.left + p.cfg.EdgeClearance
	zoneHi := s.right - p.cfg.EdgeClearance
	lo, hi, ok := p.grid.IndexRange(zoneLo, zoneHi)
	if !ok {
		return nil
	}

	limit := p.cfg.CantileverLimit + roof.Epsilon
	at := func(i int) Mount {
		return Mount{X: p.grid.Rafter(i), Y: s.y, Rafter: i}
	}

	first := at(lo)
	if first.X-s.left > limit {
		first.Cantilevered = true
	}
	if lo == hi {
		// A single mount carries both overhangs.
		if s.right-first.X > limit {
			first.Cantilevered = true
		}
		return []Mount{first}
	}

	last := at(hi)
	if s.right-last.X > limit {
		last.Cantilevered = true
	}

	mounts := []Mount{first}
	// Farthest reachable rafter is a fixed stride on a uniform grid.
	// Validate guarantees MaxSpan >= Spacing, so the stride is at least 1,
	// and the loop condition guarantees cur+step stays short of hi.
	step := int((p.cfg.MaxSpan + roof.Epsilon) / p.grid.Spacing())
	for cur := lo; p.grid.Rafter(hi)-p.grid.Rafter(cur) > p.cfg.MaxSpan+roof.Epsilon; {
		cur += step
		mounts = append(mounts, at(cur))
	}
	return append(mounts, last)
}
