// Package plan computes mounting hardware placements for rooftop solar
// installations: mounts that fasten panels to rafters, and joints that
// couple adjacent panels to each other.
//
// # Overview
//
// Rafterplan turns a panel layout and a set of structural rules into a
// bill of hardware positions. This package is the rule engine. It is pure
// computation: given the same [Config] and the same panels, it always
// produces the same plan, with no I/O, no randomness, and no dependence
// on iteration order.
//
// # Basic Usage
//
// Build a [Config] (start from [DefaultConfig]), construct a [Planner]
// with [New], and hand it panels:
//
//	p, err := plan.New(plan.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	res, err := p.Plan([]roof.Panel{
//	    {X: 0, Y: 0, Width: 44.7, Height: 71.1},
//	    {X: 44.7, Y: 0, Width: 44.7, Height: 71.1},
//	})
//
// The result lists mounts per panel and joints per adjacent pair. Use
// [Result.Mounts] for a flat (Y, X)-ordered view.
//
// # Mount Rules
//
// Mounts for one panel live in the mounting zone, the panel's horizontal
// extent shrunk inward by the edge clearance. The first and last mounts
// take the extreme rafters inside the zone; intermediate mounts are added
// greedily so that no two adjacent mounts sit more than MaxSpan apart.
// Every mount lies exactly on a rafter. When a panel edge overhangs its
// extreme mount by more than the cantilever limit, the mount is flagged
// [Mount.Cantilevered] rather than moved: there is no better rafter, and
// inventing an off-rafter position would produce hardware that cannot be
// installed. A zone with no rafter at all fails with [NoRafterError].
//
// # Joint Rules
//
// Every unordered pair of panels is tested for adjacency within the joint
// tolerance. Side-by-side panels whose vertical extents overlap get a
// horizontal joint on the shared edge; stacked panels whose horizontal
// extents overlap get a vertical joint; panels meeting at a single point
// get a corner joint. A pair receives at most one joint, and the joint is
// identical regardless of which panel is considered first.
//
// # Row Planning
//
// [Planner.PlanRows] treats each row of panels as one continuous strip
// sharing mounts along a rail, the way ballasted rail systems are
// installed. [GroupRows] exposes the grouping itself.
//
// # Concurrency
//
// Planner is immutable after [New] and safe for concurrent use; results
// are plain values owned by the caller.
package plan
