package plan

import (
	"math"

	"github.com/rafterlab/rafterplan/pkg/roof"
)

// GroupRows partitions panels into rows. Panels whose bottom edges lie
// within tol of the first panel seen in a row share that row. Rows appear
// in first-seen order and keep their members in input order, so the
// grouping is deterministic for any input ordering.
func GroupRows(panels []roof.Panel, tol float64) [][]int {
	var rows [][]int
	var keys []float64
	for i, p := range panels {
		placed := false
		for ri, key := range keys {
			if math.Abs(p.Bottom()-key) <= tol {
				rows[ri] = append(rows[ri], i)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []int{i})
			keys = append(keys, p.Bottom())
		}
	}
	return rows
}

// rowSpan computes the continuous strip covered by one row: the union of
// the member panels' horizontal extents, with mounts placed at the middle
// of the row's vertical extent.
func rowSpan(panels []roof.Panel, members []int) span {
	s := span{
		left:  math.Inf(1),
		right: math.Inf(-1),
	}
	bottom, top := math.Inf(1), math.Inf(-1)
	for _, i := range members {
		s.left = min(s.left, panels[i].Left())
		s.right = max(s.right, panels[i].Right())
		bottom = min(bottom, panels[i].Bottom())
		top = max(top, panels[i].Top())
	}
	s.y = (bottom + top) / 2
	return s
}
