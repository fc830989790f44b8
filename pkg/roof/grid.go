package roof

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the slack applied to every geometric comparison in this module.
// Inclusive range bounds, on-rafter checks, and adjacency tolerances all
// treat values within Epsilon as equal so results stay stable under
// floating-point rounding.
const Epsilon = 1e-9

// ErrNonPositiveSpacing is returned by [NewGrid] when the rafter spacing is
// zero or negative. Rafter positions must form a strictly increasing
// sequence.
var ErrNonPositiveSpacing = errors.New("rafter spacing must be positive")

// Grid generates the x-positions of evenly spaced roof rafters. Rafter i
// sits at first + i*spacing for any integer i, so the grid extends in both
// directions from the reference rafter. Construct grids with [NewGrid]; the
// zero value has zero spacing and is not usable.
type Grid struct {
	first   float64
	spacing float64
}

// NewGrid returns a grid whose reference rafter sits at first, with
// subsequent rafters every spacing units. It returns
// [ErrNonPositiveSpacing] when spacing is not strictly positive.
func NewGrid(first, spacing float64) (Grid, error) {
	if spacing <= 0 {
		return Grid{}, fmt.Errorf("%w: got %g", ErrNonPositiveSpacing, spacing)
	}
	return Grid{first: first, spacing: spacing}, nil
}

// First returns the x-position of the reference rafter (index 0).
func (g Grid) First() float64 { return g.first }

// Spacing returns the distance between adjacent rafters.
func (g Grid) Spacing() float64 { return g.spacing }

// Rafter returns the x-position of rafter i. Index 0 is the reference
// rafter; negative indexes address rafters below it.
func (g Grid) Rafter(i int) float64 {
	return g.first + float64(i)*g.spacing
}

// IndexAt returns the index of the rafter at x. The second return value is
// false when x is not within [Epsilon] of any rafter.
func (g Grid) IndexAt(x float64) (int, bool) {
	i := int(math.Round((x - g.first) / g.spacing))
	if math.Abs(g.Rafter(i)-x) > Epsilon {
		return 0, false
	}
	return i, true
}

// IndexRange returns the indexes of the first and last rafters inside
// [lo, hi]. Bounds are inclusive within [Epsilon]. The second return value
// is false when the interval contains no rafter, including when hi < lo.
func (g Grid) IndexRange(lo, hi float64) (first, last int, ok bool) {
	if hi < lo-Epsilon {
		return 0, 0, false
	}
	first = int(math.Ceil((lo - Epsilon - g.first) / g.spacing))
	last = int(math.Floor((hi + Epsilon - g.first) / g.spacing))
	if last < first {
		return 0, 0, false
	}
	return first, last, true
}

// RaftersInRange returns the x-positions of all rafters inside [lo, hi] in
// strictly increasing order. Bounds are inclusive within [Epsilon]; the
// result is empty when no rafter falls inside the interval.
func (g Grid) RaftersInRange(lo, hi float64) []float64 {
	first, last, ok := g.IndexRange(lo, hi)
	if !ok {
		return nil
	}
	xs := make([]float64, 0, last-first+1)
	for i := first; i <= last; i++ {
		xs = append(xs, g.Rafter(i))
	}
	return xs
}
