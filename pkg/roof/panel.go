package roof

import (
	"errors"
	"fmt"
)

// ErrNonPositivePanel is returned by [Panel.Validate] when a panel has a
// zero or negative width or height. Panels are always proper rectangles;
// degenerate sizes would make edge adjacency undefined.
var ErrNonPositivePanel = errors.New("panel width and height must be positive")

// Panel is an axis-aligned rectangular solar panel in roof coordinates.
// X and Y locate the lower-left corner; x runs across the rafters and y
// runs up the slope. The zero value is an empty panel at the origin and
// fails [Panel.Validate].
type Panel struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Left returns the x-coordinate of the panel's left edge.
func (p Panel) Left() float64 { return p.X }

// Right returns the x-coordinate of the panel's right edge.
func (p Panel) Right() float64 { return p.X + p.Width }

// Bottom returns the y-coordinate of the panel's bottom edge.
func (p Panel) Bottom() float64 { return p.Y }

// Top returns the y-coordinate of the panel's top edge.
func (p Panel) Top() float64 { return p.Y + p.Height }

// CenterX returns the x-coordinate of the panel's center.
func (p Panel) CenterX() float64 { return p.X + p.Width/2 }

// CenterY returns the y-coordinate of the panel's center.
func (p Panel) CenterY() float64 { return p.Y + p.Height/2 }

// Validate checks that the panel has positive extent in both axes.
func (p Panel) Validate() error {
	if p.Width <= 0 {
		return fmt.Errorf("%w: width %g", ErrNonPositivePanel, p.Width)
	}
	if p.Height <= 0 {
		return fmt.Errorf("%w: height %g", ErrNonPositivePanel, p.Height)
	}
	return nil
}

// OverlapX returns the length of the x-interval shared by the two panels.
// The result is negative when the panels are separated along x, and the
// magnitude is then the size of the gap.
func (p Panel) OverlapX(q Panel) float64 {
	return min(p.Right(), q.Right()) - max(p.Left(), q.Left())
}

// OverlapY returns the length of the y-interval shared by the two panels,
// negative when they are separated along y.
func (p Panel) OverlapY(q Panel) float64 {
	return min(p.Top(), q.Top()) - max(p.Bottom(), q.Bottom())
}
