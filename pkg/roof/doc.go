// Package roof provides the geometric primitives for rooftop solar layouts:
// rectangular panels and the rafter grid they attach to.
//
// # Overview
//
// Rafterplan places mounting hardware on roof rafters. This package models
// the two things every placement rule is written against: a [Panel], which is
// an axis-aligned rectangle in roof coordinates, and a [Grid], which
// generates the x-positions of evenly spaced rafters.
//
// Roof coordinates put x across the rafters and y up the slope. A panel is
// located by its lower-left corner; edge accessors ([Panel.Left],
// [Panel.Right], [Panel.Bottom], [Panel.Top]) derive the remaining
// boundaries from its width and height.
//
// # Rafter Grid
//
// A grid is defined by the x-position of one reference rafter and a uniform
// spacing. Rafter i sits at first + i*spacing, where i may be negative to
// address rafters below the reference. The grid is a pure query object:
//
//	g, err := roof.NewGrid(5, 16)
//	if err != nil {
//	    return err
//	}
//	xs := g.RaftersInRange(10, 60) // [21 37 53]
//
// [Grid.RaftersInRange] is deterministic and restartable; calling it twice
// with the same bounds yields the same strictly increasing sequence.
//
// # Floating-Point Comparisons
//
// All geometric comparisons in this module share the [Epsilon] constant.
// Range bounds are inclusive within Epsilon, and [Grid.IndexAt] snaps a
// coordinate to a rafter only when it is within Epsilon of one. Keeping a
// single explicit epsilon makes on-rafter checks reproducible across
// platforms.
//
// # Concurrency
//
// Panel and Grid are immutable value types and safe for concurrent use.
package roof
