package plan

import "github.com/rafterlab/rafterplan/pkg/roof"

// Config holds the rule parameters for a mounting plan. All distances are
// in the same unit as the panel coordinates (conventionally inches).
//
// Construct configs from [DefaultConfig] and override fields as needed, or
// populate one from a site file via the site package. [Config.Validate]
// must pass before the config is handed to [New].
type Config struct {
	// PanelWidth and PanelHeight are the default panel dimensions, used
	// when a layout supplies bare positions instead of full rectangles.
	PanelWidth  float64
	PanelHeight float64

	// Spacing is the distance between adjacent rafters.
	Spacing float64

	// FirstRafter is the x-position of the reference rafter.
	FirstRafter float64

	// EdgeClearance shrinks the mountable zone inward from each vertical
	// panel edge. Zero means mounts may sit directly on a panel edge.
	EdgeClearance float64

	// MaxSpan is the largest allowed distance between adjacent mounts
	// under the same panel.
	MaxSpan float64

	// CantileverLimit is how far a panel edge may overhang past its
	// nearest mount before the overhang is flagged as excessive.
	CantileverLimit float64

	// JointTolerance is the maximum edge-to-edge distance at which two
	// panels still count as adjacent. It also sets the minimum overlap
	// two edges need before a joint is placed between them.
	JointTolerance float64

	// RowTolerance groups panels into rows: panels whose bottom edges
	// differ by at most this much share a row. Zero selects
	// [DefaultRowTolerance]. Only row planning reads this field.
	RowTolerance float64
}

// DefaultRowTolerance is the row-grouping tolerance used when
// [Config.RowTolerance] is zero.
const DefaultRowTolerance = 0.1

// DefaultConfig returns the stock imperial-unit configuration: 44.7x71.1
// panels on 16-inch rafter centers, with a 48-inch span limit and a
// 16-inch cantilever limit.
func DefaultConfig() Config {
	return Config{
		PanelWidth:      44.7,
		PanelHeight:     71.1,
		Spacing:         16,
		FirstRafter:     5,
		EdgeClearance:   2,
		MaxSpan:         48,
		CantileverLimit: 16,
		JointTolerance:  1.0,
		RowTolerance:    DefaultRowTolerance,
	}
}

// Validate reports the first rule violation in the config, wrapped in
// [ErrInvalidConfig], or nil when the config is usable.
//
// Spacing, MaxSpan, PanelWidth, PanelHeight, and JointTolerance must be
// strictly positive; EdgeClearance, CantileverLimit, and RowTolerance must
// be non-negative. A MaxSpan smaller than Spacing is rejected eagerly: no
// pair of adjacent rafters could ever satisfy it, so every multi-mount
// panel would fail.
func (c Config) Validate() error {
	if c.Spacing <= 0 {
		return invalidf("rafter spacing must be positive, got %g", c.Spacing)
	}
	if c.MaxSpan <= 0 {
		return invalidf("max span must be positive, got %g", c.MaxSpan)
	}
	if c.PanelWidth <= 0 {
		return invalidf("panel width must be positive, got %g", c.PanelWidth)
	}
	if c.PanelHeight <= 0 {
		return invalidf("panel height must be positive, got %g", c.PanelHeight)
	}
	if c.EdgeClearance < 0 {
		return invalidf("edge clearance cannot be negative, got %g", c.EdgeClearance)
	}
	if c.CantileverLimit < 0 {
		return invalidf("cantilever limit cannot be negative, got %g", c.CantileverLimit)
	}
	if c.JointTolerance <= 0 {
		return invalidf("joint tolerance must be positive, got %g", c.JointTolerance)
	}
	if c.RowTolerance < 0 {
		return invalidf("row tolerance cannot be negative, got %g", c.RowTolerance)
	}
	if c.MaxSpan < c.Spacing {
		return invalidf("max span %g is smaller than rafter spacing %g; adjacent mounts could never comply", c.MaxSpan, c.Spacing)
	}
	return nil
}

// PanelAt returns a panel of the configured default size with its
// lower-left corner at (x, y). Site layouts that list bare positions are
// expanded through this.
func (c Config) PanelAt(x, y float64) roof.Panel {
	return roof.Panel{X: x, Y: y, Width: c.PanelWidth, Height: c.PanelHeight}
}

// rowTolerance returns the effective row-grouping tolerance.
func (c Config) rowTolerance() float64 {
	if c.RowTolerance > 0 {
		return c.RowTolerance
	}
	return DefaultRowTolerance
}
