package plan

import (
	"errors"
	"fmt"

	"github.com/rafterlab/rafterplan/pkg/roof"
)

var (
	// ErrInvalidConfig wraps every violation reported by [Config.Validate].
	// Use errors.Is to detect configuration problems without matching on
	// the specific field.
	ErrInvalidConfig = errors.New("invalid planner configuration")

	// ErrNoPanels is returned by [Planner.Plan] and [Planner.PlanRows] when
	// called with no panels at all. An installation without panels is
	// almost always a caller bug (an empty or misparsed site file), so it
	// is reported rather than yielding a silently empty plan.
	ErrNoPanels = errors.New("no panels to plan")
)

// NoRafterError reports a panel whose clearance zone contains no rafter.
// It carries enough context to point the installer at the offending panel:
// the panel index in the planned slice, its geometry, and the zone that
// came up empty. The planner never invents an off-rafter mount position;
// a panel that cannot be mounted is reported with this error instead.
type NoRafterError struct {
	Index  int        // position of the panel in the planned slice
	Panel  roof.Panel // the panel that could not be mounted
	ZoneLo float64    // left bound of the clearance zone
	ZoneHi float64    // right bound of the clearance zone
}

func (e *NoRafterError) Error() string {
	if e.ZoneHi < e.ZoneLo {
		return fmt.Sprintf("panel %d at (%g, %g): edge clearance leaves no mounting zone (width %g, clearance zone collapses)",
			e.Index, e.Panel.X, e.Panel.Y, e.Panel.Width)
	}
	return fmt.Sprintf("panel %d at (%g, %g): no rafter inside mounting zone [%g, %g]",
		e.Index, e.Panel.X, e.Panel.Y, e.ZoneLo, e.ZoneHi)
}

// invalidf wraps a formatted message in [ErrInvalidConfig].
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
