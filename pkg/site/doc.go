// Package site reads installation definitions from site files.
//
// A site file names an installation, overrides rule parameters, and lays
// out the panels. Three formats are supported through the [Loader]
// interface: TOML, YAML, and JSON, detected by file extension. All three
// decode into the same shape:
//
//	name = "north-roof"
//
//	[config]
//	spacing = 16
//	first_rafter = 5
//	max_span = 48
//
//	positions = [[0.0, 0.0], [45.05, 0.0]]
//
//	[[panels]]
//	x = 90.1
//	y = 0.0
//	width = 44.7
//	height = 71.1
//
// Omitted config keys fall back to [plan.DefaultConfig]; explicit zeros
// are kept (edge_clearance = 0 means no clearance, not "use default").
// Panels come from explicit [[panels]] rectangles, from bare positions
// expanded to the default panel size, or both; explicit rectangles come
// first in the resulting order.
//
// Loading validates the site name, the merged configuration, and every
// panel rectangle, returning coded errors (INVALID_SITE, INVALID_CONFIG,
// INVALID_PANEL) that the CLI and API surface directly.
//
//	s, err := site.Load("north-roof.toml")
//	if err != nil {
//	    return err
//	}
//	p, err := plan.New(s.Config)
package site
