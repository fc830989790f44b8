// Package pkg provides the core libraries for rafterplan mounting-hardware planning.
//
// # Overview
//
// Rafterplan computes the physical mounting hardware for solar panel
// installations: mounts placed on the rafters beneath each panel and joints
// where adjacent panels meet. The pkg directory is organized into four main
// areas:
//
//  1. Geometry ([roof], [plan]) - the deterministic placement rules
//  2. Serialization ([schema], [site]) - plan documents and site descriptions
//  3. Rendering ([render/blueprint], [render/adjacency]) - SVG/PNG/DOT output
//  4. Infrastructure ([pipeline], [cache], [store], [errors], [observability])
//
// # Architecture
//
// The typical data flow through rafterplan:
//
//	Site description (TOML/YAML/JSON)
//	         ↓
//	    [site] package (panels + config)
//	         ↓
//	    [plan] package (mounts on [roof] rafters, joints between panels)
//	         ↓
//	    [schema] package (canonical plan document)
//	         ↓
//	    [render/blueprint] / [render/adjacency] (SVG, PNG, DOT output)
//
// # Quick Start
//
// Plan a two-panel layout and render a blueprint:
//
//	import (
//	    "github.com/rafterlab/rafterplan/pkg/plan"
//	    "github.com/rafterlab/rafterplan/pkg/render/blueprint"
//	    "github.com/rafterlab/rafterplan/pkg/roof"
//	    "github.com/rafterlab/rafterplan/pkg/schema"
//	)
//
//	// 1. Configure the planner
//	cfg := plan.DefaultConfig()
//	planner, _ := plan.New(cfg)
//
//	// 2. Plan mounts and joints
//	panels := []roof.Panel{
//	    {X: 0, Y: 0, Width: cfg.PanelWidth, Height: cfg.PanelHeight},
//	    {X: 45.05, Y: 0, Width: cfg.PanelWidth, Height: cfg.PanelHeight},
//	}
//	result, _ := planner.Plan(panels)
//
//	// 3. Serialize and render
//	doc := schema.FromResult(result, cfg)
//	svg := blueprint.RenderSVG(&doc, blueprint.WithRafters())
//
// # Main Packages
//
// ## Geometry
//
// [roof] - Panel rectangles and the rafter Grid. A grid is a pure query over
// first offset + uniform spacing; panels expose left/right/bottom/top edges.
//
// [plan] - The placement rules: Config validation, per-panel mount
// calculation (edge clearance, cantilever limit, maximal-span greedy fill),
// pairwise joint detection (horizontal, vertical, corner), and row grouping
// for shared rails.
//
// ## Serialization
//
// [schema] - The canonical plan document with JSON and BSON tags, used for
// files, API responses, cache entries, and stored records.
//
// [site] - Site-description loading. TOML, YAML, and JSON loaders with
// extension detection, shared panel dimensions, and defaulted config.
//
// ## Rendering
//
// [render/blueprint] - Roof-plan SVG drawings with functional options
// (rafter grid, labels, scale) and PNG rasterization.
//
// [render/adjacency] - The panel-adjacency graph (nodes are panels, edges
// are joints) as Graphviz DOT, rendered to SVG or PNG.
//
// ## Infrastructure
//
// [pipeline] - The load → plan → render Runner with content-addressed
// caching, shared by the CLI and the HTTP API.
//
// [cache] - Cache interface with file, Redis, and null backends plus the
// cache key derivation.
//
// [store] - Plan persistence behind the Store interface: in-memory for
// development, MongoDB for deployments.
//
// [errors] - Application errors with machine-readable codes shared by the
// CLI and the HTTP API.
//
// [observability] - Hook interfaces with no-op defaults for pipeline, cache,
// and HTTP events.
//
// [buildinfo] - ldflags-injected version information.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/plan/...     # Specific package
//	go test -run Example       # Examples only
//
// [roof]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/roof
// [plan]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/plan
// [schema]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/schema
// [site]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/site
// [render/blueprint]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/render/blueprint
// [render/adjacency]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/render/adjacency
// [pipeline]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/cache
// [store]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/store
// [errors]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/errors
// [observability]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/rafterlab/rafterplan/pkg/buildinfo
package pkg
