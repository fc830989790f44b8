// Package render provides visualization rendering for mounting plans.
//
// # Overview
//
// This package contains the rendering layer that transforms plan documents
// into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PNG)
//   - Roof blueprints (in [blueprint] subpackage)
//   - Panel-adjacency diagrams (in [adjacency] subpackage)
//
// # Format Conversion
//
// The [ToPNG] function converts any SVG to a raster image using the
// external rsvg-convert tool (from librsvg). Both renderers produce SVG
// first and rasterize through it.
//
//	svg := blueprint.RenderSVG(doc, blueprint.WithRafters())
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Blueprints
//
// The [blueprint] subpackage draws the roof plan itself: panels to scale,
// rafter lines, mount points and joints, the way an installer would read
// it off a drawing.
//
// # Adjacency Diagrams
//
// The [adjacency] subpackage renders the panel coupling structure as a
// Graphviz diagram. Panels appear as boxes, joints as edges colored by
// kind.
//
//	dot := adjacency.ToDOT(doc, adjacency.Options{})
//	svg, err := adjacency.RenderSVG(dot)
//
// [blueprint]: github.com/rafterlab/rafterplan/pkg/render/blueprint
// [adjacency]: github.com/rafterlab/rafterplan/pkg/render/adjacency
package render
