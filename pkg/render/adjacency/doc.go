// Package adjacency renders panel coupling structure as graph diagrams.
//
// # Overview
//
// This package produces Graphviz visualizations of how panels are joined:
// each panel is a node, each joint an undirected edge colored by kind
// (blue horizontal, green vertical, purple corner). It answers "which
// panels share hardware?" at a glance, complementing the geometric view
// in [blueprint].
//
// # Usage
//
// Convert a plan document to DOT format, then render to SVG:
//
//	dot := adjacency.ToDOT(doc, adjacency.Options{})
//	svg, err := adjacency.RenderSVG(dot)
//
// For PNG output:
//
//	png, err := adjacency.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Panels whose placement failed are drawn with dashed red outlines so
// unmountable sections stand out in review.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PNG conversion requires librsvg (rsvg-convert).
//
// [blueprint]: github.com/rafterlab/rafterplan/pkg/render/blueprint
package adjacency
