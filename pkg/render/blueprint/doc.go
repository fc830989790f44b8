// Package blueprint renders mounting plans as roof blueprints in SVG.
//
// # Overview
//
// The blueprint is the primary visual output: panels drawn to scale, mount
// points on their rafters, joints at the couplings, optionally the rafter
// grid behind everything. Cantilevered mounts are drawn in red so overhung
// hardware stands out on review.
//
// # Usage
//
// Render a plan document:
//
//	svg := blueprint.RenderSVG(doc,
//	    blueprint.WithRafters(),
//	    blueprint.WithLabels(),
//	    blueprint.WithScale(6),
//	)
//	os.WriteFile("plan.svg", svg, 0644)
//
// For raster output, convert through [render.ToPNG].
//
// # Determinism
//
// Rendering is a pure function of the document and options: the same plan
// always produces byte-identical SVG. Artifact caching relies on this.
//
// [render.ToPNG]: github.com/rafterlab/rafterplan/pkg/render#ToPNG
package blueprint
