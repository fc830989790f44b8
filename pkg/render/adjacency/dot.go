package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/rafterlab/rafterplan/pkg/render"
	"github.com/rafterlab/rafterplan/pkg/schema"
)

// Edge colors per joint kind.
const (
	colorHorizontal = "#2563eb"
	colorVertical   = "#16a34a"
	colorCorner     = "#9333ea"
)

// Options configures adjacency diagram generation.
type Options struct {
	// Detailed includes panel positions and sizes in node labels and
	// labels each edge with its joint kind. When false, only the panel
	// index is shown.
	Detailed bool
}

// ToDOT converts a plan document to Graphviz DOT format. Panels become
// nodes, joints become undirected edges colored by kind. The resulting
// DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Panels whose placement (or row) failed are drawn with dashed red
// outlines so unmountable sections stand out.
func ToDOT(doc *schema.Document, opts Options) string {
	failed := failedPanels(doc)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.1\"];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for i, p := range doc.Panels {
		attrs := fmt.Sprintf("label=%q", fmtLabel(i, p, opts.Detailed))
		if failed[i] {
			attrs += `, style="rounded,filled,dashed", color=red`
		}
		fmt.Fprintf(&buf, "  \"P%d\" [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for _, j := range doc.Joints {
		attrs := fmt.Sprintf("color=%q", edgeColor(j.Kind))
		if opts.Detailed {
			attrs += fmt.Sprintf(", label=%q", j.Kind)
		}
		fmt.Fprintf(&buf, "  \"P%d\" -- \"P%d\" [%s];\n", j.A, j.B, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(i int, p schema.Panel, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("P%d", i)
	}
	return fmt.Sprintf("P%d\n(%g, %g) %g×%g", i, p.X, p.Y, p.Width, p.Height)
}

func edgeColor(kind string) string {
	switch kind {
	case schema.JointHorizontal:
		return colorHorizontal
	case schema.JointVertical:
		return colorVertical
	case schema.JointCorner:
		return colorCorner
	default:
		return "black"
	}
}

// failedPanels collects the indexes of panels whose placement or row
// recorded an error.
func failedPanels(doc *schema.Document) map[int]bool {
	failed := make(map[int]bool)
	for _, pl := range doc.Placements {
		if pl.Error != "" {
			failed[pl.Panel] = true
		}
	}
	for _, row := range doc.Rows {
		if row.Error != "" {
			for _, pi := range row.Panels {
				failed[pi] = true
			}
		}
	}
	return failed
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or rasterization with [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
