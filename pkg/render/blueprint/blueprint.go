package blueprint

import (
	"bytes"
	"fmt"
	"html"

	"github.com/rafterlab/rafterplan/pkg/roof"
	"github.com/rafterlab/rafterplan/pkg/schema"
)

// DefaultScale is the default pixel density in px per length unit.
const DefaultScale = 4.0

// margin is the whitespace around the drawing, in length units.
const margin = 12.0

// Drawing palette.
const (
	colorBackground  = "#ffffff"
	colorPanelFill   = "#dbeafe"
	colorPanelStroke = "#1d4ed8"
	colorRafter      = "#b45309"
	colorRowStrip    = "#6b7280"
	colorMount       = "#111827"
	colorCantilever  = "#dc2626"
	colorHorizontal  = "#2563eb"
	colorVertical    = "#16a34a"
	colorCorner      = "#9333ea"
	colorLabel       = "#374151"
)

// SVGOption configures blueprint rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale   float64
	rafters bool
	labels  bool
}

// WithScale sets the pixel density in px per length unit.
// Non-positive values keep [DefaultScale].
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithRafters draws the rafter grid behind the panels.
func WithRafters() SVGOption { return func(r *svgRenderer) { r.rafters = true } }

// WithLabels annotates panels with their index and mounts with their
// coordinates.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// frame maps roof coordinates (y up) onto the SVG canvas (y down).
type frame struct {
	minX, maxX float64
	maxY       float64
	scale      float64
	w, h       float64
}

func (f frame) x(x float64) float64 { return (x - f.minX + margin) * f.scale }
func (f frame) y(y float64) float64 { return (f.maxY - y + margin) * f.scale }

// RenderSVG draws a mounting plan as a roof blueprint: panels to scale,
// mounts and joints where the hardware goes, optionally the rafter grid
// underneath. Output is deterministic for a given document and options.
func RenderSVG(doc *schema.Document, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	f := newFrame(doc, r.scale)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		f.w, f.h, f.w, f.h)
	if doc.Site != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(doc.Site))
	}
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n", f.w, f.h, colorBackground)

	if r.rafters {
		renderRafters(&buf, doc, f, r.labels)
	}
	renderPanels(&buf, doc, f, r.labels)
	renderRowStrips(&buf, doc, f)
	renderMounts(&buf, doc, f, r.labels)
	renderJoints(&buf, doc, f)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// newFrame computes the drawing frame from the panel bounding box.
func newFrame(doc *schema.Document, scale float64) frame {
	minX, minY := 0.0, 0.0
	maxX, maxY := 0.0, 0.0
	for i, p := range doc.Panels {
		rp := p.RoofPanel()
		if i == 0 || rp.Left() < minX {
			minX = rp.Left()
		}
		if i == 0 || rp.Bottom() < minY {
			minY = rp.Bottom()
		}
		if i == 0 || rp.Right() > maxX {
			maxX = rp.Right()
		}
		if i == 0 || rp.Top() > maxY {
			maxY = rp.Top()
		}
	}
	return frame{
		minX:  minX,
		maxX:  maxX,
		maxY:  maxY,
		scale: scale,
		w:     (maxX - minX + 2*margin) * scale,
		h:     (maxY - minY + 2*margin) * scale,
	}
}

// renderRafters draws the vertical rafter lines that carry the mounts.
func renderRafters(buf *bytes.Buffer, doc *schema.Document, f frame, labels bool) {
	cfg := doc.Config.PlanConfig()
	grid, err := roof.NewGrid(cfg.FirstRafter, cfg.Spacing)
	if err != nil {
		return
	}
	// Extend half a margin past the panels on each side.
	first, last, ok := grid.IndexRange(f.minX-margin/2, f.maxX+margin/2)
	if !ok {
		return
	}
	for i := first; i <= last; i++ {
		x := f.x(grid.Rafter(i))
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="0" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1" stroke-dasharray="6,4"/>`+"\n",
			x, x, f.h, colorRafter)
		if labels {
			fmt.Fprintf(buf, `  <text x="%.2f" y="12" font-size="10" fill="%s" text-anchor="middle">r%d</text>`+"\n",
				x, colorRafter, i)
		}
	}
}

func renderPanels(buf *bytes.Buffer, doc *schema.Document, f frame, labels bool) {
	for i, p := range doc.Panels {
		rp := p.RoofPanel()
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			f.x(rp.Left()), f.y(rp.Top()), rp.Width*f.scale, rp.Height*f.scale,
			colorPanelFill, colorPanelStroke)
		if labels {
			fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="11" fill="%s" text-anchor="middle">P%d</text>`+"\n",
				f.x(rp.CenterX()), f.y(rp.CenterY()), colorLabel, i)
		}
	}
}

// renderRowStrips draws the merged span each row shares hardware along.
func renderRowStrips(buf *bytes.Buffer, doc *schema.Document, f frame) {
	for _, row := range doc.Rows {
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.8" stroke-dasharray="2,3"/>`+"\n",
			f.x(row.Left), f.y(row.Y), f.x(row.Right), f.y(row.Y), colorRowStrip)
	}
}

func renderMounts(buf *bytes.Buffer, doc *schema.Document, f frame, labels bool) {
	for _, m := range doc.Mounts() {
		fill := colorMount
		if m.Cantilevered {
			fill = colorCantilever
		}
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			f.x(m.X), f.y(m.Y), f.scale, fill)
		if labels {
			fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="9" fill="%s">(%g, %g)</text>`+"\n",
				f.x(m.X)+1.5*f.scale, f.y(m.Y)-0.5*f.scale, colorLabel, m.X, m.Y)
		}
	}
}

// renderJoints draws joints as diamonds colored by kind.
func renderJoints(buf *bytes.Buffer, doc *schema.Document, f frame) {
	for _, j := range doc.Joints {
		side := 1.6 * f.scale
		cx, cy := f.x(j.X), f.y(j.Y)
		fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" transform="rotate(45 %.2f %.2f)"/>`+"\n",
			cx-side/2, cy-side/2, side, side, jointColor(j.Kind), cx, cy)
	}
}

func jointColor(kind string) string {
	switch kind {
	case schema.JointHorizontal:
		return colorHorizontal
	case schema.JointVertical:
		return colorVertical
	case schema.JointCorner:
		return colorCorner
	default:
		return colorMount
	}
}
