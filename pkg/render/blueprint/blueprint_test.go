package blueprint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rafterlab/rafterplan/pkg/schema"
)

func testDoc() *schema.Document {
	return &schema.Document{
		Mode: schema.ModePanel,
		Site: "north-roof",
		Config: schema.Config{
			PanelWidth: 44.7, PanelHeight: 71.1,
			Spacing: 16, FirstRafter: 5,
			EdgeClearance: 2, MaxSpan: 48,
			CantileverLimit: 16, JointTolerance: 1,
		},
		Panels: []schema.Panel{
			{X: 0, Y: 0, Width: 44.7, Height: 71.1},
			{X: 45.05, Y: 0, Width: 44.7, Height: 71.1},
		},
		Placements: []schema.Placement{
			{Panel: 0, Mounts: []schema.Mount{
				{X: 5, Y: 35.55, Rafter: 0},
				{X: 37, Y: 35.55, Rafter: 2, Cantilevered: true},
			}},
			{Panel: 1, Mounts: []schema.Mount{
				{X: 53, Y: 35.55, Rafter: 3},
				{X: 85, Y: 35.55, Rafter: 5},
			}},
		},
		Joints: []schema.Joint{
			{Kind: schema.JointHorizontal, A: 0, B: 1, X: 44.7, Y: 35.55},
		},
	}
}

func TestRenderSVGStructure(t *testing.T) {
	svg := string(RenderSVG(testDoc()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should end with a closing svg tag")
	}
	if !strings.Contains(svg, "<title>north-roof</title>") {
		t.Error("site name should appear as the document title")
	}
	// One rect per panel plus the background
	if got := strings.Count(svg, "<rect"); got != 2+1+1 {
		t.Errorf("rect count = %d, want 4 (background + 2 panels + 1 joint)", got)
	}
	if got := strings.Count(svg, "<circle"); got != 4 {
		t.Errorf("circle count = %d, want 4 mounts", got)
	}
	// Cantilevered mounts use the warning color
	if got := strings.Count(svg, colorCantilever); got != 1 {
		t.Errorf("cantilever color count = %d, want 1", got)
	}
	if !strings.Contains(svg, jointColor(schema.JointHorizontal)) {
		t.Error("horizontal joint color missing")
	}
}

func TestRenderSVGRafters(t *testing.T) {
	plain := string(RenderSVG(testDoc()))
	withRafters := string(RenderSVG(testDoc(), WithRafters()))

	if strings.Contains(plain, colorRafter) {
		t.Error("rafter lines should be off by default")
	}
	if !strings.Contains(withRafters, colorRafter) {
		t.Error("WithRafters should draw rafter lines")
	}
	// Panels span [0, 89.75]; with half-margin slack the grid 5+16i
	// contributes rafters r0 (x=5) through r5 (x=85).
	if got := strings.Count(withRafters, colorRafter); got != 6 {
		t.Errorf("rafter line count = %d, want 6", got)
	}
}

func TestRenderSVGLabels(t *testing.T) {
	plain := string(RenderSVG(testDoc()))
	labeled := string(RenderSVG(testDoc(), WithLabels()))

	if strings.Contains(plain, "<text") {
		t.Error("labels should be off by default")
	}
	if !strings.Contains(labeled, ">P0<") || !strings.Contains(labeled, ">P1<") {
		t.Error("WithLabels should label panels by index")
	}
	if !strings.Contains(labeled, "(37, 35.55)") {
		t.Error("WithLabels should print mount coordinates")
	}
}

func TestRenderSVGScale(t *testing.T) {
	small := RenderSVG(testDoc(), WithScale(2))
	big := RenderSVG(testDoc(), WithScale(8))
	if bytes.Equal(small, big) {
		t.Error("scale should change the output")
	}
	// Non-positive scale falls back to the default
	def := RenderSVG(testDoc())
	zero := RenderSVG(testDoc(), WithScale(0))
	if !bytes.Equal(def, zero) {
		t.Error("WithScale(0) should keep the default scale")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testDoc(), WithRafters(), WithLabels())
	b := RenderSVG(testDoc(), WithRafters(), WithLabels())
	if !bytes.Equal(a, b) {
		t.Error("rendering should be deterministic")
	}
}

func TestRenderSVGRowMode(t *testing.T) {
	doc := testDoc()
	doc.Mode = schema.ModeRow
	doc.Placements = nil
	doc.Rows = []schema.Row{
		{Panels: []int{0, 1}, Left: 0, Right: 89.75, Y: 35.55, Mounts: []schema.Mount{
			{X: 5, Y: 35.55, Rafter: 0},
			{X: 85, Y: 35.55, Rafter: 5},
		}},
	}

	svg := string(RenderSVG(doc))
	if !strings.Contains(svg, colorRowStrip) {
		t.Error("row strips should be drawn in row mode")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circle count = %d, want 2 row mounts", got)
	}
}

func TestRenderSVGEmptyDocument(t *testing.T) {
	svg := string(RenderSVG(&schema.Document{Mode: schema.ModePanel}))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("empty document should still produce a well-formed svg")
	}
}
