package pipeline

import (
	"fmt"

	"github.com/rafterlab/rafterplan/pkg/render"
	"github.com/rafterlab/rafterplan/pkg/render/adjacency"
	"github.com/rafterlab/rafterplan/pkg/render/blueprint"
	"github.com/rafterlab/rafterplan/pkg/schema"
)

// RenderDocument generates every requested format for a plan document.
//
// The svg and png formats draw the roof blueprint by default; with
// Options.Adjacency they draw the panel coupling graph instead. The dot
// format is always the adjacency graph, and json is the document itself.
func RenderDocument(doc *schema.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(doc, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(doc *schema.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return schema.Marshal(doc)
	case FormatSVG:
		return renderSVG(doc, opts)
	case FormatDOT:
		return []byte(adjacency.ToDOT(doc, adjacencyOptions(opts))), nil
	case FormatPNG:
		svg, err := renderSVG(doc, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(svg, PNGZoom)
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

func renderSVG(doc *schema.Document, opts Options) ([]byte, error) {
	if opts.Adjacency {
		return adjacency.RenderSVG(adjacency.ToDOT(doc, adjacencyOptions(opts)))
	}
	return blueprint.RenderSVG(doc, blueprintOptions(opts)...), nil
}

func blueprintOptions(opts Options) []blueprint.SVGOption {
	var bo []blueprint.SVGOption
	if opts.Scale > 0 {
		bo = append(bo, blueprint.WithScale(opts.Scale))
	}
	if opts.Rafters {
		bo = append(bo, blueprint.WithRafters())
	}
	if opts.Labels {
		bo = append(bo, blueprint.WithLabels())
	}
	return bo
}

func adjacencyOptions(opts Options) adjacency.Options {
	return adjacency.Options{Detailed: opts.Labels}
}
