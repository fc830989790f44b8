package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rafterlab/rafterplan/pkg/cache"
	"github.com/rafterlab/rafterplan/pkg/pipeline"
	"github.com/rafterlab/rafterplan/pkg/schema"
)

// renderCommand creates the render command for generating blueprints.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [site or plan file]",
		Short: "Render installation blueprints",
		Long: `Render installation blueprints from a site description or a computed plan.

The render command accepts either a site file (TOML, YAML, or JSON) or a
plan.json document produced by 'plan'. Site files are planned first;
plan documents are rendered as-is.

Formats:
  svg   blueprint drawing (default)
  png   rasterized blueprint
  dot   adjacency graph in Graphviz format
  json  the plan document itself

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached artifacts exist")

	// Plan flags (site input only)
	cmd.Flags().BoolVar(&opts.Rows, "rows", false, "share mounts along row strips (site input)")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "blueprint pixels per length unit")
	cmd.Flags().BoolVar(&opts.Rafters, "rafters", false, "draw the rafter grid")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "annotate panels and mounts")
	cmd.Flags().BoolVar(&opts.Adjacency, "adjacency", false, "render svg/png as the joint graph instead of the blueprint")

	return cmd
}

// runRender renders either a plan document or a site file.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	if doc, ok := readPlanDocument(input); ok {
		return c.renderDocument(ctx, runner, doc, opts, input, output)
	}
	return c.renderSite(ctx, runner, opts, input, output)
}

// readPlanDocument tries to interpret path as a previously computed plan
// document. Site descriptions (TOML, YAML, or JSON without a mode field)
// fail document validation, so detection falls through to site loading.
func readPlanDocument(path string) (*schema.Document, bool) {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return nil, false
	}
	doc, err := schema.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return doc, true
}

// renderDocument renders an already computed plan.
func (c *CLI) renderDocument(ctx context.Context, runner *pipeline.Runner, doc *schema.Document, opts pipeline.Options, input, output string) error {
	docHash := ""
	if data, err := schema.Marshal(doc); err == nil {
		docHash = cache.Hash(data)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering plan...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, doc, docHash, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts:  artifacts,
		formats:    opts.Formats,
		input:      input,
		output:     output,
		panelCount: len(doc.Panels),
		mountCount: doc.MountCount(),
		jointCount: len(doc.Joints),
		cacheHit:   cacheHit,
	})
}

// renderSite runs the full load, plan, and render pipeline on a site file.
func (c *CLI) renderSite(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, input, output string) error {
	opts.SitePath = input

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Planning and rendering %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts:  result.Artifacts,
		formats:    opts.Formats,
		input:      input,
		output:     output,
		panelCount: result.Stats.PanelCount,
		mountCount: result.Stats.MountCount,
		jointCount: result.Stats.JointCount,
		cacheHit:   result.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Output Paths
// =============================================================================

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output carries a format extension (.svg, .png, ...), that extension is
// stripped so sibling formats line up next to each other.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath builds the file path for a single rendered format.
// A single requested format honors an explicit output path as-is;
// otherwise the path is base + "." + format.
func outputPath(base, output, format string, formatCount int) string {
	if output != "" && formatCount == 1 {
		return output
	}
	return base + "." + format
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts  map[string][]byte
	formats    []string
	input      string
	output     string
	panelCount int
	mountCount int
	jointCount int
	cacheHit   bool
}

// writeArtifacts writes rendered artifacts to disk and reports the result.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(base, p.output, format, len(p.formats))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.panelCount, p.mountCount, p.jointCount, p.cacheHit)

	return nil
}
