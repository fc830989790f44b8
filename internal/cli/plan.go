package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rafterlab/rafterplan/pkg/pipeline"
	"github.com/rafterlab/rafterplan/pkg/schema"
	"github.com/rafterlab/rafterplan/pkg/site"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	output  string // output file path (default: <input>.plan.json)
	rows    bool   // share mounts along row strips
	refresh bool   // recompute even when a cached plan exists
	noCache bool   // disable caching entirely
}

// planCommand creates the plan command for computing mounting plans.
func (c *CLI) planCommand() *cobra.Command {
	opts := planOpts{}

	cmd := &cobra.Command{
		Use:   "plan [site file]",
		Short: "Compute a mounting plan from a site description",
		Long: `Compute a mounting plan from a site description.

The plan command reads a site file (TOML, YAML, or JSON) describing the
panel layout and rafter configuration, places mounts on the rafters
beneath each panel, and derives the joints where adjacent panels meet.
The output is a plan.json document that can be rendered or inspected.

With --rows, panels that line up horizontally share mounting rails:
mounts are placed once per row strip instead of once per panel.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.plan.json)")
	cmd.Flags().BoolVar(&opts.rows, "rows", false, "share mounts along row strips")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached plan exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPlan loads the site, computes the plan, and writes the document.
func (c *CLI) runPlan(ctx context.Context, input string, opts planOpts) error {
	s, err := site.Load(input)
	if err != nil {
		return fmt.Errorf("load site %s: %w", input, err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Rows:    opts.rows,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Planning mounts for %d panels...", len(s.Panels)))
	spinner.Start()

	doc, cacheHit, err := runner.PlanWithCacheInfo(ctx, s, pipeOpts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return fmt.Errorf("plan: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := opts.output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".plan.json"
	}

	if err := schema.WriteFile(doc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Plan complete")
	printFile(outputPath)
	printStats(len(doc.Panels), doc.MountCount(), len(doc.Joints), cacheHit)

	if failures := doc.Failures(); len(failures) > 0 {
		unit := "panels"
		if doc.Mode == schema.ModeRow {
			unit = "rows"
		}
		printNewline()
		printWarning("%d %s could not be mounted", len(failures), unit)
		for _, f := range failures {
			printDetail("%s", f)
		}
	}

	printNewline()
	printNextStep("Render", "rafterplan render "+outputPath)
	printNextStep("Inspect", "rafterplan inspect "+outputPath)

	return nil
}
