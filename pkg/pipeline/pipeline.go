// Package pipeline provides the core planning pipeline for rafterplan.
//
// This package implements the complete load → plan → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a site description (panels + config) from file or request
//  2. Plan: Compute mounts and joints in panel or row mode
//  3. Render: Generate output in various formats (JSON, SVG, DOT, PNG)
//
// Plan and render results are cached under content-addressed keys; the
// plan stage is deterministic, so cached entries never go stale.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    SitePath: "north-roof.toml",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	s, err := runner.LoadSite(ctx, opts)
//
//	// Plan with an existing site
//	doc, err := runner.Plan(ctx, s, opts)
//
//	// Render an existing document
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rafterlab/rafterplan/pkg/cache"
	"github.com/rafterlab/rafterplan/pkg/plan"
	"github.com/rafterlab/rafterplan/pkg/schema"
	"github.com/rafterlab/rafterplan/pkg/site"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
}

// DefaultFormat is produced when no formats are requested.
const DefaultFormat = FormatJSON

// PNGZoom is the rasterization factor for PNG output.
// 2x resolution keeps blueprints crisp on high-DPI displays.
const PNGZoom = 2.0

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the planning pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of SitePath and Site must be set:
	// the CLI loads from a file, the API passes a site built from the
	// request body.
	SitePath string     `json:"site_path,omitempty"`
	Site     *site.Site `json:"-"`

	// Plan options
	Rows    bool `json:"rows,omitempty"`    // share hardware along row strips
	Refresh bool `json:"refresh,omitempty"` // bypass cache reads

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"`     // blueprint px per length unit
	Rafters   bool     `json:"rafters,omitempty"`   // draw the rafter grid
	Labels    bool     `json:"labels,omitempty"`    // annotate panels and mounts
	Adjacency bool     `json:"adjacency,omitempty"` // svg/png show the joint graph

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Site is the loaded site description.
	Site *site.Site

	// Document is the computed plan.
	Document *schema.Document

	// DocumentHash is the content hash of the serialized document.
	DocumentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PanelCount   int
	MountCount   int
	JointCount   int
	FailureCount int
	LoadTime     time.Duration
	PlanTime     time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each cacheable pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the plan document came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, svg, dot, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.SitePath == "" && o.Site == nil {
		return fmt.Errorf("site_path or site is required")
	}
	if o.SitePath != "" && o.Site != nil {
		return fmt.Errorf("site_path and site are mutually exclusive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// Mode returns the planning mode the options select.
func (o *Options) Mode() string {
	if o.Rows {
		return schema.ModeRow
	}
	return schema.ModePanel
}

// PlanKeyOpts returns cache key options for the plan stage.
func (o *Options) PlanKeyOpts(cfg plan.Config) cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Mode:            o.Mode(),
		PanelWidth:      cfg.PanelWidth,
		PanelHeight:     cfg.PanelHeight,
		Spacing:         cfg.Spacing,
		FirstRafter:     cfg.FirstRafter,
		EdgeClearance:   cfg.EdgeClearance,
		MaxSpan:         cfg.MaxSpan,
		CantileverLimit: cfg.CantileverLimit,
		JointTolerance:  cfg.JointTolerance,
		RowTolerance:    cfg.RowTolerance,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Scale:     o.Scale,
		Rafters:   o.Rafters,
		Labels:    o.Labels,
		Adjacency: o.Adjacency,
	}
}
