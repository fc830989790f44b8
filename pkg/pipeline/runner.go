package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rafterlab/rafterplan/pkg/cache"
	"github.com/rafterlab/rafterplan/pkg/observability"
	"github.com/rafterlab/rafterplan/pkg/schema"
	"github.com/rafterlab/rafterplan/pkg/site"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → plan → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.SitePath)
	s, err := r.LoadSite(ctx, opts)
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Pipeline().OnLoadComplete(ctx, opts.SitePath, siteSize(s), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Site = s
	result.Stats.PanelCount = len(s.Panels)

	r.Logger.Info("loaded site",
		"site", s.Name,
		"panels", len(s.Panels),
		"duration", result.Stats.LoadTime)

	// Stage 2: Plan
	planStart := time.Now()
	observability.Pipeline().OnPlanStart(ctx, opts.Mode(), len(s.Panels))
	doc, planHit, err := r.PlanWithCacheInfo(ctx, s, opts)
	result.Stats.PlanTime = time.Since(planStart)
	observability.Pipeline().OnPlanComplete(ctx, opts.Mode(), docMounts(doc), result.Stats.PlanTime, err)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	result.Document = doc
	result.CacheInfo.PlanHit = planHit
	result.Stats.MountCount = doc.MountCount()
	result.Stats.JointCount = len(doc.Joints)
	result.Stats.FailureCount = len(doc.Failures())

	// Content hash for artifact cache keys and API responses
	if data, err := schema.Marshal(doc); err == nil {
		result.DocumentHash = cache.Hash(data)
	}

	r.Logger.Info("computed plan",
		"mode", doc.Mode,
		"mounts", result.Stats.MountCount,
		"joints", result.Stats.JointCount,
		"failures", result.Stats.FailureCount,
		"duration", result.Stats.PlanTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, result.DocumentHash, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadSite loads the site description named by the options.
func (r *Runner) LoadSite(ctx context.Context, opts Options) (*site.Site, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if opts.Site != nil {
		return opts.Site, nil
	}
	return site.Load(opts.SitePath)
}

// PlanWithCacheInfo computes the plan with caching and returns cache hit info.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, s *site.Site, opts Options) (*schema.Document, bool, error) {
	cacheKey := r.Keyer.PlanKey(siteHash(s), opts.PlanKeyOpts(s.Config))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := schema.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return doc, true, nil // Cache hit
			}
			// Undecodable entry - recompute below
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	// Plan
	doc, err := ComputePlan(s, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := schema.Marshal(doc); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan) == nil {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}

	return doc, false, nil // Cache miss
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, s *site.Site, opts Options) (*schema.Document, error) {
	doc, _, err := r.PlanWithCacheInfo(ctx, s, opts)
	return doc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// docHash keys the artifact cache; pass the document's content hash (an empty
// hash disables artifact caching for the call).
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *schema.Document, docHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	allCached := docHash != "" && !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderDocument(doc, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if docHash != "" {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that renders without consulting the
// artifact cache.
func (r *Runner) Render(ctx context.Context, doc *schema.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, "", opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// siteHash content-addresses a site description for plan cache keys.
func siteHash(s *site.Site) string {
	data, _ := json.Marshal(s)
	return cache.Hash(data)
}

func siteSize(s *site.Site) int {
	if s == nil {
		return 0
	}
	return len(s.Panels)
}

func docMounts(doc *schema.Document) int {
	if doc == nil {
		return 0
	}
	return doc.MountCount()
}
