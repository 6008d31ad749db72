package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/observability"
)

// Runner executes the pipeline with caching. It holds no results, so one
// Runner can serve concurrent requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default().
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

// =============================================================================
// Layouts
// =============================================================================

// Execute computes a layout and renders it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts.Logger)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	start := time.Now()
	res, hit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.Elements = len(res.Elements)
	result.Stats.ComputeTime = time.Since(start)
	result.CacheInfo.ComputeHit = hit

	opts.Logger.Info("computed layout",
		"variant", opts.Variant,
		"elements", len(res.Elements),
		"cached", hit,
		"duration", result.Stats.ComputeTime)

	start = time.Now()
	artifacts, hit, err := r.RenderLayoutWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes a layout, reusing a cached one unless
// opts.Refresh is set, and reports whether it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Result{}, false, err
	}
	keyOpts, err := opts.LayoutKeyOpts()
	if err != nil {
		return layout.Result{}, false, err
	}
	key := r.Keyer.LayoutKey(opts.Variant, keyOpts)

	if !opts.Refresh {
		if data, ok := r.get(ctx, key); ok {
			var cached layout.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
		}
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, opts.Variant)
	start := time.Now()
	res, err := GenerateLayout(opts)
	hooks.OnLayoutComplete(ctx, opts.Variant, len(res.Elements), time.Since(start), err)
	if err != nil {
		return layout.Result{}, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		r.set(ctx, key, data, cache.TTLLayout)
	}
	return res, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (layout.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return res, err
}

// RenderLayoutWithCacheInfo renders res, serving every format from the
// cache when all of them are there.
func (r *Runner) RenderLayoutWithCacheInfo(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	source, err := cache.HashJSON(struct {
		Variant string
		Result  layout.Result
	}{opts.Variant, res})
	if err != nil {
		return nil, false, fmt.Errorf("hash layout for cache key: %w", err)
	}
	return r.renderCached(ctx, source, opts.Formats, "", opts.Refresh, func() (map[string][]byte, error) {
		return RenderLayout(res, opts)
	})
}

// =============================================================================
// Buildings
// =============================================================================

// Build plans a building and renders it.
func (r *Runner) Build(ctx context.Context, opts BuildingOptions) (*Result, error) {
	r.applyLogger(&opts.Logger)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	start := time.Now()
	plan, hit, err := r.PlanWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	result.Plan = plan
	result.Stats.Building = plan.Stats()
	result.Stats.ComputeTime = time.Since(start)
	result.CacheInfo.ComputeHit = hit

	st := result.Stats.Building
	opts.Logger.Info("planned building",
		"segments", st.Segments,
		"panels", st.Panels,
		"windows", st.Windows,
		"cached", hit,
		"duration", result.Stats.ComputeTime)

	start = time.Now()
	artifacts, hit, err := r.RenderPlanWithCacheInfo(ctx, plan, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PlanWithCacheInfo plans a building, reusing a cached plan unless
// opts.Refresh is set.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, opts BuildingOptions) (*building.BuildingPlan, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	specHash, err := cache.HashJSON(opts.Spec)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.PlanKey(specHash)

	if !opts.Refresh {
		if data, ok := r.get(ctx, key); ok {
			var cached building.BuildingPlan
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
		}
	}

	hooks := observability.Layout()
	hooks.OnPlanStart(ctx, opts.Spec.Seed)
	start := time.Now()
	plan, err := building.Plan(ctx, opts.Spec)
	segments := 0
	if plan != nil {
		segments = len(plan.Segments)
	}
	hooks.OnPlanComplete(ctx, segments, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(plan); err == nil {
		r.set(ctx, key, data, cache.TTLPlan)
	}
	return plan, false, nil
}

// Plan is PlanWithCacheInfo without the cache hit info.
func (r *Runner) Plan(ctx context.Context, opts BuildingOptions) (*building.BuildingPlan, error) {
	plan, _, err := r.PlanWithCacheInfo(ctx, opts)
	return plan, err
}

// RenderPlanWithCacheInfo renders plan, serving every format from the cache
// when all of them are there.
func (r *Runner) RenderPlanWithCacheInfo(ctx context.Context, plan *building.BuildingPlan, opts BuildingOptions) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	source, err := cache.HashJSON(plan)
	if err != nil {
		return nil, false, fmt.Errorf("hash plan for cache key: %w", err)
	}
	return r.renderCached(ctx, source, opts.Formats, opts.View.String(), opts.Refresh, func() (map[string][]byte, error) {
		return RenderPlan(ctx, plan, opts)
	})
}

// =============================================================================
// Helpers
// =============================================================================

func (r *Runner) renderCached(ctx context.Context, source string, formats []string, view string, refresh bool, renderAll func() (map[string][]byte, error)) (map[string][]byte, bool, error) {
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(source, cache.ArtifactKeyOpts{Format: format, View: view})
	}

	if !refresh {
		artifacts := make(map[string][]byte, len(formats))
		for _, format := range formats {
			data, ok := r.get(ctx, keyFor(format))
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()
	rendered, err := renderAll()
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.set(ctx, keyFor(format), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// get reads key, treating every cache error as a miss.
func (r *Runner) get(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, key)
	return data, true
}

func (r *Runner) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(l **log.Logger) {
	if *l == nil {
		*l = r.Logger
	}
}
