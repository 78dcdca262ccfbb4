package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgraph/pkg/cache"
	"github.com/matzehuels/assetgraph/pkg/discovery"
	"github.com/matzehuels/assetgraph/pkg/graph"
	"github.com/matzehuels/assetgraph/pkg/network"
	"github.com/matzehuels/assetgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached visualizations. Zero means
	// cache.TTLVisualization.
	TTL time.Duration
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

// Execute runs the complete load → discover → layout → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	nw, err := Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Network = nw
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded portfolio",
		"assets", nw.Graph().Len(),
		"events", len(nw.Graph().Events()),
		"duration", result.Stats.LoadTime)

	// Stage 2: Discover
	if !opts.SkipDiscovery {
		discoverStart := time.Now()
		res, err := r.Discover(ctx, nw)
		if err != nil {
			return nil, fmt.Errorf("discover: %w", err)
		}
		result.Discovery = res
		result.Stats.DiscoveryTime = time.Since(discoverStart)
	}
	result.Stats.AssetCount = nw.Graph().Len()
	result.Stats.RelationshipCount = len(nw.Graph().UniqueRelationships())

	report, err := nw.CalculateMetrics()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	result.Metrics = report

	if result.GraphHash, err = GraphHash(nw.Graph()); err != nil {
		return nil, err
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	v, layoutHit, err := r.visualize(ctx, nw, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	v.Metrics = &report
	result.Visualization = v
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(v.Nodes),
		"edges", len(v.Edges),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, v, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Discover runs a discovery pass over nw. Discovery results are never
// cached: the graph is process state.
func (r *Runner) Discover(ctx context.Context, nw *network.Network) (discovery.Result, error) {
	if err := ctx.Err(); err != nil {
		return discovery.Result{}, err
	}
	res, err := nw.BuildRelationships()
	if err != nil {
		return discovery.Result{}, err
	}
	r.Logger.Info("discovered relationships",
		"pairs", res.Pairs,
		"added", res.Added,
		"duration", res.Duration)
	return res, nil
}

// VisualizeWithCacheInfo builds the visualization payload of nw with
// caching and returns cache hit info. The payload carries the current
// metrics report.
func (r *Runner) VisualizeWithCacheInfo(ctx context.Context, nw *network.Network, opts Options) (graph.Visualization, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Visualization{}, false, err
	}

	graphHash, err := GraphHash(nw.Graph())
	if err != nil {
		return graph.Visualization{}, false, err
	}
	v, hit, err := r.visualize(ctx, nw, graphHash, opts)
	if err != nil {
		return graph.Visualization{}, false, err
	}
	if report, err := nw.CalculateMetrics(); err == nil {
		v.Metrics = &report
	}
	return v, hit, nil
}

// Visualize is a convenience wrapper that calls VisualizeWithCacheInfo and discards the cache hit info.
func (r *Runner) Visualize(ctx context.Context, nw *network.Network, opts Options) (graph.Visualization, error) {
	v, _, err := r.VisualizeWithCacheInfo(ctx, nw, opts)
	return v, err
}

func (r *Runner) visualize(ctx context.Context, nw *network.Network, graphHash string, opts Options) (graph.Visualization, bool, error) {
	cacheKey := r.Keyer.VisualizationKey(graphHash, opts.VisualizationKeyOpts())
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graph.UnmarshalVisualization(data)
			if err == nil {
				hooks.OnCacheHit(ctx, cache.PrefixVisualization)
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		hooks.OnCacheMiss(ctx, cache.PrefixVisualization)
	}

	v, err := GenerateVisualization(ctx, nw, opts)
	if err != nil {
		return graph.Visualization{}, false, err
	}

	// Cache the result
	if data, err := graph.MarshalVisualization(v); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLVisualization)); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			hooks.OnCacheSet(ctx, cache.PrefixVisualization, len(data))
		}
	}

	return v, false, nil // Cache miss
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, v graph.Visualization, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from the payload
	vizData, err := graph.MarshalVisualization(v)
	if err != nil {
		return nil, false, fmt.Errorf("serialize visualization for cache key: %w", err)
	}
	vizHash := cache.Hash(vizData)
	hooks := observability.Cache()

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if !allCached {
			break
		}
		cacheKey := r.Keyer.ArtifactKey(vizHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		hooks.OnCacheHit(ctx, cache.PrefixArtifact)
		return artifacts, true, nil // All artifacts from cache
	}
	hooks.OnCacheMiss(ctx, cache.PrefixArtifact)

	// Render all formats
	rendered, err := Render(ctx, v, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(vizHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLArtifact)); err == nil {
			hooks.OnCacheSet(ctx, cache.PrefixArtifact, len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, v graph.Visualization, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, v, opts)
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

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}
