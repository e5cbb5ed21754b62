package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/circuitdraw/pkg/cache"
	"github.com/matzehuels/circuitdraw/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long rendered artifacts stay cached. Zero means
	// cache.TTLArtifact.
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

// Execute runs the complete load → build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build runs the load and build stages only.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.Path)
	doc, src, err := Load(opts)
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Path, 0, result.Stats.LoadTime, err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, opts.Path, len(doc.Steps), result.Stats.LoadTime, nil)
	result.Document = doc
	result.SourceHash = cache.Hash(src)

	// Stage 2: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, doc.Title)
	s, err := Build(ctx, doc, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		hooks.OnBuildComplete(ctx, doc.Title, 0, result.Stats.BuildTime, err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, doc.Title, len(s.Items), result.Stats.BuildTime, nil)
	result.Scene = s
	result.Stats.Stats = s.Stats()

	r.Logger.Debug("built scene",
		"document", opts.Path,
		"components", result.Stats.Components,
		"wires", result.Stats.Wires,
		"duration", result.Stats.BuildTime)

	return result, nil
}

// RenderWithCacheInfo renders every requested format of a built result,
// serving cached artifacts where possible. It returns the formats that
// came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, []string, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, err
	}
	opts = opts.WithDocument(result.Document)
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()

	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits, missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.Scene.ID, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				hits = append(hits, format)
				cacheHooks.OnCacheHit(ctx, format)
				continue
			}
		}
		cacheHooks.OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		renderOpts := opts
		renderOpts.Formats = missing
		rendered, err := Render(ctx, result.Scene, renderOpts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, nil, err
		}
		for format, data := range rendered {
			artifacts[format] = data
			key := r.Keyer.ArtifactKey(result.Scene.ID, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
				r.Logger.Warn("cache write failed", "format", format, "err", err)
				continue
			}
			cacheHooks.OnCacheSet(ctx, format, len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, hits, nil
}

// ExecuteAll runs several documents concurrently, at most workers at a
// time (0 means one per document). Results are returned in input order;
// the first error cancels the remaining runs.
func (r *Runner) ExecuteAll(ctx context.Context, all []Options, workers int) ([]*Result, error) {
	results := make([]*Result, len(all))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, opts := range all {
		g.Go(func() error {
			res, err := r.Execute(ctx, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", opts.Path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
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
