package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/c4dgml/pkg/cache"
	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/model"
	"github.com/matzehuels/c4dgml/pkg/observability"
	"github.com/matzehuels/c4dgml/pkg/projection"
)

// Cache key types reported to observability hooks.
const (
	keyTypeProjection = "projection"
	keyTypeArtifact   = "artifact"
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

// Execute runs the complete load → project → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load (deferred until the projection cache misses)
	loadStart := time.Now()
	data, hash, err := ReadSource(opts)
	if err != nil {
		return nil, err
	}
	result.WorkspaceHash = hash
	load := func() (*model.Workspace, error) {
		ws, err := Load(ctx, data, opts)
		if err != nil {
			return nil, err
		}
		result.Workspace = ws
		result.Stats.Elements = ws.Model.ElementCount()
		result.Stats.LoadTime = time.Since(loadStart)
		r.Logger.Info("loaded workspace",
			"name", ws.Name,
			"elements", ws.Model.ElementCount(),
			"views", ws.Views.Count(),
			"duration", result.Stats.LoadTime)
		return ws, nil
	}

	// Stage 2: Project
	projectStart := time.Now()
	g, projectHit, err := r.ProjectWithCacheInfo(ctx, hash, load, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.Stats = g.Stats()
	result.Stats.ProjectTime = time.Since(projectStart) - result.Stats.LoadTime
	result.CacheInfo.ProjectHit = projectHit

	r.Logger.Info("projected views",
		"nodes", result.Stats.Nodes,
		"links", result.Stats.Links,
		"categories", result.Stats.Categories,
		"styles", result.Stats.Styles,
		"cached", projectHit,
		"duration", result.Stats.ProjectTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, opts)
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

// ProjectWithCacheInfo returns the projection of the workspace with content
// hash wsHash, calling load only on a cache miss.
func (r *Runner) ProjectWithCacheInfo(ctx context.Context, wsHash string, load func() (*model.Workspace, error), opts Options) (dgml.DirectedGraph, bool, error) {
	if err := opts.ValidateForProject(); err != nil {
		return dgml.DirectedGraph{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ProjectionKey(wsHash, opts.ProjectionKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := dgml.UnmarshalJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeProjection)
				return g, true, nil
			}
			// Undecodable entry, fall through to recompute.
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeProjection)

	ws, err := load()
	if err != nil {
		return dgml.DirectedGraph{}, false, err
	}
	g := r.Project(ctx, ws, opts)

	if data, err := dgml.MarshalJSON(g); err == nil {
		r.store(ctx, cacheKey, keyTypeProjection, data, cache.ProjectionTTL)
	}
	return g, false, nil
}

// Project maps the workspace views onto a DGML document.
func (r *Runner) Project(ctx context.Context, ws *model.Workspace, opts Options) dgml.DirectedGraph {
	observability.Pipeline().OnProjectStart(ctx, ws.Model.ElementCount())
	start := time.Now()

	g := projection.ToDGML(ws, opts.ProjectionOptions())

	observability.Pipeline().OnProjectComplete(ctx, len(g.Nodes), len(g.Links), time.Since(start))
	r.Logger.Debug("projection complete",
		"title", g.Title,
		"groups", g.Stats().Groups,
		"duration", time.Since(start))
	return g
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g dgml.DirectedGraph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	graphData, err := dgml.MarshalJSON(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing

	observability.Pipeline().OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, g, renderOpts)
	observability.Pipeline().OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, key, keyTypeArtifact, data, cache.ArtifactTTL)
		artifacts[format] = data
	}

	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
