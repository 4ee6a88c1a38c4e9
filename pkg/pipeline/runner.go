package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lewisviz/lewis/pkg/cache"
	"github.com/lewisviz/lewis/pkg/molecule"
	"github.com/lewisviz/lewis/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
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

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	m, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Molecule = m
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.AtomCount = m.Len()
	result.Stats.BondCount = m.BondCount()
	result.CacheInfo.ParseHit = parseHit

	// Compute molecule hash for cache keys and server responses
	if molData, err := molecule.MarshalMolecule(m); err == nil {
		result.MoleculeHash = cache.Hash(molData)
	}

	r.Logger.Info("parsed molecule",
		"atoms", m.Len(),
		"bonds", m.BondCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	scene, cycle, sceneHit, err := r.BuildSceneWithCacheInfo(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Cycle = cycle
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("computed layout",
		"glyphs", len(scene.Glyphs),
		"ring_size", len(cycle),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, m, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses notation with caching and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*molecule.Molecule, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.MoleculeKey(cache.Hash([]byte(opts.Notation)))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			m, err := molecule.ReadMolecule(bytes.NewReader(data))
			if err == nil {
				return m, true, nil // Cache hit
			}
		}
	}

	m, err := Parse(opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := molecule.MarshalMolecule(m); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLMolecule)
	}

	return m, false, nil // Cache miss
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*molecule.Molecule, error) {
	m, _, err := r.ParseWithCacheInfo(ctx, opts)
	return m, err
}

// BuildSceneWithCacheInfo computes the scene with caching and returns cache hit info.
//
// The cycle is recomputed on cache hits because it is cheap and keeps the
// cached payload to positioned primitives only.
func (r *Runner) BuildSceneWithCacheInfo(ctx context.Context, m *molecule.Molecule, opts Options) (render.Scene, []string, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	// Compute cache key
	molData, _ := molecule.MarshalMolecule(m)
	molHash := cache.Hash(molData)
	cacheKey := r.Keyer.SceneKey(molHash, opts.SceneKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := render.UnmarshalScene(data)
			if err == nil {
				return cached, DetectCycle(m), true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}

	scene, cycle, err := BuildScene(m, opts)
	if err != nil {
		return render.Scene{}, nil, false, err
	}

	// Cache the result
	if data, err := render.MarshalScene(scene); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
	}

	return scene, cycle, false, nil // Cache miss
}

// BuildScene is a convenience wrapper that calls BuildSceneWithCacheInfo and discards the cache hit info.
func (r *Runner) BuildScene(ctx context.Context, m *molecule.Molecule, opts Options) (render.Scene, []string, error) {
	scene, cycle, _, err := r.BuildSceneWithCacheInfo(ctx, m, opts)
	return scene, cycle, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, scene render.Scene, m *molecule.Molecule, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from scene data
	sceneData, err := render.MarshalScene(scene)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	sceneHash := cache.Hash(sceneData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := Render(scene, m, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, scene render.Scene, m *molecule.Molecule, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, scene, m, opts)
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
