package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/energydiagram/pkg/cache"
	docio "github.com/matzehuels/energydiagram/pkg/io"
	"github.com/matzehuels/energydiagram/pkg/observability"
)

const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching. The CLI and the
// server both use it so the caching logic lives in one place.
//
// The Runner holds no per-run state; multiple goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
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
		TTL:    cache.DefaultTTL,
	}
}

// Execute runs the build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *docio.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	d, plot, err := Build(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	s := d.Stats()
	result.Diagram = d
	result.Plot = opts.applyFigureSize(plot)
	result.Stats.Levels, result.Stats.Labels, result.Stats.Links = s.Levels, s.Labels, s.Links
	result.Stats.BuildTime = time.Since(buildStart)

	if h, err := cache.HashJSON(doc); err == nil {
		result.DocumentHash = h
	}
	logger.Debug("built diagram",
		"levels", s.Levels,
		"labels", s.Labels,
		"links", s.Links,
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, err := Layout(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	logger.Debug("computed layout",
		"positions", len(l.Ticks),
		"energy_min", l.MinEnergy,
		"energy_max", l.MaxEnergy,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render, serving what the cache already holds
	renderStart := time.Now()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.lookup(ctx, result.DocumentHash, format, opts); ok {
			artifacts[format] = data
			result.CacheInfo.ArtifactHits++
			continue
		}
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		sub := opts
		sub.Formats = missing
		rendered, err := Render(ctx, d, plot, l, sub)
		if err != nil {
			return nil, err
		}
		for format, data := range rendered {
			artifacts[format] = data
			r.store(ctx, result.DocumentHash, format, data, opts)
		}
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = len(missing) == 0
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered diagram",
		"formats", opts.Formats,
		"cached", result.CacheInfo.ArtifactHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// lookup returns a cached artifact unless refresh is requested or the
// document could not be hashed.
func (r *Runner) lookup(ctx context.Context, docHash, format string, opts Options) ([]byte, bool) {
	if opts.Refresh || docHash == "" {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "format", format, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, artifactKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, artifactKeyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, docHash, format string, data []byte, opts Options) {
	if docHash == "" {
		return
	}
	key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
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
