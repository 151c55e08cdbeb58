package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stressmap/pkg/cache"
	"github.com/matzehuels/stressmap/pkg/canvas"
	"github.com/matzehuels/stressmap/pkg/observability"
	"github.com/matzehuels/stressmap/pkg/palette"
	"github.com/matzehuels/stressmap/pkg/scene"
	"github.com/matzehuels/stressmap/pkg/sink"
)

// Runner renders scenes with caching.
//
// The Runner is stateless except for its cache, palettes and logger; it
// doesn't store results. Multiple goroutines can use the same Runner with
// different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Palettes *palette.Registry
	Logger   *log.Logger
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
		Cache:    c,
		Keyer:    keyer,
		Palettes: palette.Default(),
		Logger:   logger,
	}
}

// Execute applies opts to s, draws it once to build the frame report, then
// renders every requested format, reading and writing the cache per format.
func (r *Runner) Execute(ctx context.Context, s *scene.Scene, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	runID := uuid.NewString()
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRunStart(ctx, runID, opts.Formats)
	defer func() { hooks.OnRunComplete(ctx, runID, time.Since(start), err) }()

	s, err = opts.Apply(s)
	if err != nil {
		return nil, err
	}
	canonical, err := s.Canonical()
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}

	result = &Result{
		RunID:     runID,
		Scene:     s,
		SceneHash: cache.Hash(canonical),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	frame, err := sink.Draw(s, canvas.NewRecorder(), opts.sinkOptions(r.Palettes, opts.Logger)...)
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	result.Frame = frame
	for _, rej := range frame.Rejected {
		hooks.OnPointRejected(ctx, runID, rej.Index, rej.Point.R, rej.Point.Theta)
	}

	r.Logger.Debug("drew scene",
		"run", runID,
		"cells", frame.Cells,
		"points", len(frame.Markers),
		"rejected", len(frame.Rejected))

	renderStart := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		formatStart := time.Now()
		data, hit, err := r.RenderWithCacheInfo(ctx, s, result.SceneHash, format, opts)
		hooks.OnFormatComplete(ctx, runID, format, len(data), time.Since(formatStart), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.Stats.Bytes += len(data)
		if hit {
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
		} else {
			result.CacheInfo.Misses = append(result.CacheInfo.Misses, format)
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(result.CacheInfo.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders one format of an already prepared scene and
// reports whether the artifact came from the cache. sceneHash is the
// [cache.Hash] of the scene's canonical encoding.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, sceneHash, format string, opts Options) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	cacheHooks := observability.Cache()
	key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "format", format, "error", err)
		case hit:
			cacheHooks.OnCacheHit(ctx, format)
			return data, true, nil
		}
	}
	cacheHooks.OnCacheMiss(ctx, format)

	data, err := Render(ctx, s, format, opts.sinkOptions(r.Palettes, opts.Logger)...)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "error", err)
	} else {
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

// applyLogger defaults opts.Logger to the runner's logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
