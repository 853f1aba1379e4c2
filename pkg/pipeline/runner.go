package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/planrep/pkg/cache"
	errs "github.com/matzehuels/planrep/pkg/errors"
	"github.com/matzehuels/planrep/pkg/expansion"
	pio "github.com/matzehuels/planrep/pkg/io"
	"github.com/matzehuels/planrep/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
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

// Execute runs the complete load → run → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID)
	result := &Result{
		RunID:     runID,
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	d, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	result.Document = d
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = d.Graph.NodeCount()
	result.Stats.EdgeCount = d.Graph.EdgeCount()

	logger.Info("loaded graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Run
	runStart := time.Now()
	x, err := r.Run(ctx, runID, d, opts.Script, logger)
	if err != nil {
		return nil, err
	}
	result.Expansion = x
	result.Snapshot = pio.NewSnapshot(x, d)
	result.Stats.RunTime = time.Since(runStart)
	result.Stats.Steps = len(opts.Script.Steps)
	result.Stats.Crossings = x.CrossingCount()
	result.Stats.SplitNodes = x.SplitNodeCount()

	var snap bytes.Buffer
	if err := pio.WriteExpansion(x, d, &snap); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode snapshot")
	}
	result.SnapshotHash = cache.Hash(snap.Bytes())

	logger.Info("ran script",
		"steps", result.Stats.Steps,
		"crossings", result.Stats.Crossings,
		"split_nodes", result.Stats.SplitNodes,
		"duration", result.Stats.RunTime)

	if len(opts.Formats) == 0 {
		return result, nil
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, x, d, result.SnapshotHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the original graph named by opts.
func (r *Runner) Load(opts Options) (*pio.Document, error) {
	if opts.Document != nil {
		return opts.Document, nil
	}
	path := opts.GraphPath
	if path == "" && opts.Script != nil {
		path = opts.Script.GraphPath()
	}
	if path == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no graph given")
	}
	return pio.ImportJSON(path)
}

// Run expands the component selected by s and applies its steps. A nil
// script expands component 0 and stops.
func (r *Runner) Run(ctx context.Context, runID string, d *pio.Document, s *Script, logger *log.Logger) (*expansion.Expansion, error) {
	if s == nil {
		s = &Script{}
	}
	if logger == nil {
		logger = r.Logger
	}
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, runID, d.Graph.NodeCount(), d.Graph.EdgeCount())
	start := time.Now()

	st, err := newState(d, s, logger)
	if err == nil {
		err = st.run(ctx, runID, s)
	}

	crossings := 0
	if st != nil {
		crossings = st.x.CrossingCount()
	}
	hooks.OnRunComplete(ctx, runID, crossings, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return st.x, nil
}

// RenderWithCacheInfo renders every requested format of x, taking
// artifacts from the cache where possible. The boolean result reports
// whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, x *expansion.Expansion, d *pio.Document, snapshotHash string, opts Options) (map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(snapshotHash, opts.ArtifactKeyOpts(format))
		compute := func() ([]byte, error) {
			return RenderFormat(ctx, x, d, format, opts)
		}

		var data []byte
		var hit bool
		var err error
		if opts.Refresh {
			data, err = compute()
			if err == nil {
				_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
			}
		} else {
			data, hit, err = cache.Fetch(ctx, r.Cache, key, cache.TTLArtifact, compute)
		}
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}

		if hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
		} else {
			allCached = false
			cacheHooks.OnCacheMiss(ctx, "artifact")
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allCached && len(artifacts) > 0, nil
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

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
		Colored:  o.Colored,
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d crossings, %d split nodes after %d steps", s.Crossings, s.SplitNodes, s.Steps)
}
