package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/packforce/pkg/cache"
	"github.com/matzehuels/packforce/pkg/core/layout"
	"github.com/matzehuels/packforce/pkg/errors"
	"github.com/matzehuels/packforce/pkg/graph"
	"github.com/matzehuels/packforce/pkg/observability"
	"github.com/matzehuels/packforce/pkg/registry"
)

// cacheKeyType labels layout entries in cache hooks.
const cacheKeyType = "layout"

// Runner encapsulates simulation runs with caching.
//
// The Runner is stateless except for its collaborators; it doesn't store
// results. Multiple goroutines can safely use the same Runner with
// different charts.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Registry *registry.Registry
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If reg is nil, the default registry is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, reg *registry.Registry, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if reg == nil {
		reg = registry.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Registry: reg,
		Logger:   logger,
	}
}

// Parse reads a chart file and reports the parse to the pipeline hooks.
func (r *Runner) Parse(ctx context.Context, path string) (*graph.Chart, error) {
	format, err := graph.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, string(format), path)

	start := time.Now()
	c, err := graph.ReadChartFile(path)
	nodes := 0
	if c != nil {
		nodes = c.PointCount()
	}
	hooks.OnParseComplete(ctx, string(format), path, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("parsed chart", "path", path, "format", format, "points", nodes, "edges", len(c.Edges))
	return c, nil
}

// Build prepares the chart and constructs its engine without stepping it.
// It is what interactive drivers use; Simulate builds on it.
func (r *Runner) Build(c *graph.Chart, opts Options) (*layout.Engine, graph.Chart, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, graph.Chart{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	prepared := opts.Apply(c)

	ctor, err := r.Registry.Get(prepared.Kind)
	if err != nil {
		if !opts.Fallback || !errors.Is(err, errors.ErrCodeUnknownLayoutKind) {
			return nil, prepared, err
		}
		opts.Logger.Warn("unknown layout kind, using fallback", "kind", prepared.Kind, "fallback", registry.Fallback)
		prepared.Kind = registry.Fallback
		if ctor, err = r.Registry.Get(prepared.Kind); err != nil {
			return nil, prepared, err
		}
	}

	rec := graph.ToRecords(&prepared, prepared.Simulation.Splits())
	e, err := ctor(rec.Nodes, rec.Edges, rec.Box, prepared.Simulation.Options()...)
	if err != nil {
		return nil, prepared, err
	}
	return e, prepared, nil
}

// Simulate runs a chart to completion, consulting the cache first.
func (r *Runner) Simulate(ctx context.Context, c *graph.Chart, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}

	prepared := opts.Apply(c)
	chartHash, err := hashChart(&prepared)
	if err != nil {
		return nil, err
	}
	result := &Result{Chart: prepared, ChartHash: chartHash}
	cacheKey := r.Keyer.LayoutKey(chartHash, LayoutKeyOpts(&prepared))
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				cacheHooks.OnCacheHit(ctx, cacheKeyType)
				result.Layout = cached
				result.CacheHit = true
				result.Stats = Stats{
					NodeCount:  len(cached.Nodes),
					EdgeCount:  len(cached.Edges),
					Iterations: cached.Iterations,
					Stable:     cached.Stable,
				}
				opts.Logger.Info("layout from cache", "kind", cached.Kind, "nodes", len(cached.Nodes))
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		}
		cacheHooks.OnCacheMiss(ctx, cacheKeyType)
	}

	e, prepared, err := r.Build(c, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = prepared

	elapsed, err := r.run(ctx, e, opts)
	if err != nil {
		return nil, err
	}

	result.Layout = graph.NewLayout(&prepared, e, uuid.NewString())
	result.Stats = Stats{
		NodeCount:    e.Len(),
		EdgeCount:    e.EdgeCount(),
		Iterations:   e.Iteration(),
		Stable:       e.State() == layout.Stable,
		SimulateTime: elapsed,
	}

	if data, err := graph.MarshalLayout(result.Layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			cacheHooks.OnCacheSet(ctx, cacheKeyType, len(data))
		} else {
			opts.Logger.Warn("cache write failed", "error", err)
		}
	}
	return result, nil
}

// run steps e until it reaches a terminal state or ctx is done.
func (r *Runner) run(ctx context.Context, e *layout.Engine, opts Options) (time.Duration, error) {
	hooks := observability.Pipeline()
	kind := e.Kind()

	opts.Logger.Info("simulating", "kind", kind, "nodes", e.Len(), "edges", e.EdgeCount())
	hooks.OnSimulationStart(ctx, kind, e.Len(), e.EdgeCount())
	start := time.Now()

	var res layout.StepResult
	for !res.Done() {
		if err := ctx.Err(); err != nil {
			err = fmt.Errorf("simulation interrupted at iteration %d: %w", e.Iteration(), err)
			hooks.OnSimulationComplete(ctx, kind, e.Iteration(), false, time.Since(start), err)
			return 0, err
		}
		res = e.Step()
		if opts.OnStep != nil {
			opts.OnStep(res)
		}
		if res.Iteration%opts.ProgressEvery == 0 {
			opts.Logger.Debug("iteration", "iteration", res.Iteration,
				"temperature", res.Temperature, "energy", res.Energy)
			hooks.OnIteration(ctx, kind, res.Iteration, res.Temperature, res.Energy)
		}
	}

	elapsed := time.Since(start)
	hooks.OnIteration(ctx, kind, res.Iteration, res.Temperature, res.Energy)
	hooks.OnSimulationComplete(ctx, kind, res.Iteration, res.Stable, elapsed, nil)
	opts.Logger.Info("simulation finished",
		"kind", kind,
		"iterations", res.Iteration,
		"stable", res.Stable,
		"duration", elapsed)
	return elapsed, nil
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

func hashChart(c *graph.Chart) (string, error) {
	stripped := *c
	stripped.Simulation = nil
	data, err := graph.MarshalChart(&stripped)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash chart")
	}
	return cache.Hash(data), nil
}
