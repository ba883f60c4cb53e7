// Package pipeline drives layout simulations headlessly.
//
// This package implements the parse → simulate → write flow used by the
// CLI. The engine itself never schedules anything; the [Runner] calls
// Step in a tight loop until the engine reports a terminal state, the
// context is cancelled, or the iteration cap stops it.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read a chart file (JSON, YAML or DOT)
//  2. Simulate: Build the engine for the chart's kind and step it to the end
//  3. Write: Serialize the positioned nodes as a graph.Layout
//
// Finished layouts are cached by chart contents and parameters, so
// re-running an unchanged chart is free.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, registry.Default(), logger)
//	chart, err := runner.Parse(ctx, "chart.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Simulate(ctx, chart, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = graph.WriteLayoutFile(result.Layout, "chart.layout.json")
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/packforce/pkg/cache"
	"github.com/matzehuels/packforce/pkg/core/layout"
	"github.com/matzehuels/packforce/pkg/graph"
)

// DefaultProgressEvery is how many iterations pass between progress logs.
const DefaultProgressEvery = 100

// Options contains all configuration for one simulation run. Zero values
// keep what the chart specifies.
type Options struct {
	// Kind overrides the chart's layout kind.
	Kind string `json:"kind,omitempty"`

	// Width and Height override the chart's box size.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Params are merged over the chart's own simulation section.
	Params *graph.Simulation `json:"params,omitempty"`

	// Fallback switches unknown kinds to the registry fallback instead of
	// failing.
	Fallback bool `json:"fallback,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// ProgressEvery sets the debug log and hook cadence in iterations.
	ProgressEvery int `json:"progress_every,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger             `json:"-"`
	OnStep func(layout.StepResult) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a simulation run.
type Result struct {
	// Chart is the chart as simulated, with defaults and overrides applied.
	Chart graph.Chart

	// ChartHash is the content hash used in the cache key.
	ChartHash string

	// Layout holds the final positions.
	Layout graph.Layout

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the layout came from the cache.
	CacheHit bool
}

// Stats contains simulation statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	Iterations   int
	Stable       bool
	SimulateTime time.Duration
}

// ValidateAndSetDefaults checks option ranges and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("box size must not be negative (got %gx%g)", o.Width, o.Height)
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = DefaultProgressEvery
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Apply returns the chart as it will be simulated: overrides from opts
// merged in and defaults filled.
func (o *Options) Apply(c *graph.Chart) graph.Chart {
	out := *c
	if o.Kind != "" {
		out.Kind = o.Kind
	}
	if o.Width > 0 {
		out.Width = o.Width
	}
	if o.Height > 0 {
		out.Height = o.Height
	}
	out.Simulation = c.Simulation.Merge(o.Params)
	return out.WithDefaults()
}

// LayoutKeyOpts returns the cache key options for a prepared chart.
func LayoutKeyOpts(c *graph.Chart) cache.LayoutKeyOpts {
	opts := cache.LayoutKeyOpts{Kind: c.Kind, Width: c.Width, Height: c.Height}
	if s := c.Simulation; s != nil {
		if s.MaxIterations != nil {
			opts.MaxIterations = *s.MaxIterations
		}
		if s.Seed != nil {
			opts.Seed = *s.Seed
		}
		if data, err := json.Marshal(s); err == nil {
			opts.ParamsHash = cache.Hash(data)
		}
	}
	return opts
}
