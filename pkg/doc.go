// Package pkg provides the core libraries for Packforce force-directed layouts.
//
// # Overview
//
// Packforce positions nodes in a bounded box by simulating forces between
// them: overlapping nodes push apart, linked nodes pull together, and a weak
// gravity keeps everything near the centre. Two layout kinds ship with it:
// node-link network graphs and packed bubble charts, the latter optionally
// split into one parent bubble per series. The pkg directory is organized
// into these areas:
//
//  1. [core] - Simulation (vector math, force laws, the engine and its variants)
//  2. [registry] - Layout kinds by name
//  3. [graph] - Chart and layout serialization (JSON, YAML, DOT)
//  4. [pipeline] - Orchestration (parse → simulate → write) with caching
//  5. [observability] - Hooks and Prometheus metrics
//
// # Architecture
//
// The typical data flow through Packforce:
//
//	Chart file (JSON/YAML/DOT)
//	         ↓
//	    [graph] package (decode, size bubbles, build node records)
//	         ↓
//	    [registry] package (pick the engine for the chart's kind)
//	         ↓
//	    [core/layout] package (step until stable or stopped)
//	         ↓
//	    Layout JSON output
//
// # Quick Start
//
// Lay out a small network directly with the engine:
//
//	import (
//	    "github.com/matzehuels/packforce/pkg/core/geom"
//	    "github.com/matzehuels/packforce/pkg/core/layout"
//	)
//
//	nodes := []layout.Node{{ID: "a", Mass: 1}, {ID: "b", Mass: 1}, {ID: "c", Mass: 1}}
//	edges := []layout.Edge{{From: "a", To: "b"}, {From: "b", To: "c"}}
//	e, _ := layout.NewNetwork(nodes, edges, geom.NewBox(800, 600), layout.WithSeed(7))
//	for res := e.Step(); !res.Done(); res = e.Step() {
//	}
//	positions := e.Positions()
//
// Or run a chart file end to end:
//
//	runner := pipeline.NewRunner(nil, nil, nil, logger)
//	chart, _ := runner.Parse(ctx, "fruit.yaml")
//	result, _ := runner.Simulate(ctx, chart, pipeline.Options{})
//	_ = graph.WriteLayoutFile(result.Layout, "fruit.layout.json")
//
// # Main Packages
//
// ## Core Simulation
//
// [core/geom] - 2D vectors and the bounding box with disc clamping.
//
// [core/force] - The force laws: repulsion k²/d, attraction d²/k, gravity,
// and the golden-angle direction used for coincident nodes.
//
// [core/layout] - The engine: parameters, lifecycle states, the per-step
// passes and the network variant.
//
// [core/layout/packed] - The packed bubble variant: ring placement, series
// parents, parent nudging and dynamic parent radii.
//
// ## Infrastructure
//
// [registry] - Maps kind names ("networkgraph", "packedbubble") to engine
// constructors, with an explicit fallback kind.
//
// [pipeline] - Headless driver used by the CLI: merges overrides, consults
// the cache, steps the engine under a context and reports progress.
//
// [cache] - Layout result cache with file and null implementations.
//
// [observability] - Pipeline and cache hooks; a Prometheus implementation
// can be written out as a node-exporter textfile.
//
// [errors] - Coded errors (INVALID_CONFIGURATION, UNKNOWN_LAYOUT_KIND, ...).
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/layout/...        # Engine and variants
//	go test -run Example ./pkg/...       # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/core
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/core/geom
// [core/force]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/core/force
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/core/layout
// [core/layout/packed]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/core/layout/packed
// [registry]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/registry
// [graph]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/packforce/pkg/errors
package pkg
