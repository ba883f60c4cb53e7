// Package layout implements the generic force-directed layout engine.
//
// An [Engine] owns a set of nodes (bodies), an optional set of edges, a
// bounding box and a [Params] configuration. Each call to [Engine.Step] runs
// exactly one iteration:
//
//  1. the variant's pre-step hook
//  2. the repulsive pass over every interacting pair of nodes
//  3. the attractive pass over edges (skipped when there are none)
//  4. the gravitational pass toward each node's anchor (optional)
//  5. integration, bounded by the current temperature and damped by friction,
//     followed by the containment policy
//  6. cooling
//  7. the stability check
//
// The engine never schedules anything itself: callers drive it from their
// own loop (an animation tick, a TUI timer, or a tight headless loop) and
// stop once [StepResult.Done] reports true. Steps after that are no-ops that
// return the same positions.
//
// # Variants
//
// Behaviour that differs between chart types is supplied by a [Variant]:
// initial placement, the pre-step hook, which pairs interact, how far
// repulsion reaches, where gravity pulls, and how nodes are contained.
// [Base] is the network-graph variant with random initial placement and
// hard box clamping; pkg/core/layout/packed embeds it for packed bubbles.
//
// # State machine
//
//	Initializing -> Iterating -> Stable | Stopped
//
// Stable means the temperature criterion was met; Stopped means the
// iteration cap was hit first. [Engine.Reset], [Engine.Restart],
// [Engine.AddNodes] and [Engine.RemoveNode] revive a finished simulation.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Independent engines share no
// state and may run on separate goroutines.
package layout
