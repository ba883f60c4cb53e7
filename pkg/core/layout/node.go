package layout

import (
	"github.com/matzehuels/packforce/pkg/core/geom"
)

// Node is the record a caller hands to the engine.
type Node struct {
	ID    string `validate:"required"`
	Group string

	Mass   float64 `validate:"gte=0"`
	Radius float64 `validate:"gte=0"`

	// Position is the starting point carried over from a previous render.
	// Nil lets the variant's placement policy choose.
	Position *geom.Vec

	// Fixed marks a user-held node: it exerts force but never moves.
	Fixed bool

	// IsParent marks the aggregate node of a split-series group.
	IsParent bool
}

// Edge declares an attraction between two nodes.
type Edge struct {
	From   string  `validate:"required"`
	To     string  `validate:"required"`
	Weight float64 `validate:"gte=0"` // zero means 1
}

// Body is the engine's mutable per-node state. Variants read and update
// bodies; everything else should use [Engine.Nodes] or [Engine.Positions].
type Body struct {
	ID       string
	Group    string
	Pos      geom.Vec
	Prev     geom.Vec
	Disp     geom.Vec
	Mass     float64
	Radius   float64
	Fixed    bool
	IsParent bool

	// Parent is the group's parent node in split-series layouts.
	Parent *Body

	// Degree restarts at Mass each iteration and grows by 0.01 per
	// overlapping neighbour; Neighbours counts those overlaps.
	Degree     float64
	Neighbours int

	// Speed is the distance moved in the last iteration.
	Speed float64

	placed bool
	origin *geom.Vec
}

// Immovable reports whether forces never move the body.
func (b *Body) Immovable() bool { return b.Fixed || b.Mass <= 0 }

// Placed reports whether the body has a position.
func (b *Body) Placed() bool { return b.placed }

// PlaceAt sets the body's starting position.
func (b *Body) PlaceAt(p geom.Vec) {
	b.Pos = p
	b.Prev = p
	b.Disp = geom.Vec{}
	b.placed = true
}

// NodeState is a read-only snapshot of one node.
type NodeState struct {
	ID         string
	Group      string
	Position   geom.Vec
	Radius     float64
	Mass       float64
	Degree     float64
	Neighbours int
	Fixed      bool
	IsParent   bool
}

func (b *Body) snapshot() NodeState {
	return NodeState{
		ID:         b.ID,
		Group:      b.Group,
		Position:   b.Pos,
		Radius:     b.Radius,
		Mass:       b.Mass,
		Degree:     b.Degree,
		Neighbours: b.Neighbours,
		Fixed:      b.Fixed,
		IsParent:   b.IsParent,
	}
}

type edge struct {
	from, to *Body
	weight   float64
}
