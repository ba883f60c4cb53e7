package layout

import (
	"math/rand/v2"

	"github.com/matzehuels/packforce/pkg/core/geom"
)

// KindNetwork is the registry name of the network-graph variant.
const KindNetwork = "networkgraph"

// Variant supplies the behaviour that differs between layout kinds.
// Implementations usually embed [Base] and override what they need.
type Variant interface {
	// Kind names the variant.
	Kind() string

	// UsesEdges reports whether the attractive pass runs.
	UsesEdges() bool

	// Place assigns starting positions to bodies that have none.
	Place(e *Engine, pending []*Body)

	// BeforeStep runs ahead of the force passes.
	BeforeStep(e *Engine)

	// Interacts reports whether a and b repel each other.
	Interacts(e *Engine, a, b *Body) bool

	// Reach is the distance below which a and b overlap and repel.
	Reach(e *Engine, a, b *Body) float64

	// Anchor is where the gravitational pass pulls b.
	Anchor(e *Engine, b *Body) geom.Vec

	// Contain applies the containment policy to a freshly integrated body.
	Contain(e *Engine, b *Body)
}

// Base is the network-graph variant: random initial placement, edge
// attraction, repulsion reaching one ideal distance beyond the radii,
// gravity toward the box center and hard clamping to the box.
type Base struct{}

func (Base) Kind() string       { return KindNetwork }
func (Base) UsesEdges() bool    { return true }
func (Base) BeforeStep(*Engine) {}

// Place scatters pending bodies uniformly inside the box using a generator
// seeded from Params.Seed, so identical inputs give identical layouts.
func (Base) Place(e *Engine, pending []*Body) {
	seed := e.params.Seed
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	box := e.box
	for _, b := range pending {
		x := jitter(rng, box.X, box.Width, b.Radius)
		y := jitter(rng, box.Y, box.Height, b.Radius)
		b.PlaceAt(geom.V(x, y))
	}
}

func jitter(rng *rand.Rand, origin, size, r float64) float64 {
	free := size - 2*r
	if free <= 0 {
		return origin + size/2
	}
	return origin + r + rng.Float64()*free
}

// Interacts lets every pair repel unless SeriesInteraction is off and the
// nodes belong to different groups.
func (Base) Interacts(e *Engine, a, b *Body) bool {
	return e.params.SeriesInteraction || a.Group == b.Group
}

// Reach is r1+r2+Padding+k: network nodes repel within the ideal distance
// k beyond touching, so radius-less nodes still spread out.
func (Base) Reach(e *Engine, a, b *Body) float64 {
	return a.Radius + b.Radius + e.params.Padding + e.k
}

func (Base) Anchor(e *Engine, _ *Body) geom.Vec {
	return e.box.Center()
}

// Contain clamps the body inside the bounding box.
func (Base) Contain(e *Engine, b *Body) {
	b.Pos = e.box.Clamp(b.Pos, b.Radius)
}

var _ Variant = Base{}
