// Package packed implements the packed-bubble layout variant.
//
// Bubbles have no edges. They start on a circle around the box center (or,
// with split series, around their group's parent bubble), repel only while
// overlapping, and drift toward their anchor under gravity. With
// ParentNodeLimit set, children that poke slightly out of their parent are
// nudged back inside before the box clamp applies.
package packed

import (
	"math"

	"github.com/matzehuels/packforce/pkg/core/geom"
	"github.com/matzehuels/packforce/pkg/core/layout"
)

// Kind is the registry name of the packed-bubble variant.
const Kind = "packedbubble"

// nudgeFactor is the share of the parent offset removed per iteration.
const nudgeFactor = 0.01

// DefaultParams returns the packed-bubble defaults.
func DefaultParams() layout.Params {
	p := layout.DefaultParams()
	p.GravitationalConstant = 0.01
	p.MaxSpeed = 5
	p.Padding = 5
	p.SeriesInteraction = true
	return p
}

// New builds a packed-bubble engine. Edges are accepted for signature
// compatibility with the registry and ignored.
func New(nodes []layout.Node, _ []layout.Edge, box geom.Box, opts ...layout.Option) (*layout.Engine, error) {
	return layout.New(Variant{}, nodes, nil, box, DefaultParams().Apply(opts...))
}

// Variant overrides the network defaults in [layout.Base].
type Variant struct {
	layout.Base
}

var _ layout.Variant = Variant{}

func (Variant) Kind() string    { return Kind }
func (Variant) UsesEdges() bool { return false }

// Place puts pending bubbles on rings spaced 2π/(n+1) apart. Without split
// series there is one ring around the box center. With it, parents share a
// wide ring around the center and each group's children ring their parent.
func (Variant) Place(e *layout.Engine, pending []*layout.Body) {
	p := e.Params()
	center := e.Box().Center()

	if !p.SplitSeries {
		ring(pending, center, p.InitialPositionRadius)
		return
	}

	var parents []*layout.Body
	var orphans []*layout.Body
	children := make(map[*layout.Body][]*layout.Body)
	var order []*layout.Body
	for _, b := range pending {
		switch {
		case b.IsParent:
			parents = append(parents, b)
		case b.Parent == nil:
			orphans = append(orphans, b)
		default:
			if _, seen := children[b.Parent]; !seen {
				order = append(order, b.Parent)
			}
			children[b.Parent] = append(children[b.Parent], b)
		}
	}

	ring(parents, center, p.ParentInitialRadius)
	for _, parent := range order {
		ring(children[parent], parent.Pos, p.InitialPositionRadius)
	}
	ring(orphans, center, p.InitialPositionRadius)
}

func ring(bodies []*layout.Body, c geom.Vec, r float64) {
	step := 2 * math.Pi / float64(len(bodies)+1)
	for i, b := range bodies {
		b.PlaceAt(geom.Polar(c, r, step*float64(i)))
	}
}

// BeforeStep resizes parents from their current members when dynamic
// parent radius is enabled.
func (Variant) BeforeStep(e *layout.Engine) {
	p := e.Params()
	if !p.SplitSeries || !p.DynamicParentRadius {
		return
	}

	members := make(map[*layout.Body][]*layout.Body)
	for _, b := range e.Bodies() {
		if b.Parent != nil {
			members[b.Parent] = append(members[b.Parent], b)
		}
	}
	for parent, group := range members {
		centres := make([]geom.Vec, len(group))
		radii := make([]float64, len(group))
		for i, b := range group {
			centres[i] = b.Pos
			radii[i] = b.Radius
		}
		parent.Radius = ParentRadius(centres, radii, p.ParentPadding, p.MinParentRadius)
	}
}

// ParentRadius sizes a parent bubble from its members: the radius of a disc
// holding twice their total area plus padding, bounded below by minRadius
// and above by half the diagonal of the members' bounding box plus padding.
func ParentRadius(centres []geom.Vec, radii []float64, padding, minRadius float64) float64 {
	var area float64
	for _, r := range radii {
		area += math.Pi * r * r
	}
	radius := math.Sqrt(2*area/math.Pi) + padding

	upper := minRadius
	if box, ok := geom.Bounds(centres, radii); ok {
		upper = math.Max(box.Diagonal()/2+padding, minRadius)
	}
	return math.Min(math.Max(radius, minRadius), upper)
}

// Interacts keeps parents and children in separate force systems: parents
// repel each other, children repel children subject to SeriesInteraction,
// and a parent never pushes a child.
func (Variant) Interacts(e *layout.Engine, a, b *layout.Body) bool {
	switch {
	case a.IsParent && b.IsParent:
		return true
	case a.IsParent || b.IsParent:
		return false
	}
	return e.Params().SeriesInteraction || a.Group == b.Group
}

func (Variant) Reach(e *layout.Engine, a, b *layout.Body) float64 {
	return a.Radius + b.Radius + e.Params().Padding
}

// Anchor pulls split-series children toward their parent.
func (Variant) Anchor(e *layout.Engine, b *layout.Body) geom.Vec {
	if e.Params().SplitSeries && b.Parent != nil {
		return b.Parent.Pos
	}
	return e.Box().Center()
}

// Contain nudges children that slightly overlap their parent's rim back
// toward the parent, then clamps to the box.
func (Variant) Contain(e *layout.Engine, b *layout.Body) {
	p := e.Params()
	if p.SplitSeries && p.ParentNodeLimit && b.Parent != nil {
		offset := b.Pos.Sub(b.Parent.Pos)
		slack := b.Parent.Radius - b.Radius - offset.Len()
		if slack < 0 && slack > -2*b.Radius {
			b.Pos = b.Pos.Sub(offset.Scale(nudgeFactor))
		}
	}
	b.Pos = e.Box().Clamp(b.Pos, b.Radius)
}
