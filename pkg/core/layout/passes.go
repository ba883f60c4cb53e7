package layout

import (
	"math"
	"strconv"

	"github.com/matzehuels/packforce/pkg/core/force"
	"github.com/matzehuels/packforce/pkg/core/geom"
)

// degreeStep is the neighbour pressure added per overlap.
const degreeStep = 0.01

type overlapPair struct {
	a, b    *Body
	dir     geom.Vec // unit vector from b to a
	dist    float64
	overlap float64
}

// repulsivePass pushes overlapping pairs apart. Overlaps are collected
// first so every node knows its neighbour count before forces are applied;
// the force on each node is softened by the square root of that count.
func (e *Engine) repulsivePass() {
	for _, b := range e.bodies {
		b.Degree = b.Mass
		b.Neighbours = 0
	}

	eps := e.params.Epsilon
	n := len(e.bodies)
	e.pairs = e.pairs[:0]
	for i := 0; i < n; i++ {
		a := e.bodies[i]
		for j := i + 1; j < n; j++ {
			b := e.bodies[j]
			if a.Immovable() && b.Immovable() {
				continue
			}
			if !e.variant.Interacts(e, a, b) {
				continue
			}
			dir, d := force.Direction(a.Pos, b.Pos, i*n+j, eps)
			overlap := force.Overlap(d, e.variant.Reach(e, a, b))
			if overlap >= 0 {
				continue
			}
			a.Degree += degreeStep
			b.Degree += degreeStep
			a.Neighbours++
			b.Neighbours++
			e.pairs = append(e.pairs, overlapPair{a: a, b: b, dir: dir, dist: d, overlap: overlap})
		}
	}

	for _, p := range e.pairs {
		f := force.Repulsive(e.k, p.dist, p.overlap, eps)
		if !p.a.Immovable() {
			p.a.Disp = force.Accumulate(p.a.Disp, soften(f, p.a.Neighbours), p.dir, p.a.Mass)
		}
		if !p.b.Immovable() {
			p.b.Disp = force.Accumulate(p.b.Disp, soften(f, p.b.Neighbours), p.dir.Scale(-1), p.b.Mass)
		}
	}
}

func soften(f float64, neighbours int) float64 {
	if neighbours <= 1 {
		return f
	}
	return f / math.Sqrt(float64(neighbours))
}

// attractivePass pulls the endpoints of every edge toward each other.
func (e *Engine) attractivePass() {
	eps := e.params.Epsilon
	for _, ed := range e.edges {
		if ed.from == ed.to {
			continue
		}
		delta := ed.to.Pos.Sub(ed.from.Pos)
		d := delta.Len()
		if d < eps {
			continue
		}
		dir := delta.Scale(1 / d)
		f := force.Attractive(e.k, d, eps) * ed.weight
		if !ed.from.Immovable() {
			ed.from.Disp = force.Accumulate(ed.from.Disp, f, dir, ed.from.Mass)
		}
		if !ed.to.Immovable() {
			ed.to.Disp = force.Accumulate(ed.to.Disp, f, dir.Scale(-1), ed.to.Mass)
		}
	}
}

// gravityPass pulls movable nodes toward their anchor.
func (e *Engine) gravityPass() {
	g := e.params.GravitationalConstant
	eps := e.params.Epsilon
	for _, b := range e.bodies {
		if b.Immovable() {
			continue
		}
		delta := e.variant.Anchor(e, b).Sub(b.Pos)
		d := delta.Len()
		if d < eps {
			continue
		}
		b.Disp = force.Accumulate(b.Disp, force.Gravity(g, d), delta.Scale(1/d), b.Mass)
	}
}

// integrate moves every movable node by its damped displacement, bounded
// by the temperature and MaxSpeed, then applies the containment policy.
// Parents come first in e.order so children read their updated position.
func (e *Engine) integrate() {
	limit := e.temperature
	if e.params.MaxSpeed > 0 {
		limit = math.Min(limit, e.params.MaxSpeed)
	}
	damping := 1 - e.params.Friction

	var energy float64
	for _, b := range e.order {
		if b.Immovable() {
			b.Disp = geom.Vec{}
			b.Prev = b.Pos
			b.Speed = 0
			continue
		}

		prev := b.Pos
		disp := b.Disp.Scale(damping)
		if l := disp.Len(); l > 0 && limit > 0 {
			b.Pos = b.Pos.Add(disp.Unit().Scale(math.Min(l, limit)))
		}
		e.variant.Contain(e, b)

		b.Prev = prev
		b.Speed = geom.Dist(b.Pos, prev)
		b.Disp = geom.Vec{}
		energy += b.Speed
	}
	e.energy = energy
}

// cool lowers the temperature; it never rises and never goes below zero.
func (e *Engine) cool() {
	e.prevTemperature = e.temperature
	switch e.params.Cooling {
	case CoolingLinear:
		e.temperature -= e.linearStep
	default:
		e.temperature *= e.params.CoolingFactor
	}
	if e.temperature < 0 {
		e.temperature = 0
	}
}

func itoa(i int) string     { return strconv.Itoa(i) }
func quote(s string) string { return strconv.Quote(s) }
