// Package force holds the pure force functions of the layout engine.
//
// Repulsion is Coulomb-like and short range: two nodes push each other apart
// with magnitude k²/d only while they overlap, i.e. while their distance is
// below the reach implied by their radii and padding. Attraction is
// Hooke-like, d²/k, and only ever applied along declared edges. Forces are
// turned into motion by [Accumulate], which divides by the target's mass so
// heavy nodes move less per unit of force.
package force

import (
	"math"

	"github.com/matzehuels/packforce/pkg/core/geom"
)

// DefaultEpsilon is the smallest distance used in force calculations.
const DefaultEpsilon = 1e-6

// MaxMagnitude bounds a single force contribution so that overflowing
// forces still produce a finite displacement.
const MaxMagnitude = 1e300

// goldenAngle spreads fallback directions for coincident nodes.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// ClampDistance keeps d away from zero. Non-positive eps falls back to
// DefaultEpsilon.
func ClampDistance(d, eps float64) float64 {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	if d < eps {
		return eps
	}
	return d
}

// Overlap returns how far d falls short of reach. A negative result means
// the nodes overlap and repel; zero or positive means they are clear.
func Overlap(d, reach float64) float64 {
	return d - reach
}

// Repulsive returns the repulsive magnitude k²/d for nodes whose overlap is
// negative, and zero otherwise.
func Repulsive(k, d, overlap, eps float64) float64 {
	if overlap >= 0 {
		return 0
	}
	return k * k / ClampDistance(d, eps)
}

// Attractive returns the attractive magnitude d²/k between connected nodes.
func Attractive(k, d, eps float64) float64 {
	return d * d / ClampDistance(k, eps)
}

// Gravity returns a pull of strength g proportional to the distance d from
// the anchor point.
func Gravity(g, d float64) float64 {
	return g * d
}

// Accumulate adds force*dir/mass to disp, with force/mass capped at
// ±MaxMagnitude. Non-positive mass is immovable and leaves disp untouched.
func Accumulate(disp geom.Vec, force float64, dir geom.Vec, mass float64) geom.Vec {
	if mass <= 0 || force == 0 || math.IsNaN(force) {
		return disp
	}
	s := math.Max(-MaxMagnitude, math.Min(force/mass, MaxMagnitude))
	return disp.Add(dir.Scale(s))
}

// Direction returns the unit vector pointing from b to a together with
// their distance. Coincident points get a deterministic direction derived
// from seed so that stacked nodes still separate.
func Direction(a, b geom.Vec, seed int, eps float64) (geom.Vec, float64) {
	delta := a.Sub(b)
	d := delta.Len()
	if d < ClampDistance(0, eps) {
		return geom.Direction(goldenAngle * float64(seed+1)), d
	}
	return delta.Scale(1 / d), d
}
