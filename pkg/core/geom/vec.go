package geom

import "math"

// Vec is a 2D vector or point.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y} }

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Unit returns v scaled to length 1, or the zero vector when v has no
// length or a NaN component. Infinite components dominate: (+Inf, 3) has
// direction (1, 0).
func (v Vec) Unit() Vec {
	if math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		v = Vec{infSign(v.X), infSign(v.Y)}
	}
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

func infSign(x float64) float64 {
	switch {
	case math.IsInf(x, 1):
		return 1
	case math.IsInf(x, -1):
		return -1
	}
	return 0
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Dist returns the distance between points a and b.
func Dist(a, b Vec) float64 { return a.Sub(b).Len() }

// Polar returns the point at distance r from c in direction angle (radians).
func Polar(c Vec, r, angle float64) Vec {
	return Vec{c.X + r*math.Cos(angle), c.Y + r*math.Sin(angle)}
}

// Direction returns a unit vector pointing at angle (radians).
func Direction(angle float64) Vec {
	return Vec{math.Cos(angle), math.Sin(angle)}
}
