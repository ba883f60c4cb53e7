package geom

import "math"

// Box is an axis-aligned rectangle anchored at its top-left corner (X, Y).
type Box struct {
	X, Y          float64
	Width, Height float64
}

// NewBox returns a box of the given size anchored at the origin.
func NewBox(width, height float64) Box {
	return Box{Width: width, Height: height}
}

// Valid reports whether the box has a finite origin and a finite, strictly
// positive area.
func (b Box) Valid() bool {
	return b.Width > 0 && b.Height > 0 &&
		!math.IsInf(b.Width, 0) && !math.IsInf(b.Height, 0) &&
		finite(b.X) && finite(b.Y)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Area returns Width * Height.
func (b Box) Area() float64 { return b.Width * b.Height }

// Center returns the midpoint of the box.
func (b Box) Center() Vec {
	return Vec{b.X + b.Width/2, b.Y + b.Height/2}
}

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 { return math.Hypot(b.Width, b.Height) }

// Contains reports whether a disc of radius r centred on p lies inside the
// box. A tolerance absorbs floating point noise from clamping.
func (b Box) Contains(p Vec, r float64) bool {
	const tol = 1e-9
	lo, hi := b.span(b.X, b.Width, r)
	if p.X < lo-tol || p.X > hi+tol {
		return false
	}
	lo, hi = b.span(b.Y, b.Height, r)
	return p.Y >= lo-tol && p.Y <= hi+tol
}

// Clamp moves p so that a disc of radius r centred on it stays inside the
// box. A disc wider than the box is centred on that axis.
func (b Box) Clamp(p Vec, r float64) Vec {
	lo, hi := b.span(b.X, b.Width, r)
	x := clamp(p.X, lo, hi)
	lo, hi = b.span(b.Y, b.Height, r)
	y := clamp(p.Y, lo, hi)
	return Vec{x, y}
}

// span returns the allowed centre range on one axis.
func (b Box) span(origin, size, r float64) (float64, float64) {
	if 2*r >= size {
		mid := origin + size/2
		return mid, mid
	}
	return origin + r, origin + size - r
}

// Bounds returns the smallest box enclosing every disc (centres[i], radii[i]).
// It returns false when there are no discs.
func Bounds(centres []Vec, radii []float64) (Box, bool) {
	if len(centres) == 0 {
		return Box{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, c := range centres {
		r := 0.0
		if i < len(radii) {
			r = radii[i]
		}
		minX = math.Min(minX, c.X-r)
		minY = math.Min(minY, c.Y-r)
		maxX = math.Max(maxX, c.X+r)
		maxY = math.Max(maxY, c.Y+r)
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
