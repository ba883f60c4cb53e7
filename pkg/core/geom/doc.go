// Package geom provides the 2D vector and box arithmetic used by the force
// layout engine.
//
// All types are small values; every operation returns a new value and never
// mutates its receiver. Coordinates follow screen conventions: X grows to the
// right and Y grows downward, with a [Box] anchored at its top-left corner.
package geom
