package geom

import (
	"math"
	"testing"
)

func TestVecLen(t *testing.T) {
	tests := []struct {
		name string
		v    Vec
		want float64
	}{
		{"zero", Vec{}, 0},
		{"axis", V(3, 0), 3},
		{"pythagorean", V(3, 4), 5},
		{"negative", V(-6, -8), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Len(); got != tt.want {
				t.Errorf("Len() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDist(t *testing.T) {
	if got := Dist(V(1, 1), V(4, 5)); got != 5 {
		t.Errorf("Dist() = %v, want 5", got)
	}
	if got := Dist(V(2, 2), V(2, 2)); got != 0 {
		t.Errorf("Dist() of coincident points = %v, want 0", got)
	}
}

func TestUnit(t *testing.T) {
	u := V(0, -7).Unit()
	if u != V(0, -1) {
		t.Errorf("Unit() = %v, want (0,-1)", u)
	}
	if z := (Vec{}).Unit(); !z.IsZero() {
		t.Errorf("Unit() of zero vector = %v, want zero", z)
	}
	if u := V(math.Inf(1), 3).Unit(); u != V(1, 0) {
		t.Errorf("Unit() of (+Inf,3) = %v, want (1,0)", u)
	}
	if u := V(math.Inf(-1), math.Inf(1)).Unit(); math.Abs(u.X+math.Sqrt2/2) > 1e-12 || math.Abs(u.Y-math.Sqrt2/2) > 1e-12 {
		t.Errorf("Unit() of (-Inf,+Inf) = %v, want diagonal", u)
	}
	if z := V(math.NaN(), 1).Unit(); !z.IsZero() {
		t.Errorf("Unit() of NaN vector = %v, want zero", z)
	}
}

func TestPolar(t *testing.T) {
	p := Polar(V(10, 10), 5, math.Pi/2)
	if math.Abs(p.X-10) > 1e-12 || math.Abs(p.Y-15) > 1e-12 {
		t.Errorf("Polar() = %v, want (10,15)", p)
	}
}

func TestBoxClamp(t *testing.T) {
	b := NewBox(100, 50)

	tests := []struct {
		name string
		p    Vec
		r    float64
		want Vec
	}{
		{"inside", V(50, 25), 5, V(50, 25)},
		{"left edge", V(-10, 25), 5, V(5, 25)},
		{"bottom right", V(200, 80), 10, V(90, 40)},
		{"disc wider than box height", V(10, 0), 30, V(30, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Clamp(tt.p, tt.r)
			if got != tt.want {
				t.Errorf("Clamp() = %v, want %v", got, tt.want)
			}
			if !b.Contains(got, math.Min(tt.r, 25)) {
				t.Errorf("Contains(%v) = false after clamp", got)
			}
		})
	}
}

func TestBoxValid(t *testing.T) {
	tests := []struct {
		box  Box
		want bool
	}{
		{NewBox(10, 10), true},
		{NewBox(0, 10), false},
		{NewBox(10, -1), false},
		{NewBox(math.Inf(1), 10), false},
		{Box{X: math.NaN(), Width: 10, Height: 10}, false},
		{Box{Y: math.Inf(-1), Width: 10, Height: 10}, false},
		{Box{X: -5, Y: 5, Width: 10, Height: 10}, true},
	}
	for _, tt := range tests {
		if got := tt.box.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.box, got, tt.want)
		}
	}
}

func TestBounds(t *testing.T) {
	b, ok := Bounds([]Vec{V(10, 10), V(30, 20)}, []float64{5, 2})
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	want := Box{X: 5, Y: 5, Width: 27, Height: 17}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}

	if _, ok := Bounds(nil, nil); ok {
		t.Error("Bounds(nil) ok = true, want false")
	}
}
