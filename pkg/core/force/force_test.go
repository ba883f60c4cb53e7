package force

import (
	"math"
	"testing"

	"github.com/matzehuels/packforce/pkg/core/geom"
)

func TestRepulsive(t *testing.T) {
	tests := []struct {
		name    string
		k, d    float64
		overlap float64
		want    float64
	}{
		{"overlapping", 10, 5, -15, 20},
		{"touching", 10, 20, 0, 0},
		{"apart", 10, 50, 30, 0},
		{"coincident clamps distance", 1, 0, -20, 1 / DefaultEpsilon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repulsive(tt.k, tt.d, tt.overlap, 0)
			if got != tt.want {
				t.Errorf("Repulsive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttractive(t *testing.T) {
	if got := Attractive(10, 20, 0); got != 40 {
		t.Errorf("Attractive(10, 20) = %v, want 40", got)
	}
	if got := Attractive(0, 1, 0.5); got != 2 {
		t.Errorf("Attractive(0, 1) with eps 0.5 = %v, want 2", got)
	}
}

func TestRepulsionBalancesAttractionAtK(t *testing.T) {
	k := 30.0
	rep := Repulsive(k, k, -1, 0)
	att := Attractive(k, k, 0)
	if math.Abs(rep-att) > 1e-9 {
		t.Errorf("at d=k repulsive %v != attractive %v", rep, att)
	}
}

func TestAccumulate(t *testing.T) {
	dir := geom.V(1, 0)

	tests := []struct {
		name  string
		force float64
		mass  float64
		want  geom.Vec
	}{
		{"unit mass", 4, 1, geom.V(5, 1)},
		{"heavy node moves less", 4, 4, geom.V(2, 1)},
		{"zero mass is immovable", 4, 0, geom.V(1, 1)},
		{"no force", 0, 1, geom.V(1, 1)},
		{"overflowing force is capped", math.Inf(1), 1, geom.V(1+MaxMagnitude, 1)},
		{"NaN force is ignored", math.NaN(), 1, geom.V(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accumulate(geom.V(1, 1), tt.force, dir, tt.mass)
			if got != tt.want {
				t.Errorf("Accumulate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccumulateInfiniteForceZeroComponent(t *testing.T) {
	got := Accumulate(geom.Vec{}, math.Inf(1), geom.V(0, 1), 1)
	if !got.IsFinite() {
		t.Fatalf("Accumulate() = %v, want finite", got)
	}
	if got.X != 0 || got.Y != MaxMagnitude {
		t.Errorf("Accumulate() = %v, want (0, %v)", got, MaxMagnitude)
	}
}

func TestDirection(t *testing.T) {
	dir, d := Direction(geom.V(10, 0), geom.V(0, 0), 0, 0)
	if dir != geom.V(1, 0) || d != 10 {
		t.Errorf("Direction() = %v, %v; want (1,0), 10", dir, d)
	}

	a, _ := Direction(geom.V(5, 5), geom.V(5, 5), 3, 0)
	b, _ := Direction(geom.V(5, 5), geom.V(5, 5), 3, 0)
	if a != b {
		t.Errorf("coincident direction not deterministic: %v vs %v", a, b)
	}
	if math.Abs(a.Len()-1) > 1e-12 {
		t.Errorf("coincident direction length = %v, want 1", a.Len())
	}
}

func TestClampDistance(t *testing.T) {
	if got := ClampDistance(0, 0); got != DefaultEpsilon {
		t.Errorf("ClampDistance(0, 0) = %v, want %v", got, DefaultEpsilon)
	}
	if got := ClampDistance(3, 1e-3); got != 3 {
		t.Errorf("ClampDistance(3) = %v, want 3", got)
	}
}
