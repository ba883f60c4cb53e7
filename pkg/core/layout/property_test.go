package layout

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/packforce/pkg/core/geom"
)

// randomNodes builds count nodes with deterministic pseudo-random masses,
// radii and start positions derived from salt.
func randomNodes(count int, salt uint64, box geom.Box) []Node {
	nodes := make([]Node, count)
	x := salt | 1
	next := func() float64 {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
		return float64(x%10000) / 10000
	}
	for i := range nodes {
		nodes[i] = Node{
			ID:       fmt.Sprintf("n%d", i),
			Group:    fmt.Sprintf("g%d", i%3),
			Mass:     0.5 + next()*3,
			Radius:   next() * 30,
			Position: at(box.X+next()*box.Width, box.Y+next()*box.Height),
		}
	}
	return nodes
}

func TestEngineProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("nodes stay inside the box", prop.ForAll(
		func(count int, salt uint64, width, height float64) bool {
			box := geom.NewBox(width, height)
			e, err := NewNetwork(randomNodes(count, salt, box), nil, box, WithLinkLength(width/4))
			if err != nil {
				return false
			}
			radius := make(map[string]float64)
			for _, n := range e.Nodes() {
				radius[n.ID] = n.Radius
			}
			for i := 0; i < 60; i++ {
				res := e.Step()
				for id, p := range res.Positions {
					if !box.Contains(p, radius[id]) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.UInt64(),
		gen.Float64Range(50, 2000),
		gen.Float64Range(50, 2000),
	))

	properties.Property("temperature never rises", prop.ForAll(
		func(count int, salt uint64, linear bool) bool {
			cooling := CoolingGeometric
			if linear {
				cooling = CoolingLinear
			}
			e, err := NewNetwork(randomNodes(count, salt, testBox), nil, testBox,
				WithCooling(cooling), WithMaxIterations(200))
			if err != nil {
				return false
			}
			prev := e.Temperature()
			for !e.State().Terminal() {
				res := e.Step()
				if res.Temperature > prev || res.Temperature < 0 {
					return false
				}
				prev = res.Temperature
			}
			return true
		},
		gen.IntRange(1, 10),
		gen.UInt64(),
		gen.Bool(),
	))

	properties.Property("fixed nodes hold their position", prop.ForAll(
		func(count int, salt uint64, pinned int) bool {
			nodes := randomNodes(count, salt, testBox)
			idx := pinned % count
			nodes[idx].Fixed = true
			want := *nodes[idx].Position

			e, err := NewNetwork(nodes, nil, testBox)
			if err != nil {
				return false
			}
			for i := 0; i < 40; i++ {
				if e.Step().Positions[nodes[idx].ID] != want {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 10),
		gen.UInt64(),
		gen.IntRange(0, 100),
	))

	properties.Property("identical inputs give identical layouts", prop.ForAll(
		func(count int, seed uint64) bool {
			nodes := make([]Node, count)
			for i := range nodes {
				nodes[i] = Node{ID: fmt.Sprintf("n%d", i), Mass: 1, Radius: 8}
			}
			a, errA := NewNetwork(nodes, nil, testBox, WithSeed(seed))
			b, errB := NewNetwork(nodes, nil, testBox, WithSeed(seed))
			if errA != nil || errB != nil {
				return false
			}
			for i := 0; i < 25; i++ {
				pa, pb := a.Step().Positions, b.Step().Positions
				for id, p := range pa {
					if pb[id] != p {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 15),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
