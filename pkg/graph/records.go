package graph

import (
	"fmt"
	"math"

	"github.com/matzehuels/packforce/pkg/core/geom"
	"github.com/matzehuels/packforce/pkg/core/layout"
)

// Records is the engine-facing form of a chart.
type Records struct {
	Nodes []layout.Node
	Edges []layout.Edge
	Box   geom.Box
}

// SeriesName returns the group name for the i-th series, falling back to
// "series-<i>" for unnamed ones.
func SeriesName(s Series, i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("series-%d", i)
}

// ToRecords converts a chart into engine records. Packed charts get
// value-sized radii and, with split set, one parent node per series.
// Edges are only carried for network charts. The chart should already have
// defaults applied.
func ToRecords(c *Chart, split bool) Records {
	packedKind := c.Kind == KindPacked
	sizer := newSizer(c)

	rec := Records{Box: geom.NewBox(c.Width, c.Height)}
	for i, s := range c.Series {
		group := SeriesName(s, i)

		var groupMass, groupArea float64
		for _, p := range s.Points {
			n := layout.Node{
				ID:     p.ID,
				Group:  group,
				Mass:   1,
				Radius: p.Radius,
				Fixed:  p.Fixed,
			}
			if p.Mass != nil {
				n.Mass = *p.Mass
			}
			if n.Radius == 0 && packedKind {
				n.Radius = sizer.radius(p.Value)
			}
			if p.X != nil && p.Y != nil {
				pos := geom.V(*p.X, *p.Y)
				n.Position = &pos
			}
			groupMass += n.Mass
			groupArea += math.Pi * n.Radius * n.Radius
			rec.Nodes = append(rec.Nodes, n)
		}

		if split && packedKind && len(s.Points) > 0 {
			rec.Nodes = append(rec.Nodes, layout.Node{
				ID:       ParentPrefix + group,
				Group:    group,
				Mass:     math.Max(groupMass, 1),
				Radius:   math.Sqrt(2*groupArea/math.Pi) + layout.DefaultParentPadding,
				IsParent: true,
			})
		}
	}

	if !packedKind {
		for _, e := range c.Edges {
			rec.Edges = append(rec.Edges, layout.Edge{From: e.From, To: e.To, Weight: e.Weight})
		}
	}
	return rec
}

// ApplyPositions writes positions back into the chart's points so that a
// later simulation of the same chart starts where this one ended.
func ApplyPositions(c *Chart, positions map[string]geom.Vec) {
	for i := range c.Series {
		for j := range c.Series[i].Points {
			p := &c.Series[i].Points[j]
			if pos, ok := positions[p.ID]; ok {
				x, y := pos.X, pos.Y
				p.X, p.Y = &x, &y
			}
		}
	}
}

// sizer maps point values to radii so that bubble area is linear in value.
type sizer struct {
	min, max   float64
	vmin, vmax float64
}

func newSizer(c *Chart) sizer {
	s := sizer{min: c.MinSize, max: c.MaxSize, vmin: math.Inf(1), vmax: math.Inf(-1)}
	for _, series := range c.Series {
		for _, p := range series.Points {
			if p.Radius > 0 {
				continue
			}
			s.vmin = math.Min(s.vmin, p.Value)
			s.vmax = math.Max(s.vmax, p.Value)
		}
	}
	return s
}

// radius returns MaxSize when every value is equal.
func (s sizer) radius(v float64) float64 {
	t := 1.0
	if span := s.vmax - s.vmin; span > 0 {
		t = math.Max(0, math.Min(1, (v-s.vmin)/span))
	}
	lo, hi := s.min*s.min, s.max*s.max
	return math.Sqrt(lo + (hi-lo)*t)
}
