package graph

import (
	"github.com/matzehuels/packforce/pkg/core/layout"
	"github.com/matzehuels/packforce/pkg/core/layout/packed"
)

// Layout kinds understood by the default registry.
const (
	KindNetwork = layout.KindNetwork
	KindPacked  = packed.Kind
)

// Default chart dimensions and bubble sizes.
const (
	DefaultWidth   = 800.0
	DefaultHeight  = 600.0
	DefaultMinSize = 10.0
	DefaultMaxSize = 50.0
)

// ParentPrefix prefixes the IDs of synthesized split-series parent nodes.
const ParentPrefix = "series:"

// Chart is the input document for a simulation.
type Chart struct {
	Kind   string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// MinSize and MaxSize bound the radius of value-sized bubbles.
	MinSize float64 `json:"min_size,omitempty" yaml:"min_size,omitempty"`
	MaxSize float64 `json:"max_size,omitempty" yaml:"max_size,omitempty"`

	Series     []Series    `json:"series" yaml:"series"`
	Edges      []Edge      `json:"edges,omitempty" yaml:"edges,omitempty"`
	Simulation *Simulation `json:"simulation,omitempty" yaml:"simulation,omitempty"`
}

// Series is a named group of points. Series names become node groups.
type Series struct {
	Name   string  `json:"name" yaml:"name"`
	Points []Point `json:"points" yaml:"points"`
}

// Point is one chart datum.
type Point struct {
	ID    string  `json:"id" yaml:"id"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	Value float64 `json:"value,omitempty" yaml:"value,omitempty"`

	// Radius overrides value-based sizing when positive.
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`

	// Mass defaults to 1.
	Mass *float64 `json:"mass,omitempty" yaml:"mass,omitempty"`

	// X and Y carry a position from a previous render.
	X *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y *float64 `json:"y,omitempty" yaml:"y,omitempty"`

	Fixed bool `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

// Edge links two point IDs in a network chart.
type Edge struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (p Point) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// PointCount returns the number of points across all series.
func (c *Chart) PointCount() int {
	n := 0
	for _, s := range c.Series {
		n += len(s.Points)
	}
	return n
}

// WithDefaults returns a copy with zero dimensions, sizes and kind filled in.
func (c Chart) WithDefaults() Chart {
	if c.Kind == "" {
		c.Kind = KindNetwork
		if len(c.Edges) == 0 {
			c.Kind = KindPacked
		}
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.MinSize == 0 {
		c.MinSize = DefaultMinSize
	}
	if c.MaxSize == 0 {
		c.MaxSize = DefaultMaxSize
	}
	return c
}
