package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/packforce/pkg/core/geom"
	"github.com/matzehuels/packforce/pkg/core/layout"
)

// Layout is the serialized result of a simulation.
type Layout struct {
	RunID string `json:"run_id"`
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	State       string  `json:"state"`
	Stable      bool    `json:"stable"`
	Iterations  int     `json:"iterations"`
	Temperature float64 `json:"temperature"`
	Energy      float64 `json:"energy"`

	Nodes []PlacedNode `json:"nodes"`
	Edges []Edge       `json:"edges,omitempty"`
}

// PlacedNode is one positioned node.
type PlacedNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Series string  `json:"series,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Mass   float64 `json:"mass"`
	Fixed  bool    `json:"fixed,omitempty"`
	Parent bool    `json:"parent,omitempty"`
}

// NewLayout snapshots an engine. Labels and edges are taken from the chart.
func NewLayout(c *Chart, e *layout.Engine, runID string) Layout {
	labels := make(map[string]string)
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p.Label != "" {
				labels[p.ID] = p.Label
			}
		}
	}

	out := Layout{
		RunID:       runID,
		Kind:        e.Kind(),
		Title:       c.Title,
		Width:       c.Width,
		Height:      c.Height,
		State:       e.State().String(),
		Stable:      e.State() == layout.Stable,
		Iterations:  e.Iteration(),
		Temperature: e.Temperature(),
		Energy:      e.Energy(),
	}
	for _, n := range e.Nodes() {
		out.Nodes = append(out.Nodes, PlacedNode{
			ID:     n.ID,
			Label:  labels[n.ID],
			Series: n.Group,
			X:      n.Position.X,
			Y:      n.Position.Y,
			Radius: n.Radius,
			Mass:   n.Mass,
			Fixed:  n.Fixed,
			Parent: n.IsParent,
		})
	}
	if e.Kind() == KindNetwork {
		out.Edges = c.Edges
	}
	return out
}

// Positions returns node positions keyed by ID, parents excluded.
func (l *Layout) Positions() map[string]geom.Vec {
	out := make(map[string]geom.Vec, len(l.Nodes))
	for _, n := range l.Nodes {
		if !n.Parent {
			out[n.ID] = geom.V(n.X, n.Y)
		}
	}
	return out
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Kind == "" {
		return Layout{}, fmt.Errorf("layout has no kind")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// LayoutPath derives the default output path for a chart file:
// "chart.yaml" becomes "chart.layout.json".
func LayoutPath(chartPath string) string {
	for _, ext := range []string{".json", ".yaml", ".yml", ".dot", ".gv"} {
		if strings.HasSuffix(strings.ToLower(chartPath), ext) {
			return chartPath[:len(chartPath)-len(ext)] + ".layout.json"
		}
	}
	return chartPath + ".layout.json"
}
