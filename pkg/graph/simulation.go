package graph

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/packforce/pkg/core/layout"
)

// Simulation holds partial parameter overrides. Nil fields keep the layout
// kind's defaults.
type Simulation struct {
	LinkLength            *float64 `json:"link_length,omitempty" yaml:"link_length,omitempty" toml:"link_length"`
	Friction              *float64 `json:"friction,omitempty" yaml:"friction,omitempty" toml:"friction"`
	InitialTemperature    *float64 `json:"initial_temperature,omitempty" yaml:"initial_temperature,omitempty" toml:"initial_temperature"`
	Cooling               *string  `json:"cooling,omitempty" yaml:"cooling,omitempty" toml:"cooling"`
	CoolingFactor         *float64 `json:"cooling_factor,omitempty" yaml:"cooling_factor,omitempty" toml:"cooling_factor"`
	MaxIterations         *int     `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty" toml:"max_iterations"`
	GravitationalConstant *float64 `json:"gravitational_constant,omitempty" yaml:"gravitational_constant,omitempty" toml:"gravitational_constant"`
	MaxSpeed              *float64 `json:"max_speed,omitempty" yaml:"max_speed,omitempty" toml:"max_speed"`
	Epsilon               *float64 `json:"epsilon,omitempty" yaml:"epsilon,omitempty" toml:"epsilon"`
	Padding               *float64 `json:"padding,omitempty" yaml:"padding,omitempty" toml:"padding"`
	InitialPositionRadius *float64 `json:"initial_position_radius,omitempty" yaml:"initial_position_radius,omitempty" toml:"initial_position_radius"`
	ParentInitialRadius   *float64 `json:"parent_initial_radius,omitempty" yaml:"parent_initial_radius,omitempty" toml:"parent_initial_radius"`
	SeriesInteraction     *bool    `json:"series_interaction,omitempty" yaml:"series_interaction,omitempty" toml:"series_interaction"`
	SplitSeries           *bool    `json:"split_series,omitempty" yaml:"split_series,omitempty" toml:"split_series"`
	ParentNodeLimit       *bool    `json:"parent_node_limit,omitempty" yaml:"parent_node_limit,omitempty" toml:"parent_node_limit"`
	DynamicParentRadius   *bool    `json:"dynamic_parent_radius,omitempty" yaml:"dynamic_parent_radius,omitempty" toml:"dynamic_parent_radius"`
	ParentPadding         *float64 `json:"parent_padding,omitempty" yaml:"parent_padding,omitempty" toml:"parent_padding"`
	MinParentRadius       *float64 `json:"min_parent_radius,omitempty" yaml:"min_parent_radius,omitempty" toml:"min_parent_radius"`
	Seed                  *uint64  `json:"seed,omitempty" yaml:"seed,omitempty" toml:"seed"`
}

// Options converts the overrides into layout options. A nil receiver
// yields no options.
func (s *Simulation) Options() []layout.Option {
	if s == nil {
		return nil
	}
	var opts []layout.Option
	add := func(o layout.Option) { opts = append(opts, o) }

	if s.LinkLength != nil {
		add(layout.WithLinkLength(*s.LinkLength))
	}
	if s.Friction != nil {
		add(layout.WithFriction(*s.Friction))
	}
	if s.InitialTemperature != nil {
		add(layout.WithInitialTemperature(*s.InitialTemperature))
	}
	if s.Cooling != nil {
		add(layout.WithCooling(layout.Cooling(*s.Cooling)))
	}
	if s.CoolingFactor != nil {
		add(layout.WithCoolingFactor(*s.CoolingFactor))
	}
	if s.MaxIterations != nil {
		add(layout.WithMaxIterations(*s.MaxIterations))
	}
	if s.GravitationalConstant != nil {
		add(layout.WithGravity(*s.GravitationalConstant))
	}
	if s.MaxSpeed != nil {
		add(layout.WithMaxSpeed(*s.MaxSpeed))
	}
	if s.Epsilon != nil {
		add(layout.WithEpsilon(*s.Epsilon))
	}
	if s.Padding != nil {
		add(layout.WithPadding(*s.Padding))
	}
	if s.InitialPositionRadius != nil {
		add(layout.WithInitialPositionRadius(*s.InitialPositionRadius))
	}
	if s.ParentInitialRadius != nil {
		add(layout.WithParentInitialRadius(*s.ParentInitialRadius))
	}
	if s.SeriesInteraction != nil {
		add(layout.WithSeriesInteraction(*s.SeriesInteraction))
	}
	if s.SplitSeries != nil {
		add(layout.WithSplitSeries(*s.SplitSeries))
	}
	if s.ParentNodeLimit != nil {
		add(layout.WithParentNodeLimit(*s.ParentNodeLimit))
	}
	if s.DynamicParentRadius != nil {
		on := *s.DynamicParentRadius
		add(func(p *layout.Params) { p.DynamicParentRadius = on })
	}
	if s.ParentPadding != nil {
		v := *s.ParentPadding
		add(func(p *layout.Params) { p.ParentPadding = v })
	}
	if s.MinParentRadius != nil {
		v := *s.MinParentRadius
		add(func(p *layout.Params) { p.MinParentRadius = v })
	}
	if s.Seed != nil {
		add(layout.WithSeed(*s.Seed))
	}
	return opts
}

// Splits reports whether split series is requested.
func (s *Simulation) Splits() bool {
	return s != nil && s.SplitSeries != nil && *s.SplitSeries
}

// Merge returns a copy of s with every non-nil field of over applied.
// Either side may be nil.
func (s *Simulation) Merge(over *Simulation) *Simulation {
	var out Simulation
	if s != nil {
		out = *s
	}
	if over == nil {
		return &out
	}
	pick(&out.LinkLength, over.LinkLength)
	pick(&out.Friction, over.Friction)
	pick(&out.InitialTemperature, over.InitialTemperature)
	pick(&out.Cooling, over.Cooling)
	pick(&out.CoolingFactor, over.CoolingFactor)
	pick(&out.MaxIterations, over.MaxIterations)
	pick(&out.GravitationalConstant, over.GravitationalConstant)
	pick(&out.MaxSpeed, over.MaxSpeed)
	pick(&out.Epsilon, over.Epsilon)
	pick(&out.Padding, over.Padding)
	pick(&out.InitialPositionRadius, over.InitialPositionRadius)
	pick(&out.ParentInitialRadius, over.ParentInitialRadius)
	pick(&out.SeriesInteraction, over.SeriesInteraction)
	pick(&out.SplitSeries, over.SplitSeries)
	pick(&out.ParentNodeLimit, over.ParentNodeLimit)
	pick(&out.DynamicParentRadius, over.DynamicParentRadius)
	pick(&out.ParentPadding, over.ParentPadding)
	pick(&out.MinParentRadius, over.MinParentRadius)
	pick(&out.Seed, over.Seed)
	return &out
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// ReadSimulationFile decodes parameter overrides from a TOML file.
func ReadSimulationFile(path string) (*Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSimulation(data)
}

// UnmarshalSimulation decodes TOML parameter overrides. Unknown keys are
// rejected so typos do not pass silently.
func UnmarshalSimulation(data []byte) (*Simulation, error) {
	var s Simulation
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("decode parameters: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode parameters: unknown key %q", undecoded[0].String())
	}
	return &s, nil
}
