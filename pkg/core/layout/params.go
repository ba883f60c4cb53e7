package layout

import (
	"math"

	"github.com/matzehuels/packforce/pkg/core/force"
	"github.com/matzehuels/packforce/pkg/errors"
)

// Cooling selects how the temperature decays between iterations.
type Cooling string

const (
	// CoolingGeometric multiplies the temperature by CoolingFactor.
	CoolingGeometric Cooling = "geometric"
	// CoolingLinear subtracts T0/(MaxIterations+1) so the temperature hits
	// zero just after the iteration cap.
	CoolingLinear Cooling = "linear"
)

// Defaults shared by every layout kind.
const (
	DefaultMaxIterations   = 1000
	DefaultCoolingFactor   = 0.98
	DefaultSeed            = uint64(42)
	DefaultParentPadding   = 20.0
	DefaultMinParentRadius = 20.0
)

// Params configures a simulation. Zero LinkLength and InitialTemperature
// are derived from the box and node count when the simulation starts.
type Params struct {
	// LinkLength is the ideal distance k used by both force laws.
	// Zero derives k = sqrt(boxArea / nodeCount).
	LinkLength float64 `json:"link_length,omitempty" validate:"gte=0"`

	// Friction damps accumulated displacement before integration (0 = none).
	Friction float64 `json:"friction" validate:"gte=0,lt=1"`

	// InitialTemperature bounds movement in the first iteration.
	// Zero derives sqrt(nodeCount).
	InitialTemperature float64 `json:"initial_temperature,omitempty" validate:"gte=0"`

	Cooling       Cooling `json:"cooling" validate:"oneof=geometric linear"`
	CoolingFactor float64 `json:"cooling_factor" validate:"gt=0,lt=1"`
	MaxIterations int     `json:"max_iterations" validate:"gt=0"`

	// GravitationalConstant pulls nodes toward their anchor. Zero disables
	// the gravitational pass.
	GravitationalConstant float64 `json:"gravitational_constant" validate:"gte=0"`

	// MaxSpeed caps per-iteration movement on top of the temperature.
	// Zero means no extra cap.
	MaxSpeed float64 `json:"max_speed" validate:"gte=0"`

	// Epsilon is the smallest distance used by force calculations.
	Epsilon float64 `json:"epsilon" validate:"gt=0"`

	// Padding is added to the combined radii when testing for overlap.
	Padding float64 `json:"padding" validate:"gte=0"`

	InitialPositionRadius float64 `json:"initial_position_radius" validate:"gte=0"`
	ParentInitialRadius   float64 `json:"parent_initial_radius" validate:"gte=0"`

	// SeriesInteraction lets nodes of different groups repel each other.
	SeriesInteraction bool `json:"series_interaction"`

	// SplitSeries gives each group its own sub-layout around a parent node.
	SplitSeries bool `json:"split_series"`

	// ParentNodeLimit nudges children back inside their parent's radius.
	ParentNodeLimit bool `json:"parent_node_limit"`

	// DynamicParentRadius recomputes parent radii from their members before
	// every iteration.
	DynamicParentRadius bool    `json:"dynamic_parent_radius"`
	ParentPadding       float64 `json:"parent_padding" validate:"gte=0"`
	MinParentRadius     float64 `json:"min_parent_radius" validate:"gte=0"`

	// Seed drives random initial placement.
	Seed uint64 `json:"seed"`
}

// DefaultParams returns the network-graph defaults.
func DefaultParams() Params {
	return Params{
		Friction:              0.1,
		Cooling:               CoolingGeometric,
		CoolingFactor:         DefaultCoolingFactor,
		MaxIterations:         DefaultMaxIterations,
		GravitationalConstant: 0.0625,
		MaxSpeed:              10,
		Epsilon:               force.DefaultEpsilon,
		InitialPositionRadius: 20,
		ParentInitialRadius:   100,
		SeriesInteraction:     true,
		ParentPadding:         DefaultParentPadding,
		MinParentRadius:       DefaultMinParentRadius,
		Seed:                  DefaultSeed,
	}
}

// Validate reports an INVALID_CONFIGURATION error for out-of-range or
// non-finite fields.
func (p Params) Validate() error {
	if err := errors.ValidateStruct("parameters", p); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"LinkLength", p.LinkLength},
		{"InitialTemperature", p.InitialTemperature},
		{"GravitationalConstant", p.GravitationalConstant},
		{"MaxSpeed", p.MaxSpeed},
		{"Epsilon", p.Epsilon},
		{"Padding", p.Padding},
		{"InitialPositionRadius", p.InitialPositionRadius},
		{"ParentInitialRadius", p.ParentInitialRadius},
		{"ParentPadding", p.ParentPadding},
		{"MinParentRadius", p.MinParentRadius},
	} {
		if math.IsInf(f.value, 0) || math.IsNaN(f.value) {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"parameters: %s must be finite (got %v)", f.name, f.value)
		}
	}
	return nil
}

// Option modifies Params. Options are applied in order.
type Option func(*Params)

// Apply returns a copy of p with opts applied.
func (p Params) Apply(opts ...Option) Params {
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

func WithLinkLength(k float64) Option         { return func(p *Params) { p.LinkLength = k } }
func WithFriction(f float64) Option           { return func(p *Params) { p.Friction = f } }
func WithInitialTemperature(t float64) Option { return func(p *Params) { p.InitialTemperature = t } }
func WithCooling(c Cooling) Option            { return func(p *Params) { p.Cooling = c } }
func WithCoolingFactor(f float64) Option      { return func(p *Params) { p.CoolingFactor = f } }
func WithMaxIterations(n int) Option          { return func(p *Params) { p.MaxIterations = n } }
func WithGravity(g float64) Option            { return func(p *Params) { p.GravitationalConstant = g } }
func WithMaxSpeed(v float64) Option           { return func(p *Params) { p.MaxSpeed = v } }
func WithEpsilon(eps float64) Option          { return func(p *Params) { p.Epsilon = eps } }
func WithPadding(pad float64) Option          { return func(p *Params) { p.Padding = pad } }
func WithSeed(seed uint64) Option             { return func(p *Params) { p.Seed = seed } }
func WithSeriesInteraction(on bool) Option    { return func(p *Params) { p.SeriesInteraction = on } }
func WithSplitSeries(on bool) Option          { return func(p *Params) { p.SplitSeries = on } }
func WithParentNodeLimit(on bool) Option      { return func(p *Params) { p.ParentNodeLimit = on } }

func WithInitialPositionRadius(r float64) Option {
	return func(p *Params) { p.InitialPositionRadius = r }
}

func WithParentInitialRadius(r float64) Option {
	return func(p *Params) { p.ParentInitialRadius = r }
}

// WithDynamicParentRadius enables member-driven parent radii with the given
// padding and lower bound.
func WithDynamicParentRadius(on bool, padding, minRadius float64) Option {
	return func(p *Params) {
		p.DynamicParentRadius = on
		p.ParentPadding = padding
		p.MinParentRadius = minRadius
	}
}
