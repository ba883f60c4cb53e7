package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/packforce/pkg/core/geom"
	"github.com/matzehuels/packforce/pkg/errors"
)

// stabilityTolerance is the largest temperature change still considered
// settled.
const stabilityTolerance = 1e-5

// Engine is a force-directed layout simulation.
type Engine struct {
	variant Variant
	params  Params
	box     geom.Box

	bodies []*Body
	byID   map[string]*Body
	order  []*Body
	edges  []edge
	pairs  []overlapPair

	state            State
	iteration        int
	k                float64
	startTemperature float64
	temperature      float64
	prevTemperature  float64
	linearStep       float64
	energy           float64
}

// StepResult is the outcome of one [Engine.Step].
type StepResult struct {
	Positions   map[string]geom.Vec
	Stable      bool
	State       State
	Iteration   int
	Temperature float64

	// Energy is the total distance moved by all nodes in the iteration.
	Energy float64
}

// Done reports whether the driver should stop stepping.
func (r StepResult) Done() bool { return r.State.Terminal() }

// New validates the inputs and returns an engine with start positions
// assigned. It fails with INVALID_CONFIGURATION on negative mass or radius,
// duplicate or missing IDs, dangling edges, a non-positive box or
// out-of-range parameters.
func New(v Variant, nodes []Node, edges []Edge, box geom.Box, params Params) (*Engine, error) {
	if v == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "nil layout variant")
	}
	if !box.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration,
			"bounding box must have positive width and height (got %gx%g)", box.Width, box.Height)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		variant: v,
		params:  params,
		box:     box,
		byID:    make(map[string]*Body, len(nodes)),
	}
	if err := e.addBodies(nodes); err != nil {
		return nil, err
	}
	if v.UsesEdges() {
		if err := e.addEdges(edges); err != nil {
			return nil, err
		}
	}
	e.initialize(false)
	return e, nil
}

// NewNetwork builds a network-graph engine from DefaultParams and opts.
func NewNetwork(nodes []Node, edges []Edge, box geom.Box, opts ...Option) (*Engine, error) {
	return New(Base{}, nodes, edges, box, DefaultParams().Apply(opts...))
}

func (e *Engine) addBodies(nodes []Node) error {
	for i := range nodes {
		n := nodes[i]
		if err := errors.ValidateStruct(nodeSubject(i, n.ID), n); err != nil {
			return err
		}
		if n.Position != nil && !n.Position.IsFinite() {
			return errors.New(errors.ErrCodeInvalidConfiguration, "node %q: position is not finite", n.ID)
		}
		if _, dup := e.byID[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidConfiguration, "duplicate node id %q", n.ID)
		}
		b := &Body{
			ID:       n.ID,
			Group:    n.Group,
			Mass:     n.Mass,
			Radius:   n.Radius,
			Fixed:    n.Fixed,
			IsParent: n.IsParent,
		}
		if n.Position != nil {
			p := *n.Position
			b.origin = &p
			b.PlaceAt(p)
		}
		e.bodies = append(e.bodies, b)
		e.byID[b.ID] = b
	}
	return e.link()
}

func nodeSubject(i int, id string) string {
	if id == "" {
		return "node #" + itoa(i)
	}
	return "node " + quote(id)
}

func (e *Engine) addEdges(edges []Edge) error {
	for _, ed := range edges {
		if err := errors.ValidateStruct("edge "+quote(ed.From)+"->"+quote(ed.To), ed); err != nil {
			return err
		}
		from, ok := e.byID[ed.From]
		if !ok {
			return errors.New(errors.ErrCodeInvalidConfiguration, "edge references unknown node %q", ed.From)
		}
		to, ok := e.byID[ed.To]
		if !ok {
			return errors.New(errors.ErrCodeInvalidConfiguration, "edge references unknown node %q", ed.To)
		}
		w := ed.Weight
		if w == 0 {
			w = 1
		}
		e.edges = append(e.edges, edge{from: from, to: to, weight: w})
	}
	return nil
}

// link wires every child to its group's parent and orders parents first
// for integration.
func (e *Engine) link() error {
	parents := make(map[string]*Body)
	for _, b := range e.bodies {
		if !b.IsParent {
			continue
		}
		if other, dup := parents[b.Group]; dup {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"group %q has two parent nodes (%q and %q)", b.Group, other.ID, b.ID)
		}
		parents[b.Group] = b
	}

	e.order = e.order[:0]
	for _, b := range e.bodies {
		if b.IsParent {
			b.Parent = nil
			e.order = append(e.order, b)
		}
	}
	for _, b := range e.bodies {
		if !b.IsParent {
			b.Parent = parents[b.Group]
			e.order = append(e.order, b)
		}
	}
	return nil
}

// initialize enters Initializing: places unplaced bodies, clears
// accumulators and restarts the cooling schedule. With reset set, bodies
// return to their caller-supplied positions or are re-placed by policy.
func (e *Engine) initialize(reset bool) {
	e.state = Initializing
	if reset {
		for _, b := range e.bodies {
			b.placed = false
			if b.origin != nil {
				b.PlaceAt(*b.origin)
			}
		}
	}

	e.deriveConstants()

	var pending []*Body
	for _, b := range e.bodies {
		if !b.placed {
			pending = append(pending, b)
		}
	}
	if len(pending) > 0 {
		e.variant.Place(e, pending)
	}

	for _, b := range e.bodies {
		b.Prev = b.Pos
		b.Disp = geom.Vec{}
		b.Speed = 0
		b.Degree = b.Mass
		b.Neighbours = 0
	}
	e.restartCooling()
}

func (e *Engine) restartCooling() {
	e.temperature = e.startTemperature
	e.prevTemperature = e.startTemperature
	e.iteration = 0
	e.energy = 0
}

// deriveConstants recomputes k, the start temperature and the linear
// cooling step from the current parameters and node count.
func (e *Engine) deriveConstants() {
	n := float64(max(len(e.bodies), 1))

	e.k = e.params.LinkLength
	if e.k == 0 {
		e.k = math.Sqrt(e.box.Area() / n)
	}

	e.startTemperature = e.params.InitialTemperature
	if e.startTemperature == 0 {
		e.startTemperature = math.Sqrt(n)
	}
	e.linearStep = e.startTemperature / float64(e.params.MaxIterations+1)
}

// Step advances the simulation by one iteration. Once the simulation is
// Stable or Stopped it returns the same snapshot without moving anything.
func (e *Engine) Step() StepResult {
	if e.state.Terminal() {
		return e.result()
	}
	e.state = Iterating
	if len(e.bodies) == 0 {
		e.state = Stable
		return e.result()
	}

	e.variant.BeforeStep(e)
	e.repulsivePass()
	if e.variant.UsesEdges() && len(e.edges) > 0 {
		e.attractivePass()
	}
	if e.params.GravitationalConstant > 0 {
		e.gravityPass()
	}
	e.integrate()
	e.cool()
	e.iteration++

	switch {
	case e.isStable():
		e.state = Stable
	case e.iteration >= e.params.MaxIterations:
		e.state = Stopped
	}
	return e.result()
}

// isStable scales the temperature by system size so that large systems are
// not held to the same absolute threshold as small ones.
func (e *Engine) isStable() bool {
	diff := math.Abs(e.prevTemperature - e.temperature)
	scaled := 10 * e.temperature / math.Sqrt(float64(len(e.bodies)))
	return math.Abs(scaled) < 1 && diff < stabilityTolerance || e.temperature <= 0
}

func (e *Engine) result() StepResult {
	return StepResult{
		Positions:   e.Positions(),
		Stable:      e.state == Stable,
		State:       e.state,
		Iteration:   e.iteration,
		Temperature: e.temperature,
		Energy:      e.energy,
	}
}

// Reset returns to Initializing: caller-supplied positions are restored,
// every other node is re-placed by the variant's policy, and the cooling
// schedule restarts. Parameters are preserved.
func (e *Engine) Reset() {
	e.initialize(true)
}

// Restart revives the simulation from the current positions with the
// initial temperature, as after releasing a dragged node.
func (e *Engine) Restart() {
	e.deriveConstants()
	e.restartCooling()
	e.state = Initializing
}

// SetFixed pins the node at pos, or releases it when pos is nil. A pinned
// node moves immediately and stays put until released.
func (e *Engine) SetFixed(id string, pos *geom.Vec) error {
	b, ok := e.byID[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "no node with id %q", id)
	}
	if pos == nil {
		b.Fixed = false
		return nil
	}
	if !pos.IsFinite() {
		return errors.New(errors.ErrCodeInvalidConfiguration, "node %q: position is not finite", id)
	}
	b.Fixed = true
	b.PlaceAt(*pos)
	b.Speed = 0
	return nil
}

// UpdateParameters merges opts into the current parameters. The change is
// validated as a whole and takes effect on the next step; on error nothing
// changes. A finished simulation stays finished until Restart or Reset.
func (e *Engine) UpdateParameters(opts ...Option) error {
	next := e.params.Apply(opts...)
	if err := next.Validate(); err != nil {
		return err
	}
	e.params = next
	start := e.startTemperature
	e.deriveConstants()
	// Keep the running schedule; only a restart picks up a new start value.
	e.startTemperature = start
	e.linearStep = start / float64(e.params.MaxIterations+1)
	return nil
}

// AddNodes inserts nodes and re-enters Initializing. Existing nodes keep
// their positions; new ones are placed by policy.
func (e *Engine) AddNodes(nodes ...Node) error {
	before := len(e.bodies)
	if err := e.addBodies(nodes); err != nil {
		for _, b := range e.bodies[before:] {
			delete(e.byID, b.ID)
		}
		e.bodies = e.bodies[:before]
		_ = e.link()
		return err
	}
	e.initialize(false)
	return nil
}

// RemoveNode deletes a node and its edges, then re-enters Initializing.
func (e *Engine) RemoveNode(id string) error {
	b, ok := e.byID[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "no node with id %q", id)
	}
	delete(e.byID, id)
	e.bodies = slices.DeleteFunc(e.bodies, func(x *Body) bool { return x == b })
	e.edges = slices.DeleteFunc(e.edges, func(ed edge) bool { return ed.from == b || ed.to == b })
	if err := e.link(); err != nil {
		return err
	}
	e.initialize(false)
	return nil
}

// Kind returns the variant name.
func (e *Engine) Kind() string { return e.variant.Kind() }

// Params returns a copy of the current parameters.
func (e *Engine) Params() Params { return e.params }

// Box returns the bounding box.
func (e *Engine) Box() geom.Box { return e.box }

// K returns the ideal distance used by the force laws.
func (e *Engine) K() float64 { return e.k }

// State returns the lifecycle phase.
func (e *Engine) State() State { return e.state }

// Iteration returns the number of completed iterations since the last
// (re)initialization.
func (e *Engine) Iteration() int { return e.iteration }

// Temperature returns the current cooling temperature.
func (e *Engine) Temperature() float64 { return e.temperature }

// Energy returns the total distance moved in the last iteration.
func (e *Engine) Energy() float64 { return e.energy }

// Len returns the number of nodes.
func (e *Engine) Len() int { return len(e.bodies) }

// EdgeCount returns the number of edges taking part in attraction.
func (e *Engine) EdgeCount() int { return len(e.edges) }

// Bodies exposes the live bodies in input order for variants.
func (e *Engine) Bodies() []*Body { return e.bodies }

// Positions returns a fresh map of node ID to position.
func (e *Engine) Positions() map[string]geom.Vec {
	out := make(map[string]geom.Vec, len(e.bodies))
	for _, b := range e.bodies {
		out[b.ID] = b.Pos
	}
	return out
}

// Nodes returns snapshots of every node in input order.
func (e *Engine) Nodes() []NodeState {
	out := make([]NodeState, len(e.bodies))
	for i, b := range e.bodies {
		out[i] = b.snapshot()
	}
	return out
}

// Node returns the snapshot of one node.
func (e *Engine) Node(id string) (NodeState, bool) {
	b, ok := e.byID[id]
	if !ok {
		return NodeState{}, false
	}
	return b.snapshot(), true
}
