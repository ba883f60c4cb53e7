// Package registry maps layout-kind names to engine constructors.
//
// A chart series selects its layout by name ("networkgraph",
// "packedbubble"). Registries are explicit values: callers build one with
// [Default] or [New] and pass it to whatever drives the simulation, so
// tests and embedders can add kinds without touching shared state.
//
//	reg := registry.Default()
//	ctor, err := reg.Get("packedbubble")
//	if errors.Is(err, errors.ErrCodeUnknownLayoutKind) {
//	    ctor, _ = reg.Get(registry.Fallback)
//	}
//	engine, err := ctor(nodes, nil, box)
package registry

import (
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/packforce/pkg/core/geom"
	"github.com/matzehuels/packforce/pkg/core/layout"
	"github.com/matzehuels/packforce/pkg/core/layout/packed"
	"github.com/matzehuels/packforce/pkg/errors"
)

// Fallback is the kind callers should use when a lookup fails.
const Fallback = layout.KindNetwork

// Constructor builds an engine for one layout kind. Kinds without edges
// ignore the edges argument.
type Constructor func(nodes []layout.Node, edges []layout.Edge, box geom.Box, opts ...layout.Option) (*layout.Engine, error)

// Registry is a concurrency-safe kind -> constructor table.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Constructor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{kinds: make(map[string]Constructor)}
}

// Default returns a registry holding the built-in kinds.
func Default() *Registry {
	r := New()
	_ = r.Register(layout.KindNetwork, layout.NewNetwork)
	_ = r.Register(packed.Kind, packed.New)
	return r
}

// Register adds a kind. Kind names are case-insensitive. Registering an
// empty name, a nil constructor or an existing kind fails with
// INVALID_CONFIGURATION.
func (r *Registry) Register(kind string, ctor Constructor) error {
	key := normalize(kind)
	if key == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "layout kind name is empty")
	}
	if ctor == nil {
		return errors.New(errors.ErrCodeInvalidConfiguration, "layout kind %q: nil constructor", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.kinds[key]; exists {
		return errors.New(errors.ErrCodeInvalidConfiguration, "layout kind %q already registered", kind)
	}
	r.kinds[key] = ctor
	return nil
}

// Get returns the constructor for kind, or an UNKNOWN_LAYOUT_KIND error.
// A failed lookup leaves the registry untouched.
func (r *Registry) Get(kind string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.kinds[normalize(kind)]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownLayoutKind,
			"unknown layout kind %q (available: %s)", kind, strings.Join(r.sortedKinds(), ", "))
	}
	return ctor, nil
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.kinds[normalize(kind)]
	return ok
}

// Kinds lists the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedKinds()
}

// Build looks up kind and constructs an engine in one call.
func (r *Registry) Build(kind string, nodes []layout.Node, edges []layout.Edge, box geom.Box, opts ...layout.Option) (*layout.Engine, error) {
	ctor, err := r.Get(kind)
	if err != nil {
		return nil, err
	}
	return ctor(nodes, edges, box, opts...)
}

func (r *Registry) sortedKinds() []string {
	out := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func normalize(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind))
}
