package registry

import (
	"slices"
	"testing"

	"github.com/matzehuels/packforce/pkg/core/geom"
	"github.com/matzehuels/packforce/pkg/core/layout"
	"github.com/matzehuels/packforce/pkg/core/layout/packed"
	"github.com/matzehuels/packforce/pkg/errors"
)

func TestDefaultKinds(t *testing.T) {
	got := Default().Kinds()
	want := []string{"networkgraph", "packedbubble"}
	if !slices.Equal(got, want) {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
}

func TestGetUnknownKind(t *testing.T) {
	r := Default()
	before := r.Kinds()

	ctor, err := r.Get("nonexistent")
	if ctor != nil {
		t.Error("Get(nonexistent) returned a constructor")
	}
	if !errors.Is(err, errors.ErrCodeUnknownLayoutKind) {
		t.Fatalf("Get(nonexistent) error = %v, want UNKNOWN_LAYOUT_KIND", err)
	}
	if after := r.Kinds(); !slices.Equal(before, after) {
		t.Errorf("Kinds() changed from %v to %v after failed lookup", before, after)
	}
	if r.Has("nonexistent") {
		t.Error("failed lookup registered the kind")
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	r := Default()
	for _, kind := range []string{"PackedBubble", " packedbubble ", "NETWORKGRAPH"} {
		if _, err := r.Get(kind); err != nil {
			t.Errorf("Get(%q): %v", kind, err)
		}
	}
}

func TestRegister(t *testing.T) {
	r := New()
	ctor := Constructor(packed.New)

	tests := []struct {
		name string
		kind string
		ctor Constructor
		ok   bool
	}{
		{"Valid", "bubbles", ctor, true},
		{"Duplicate", "Bubbles", ctor, false},
		{"EmptyName", "  ", ctor, false},
		{"NilConstructor", "other", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.kind, tt.ctor)
			if tt.ok && err != nil {
				t.Fatalf("Register: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
				t.Errorf("Register error = %v, want INVALID_CONFIGURATION", err)
			}
		})
	}
	if got := r.Kinds(); !slices.Equal(got, []string{"bubbles"}) {
		t.Errorf("Kinds() = %v, want [bubbles]", got)
	}
}

func TestBuild(t *testing.T) {
	r := Default()
	nodes := []layout.Node{{ID: "a", Mass: 1, Radius: 5}, {ID: "b", Mass: 1, Radius: 5}}

	e, err := r.Build(packed.Kind, nodes, nil, geom.NewBox(200, 200))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if e.Kind() != packed.Kind {
		t.Errorf("Kind() = %q, want %q", e.Kind(), packed.Kind)
	}

	if _, err := r.Build("nonexistent", nodes, nil, geom.NewBox(200, 200)); !errors.Is(err, errors.ErrCodeUnknownLayoutKind) {
		t.Errorf("Build(nonexistent) error = %v, want UNKNOWN_LAYOUT_KIND", err)
	}

	fallback, err := r.Get(Fallback)
	if err != nil {
		t.Fatalf("Get(Fallback): %v", err)
	}
	if _, err := fallback(nodes, []layout.Edge{{From: "a", To: "b"}}, geom.NewBox(200, 200)); err != nil {
		t.Errorf("fallback constructor: %v", err)
	}
}
