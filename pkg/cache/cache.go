// Package cache stores finished layouts so that re-running an unchanged
// chart with unchanged parameters skips the simulation.
//
// Keys are derived from the chart contents and every input that affects
// the result (kind, box, parameters, seed) by [Keyer.LayoutKey]. Values are
// serialized graph.Layout documents.
//
// Two implementations are provided: [FileCache] for the CLI and
// [NullCache] for --no-cache and tests.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long cached layouts stay valid.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// LayoutKeyOpts lists the simulation inputs that change a layout.
type LayoutKeyOpts struct {
	Kind          string  `json:"kind"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	MaxIterations int     `json:"max_iterations"`
	Seed          uint64  `json:"seed"`

	// ParamsHash fingerprints the merged simulation overrides.
	ParamsHash string `json:"params_hash,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout for a chart hash and options.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes every key component with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}
