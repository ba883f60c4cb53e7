package cache

import (
	"context"
	"time"
)

// NullCache discards every layout it is given, so each run re-simulates the
// chart. The CLI uses it for --no-cache and when no cache directory exists.
type NullCache struct{}

// NewNullCache returns a cache that never holds a layout.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get reports a miss for every layout key.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the encoded layout.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
