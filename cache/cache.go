package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Backend stores raw cache entries. The default is in-memory; long-running
// headless clients can point at Redis instead so restarts keep warm data.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// Key joins query-key parts into a single cache key, e.g.
// Key("business-services", businessID) -> "business-services:abc".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Cache is a keyed JSON cache with per-entry staleness windows and
// prefix-based invalidation. Staleness is a freshness heuristic, not a
// correctness requirement; mutations must invalidate affected prefixes.
type Cache struct {
	backend Backend
}

func New(backend Backend) *Cache {
	return &Cache{backend: backend}
}

// GetJSON loads the entry under key into v. A missing or stale entry
// reports false with no error.
func (c *Cache) GetJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	data, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("cache get %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("cache decode %q: %w", key, err)
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %q: %w", key, err)
	}
	if err := c.backend.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Invalidate drops every entry whose key starts with one of the prefixes.
func (c *Cache) Invalidate(ctx context.Context, prefixes ...string) error {
	for _, p := range prefixes {
		if err := c.backend.DeletePrefix(ctx, p); err != nil {
			return fmt.Errorf("cache invalidate %q: %w", p, err)
		}
	}
	return nil
}

func (c *Cache) Close() error {
	return c.backend.Close()
}
