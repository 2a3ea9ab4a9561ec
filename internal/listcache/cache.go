// Package listcache memoizes list queries behind a single cache with
// explicit invalidation. Mutation sites invalidate the keys they affect;
// readers always go through Get so a stale list can never outlive the
// mutation that changed it.
package listcache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gitxyzlabs/levoyageur/internal/logging"
)

// Key identifies one cached list.
type Key string

// LocationsKey covers the full curated location list.
func LocationsKey() Key { return "locations" }

// AwardRecordsKey covers the full award record list.
func AwardRecordsKey() Key { return "award_records" }

// FavoritesKey covers one user's favorite ids.
func FavoritesKey(userID string) Key { return Key("favorites:" + userID) }

// WantToGoKey covers one user's want-to-go list.
func WantToGoKey(userID string) Key { return Key("want_to_go:" + userID) }

// Cache provides thread-safe memoization keyed by Key.
type Cache struct {
	logger  *slog.Logger
	mu      sync.Mutex
	entries map[Key]any
}

// New creates an empty cache.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		logger:  logging.NewComponentLogger(logger, "listcache"),
		entries: make(map[Key]any),
	}
}

// Get returns the cached value for key, calling fill on a miss and storing
// the result. A nil cache degrades to calling fill directly. Concurrent
// misses may both call fill; the later store wins, which is harmless because
// fill is a pure read.
func Get[T any](ctx context.Context, c *Cache, key Key, fill func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return fill(ctx)
	}

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok {
		value, ok := cached.(T)
		c.mu.Unlock()
		if ok {
			return value, nil
		}
		var zero T
		return zero, fmt.Errorf("listcache: entry for %q holds %T", key, cached)
	}
	c.mu.Unlock()

	value, err := fill(ctx)
	if err != nil {
		return value, err
	}

	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()

	c.logger.Debug("filled list", logging.String("key", string(key)))
	return value, nil
}

// Invalidate drops the given keys. Unknown keys are ignored.
func (c *Cache) Invalidate(keys ...Key) {
	if c == nil {
		return
	}
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.logger.Debug("invalidated list", logging.String("key", string(key)))
	}
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[Key]any)
	c.mu.Unlock()

	c.logger.Debug("invalidated all lists")
}

// Len returns the number of cached lists.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
