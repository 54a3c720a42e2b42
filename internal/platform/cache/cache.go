// Package cache holds fetched lists and records between page renders so a
// remount does not refetch. It is the only shared mutable state in the
// process; components never write it directly, they invalidate after a
// successful mutation and let the next read repopulate it.
package cache

import (
	"sync"
	"time"
)

// Freshness classifies a cached entry at read time.
type Freshness int

const (
	// Miss means no usable entry exists.
	Miss Freshness = iota
	// Fresh entries are served without contacting the remote store.
	Fresh
	// Stale entries are past the freshness window but still retained; they
	// are only served when a refetch fails.
	Stale
)

type entry struct {
	value    any
	storedAt time.Time
}

type Cache struct {
	mu        sync.Mutex
	freshFor  time.Duration
	retainFor time.Duration
	now       func() time.Time
	entries   map[string]entry
}

type Option func(*Cache)

// WithClock overrides the time source. Tests use it to age entries.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

func New(freshFor, retainFor time.Duration, opts ...Option) *Cache {
	c := &Cache{
		freshFor:  freshFor,
		retainFor: retainFor,
		now:       time.Now,
		entries:   map[string]entry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key and its freshness. Entries older than
// the retention window are dropped and reported as a miss.
func (c *Cache) Get(key string) (any, Freshness) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, Miss
	}
	age := c.now().Sub(e.storedAt)
	if age > c.retainFor {
		delete(c.entries, key)
		return nil, Miss
	}
	if age > c.freshFor {
		return e.value, Stale
	}
	return e.value, Fresh
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}

// Invalidate marks key stale-beyond-retention so the next read refetches.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
