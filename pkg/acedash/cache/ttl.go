// Package cache provides an in-memory TTL cache with background cleanup.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Default timings.
const (
	DefaultTTL             = time.Hour
	DefaultCleanupInterval = 10 * time.Minute
)

// ErrEmptyKey is returned when storing under an empty key.
var ErrEmptyKey = errors.New("cache key cannot be empty")

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	Size      int
}

// TTL is a thread-safe cache whose entries expire a fixed duration after
// they are stored. Expired entries are never returned and are removed by a
// background goroutine until Close is called.
type TTL[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	items   map[string]entry[V]
	now     func() time.Time
	metrics *cacheMetrics

	hits, misses, sets, evictions atomic.Int64

	shutdown  chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a TTL cache and starts its cleanup goroutine, which stops
// when ctx is done or Close is called.
func New[V any](ctx context.Context, opts ...Option) (*TTL[V], error) {
	o := options{
		ttl:             DefaultTTL,
		cleanupInterval: DefaultCleanupInterval,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", o.ttl)
	}
	if o.cleanupInterval <= 0 {
		return nil, fmt.Errorf("cache cleanup interval must be positive, got %s", o.cleanupInterval)
	}

	var metrics *cacheMetrics
	if o.registerer != nil {
		var err error
		metrics, err = newCacheMetrics(o.registerer, o.name)
		if err != nil {
			return nil, fmt.Errorf("register cache metrics: %w", err)
		}
	}

	c := &TTL[V]{
		ttl:      o.ttl,
		items:    make(map[string]entry[V]),
		now:      o.now,
		metrics:  metrics,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.cleanup(ctx, o.cleanupInterval)
	return c, nil
}

// Get returns the value stored under key if it has not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if ok && c.now().Before(e.expiresAt) {
		c.hits.Add(1)
		c.metrics.recordHit()
		return e.value, true
	}
	if ok {
		c.mu.Lock()
		if cur, still := c.items[key]; still && !c.now().Before(cur.expiresAt) {
			delete(c.items, key)
			c.evictions.Add(1)
			c.metrics.recordEviction()
			c.metrics.updateSize(len(c.items))
		}
		c.mu.Unlock()
	}

	c.misses.Add(1)
	c.metrics.recordMiss()
	var zero V
	return zero, false
}

// Set stores value under key for the cache's TTL.
func (c *TTL[V]) Set(key string, value V) error {
	if key == "" {
		return ErrEmptyKey
	}
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
	size := len(c.items)
	c.mu.Unlock()

	c.sets.Add(1)
	c.metrics.recordSet()
	c.metrics.updateSize(size)
	return nil
}

// Delete removes key and reports whether it was present.
func (c *TTL[V]) Delete(key string) bool {
	c.mu.Lock()
	_, ok := c.items[key]
	delete(c.items, key)
	size := len(c.items)
	c.mu.Unlock()

	c.metrics.updateSize(size)
	return ok
}

// Flush removes every entry.
func (c *TTL[V]) Flush() {
	c.mu.Lock()
	c.items = make(map[string]entry[V])
	c.mu.Unlock()

	c.metrics.updateSize(0)
}

// Len returns the number of stored entries, including expired entries not
// yet cleaned up.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns a snapshot of cache activity.
func (c *TTL[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Sets:      c.sets.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
	}
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *TTL[V]) Close() error {
	c.closeOnce.Do(func() { close(c.shutdown) })

	select {
	case <-c.done:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for cleanup goroutine to finish")
	}
}

func (c *TTL[V]) cleanup(ctx context.Context, interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.shutdown:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

// removeExpired drops every expired entry and returns how many it removed.
func (c *TTL[V]) removeExpired() int {
	now := c.now()

	c.mu.Lock()
	removed := 0
	for key, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	size := len(c.items)
	c.mu.Unlock()

	if removed > 0 {
		c.evictions.Add(int64(removed))
		c.metrics.recordEvictions(removed)
		c.metrics.updateSize(size)
	}
	return removed
}
