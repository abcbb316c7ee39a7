package cache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a cache.
type Option func(*options)

type options struct {
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	registerer      prometheus.Registerer
	name            string
}

// WithTTL sets how long entries live.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

// WithCleanupInterval sets how often expired entries are removed.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMetrics registers cache counters with reg, labelled with name.
// A nil registerer disables metrics.
func WithMetrics(reg prometheus.Registerer, name string) Option {
	return func(o *options) {
		o.registerer = reg
		o.name = name
	}
}
