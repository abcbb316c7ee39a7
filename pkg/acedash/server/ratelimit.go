package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepThreshold is the number of tracked clients above which idle limiters
// are dropped.
const sweepThreshold = 1024

// clientLimiter keeps one token bucket per client. A bucket holds requests
// tokens and refills completely over window.
type clientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	window    time.Duration
	now       func() time.Time
	clients   map[string]*rate.Limiter
	lastSweep time.Time
}

func newClientLimiter(requests int, window time.Duration, now func() time.Time) *clientLimiter {
	return &clientLimiter{
		limit:     rate.Every(window / time.Duration(requests)),
		burst:     requests,
		window:    window,
		now:       now,
		clients:   make(map[string]*rate.Limiter),
		lastSweep: now(),
	}
}

// allow reports whether key may make a request now, and otherwise how long
// until it may.
func (l *clientLimiter) allow(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.clients[key]
	if !ok {
		l.sweep(now)
		lim = rate.NewLimiter(l.limit, l.burst)
		l.clients[key] = lim
	}

	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops limiters that have refilled completely, at most once per window.
func (l *clientLimiter) sweep(now time.Time) {
	if len(l.clients) < sweepThreshold || now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, lim := range l.clients {
		if lim.TokensAt(now) >= float64(l.burst) {
			delete(l.clients, key)
		}
	}
	l.lastSweep = now
}

func (l *clientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
