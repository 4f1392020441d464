// Package ratelimit provides a sliding-window request limiter.
// Each key keeps the timestamps of its recent hits; a hit is allowed while
// the count inside the window stays at or under the limit.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window counter keyed by operation. Safe for
// concurrent use.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

// New creates a Limiter allowing limit hits per key inside window.
func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records a hit for key and reports whether it stays within the limit.
// The hit is recorded either way, so hammering a limited key keeps it limited.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	kept := l.prune(key, now)
	kept = append(kept, now)
	l.hits[key] = kept

	return len(kept) <= l.limit
}

// Remaining reports how many hits key has left in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.prune(key, l.now())
	l.hits[key] = kept

	remaining := l.limit - len(kept)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// prune drops timestamps older than the window. Caller holds the lock.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	kept := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
