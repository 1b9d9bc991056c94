package usage

import (
	"sync"
	"time"
)

// Default rate limit applied to tracking calls.
const (
	DefaultRateLimit  = 10
	DefaultRateWindow = time.Minute
)

// RateLimiter allows at most limit events per key within a sliding window.
// It is an explicit object owned by a Tracker, not process-wide state.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	now      func() time.Time
	requests map[string][]time.Time
}

// NewRateLimiter returns a limiter. Non-positive arguments use the defaults.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &RateLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		requests: make(map[string][]time.Time),
	}
}

// Allow records an event for key and reports whether it fits in the window.
// Rejected events are not recorded. A nil limiter allows everything.
func (l *RateLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	start := now.Add(-l.window)

	kept := l.requests[key][:0]
	for _, t := range l.requests[key] {
		if t.After(start) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.limit {
		l.requests[key] = kept
		return false
	}
	l.requests[key] = append(kept, now)
	return true
}

// Reset forgets every event recorded for key.
func (l *RateLimiter) Reset(key string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.requests, key)
}
