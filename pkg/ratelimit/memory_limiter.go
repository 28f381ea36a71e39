package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryRateLimiter keeps fixed windows in process memory. It is used when
// the service runs without Redis, so limits are per instance.
type MemoryRateLimiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	windows map[string]*window
	total   atomic.Int64
	blocked atomic.Int64
}

// NewMemoryRateLimiter creates a new in-memory rate limiter
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &MemoryRateLimiter{
		config:  config,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

func (r *MemoryRateLimiter) Config() *Config { return r.config }

func (r *MemoryRateLimiter) Allow(_ context.Context, clientID, category string) (Decision, error) {
	limit := r.config.LimitFor(category)
	if !r.config.Enabled {
		return Decision{Allowed: true, Limit: limit, Remaining: limit.BurstSize}, nil
	}

	r.total.Add(1)
	now := r.now()
	key := clientID + ":" + category

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[key]
	if !ok || now.Sub(w.start) >= limit.WindowSize {
		w = &window{start: now}
		r.windows[key] = w
	}

	if w.count >= limit.BurstSize {
		r.blocked.Add(1)
		return Decision{
			Limit:      limit,
			RetryAfter: w.start.Add(limit.WindowSize).Sub(now),
		}, nil
	}

	w.count++
	return Decision{Allowed: true, Limit: limit, Remaining: limit.BurstSize - w.count}, nil
}

// Prune drops windows older than an hour. Callers run it periodically.
func (r *MemoryRateLimiter) Prune() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, w := range r.windows {
		if now.Sub(w.start) >= time.Hour {
			delete(r.windows, key)
			removed++
		}
	}
	return removed
}

func (r *MemoryRateLimiter) GetStats() RateLimiterStats {
	return statsSnapshot(r.total.Load(), r.blocked.Load())
}
