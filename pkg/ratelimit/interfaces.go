package ratelimit

import (
	"context"
	"time"
)

// RateLimiter decides whether a client may call a route category now.
type RateLimiter interface {
	Allow(ctx context.Context, clientID, category string) (Decision, error)
	Config() *Config
	GetStats() RateLimiterStats
}

// RateLimit allows BurstSize requests per WindowSize.
type RateLimit struct {
	RequestsPerMinute int           `json:"requestsPerMinute"`
	BurstSize         int           `json:"burstSize"`
	WindowSize        time.Duration `json:"windowSize"`
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Limit      RateLimit
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiterStats provides statistics about rate limiting
type RateLimiterStats struct {
	TotalRequests   int64   `json:"totalRequests"`
	BlockedRequests int64   `json:"blockedRequests"`
	BlockedPercent  float64 `json:"blockedPercent"`
}

func statsSnapshot(total, blocked int64) RateLimiterStats {
	stats := RateLimiterStats{TotalRequests: total, BlockedRequests: blocked}
	if total > 0 {
		stats.BlockedPercent = float64(blocked) / float64(total) * 100
	}
	return stats
}
