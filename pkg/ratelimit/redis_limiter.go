package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindow counts requests in a window that starts with the first request
// and returns {allowed, remaining, retry_after_ms}.
var fixedWindow = redis.NewScript(`
	local key = KEYS[1]
	local burst_size = tonumber(ARGV[1])
	local window_size = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local count = tonumber(redis.call('HGET', key, 'count')) or 0
	local window_start = tonumber(redis.call('HGET', key, 'window_start')) or now

	if now - window_start >= window_size then
		count = 0
		window_start = now
	end

	local allowed = count < burst_size
	if allowed then
		count = count + 1
	end

	local retry_after = 0
	if not allowed then
		retry_after = (window_start + window_size) - now
	end

	redis.call('HSET', key, 'count', count, 'window_start', window_start)
	redis.call('PEXPIRE', key, window_size)

	return {allowed and 1 or 0, burst_size - count, retry_after}
`)

// RedisRateLimiter implements RateLimiter using Redis as the backend
type RedisRateLimiter struct {
	client  func() *redis.Client
	config  *Config
	now     func() time.Time
	total   atomic.Int64
	blocked atomic.Int64
}

// NewRedisRateLimiter creates a new Redis-backed rate limiter
func NewRedisRateLimiter(client *redis.Client, config *Config) *RedisRateLimiter {
	return newRedisRateLimiter(func() *redis.Client { return client }, config)
}

// ClientProvider hands out the current client of a reconnecting wrapper.
type ClientProvider interface {
	GetClient() *redis.Client
}

// NewRedisRateLimiterFrom resolves the client on every check, so it keeps
// working after the provider swaps in a reconnected client.
func NewRedisRateLimiterFrom(provider ClientProvider, config *Config) *RedisRateLimiter {
	return newRedisRateLimiter(provider.GetClient, config)
}

func newRedisRateLimiter(client func() *redis.Client, config *Config) *RedisRateLimiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &RedisRateLimiter{
		client: client,
		config: config,
		now:    time.Now,
	}
}

func (r *RedisRateLimiter) Config() *Config { return r.config }

// Allow checks if a request should be allowed based on rate limits
func (r *RedisRateLimiter) Allow(ctx context.Context, clientID, category string) (Decision, error) {
	limit := r.config.LimitFor(category)
	if !r.config.Enabled {
		return Decision{Allowed: true, Limit: limit, Remaining: limit.BurstSize}, nil
	}

	r.total.Add(1)

	client := r.client()
	if client == nil {
		return Decision{}, errors.New("rate limit check failed: redis client not initialized")
	}

	key := fmt.Sprintf("%s%s:%s", r.config.RedisKeyPrefix, clientID, category)
	result, err := fixedWindow.Run(ctx, client, []string{key},
		limit.BurstSize,
		limit.WindowSize.Milliseconds(),
		r.now().UnixMilli(),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit check failed: %w", err)
	}
	if len(result) != 3 {
		return Decision{}, fmt.Errorf("unexpected script result: %v", result)
	}

	decision := Decision{
		Allowed:    result[0] == 1,
		Limit:      limit,
		Remaining:  int(result[1]),
		RetryAfter: time.Duration(result[2]) * time.Millisecond,
	}
	if !decision.Allowed {
		r.blocked.Add(1)
	}
	return decision, nil
}

// GetStats returns current rate limiter statistics
func (r *RedisRateLimiter) GetStats() RateLimiterStats {
	return statsSnapshot(r.total.Load(), r.blocked.Load())
}
