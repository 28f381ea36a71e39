package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"erp-backend/internal/models"
	"erp-backend/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Tags attached to cached entries
const (
	TagVehicleLists = "vehicles:lists"
)

// VehicleTag is the tag shared by every entry derived from one vehicle.
func VehicleTag(vehicleID string) string {
	return "vehicle:" + vehicleID
}

// RedisCacheManager implements CacheManager using Redis
type RedisCacheManager struct {
	client ClientProvider
	config CacheConfig
	stats  *cacheStats
	log    *log.Entry
}

// cacheStats tracks cache performance metrics
type cacheStats struct {
	mu            sync.RWMutex
	totalHits     int64
	totalMisses   int64
	evictionCount int64
}

// NewRedisCacheManager creates a new Redis-backed cache manager
func NewRedisCacheManager(client ClientProvider, config CacheConfig) *RedisCacheManager {
	return &RedisCacheManager{
		client: client,
		config: config,
		stats:  &cacheStats{},
		log:    logger.New("cache"),
	}
}

// GetVehicle returns the cached vehicle, or nil on a miss.
func (r *RedisCacheManager) GetVehicle(ctx context.Context, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	found, err := r.get(ctx, r.buildKey("vehicle", vehicleID), &vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle from cache: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &vehicle, nil
}

// SetVehicle stores a vehicle in cache with TTL
func (r *RedisCacheManager) SetVehicle(ctx context.Context, vehicle *models.Vehicle, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.config.VehicleDataTTL
	}
	id := vehicle.ID.Hex()
	tags := []string{VehicleTag(id), "status:" + vehicle.Status}
	if vehicle.AssignedSite != "" {
		tags = append(tags, "site:"+strings.ToLower(vehicle.AssignedSite))
	}
	if err := r.set(ctx, r.buildKey("vehicle", id), vehicle, ttl, tags...); err != nil {
		return fmt.Errorf("failed to set vehicle in cache: %w", err)
	}
	return nil
}

// InvalidateVehicle drops the vehicle entry and everything tagged with it.
func (r *RedisCacheManager) InvalidateVehicle(ctx context.Context, vehicleID string) error {
	if err := r.Delete(ctx, r.buildKey("vehicle", vehicleID)); err != nil {
		return err
	}
	return r.InvalidateByTag(ctx, VehicleTag(vehicleID))
}

// Get retrieves a generic value from cache
func (r *RedisCacheManager) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return r.get(ctx, r.buildKey("generic", key), dest)
}

// Set stores a generic value in cache
func (r *RedisCacheManager) Set(ctx context.Context, key string, value interface{}, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		ttl = r.config.ListTTL
	}
	return r.set(ctx, r.buildKey("generic", key), value, ttl, tags...)
}

func (r *RedisCacheManager) get(ctx context.Context, cacheKey string, dest interface{}) (bool, error) {
	data, err := r.client.GetClient().Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			r.recordMiss()
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	r.recordHit()
	return true, nil
}

func (r *RedisCacheManager) set(ctx context.Context, cacheKey string, value interface{}, ttl time.Duration, tags ...string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := r.client.GetClient().Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		return err
	}

	if len(tags) > 0 {
		if err := r.tagKey(ctx, cacheKey, ttl, tags...); err != nil {
			r.log.WithError(err).WithField("key", cacheKey).Warn("Failed to tag cache key")
		}
	}
	return nil
}

// Delete removes a key from cache
func (r *RedisCacheManager) Delete(ctx context.Context, key string) error {
	if err := r.removeKeyTags(ctx, key); err != nil {
		r.log.WithError(err).WithField("key", key).Warn("Failed to remove tags for key")
	}

	return r.client.GetClient().Del(ctx, key).Err()
}

// tagKey records the key under each tag. Tag sets outlive the data so a
// late invalidation still finds the key.
func (r *RedisCacheManager) tagKey(ctx context.Context, key string, ttl time.Duration, tags ...string) error {
	pipe := r.client.GetClient().Pipeline()

	keyTagsKey := r.buildTagKey("key_tags", key)
	pipe.SAdd(ctx, keyTagsKey, tags)
	pipe.Expire(ctx, keyTagsKey, ttl*2)

	for _, tag := range tags {
		tagKeysKey := r.buildTagKey("tag_keys", tag)
		pipe.SAdd(ctx, tagKeysKey, key)
		pipe.Expire(ctx, tagKeysKey, ttl*2)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// InvalidateByTag removes all keys associated with a tag
func (r *RedisCacheManager) InvalidateByTag(ctx context.Context, tag string) error {
	client := r.client.GetClient()
	tagKeysKey := r.buildTagKey("tag_keys", tag)

	keys, err := client.SMembers(ctx, tagKeysKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get keys for tag %s: %w", tag, err)
	}

	if len(keys) == 0 {
		return nil
	}

	pipe := client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
		pipe.Del(ctx, r.buildTagKey("key_tags", key))
	}
	pipe.Del(ctx, tagKeysKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate keys for tag %s: %w", tag, err)
	}

	r.stats.mu.Lock()
	r.stats.evictionCount += int64(len(keys))
	r.stats.mu.Unlock()

	return nil
}

// GetCacheStats returns cache performance statistics
func (r *RedisCacheManager) GetCacheStats(ctx context.Context) CacheStats {
	r.stats.mu.RLock()
	totalHits := r.stats.totalHits
	totalMisses := r.stats.totalMisses
	evictionCount := r.stats.evictionCount
	r.stats.mu.RUnlock()

	total := totalHits + totalMisses
	var hitRate, missRate float64
	if total > 0 {
		hitRate = float64(totalHits) / float64(total)
		missRate = float64(totalMisses) / float64(total)
	}

	client := r.client.GetClient()

	var memoryUsage int64
	if info, err := client.Info(ctx, "memory").Result(); err == nil {
		for _, line := range strings.Split(info, "\n") {
			if strings.HasPrefix(line, "used_memory:") {
				value := strings.TrimSpace(strings.TrimPrefix(line, "used_memory:"))
				if n, err := strconv.ParseInt(value, 10, 64); err == nil {
					memoryUsage = n
				}
			}
		}
	}

	keyCount := 0
	iter := client.Scan(ctx, 0, r.config.KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keyCount++
	}

	return CacheStats{
		HitRate:       hitRate,
		MissRate:      missRate,
		MemoryUsage:   memoryUsage,
		KeyCount:      keyCount,
		EvictionCount: int(evictionCount),
		TotalHits:     totalHits,
		TotalMisses:   totalMisses,
	}
}

// HealthCheck verifies cache connectivity
func (r *RedisCacheManager) HealthCheck(ctx context.Context) error {
	return r.client.GetClient().Ping(ctx).Err()
}

func (r *RedisCacheManager) buildKey(keyType, identifier string) string {
	return fmt.Sprintf("%s%s:%s", r.config.KeyPrefix, keyType, identifier)
}

func (r *RedisCacheManager) buildTagKey(keyType, identifier string) string {
	return fmt.Sprintf("%s%s:%s", r.config.TagPrefix, keyType, identifier)
}

func (r *RedisCacheManager) recordHit() {
	r.stats.mu.Lock()
	r.stats.totalHits++
	r.stats.mu.Unlock()
}

func (r *RedisCacheManager) recordMiss() {
	r.stats.mu.Lock()
	r.stats.totalMisses++
	r.stats.mu.Unlock()
}

func (r *RedisCacheManager) removeKeyTags(ctx context.Context, key string) error {
	client := r.client.GetClient()
	keyTagsKey := r.buildTagKey("key_tags", key)

	tags, err := client.SMembers(ctx, keyTagsKey).Result()
	if err != nil {
		return err
	}

	pipe := client.Pipeline()
	for _, tag := range tags {
		pipe.SRem(ctx, r.buildTagKey("tag_keys", tag), key)
	}
	pipe.Del(ctx, keyTagsKey)

	_, err = pipe.Exec(ctx)
	return err
}
