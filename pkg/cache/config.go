package cache

import "time"

// CacheConfig holds configuration for cache TTL values and key layout
type CacheConfig struct {
	VehicleDataTTL time.Duration `json:"vehicleDataTTL"`
	ListTTL        time.Duration `json:"listTTL"`
	KeyPrefix      string        `json:"keyPrefix"`
	TagPrefix      string        `json:"tagPrefix"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		VehicleDataTTL: 5 * time.Minute,
		ListTTL:        2 * time.Minute,
		KeyPrefix:      "pel:fleet:",
		TagPrefix:      "pel:tag:",
	}
}
