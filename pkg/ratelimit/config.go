package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for rate limiting
type Config struct {
	// Limits per route category; "default" covers everything unmatched.
	Limits map[string]RateLimit `json:"limits"`

	RedisKeyPrefix string `json:"redisKeyPrefix"`

	Enabled bool `json:"enabled"`
}

// Route categories
const (
	CategoryAuthLogin  = "auth_login"
	CategoryAuth       = "auth"
	CategoryFleetRead  = "fleet_read"
	CategoryFleetWrite = "fleet_write"
	CategoryReports    = "reports"
	CategoryExport     = "export"
	CategoryHealth     = "health"
	CategoryDefault    = "default"
)

// DefaultConfig returns a default rate limiting configuration
func DefaultConfig() *Config {
	return &Config{
		Limits: map[string]RateLimit{
			CategoryAuthLogin:  {RequestsPerMinute: 5, BurstSize: 5, WindowSize: time.Minute},
			CategoryAuth:       {RequestsPerMinute: 30, BurstSize: 30, WindowSize: time.Minute},
			CategoryFleetRead:  {RequestsPerMinute: 120, BurstSize: 120, WindowSize: time.Minute},
			CategoryFleetWrite: {RequestsPerMinute: 30, BurstSize: 30, WindowSize: time.Minute},
			CategoryReports:    {RequestsPerMinute: 20, BurstSize: 20, WindowSize: time.Minute},
			CategoryExport:     {RequestsPerMinute: 5, BurstSize: 5, WindowSize: time.Minute},
			CategoryHealth:     {RequestsPerMinute: 600, BurstSize: 600, WindowSize: time.Minute},
			CategoryDefault:    {RequestsPerMinute: 60, BurstSize: 60, WindowSize: time.Minute},
		},
		RedisKeyPrefix: "ratelimit:",
		Enabled:        true,
	}
}

// LimitFor returns the limit of a category, falling back to the default one.
func (c *Config) LimitFor(category string) RateLimit {
	if limit, ok := c.Limits[category]; ok {
		return limit
	}
	if limit, ok := c.Limits[CategoryDefault]; ok {
		return limit
	}
	return RateLimit{RequestsPerMinute: 60, BurstSize: 60, WindowSize: time.Minute}
}

type routeRule struct {
	method   string // empty matches any method
	prefix   string
	category string
}

// Rules are checked in order; the first match wins.
var routeRules = []routeRule{
	{method: "POST", prefix: "/api/v1/auth/login", category: CategoryAuthLogin},
	{prefix: "/api/v1/auth", category: CategoryAuth},
	{prefix: "/api/v1/health", category: CategoryHealth},
	{method: "GET", prefix: "/api/v1/fleet/export", category: CategoryExport},
	{method: "GET", prefix: "/api/v1/fleet/vehicles/compliance", category: CategoryReports},
	{method: "GET", prefix: "/api/v1/fleet/vehicles/maintenance-predictions", category: CategoryReports},
	{method: "GET", prefix: "/api/v1/fleet", category: CategoryFleetRead},
	{prefix: "/api/v1/fleet", category: CategoryFleetWrite},
}

// Category maps a request to its rate limit category.
func Category(method, path string) string {
	path = NormalizePath(path)
	for _, rule := range routeRules {
		if rule.method != "" && rule.method != method {
			continue
		}
		if path == rule.prefix || strings.HasPrefix(path, rule.prefix+"/") {
			return rule.category
		}
	}
	return CategoryDefault
}

// NormalizePath replaces ID-like segments with "*" so one route shares one
// bucket regardless of the record it targets.
func NormalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if isID(segment) {
			segments[i] = "*"
		}
	}
	return strings.Join(segments, "/")
}

func isID(s string) bool {
	if s == "" {
		return false
	}
	if len(s) == 24 && isHex(s) {
		return true
	}
	if len(s) == 36 && s[8] == '-' && s[13] == '-' && s[18] == '-' && s[23] == '-' {
		return true
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
