package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port             string        `koanf:"port"`
	MongoURI         string        `koanf:"mongo_uri"`
	JWTSecret        string        `koanf:"jwt_secret"`
	JWTExpiry        time.Duration `koanf:"jwt_expiry"`
	AllowedOrigins   []string      `koanf:"allowed_origins"`
	LogLevel         string        `koanf:"log_level"`
	LogFormat        string        `koanf:"log_format"`
	RateLimitEnabled bool          `koanf:"rate_limit_enabled"`
	Redis            RedisConfig   `koanf:"redis"`
	Fleet            FleetConfig   `koanf:"fleet"`
}

// RedisConfig configures the shared Redis client. Caching and distributed
// rate limiting are disabled when neither URL nor Host is set.
type RedisConfig struct {
	URL                 string        `koanf:"url"`
	Host                string        `koanf:"host"`
	Port                string        `koanf:"port"`
	Password            string        `koanf:"password"`
	DB                  int           `koanf:"db"`
	PoolSize            int           `koanf:"pool_size"`
	MinIdleConns        int           `koanf:"min_idle_conns"`
	MaxRetries          int           `koanf:"max_retries"`
	RetryDelay          time.Duration `koanf:"retry_delay"`
	DialTimeout         time.Duration `koanf:"dial_timeout"`
	ReadTimeout         time.Duration `koanf:"read_timeout"`
	WriteTimeout        time.Duration `koanf:"write_timeout"`
	PoolTimeout         time.Duration `koanf:"pool_timeout"`
	HealthCheckInterval time.Duration `koanf:"health_check_interval"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

// FleetConfig tunes the compliance scan and the maintenance forecast.
type FleetConfig struct {
	ComplianceHorizonDays int    `koanf:"compliance_horizon_days"`
	UsageWindowDays       int    `koanf:"usage_window_days"`
	UrgentThresholdDays   int    `koanf:"urgent_threshold_days"`
	DefaultIntervalKm     int    `koanf:"default_interval_km"`
	DefaultIntervalDays   int    `koanf:"default_interval_days"`
	TimeZone              string `koanf:"time_zone"`
}

// Location resolves TimeZone, falling back to UTC.
func (f FleetConfig) Location() (*time.Location, error) {
	if f.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(f.TimeZone)
}

func Default() Config {
	return Config{
		Port:             "8080",
		JWTExpiry:        24 * time.Hour,
		AllowedOrigins:   []string{"http://localhost:5173"},
		LogLevel:         "info",
		LogFormat:        "json",
		RateLimitEnabled: true,
		Redis: RedisConfig{
			Port:                "6379",
			PoolSize:            10,
			MinIdleConns:        2,
			MaxRetries:          3,
			RetryDelay:          time.Second,
			DialTimeout:         5 * time.Second,
			ReadTimeout:         3 * time.Second,
			WriteTimeout:        3 * time.Second,
			PoolTimeout:         4 * time.Second,
			HealthCheckInterval: 30 * time.Second,
		},
		Fleet: FleetConfig{
			ComplianceHorizonDays: 30,
			UsageWindowDays:       30,
			UrgentThresholdDays:   15,
			DefaultIntervalKm:     5000,
			DefaultIntervalDays:   180,
			TimeZone:              "UTC",
		},
	}
}

// Load reads an optional .env file, then an optional YAML or JSON config
// file, then the process environment. Later sources win. Nested keys use a
// double underscore, so REDIS__HOST sets redis.host.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", "__", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	cfg.AllowedOrigins = trimAll(cfg.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("mongo_uri is required (set MONGO_URI)")
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("jwt_expiry must be positive, got %s", c.JWTExpiry)
	}
	if _, err := c.Fleet.Location(); err != nil {
		return fmt.Errorf("fleet.time_zone: %w", err)
	}
	f := c.Fleet
	if f.ComplianceHorizonDays < 0 || f.UsageWindowDays <= 0 || f.UrgentThresholdDays < 0 {
		return errors.New("fleet windows must be positive")
	}
	if f.DefaultIntervalKm <= 0 || f.DefaultIntervalDays <= 0 {
		return errors.New("fleet default maintenance intervals must be positive")
	}
	return nil
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
