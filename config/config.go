// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the storefront cache binaries need.
type Config struct {
	// Cache namespace and lifetimes.
	Prefix        string        `env:"STOREFRONT_CACHE_PREFIX" envDefault:"api_cache_"`
	DefaultTTL    time.Duration `env:"STOREFRONT_CACHE_DEFAULT_TTL" envDefault:"5m"`
	CategoryTTL   time.Duration `env:"STOREFRONT_CACHE_CATEGORY_TTL" envDefault:"5m"`
	ProductTTL    time.Duration `env:"STOREFRONT_CACHE_PRODUCT_TTL" envDefault:"3m"`
	SweepInterval time.Duration `env:"STOREFRONT_CACHE_SWEEP_INTERVAL" envDefault:"10m"`

	// Storage medium. An empty path keeps entries in memory.
	StoragePath string `env:"STOREFRONT_CACHE_PATH"`
	QuotaBytes  int64  `env:"STOREFRONT_CACHE_QUOTA_BYTES" envDefault:"5242880"`

	// REST collaborator. An empty base URL makes the demo serve its own catalog.
	APIBaseURL string        `env:"STOREFRONT_API_BASE_URL"`
	APIToken   string        `env:"STOREFRONT_API_TOKEN"`
	APITimeout time.Duration `env:"STOREFRONT_API_TIMEOUT" envDefault:"10s"`

	// MetricsAddr enables the Prometheus endpoint when set.
	MetricsAddr string `env:"STOREFRONT_METRICS_ADDR"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DefaultTTL <= 0 {
		return Config{}, fmt.Errorf("default ttl must be positive, got %s", cfg.DefaultTTL)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
