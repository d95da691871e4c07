package config

import (
	"fmt"
	"time"
)

// RateLimitConfig holds the per-client request limits applied by the API server.
// Endpoint-specific rules are compiled in; these settings cover everything else.
type RateLimitConfig struct {
	Enabled         bool          `koanf:"enabled"`
	DefaultLimit    int           `koanf:"default_limit"`
	DefaultWindow   time.Duration `koanf:"default_window"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	// Whitelist and Blacklist hold client IPs. From the environment they are
	// comma-separated.
	Whitelist []string `koanf:"whitelist"`
	Blacklist []string `koanf:"blacklist"`
}

func (c *RateLimitConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("config error: 'rate_limit.default_limit' must be at least 1, got %d", c.DefaultLimit)
	}
	if c.DefaultWindow <= 0 {
		return fmt.Errorf("config error: 'rate_limit.default_window' must be positive")
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("config error: 'rate_limit.cleanup_interval' must be non-negative")
	}
	return nil
}
