// Package config loads service configuration from defaults, an optional YAML
// file and environment variables, in increasing order of priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/clicksy/config.yaml",
}

// Config is the complete service configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	JWT      JWTConfig      `koanf:"jwt"`
	Password  PasswordConfig  `koanf:"password"`
	Market    MarketConfig    `koanf:"market"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Log       LogConfig       `koanf:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	CORSOrigin   string        `koanf:"cors_origin"`
}

// DatabaseConfig holds the PostgreSQL connection string.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// RedisConfig holds the optional Redis connection. An empty URL disables
// caching and event publishing.
type RedisConfig struct {
	URL          string        `koanf:"url"`
	RecommendTTL time.Duration `koanf:"recommend_ttl"`
}

// MarketConfig controls the synthetic corpus behind price estimates.
type MarketConfig struct {
	// Seed fixes the corpus noise. Zero means time-seeded.
	Seed int64 `koanf:"seed"`
	// ReferenceYear is the year listing ages are measured from.
	ReferenceYear int `koanf:"reference_year"`
	// RefreshSpec is a cron spec for regenerating the corpus. Empty disables refresh.
	RefreshSpec string `koanf:"refresh_spec"`
}

// LogConfig selects log level and output format.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns the values applied before the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
			CORSOrigin:   "*",
		},
		Redis: RedisConfig{
			RecommendTTL: 2 * time.Minute,
		},
		JWT: JWTConfig{
			ExpirationHours: 24,
		},
		Password: PasswordConfig{
			BcryptCost: 12,
		},
		Market: MarketConfig{
			ReferenceYear: 2024,
			RefreshSpec:   "@every 24h",
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envMappings maps environment variable names onto config paths. Variables not
// listed here are ignored.
var envMappings = map[string]string{
	"port":                        "server.port",
	"cors_origin":                 "server.cors_origin",
	"database_url":                "database.url",
	"redis_url":                   "redis.url",
	"recommend_cache_ttl":         "redis.recommend_ttl",
	"jwt_secret":                  "jwt.secret",
	"jwt_expiration_hours":        "jwt.expiration_hours",
	"bcrypt_cost":                 "password.bcrypt_cost",
	"password_pepper":             "password.pepper",
	"market_seed":                 "market.seed",
	"market_reference_year":       "market.reference_year",
	"market_refresh_spec":         "market.refresh_spec",
	"rate_limit_enabled":          "rate_limit.enabled",
	"rate_limit_default_limit":    "rate_limit.default_limit",
	"rate_limit_default_window":   "rate_limit.default_window",
	"rate_limit_cleanup_interval": "rate_limit.cleanup_interval",
	"rate_limit_whitelist":        "rate_limit.whitelist",
	"rate_limit_blacklist":        "rate_limit.blacklist",
	"log_level":                   "log.level",
	"log_format":                  "log.format",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load builds the configuration. path may be empty, in which case CONFIG_PATH
// and DefaultConfigPaths are searched; a missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks value ranges. Secrets and the database URL are checked by
// RequireServe since offline CLI commands do not need them.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.Redis.RecommendTTL < 0 {
		return fmt.Errorf("config error: 'redis.recommend_ttl' must be non-negative")
	}
	if c.Market.ReferenceYear < 1990 {
		return fmt.Errorf("config error: 'market.reference_year' must be 1990 or later, got %d", c.Market.ReferenceYear)
	}
	if c.Market.RefreshSpec != "" {
		if _, err := cron.ParseStandard(c.Market.RefreshSpec); err != nil {
			return fmt.Errorf("config error: invalid 'market.refresh_spec' %q: %w", c.Market.RefreshSpec, err)
		}
	}
	if err := c.Password.normalize(); err != nil {
		return err
	}
	if err := c.RateLimit.validate(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// RequireServe checks the settings the API server cannot start without.
func (c *Config) RequireServe() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return c.JWT.normalize()
}
