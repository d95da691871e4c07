package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/clicksy/clicksy-api/internal/config"
)

// EndpointConfig is the limit for one route. A Path ending in "/" matches
// every request path below it. Burst defaults to Limit.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// FromSettings builds the limiter configuration from the service settings and
// the built-in endpoint rules.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       clientSet(s.Whitelist),
		Blacklist:       clientSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route rules. Routes not listed use
// the default limit; /health and /metrics are never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/auth/login", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/register", Method: http.MethodPost, Limit: 5, Window: time.Minute, Burst: 2},
		{Path: "/profiles/me", Method: http.MethodPut, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/profiles/", Method: http.MethodGet, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/me/recommendations", Method: http.MethodGet, Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/market/listings", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/market/estimate", Method: http.MethodPost, Limit: 120, Window: time.Minute, Burst: 20},
	}
}

// clientSet trims each entry and drops blanks. Entries may themselves be
// comma-separated lists.
func clientSet(entries []string) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, entry := range entries {
		for _, id := range strings.Split(entry, ",") {
			if id = strings.TrimSpace(id); id != "" {
				set[id] = true
			}
		}
	}
	return set
}
