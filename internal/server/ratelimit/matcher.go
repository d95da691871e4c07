package ratelimit

import "strings"

// unlimited holds the health and scrape endpoints, keyed "METHOD path".
var unlimited = map[string]bool{
	"GET /health":  true,
	"GET /metrics": true,
}

// MatchEndpoint returns the rule governing method and path, or nil when the
// default limit applies. An exact Path wins; otherwise the longest rule whose
// Path ends in "/" and prefixes path is used, so "/profiles/" covers
// "/profiles/{id}" and "/profiles/{id}/recommendations".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var prefix *EndpointConfig
	for i := range configs {
		rule := &configs[i]
		if rule.Method != method {
			continue
		}
		if rule.Path == path {
			return rule
		}
		if strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) &&
			(prefix == nil || len(rule.Path) > len(prefix.Path)) {
			prefix = rule
		}
	}
	return prefix
}
