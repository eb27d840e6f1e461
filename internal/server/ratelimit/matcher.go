package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for the health check.
var unlimited = EndpointConfig{Path: "/health", Method: http.MethodGet}

// MatchEndpoint returns the configuration for method and path, or nil when
// the default limit applies. An exact path wins over a prefix; among
// prefixes the longest wins.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == unlimited.Path && method == unlimited.Method {
		cfg := unlimited
		return &cfg
	}

	var best *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method {
			continue
		}
		if cfg.Path == path {
			return cfg
		}
		if strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			if best == nil || len(cfg.Path) > len(best.Path) {
				best = cfg
			}
		}
	}
	return best
}
