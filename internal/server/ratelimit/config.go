package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one method and path. A Path ending in "/"
// covers every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit
}

// envPrefix namespaces every rate limit variable.
const envPrefix = "RATE_LIMIT_"

// LoadConfig builds the limiter configuration from RATE_LIMIT_* variables.
// Malformed values fall back to the defaults.
func LoadConfig() *Config {
	env := envReader(envPrefix)
	if !env.bool("ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	if perHour := env.int("AI_PER_HOUR", 0); perHour > 0 {
		for i := range endpoints {
			if endpoints[i].Path == "/ai/" {
				endpoints[i].Limit = perHour
			}
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int("DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(env.string("WHITELIST")),
		Blacklist:       parseIPList(env.string("BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs lists the endpoints with their own limits. Anything
// not listed shares the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Calls that reach the text generation provider or start Chrome
		{Path: "/ai/", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/cover-letters", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/resume/export/pdf", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/versions/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},

		// Bulk and destructive
		{Path: "/backup", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
		{Path: "/data", Method: "DELETE", Limit: 5, Window: time.Minute, Burst: 1},
		{Path: "/settings/api-key", Method: "PUT", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/share/load", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

type envReader string

func (p envReader) string(key string) string {
	return strings.TrimSpace(os.Getenv(string(p) + key))
}

func (p envReader) int(key string, fallback int) int {
	if n, err := strconv.Atoi(p.string(key)); err == nil {
		return n
	}
	return fallback
}

func (p envReader) bool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(p.string(key)); err == nil {
		return b
	}
	return fallback
}

func (p envReader) duration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(p.string(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// parseIPList turns "a, b,c" into a set.
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
