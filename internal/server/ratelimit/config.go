package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path      string        // Endpoint path pattern (supports prefix matching)
	Method    string        // HTTP method (GET, POST, etc.)
	Limit     int           // Maximum requests per window
	Window    time.Duration // Time window
	Burst     int           // Burst capacity (defaults to Limit if 0)
	Unlimited bool
}

// Settings builds a Config from the server's rate settings. A zero rps or
// burst falls back to DefaultConfig.
func Settings(rps float64, burst int, disabled bool, whitelist string) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = !disabled
	if rps > 0 {
		cfg.RequestsPerSecond = rps
	}
	if burst > 0 {
		cfg.Burst = burst
	}
	cfg.Whitelist = parseIPList(whitelist)
	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Calls that reach the job service
		{Path: "/uploads", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
		{Path: "/forms/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Opening a session allocates server state
		{Path: "/forms", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Form edits and reads use the default limit; /health is unlimited
	}
}

// parseIPList parses a comma-separated list of client addresses into a set.
func parseIPList(value string) map[string]bool {
	result := make(map[string]bool)
	if value == "" {
		return result
	}
	for _, ip := range strings.Split(value, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
