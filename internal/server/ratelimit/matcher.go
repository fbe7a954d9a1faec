package ratelimit

import (
	"strings"
)

// MatchEndpoint picks the override for a request. An override whose path
// equals the request path wins; otherwise an override ending in "/" covers
// every path below it, so "/forms/" applies to "/forms/{id}/submit" but
// not to "/forms". A nil result means the client's default bucket applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && path == "/health" {
		return &EndpointConfig{Path: path, Method: method, Unlimited: true}
	}

	var below *EndpointConfig
	for i := range configs {
		ec := &configs[i]
		if ec.Method != method {
			continue
		}
		switch {
		case ec.Path == path:
			return ec
		case below == nil && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path):
			below = ec
		}
	}
	return below
}
