// Package ratelimit provides per-client rate limiting backed by token buckets
// from golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
	IdleTTL           time.Duration // Buckets unused for this long are dropped by Sweep
	Whitelist         map[string]bool
	Blacklist         map[string]bool
	EndpointConfigs   []EndpointConfig
}

// DefaultConfig returns the limits used when no configuration is given.
func DefaultConfig() *Config {
	return &Config{
		Enabled:           true,
		RequestsPerSecond: 5,
		Burst:             10,
		IdleTTL:           time.Hour,
		Whitelist:         make(map[string]bool),
		Blacklist:         make(map[string]bool),
		EndpointConfigs:   DefaultEndpointConfigs(),
	}
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	limit    int
	lastSeen time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// Returns true if allowed, false if rate limited, along with rate limit information.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{Burst: l.config.Burst}
	}
	if ec.Unlimited {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + ec.Method + ":" + ec.Path
	now := l.now()
	b := l.bucket(key, ec, now)

	if b.limiter.AllowN(now, 1) {
		return true, Info{
			Allowed:   true,
			Limit:     b.limit,
			Remaining: int(b.limiter.TokensAt(now)),
		}
	}

	r := b.limiter.ReserveN(now, 1)
	retryAfter := r.DelayFrom(now)
	r.CancelAt(now)

	return false, Info{
		Allowed:    false,
		Limit:      b.limit,
		Remaining:  0,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucket(key string, ec *EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		burst := ec.Burst
		if burst <= 0 {
			burst = ec.Limit
		}
		if burst <= 0 {
			burst = 1
		}
		every := rate.Limit(l.config.RequestsPerSecond)
		if ec.Window > 0 && ec.Limit > 0 {
			every = rate.Limit(float64(ec.Limit) / ec.Window.Seconds())
		}
		b = &bucket{limiter: rate.NewLimiter(every, burst), limit: burst}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

// Sweep drops buckets idle for longer than IdleTTL and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
