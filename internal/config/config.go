// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by FromEnv.
const (
	EnvAPIURL   = "JOBBOARD_API_URL"
	EnvTimeout  = "JOBBOARD_TIMEOUT"
	EnvTemplate = "JOBBOARD_TEMPLATE"
	EnvPort     = "JOBBOARD_PORT"
	EnvVerbose  = "JOBBOARD_VERBOSE"
	EnvTimeZone = "JOBBOARD_TIME_ZONE"

	EnvRateLimitWhitelist = "JOBBOARD_RATE_LIMIT_WHITELIST"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Job service
	APIBaseURL string `json:"api_base_url,omitempty"` // Root URL of the job and upload service
	Timeout    int    `json:"timeout,omitempty"`      // Request timeout in seconds

	// Form
	Template string `json:"template,omitempty"`  // YAML or JSON template for new forms
	TimeZone string `json:"time_zone,omitempty"` // IANA zone for deadlines typed without an offset

	// Server
	Port             int     `json:"port,omitempty"`
	RateLimitRPS     float64 `json:"rate_limit_rps,omitempty"`
	RateLimitBurst   int     `json:"rate_limit_burst,omitempty"`
	RateLimitDisable bool    `json:"rate_limit_disable,omitempty"`

	// Comma-separated client addresses exempt from rate limiting
	RateLimitWhitelist string `json:"rate_limit_whitelist,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Debug logging
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIBaseURL:     "http://127.0.0.1:8000",
		Timeout:        30,
		TimeZone:       "UTC",
		Port:           8080,
		RateLimitRPS:   5,
		RateLimitBurst: 10,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the JOBBOARD_* environment variables. Unset variables leave
// their fields empty.
func FromEnv() (Config, error) {
	var cfg Config
	cfg.APIBaseURL = strings.TrimSpace(os.Getenv(EnvAPIURL))
	cfg.Template = strings.TrimSpace(os.Getenv(EnvTemplate))
	cfg.TimeZone = strings.TrimSpace(os.Getenv(EnvTimeZone))
	cfg.RateLimitWhitelist = strings.TrimSpace(os.Getenv(EnvRateLimitWhitelist))

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid %s %q: %w", EnvTimeout, v, err)
		}
		cfg.Timeout = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvVerbose)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid %s %q: %w", EnvVerbose, v, err)
		}
		cfg.Verbose = b
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'api_base_url' must be an http(s) URL: %s", c.APIBaseURL)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("config error: 'rate_limit_rps' must be non-negative")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: 'rate_limit_burst' must be non-negative")
	}

	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("config error: unknown time zone %q: %w", c.TimeZone, err)
		}
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer environment over file over built-in values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIBaseURL == "" {
		result.APIBaseURL = defaults.APIBaseURL
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.TimeZone == "" {
		result.TimeZone = defaults.TimeZone
	}
	if result.RateLimitWhitelist == "" {
		result.RateLimitWhitelist = defaults.RateLimitWhitelist
	}

	// Numeric fields: use default if zero
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	// Bool fields can only be switched on by a lower layer
	result.Verbose = result.Verbose || defaults.Verbose
	result.RateLimitDisable = result.RateLimitDisable || defaults.RateLimitDisable

	return result
}

// Resolve layers env over the optional file at path over Defaults and
// validates the result. An empty path skips the file.
func Resolve(path string) (Config, error) {
	base := Defaults()

	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		base = file.MergeWithDefaults(base)
	}

	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg := env.MergeWithDefaults(base)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequestTimeout returns Timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Location returns the configured time zone, UTC when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.TimeZone)
}
