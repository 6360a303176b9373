package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is the catalog backend used when none is configured.
const DefaultAPIBaseURL = "http://127.0.0.1:5000"

// Config holds all application configuration loaded from environment variables.
// It is resolved once at startup and treated as read-only afterwards.
type Config struct {
	Port string
	Env  string

	Backend BackendConfig
	Worker  WorkerConfig
}

// BackendConfig describes the catalog REST API the dashboard talks to.
type BackendConfig struct {
	// BaseURL is used for every API call.
	BaseURL string
	// PublicBaseURL is prepended to image urls rendered in the browser.
	PublicBaseURL string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	ProbeInterval time.Duration
}

// Options alter how Load resolves configuration.
type Options struct {
	// EnvFiles are loaded instead of ./.env when set.
	EnvFiles []string
	// Port overrides PORT when non-empty.
	Port string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. Variables already set in
// the environment take precedence over the file.
func Load(opts Options) (*Config, error) {
	if len(opts.EnvFiles) > 0 {
		if err := godotenv.Load(opts.EnvFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else {
		// Missing .env is fine; production relies on real environment variables.
		_ = godotenv.Load()
	}

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "3000")
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	cfg.Env = getEnv("ENV", "development")

	// Backend
	base := getEnv("API_BASE_URL", getEnv("NEXT_PUBLIC_API_BASE_URL", DefaultAPIBaseURL))
	base, err := normalizeBaseURL(base)
	if err != nil {
		return nil, fmt.Errorf("invalid API_BASE_URL: %w", err)
	}
	public, err := normalizeBaseURL(getEnv("PUBLIC_API_BASE_URL", base))
	if err != nil {
		return nil, fmt.Errorf("invalid PUBLIC_API_BASE_URL: %w", err)
	}
	cfg.Backend = BackendConfig{
		BaseURL:       base,
		PublicBaseURL: public,
	}

	// Workers
	if cfg.Worker.ProbeInterval, err = parseDurationEnv("BACKEND_PROBE_INTERVAL", "30s"); err != nil {
		return nil, fmt.Errorf("invalid BACKEND_PROBE_INTERVAL: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// normalizeBaseURL checks raw is an absolute http(s) URL and trims any
// trailing slash.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return raw, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
