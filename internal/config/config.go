package config

import (
	"errors"
	"os"
	"time"
)

// ErrUpstreamURLMissing is returned when the gateway is started without the
// address of the commerce API. There is no sensible host to guess, so this
// is fatal.
var ErrUpstreamURLMissing = errors.New("UPSTREAM_API_URL environment variable is required")

type Config struct {
	// Upstream commerce API
	UpstreamAPIURL  string
	UpstreamTimeout time.Duration

	// Catalog read cache (revalidation windows)
	CatalogRevalidate time.Duration
	HeroRevalidate    time.Duration

	// Visitor session cookie
	SessionSecret string
	SessionTTL    time.Duration

	// Cache revalidation trigger
	RevalidateSecret string

	// Frontend
	RecaptchaSiteKey string

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
}

func Load() *Config {
	return &Config{
		UpstreamAPIURL:  getEnv("UPSTREAM_API_URL", ""),
		UpstreamTimeout: parseDuration(getEnv("UPSTREAM_TIMEOUT", "15s"), 15*time.Second),

		CatalogRevalidate: parseDuration(getEnv("CATALOG_REVALIDATE", "5m"), 5*time.Minute),
		HeroRevalidate:    parseDuration(getEnv("HERO_REVALIDATE", "10m"), 10*time.Minute),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    parseDuration(getEnv("SESSION_TTL", "168h"), 168*time.Hour),

		RevalidateSecret: getEnv("REVALIDATE_SECRET", ""),
		RecaptchaSiteKey: getEnv("RECAPTCHA_SITE_KEY", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "production"),
	}
}

// Validate checks the values that have no usable default.
func (c *Config) Validate() error {
	if c.UpstreamAPIURL == "" {
		return ErrUpstreamURLMissing
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET environment variable is required")
	}
	if c.RevalidateSecret == "" {
		return errors.New("REVALIDATE_SECRET environment variable is required")
	}
	return nil
}

// Development reports whether the debug tooling (log sink, debug routes)
// should be live.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
