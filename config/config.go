// Package config assembles the immutable process configuration. It is read
// once at startup and passed by value; nothing re-reads the environment per
// request.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingSecret = errors.New("config: JWT_SECRET is required")

const (
	defaultAddr     = ":3000"
	defaultTokenTTL = time.Hour
)

// Config holds everything the server needs to run.
type Config struct {
	// Addr is the listen address.
	Addr string
	// DatabaseURL is the lib/pq connection string.
	DatabaseURL string
	// JWTSecret signs session tokens. Mandatory.
	JWTSecret []byte
	// TokenTTL bounds token validity. Defaults to one hour.
	TokenTTL time.Duration
	// CookieMaxAge bounds the session cookie. Defaults to TokenTTL.
	CookieMaxAge time.Duration
	// CookieName is the session cookie name.
	CookieName string
	// Environment is the deployment environment name (e.g. "production").
	Environment string
}

// Production reports whether secure cookie attributes should be enforced.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win. The only hard requirement is the signing secret.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        envWithDefault("ADDR", defaultAddr),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   []byte(strings.TrimSpace(os.Getenv("JWT_SECRET"))),
		CookieName:  envWithDefault("SESSION_COOKIE_NAME", "token"),
		Environment: envWithDefault("APP_ENV", "development"),
	}

	if len(cfg.JWTSecret) == 0 {
		return Config{}, ErrMissingSecret
	}

	ttl, err := durationEnv("JWT_TTL", defaultTokenTTL)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenTTL = ttl

	cookieMaxAge, err := durationEnv("SESSION_COOKIE_MAX_AGE", ttl)
	if err != nil {
		return Config{}, err
	}
	cfg.CookieMaxAge = cookieMaxAge

	return cfg, nil
}

func envWithDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive", key)
	}
	return d, nil
}
