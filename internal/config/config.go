// Package config loads runtime configuration from environment variables,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	DBPath    string
	Addr      string
	AdminUser string
	LogPath   string

	// Matching engine knobs.
	MatchThreshold float64
	MatchTimeout   time.Duration
	DedupMatches   bool

	// Optional subsystems.
	MetricsEnabled bool
	WebhookURL     string
	WebhookTimeout time.Duration
}

// Default returns the configuration used when no environment overrides
// are set.
func Default() Config {
	return Config{
		DBPath:         "foundit.db",
		Addr:           ":8080",
		AdminUser:      "admin",
		MatchThreshold: 0.6,
		MatchTimeout:   10 * time.Second,
		DedupMatches:   false,
		MetricsEnabled: false,
		WebhookTimeout: 5 * time.Second,
	}
}

// Load reads configuration from a .env file (if present) and the
// environment, falling back to defaults.
func Load() Config {
	// Missing .env is fine; the environment still applies.
	godotenv.Load()

	cfg := Default()
	cfg.DBPath = getEnv("FOUNDIT_DB", cfg.DBPath)
	cfg.Addr = getEnv("FOUNDIT_ADDR", cfg.Addr)
	cfg.AdminUser = getEnv("FOUNDIT_ADMIN_USER", cfg.AdminUser)
	cfg.LogPath = getEnv("FOUNDIT_LOG", cfg.LogPath)
	cfg.MatchThreshold = getEnvFloat("FOUNDIT_MATCH_THRESHOLD", cfg.MatchThreshold)
	cfg.MatchTimeout = getEnvDuration("FOUNDIT_MATCH_TIMEOUT", cfg.MatchTimeout)
	cfg.DedupMatches = getEnvBool("FOUNDIT_DEDUP_MATCHES", cfg.DedupMatches)
	cfg.MetricsEnabled = getEnvBool("FOUNDIT_METRICS", cfg.MetricsEnabled)
	cfg.WebhookURL = getEnv("FOUNDIT_WEBHOOK_URL", cfg.WebhookURL)
	cfg.WebhookTimeout = getEnvDuration("FOUNDIT_WEBHOOK_TIMEOUT", cfg.WebhookTimeout)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
