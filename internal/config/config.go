// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	APIKey      string
	CallbackURL string
	DBPath      string

	MaxTurns         int
	MinArtifactTypes int
	EngageThreshold  float64

	SessionTTL    time.Duration
	EvictInterval time.Duration
	TurnTimeout   time.Duration

	AllowedOrigins []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8010"),
		APIKey:           getEnv("API_KEY", ""),
		CallbackURL:      getEnv("CALLBACK_URL", ""),
		DBPath:           getEnv("DB_PATH", "./data/reports.db"),
		MaxTurns:         getEnvInt("MAX_TURNS", 15),
		MinArtifactTypes: getEnvInt("MIN_ARTIFACT_TYPES", 2),
		EngageThreshold:  getEnvFloat("ENGAGE_THRESHOLD", 0.25),
		SessionTTL:       getEnvDuration("SESSION_TTL", 60*time.Minute),
		EvictInterval:    getEnvDuration("EVICT_INTERVAL", 5*time.Minute),
		TurnTimeout:      getEnvDuration("TURN_TIMEOUT", 5*time.Second),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are sane.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("MAX_TURNS must be > 0")
	}
	if c.MinArtifactTypes <= 0 {
		return fmt.Errorf("MIN_ARTIFACT_TYPES must be > 0")
	}
	if c.EngageThreshold <= 0 || c.EngageThreshold > 1 {
		return fmt.Errorf("ENGAGE_THRESHOLD must be in (0,1]")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.TurnTimeout <= 0 {
		return fmt.Errorf("TURN_TIMEOUT must be > 0")
	}
	return nil
}

// ArchiveEnabled reports whether the report archive should be opened.
func (c *Config) ArchiveEnabled() bool {
	return c.DBPath != ""
}

// ReportingEnabled reports whether final reports are delivered upstream.
func (c *Config) ReportingEnabled() bool {
	return c.CallbackURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
