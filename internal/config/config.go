package config

import (
	"os"
	"strconv"
	"time"

	"pacesetter/domain/footprint"
	"pacesetter/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Review   ReviewConfig
	Defaults DefaultsConfig
	Paths    PathConfig
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ReviewConfig holds settings for the review web app
type ReviewConfig struct {
	Port      string
	UploadTTL time.Duration
}

// DefaultsConfig holds the fallback computation parameters used when a
// request does not specify them
type DefaultsConfig struct {
	GridFactor float64
	Lifetime   int
}

// PathConfig holds file system paths
type PathConfig struct {
	FixturesDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Review: ReviewConfig{
			Port:      getEnvOrDefault("REVIEW_PORT", "8081"),
			UploadTTL: getEnvDurationOrDefault("UPLOAD_TTL", 30*time.Minute),
		},
		Defaults: DefaultsConfig{
			GridFactor: getEnvFloatOrDefault("GRID_FACTOR", footprint.DefaultGridFactor),
			Lifetime:   getEnvIntOrDefault("LIFETIME_YEARS", footprint.DefaultLifetime),
		},
		Paths: PathConfig{
			FixturesDir: getEnvOrDefault("FIXTURES_DIR", "./fixtures"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Defaults.GridFactor <= 0 {
		return errors.ConfigInvalid("GRID_FACTOR must be positive")
	}
	if config.Defaults.Lifetime < 1 {
		return errors.ConfigInvalid("LIFETIME_YEARS must be at least 1")
	}
	if config.Review.UploadTTL <= 0 {
		return errors.ConfigInvalid("UPLOAD_TTL must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
