// Package config provides environment-driven configuration for the service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds every runtime knob. All fields have working defaults; only
// DatabaseURL is optional and gates the audit history store.
type Config struct {
	Port     int    `validate:"min=1,max=65535"`
	LogLevel string `validate:"required"`

	BrowserPoolSize   int           `validate:"min=1,max=16"`
	NavigationTimeout time.Duration `validate:"min=1s"`
	AuxTimeout        time.Duration `validate:"min=1s"`

	RateLimitRequests int           `validate:"min=1"`
	RateLimitWindow   time.Duration `validate:"min=1s"`

	DatabaseURL string
}

// Load reads configuration from the environment, applying defaults for unset
// variables, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnvInt("PORT", 8080),
		LogLevel:          getEnvString("LOG_LEVEL", "info"),
		BrowserPoolSize:   getEnvInt("BROWSER_POOL_SIZE", 2),
		NavigationTimeout: getEnvDuration("NAVIGATION_TIMEOUT", 30*time.Second),
		AuxTimeout:        getEnvDuration("AUX_FETCH_TIMEOUT", 5*time.Second),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 5),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		DatabaseURL:       getEnvString("DATABASE_URL", ""),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
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
