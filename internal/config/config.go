// Package config provides configuration management for the AuraCall service.
// It loads configuration from environment variables with sensible defaults and
// validates the result before the application starts.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - LOG_FILE: Log file path (default: stdout)
//
// Database Configuration:
//   - DATABASE_PATH: SQLite database file path (default: ./auracall.db)
//
// AI Report Summary:
//   - GEMINI_API_KEY: API key for the text-generation service (summary
//     endpoint returns an explanatory error when unset)
//   - GEMINI_API_URL: Base URL of the text-generation API
//   - GEMINI_MODEL: Model name (default: gemini-2.5-flash)
//
// TLS:
//   - TLS_CERT / TLS_KEY: Certificate and key paths; HTTPS is enabled when
//     both are set
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration values for the AuraCall service. All fields
// correspond to environment variables that can be set to override defaults.
type Config struct {
	Port         string // Server port number
	LogLevel     string // Logging level (debug, info, warn, error)
	DatabasePath string // Path to the SQLite database file

	GeminiAPIKey string // Text-generation service API key
	GeminiAPIURL string // Text-generation service base URL
	GeminiModel  string // Text-generation model name

	TLSCert string // TLS certificate path
	TLSKey  string // TLS key path
}

// Load creates a new Config instance with values loaded from environment
// variables, falling back to defaults for anything unset. Call Validate()
// on the result before use.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabasePath: getEnv("DATABASE_PATH", "./auracall.db"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TLSCert: getEnv("TLS_CERT", ""),
		TLSKey:  getEnv("TLS_KEY", ""),
	}
}

// getEnv retrieves an environment variable value or returns a default value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks that all required fields are present and valid. The
// application should call this after Load and before starting.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}

	// TLS needs both halves or neither.
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("TLS_CERT and TLS_KEY must be set together")
	}

	return nil
}
