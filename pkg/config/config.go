// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// Audit store settings; nil when auditing is disabled
	Audit *AuditConfig

	// Output settings
	DuplicateLogPath string // Default path of the duplicate-pair log

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		DuplicateLogPath: getEnv("DUPLICATE_LOG_PATH", "deduplicate_list"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
	}

	// The audit store is optional and only configured when a DSN is set
	if os.Getenv("AUDIT_DATABASE_URL") != "" {
		auditConfig, err := LoadAuditConfig()
		if err != nil {
			return nil, errors.New("failed to load audit configuration: " + err.Error())
		}
		cfg.Audit = auditConfig
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.DuplicateLogPath == "" {
		return errors.New("duplicate log path cannot be empty")
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.New("log format must be json or console")
	}

	if c.Audit != nil {
		if err := c.Audit.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
