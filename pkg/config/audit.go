// pkg/config/audit.go
package config

import (
	"errors"
	"os"
	"time"
)

// AuditConfig holds connection parameters for the PostgreSQL audit store
type AuditConfig struct {
	DSN string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// LoadAuditConfig loads audit store configuration from environment variables
func LoadAuditConfig() (*AuditConfig, error) {
	dsn := os.Getenv("AUDIT_DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("AUDIT_DATABASE_URL environment variable is required")
	}

	return &AuditConfig{
		DSN:              dsn,
		MaxOpenConns:     getEnvAsInt("AUDIT_MAX_OPEN_CONNS", 5),
		MaxIdleConns:     getEnvAsInt("AUDIT_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime:  time.Duration(getEnvAsInt("AUDIT_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute,
		StatementTimeout: time.Duration(getEnvAsInt("AUDIT_STATEMENT_TIMEOUT_MS", 30000)) * time.Millisecond,
	}, nil
}

// Validate ensures the audit configuration is usable
func (c *AuditConfig) Validate() error {
	if c.DSN == "" {
		return errors.New("audit DSN cannot be empty")
	}

	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return errors.New("connection pool sizes cannot be negative")
	}

	return nil
}
