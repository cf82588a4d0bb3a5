// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - Errors wrap this package's sentinel kinds.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Reference data drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches the log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ReferenceDriver selects the reference store: memory or sqlite.
	ReferenceDriver string `koanf:"reference_driver"`

	// ReferenceFixtures is a YAML dataset loaded into the store at startup.
	ReferenceFixtures string `koanf:"reference_fixtures"`

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`

	// BatchWorkers bounds how many users of a batch are scored concurrently.
	BatchWorkers int `koanf:"batch_workers"`

	// MaxBatchSize caps the number of users per batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// MaxBodyBytes caps the size of HTTP request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		ReferenceDriver: DriverMemory,
		SQLitePath:      "advisor.db",
		BatchWorkers:    runtime.NumCPU(),
		MaxBatchSize:    1000,
		MaxBodyBytes:    1 << 20,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ReferenceDriver != DriverMemory && c.ReferenceDriver != DriverSQLite:
		return fmt.Errorf("%w: unknown reference_driver %q", ErrInvalidConfig, c.ReferenceDriver)
	case c.ReferenceDriver == DriverSQLite && c.SQLitePath == "":
		return fmt.Errorf("%w: sqlite_path is required by the sqlite driver", ErrInvalidConfig)
	case c.BatchWorkers < 1:
		return fmt.Errorf("%w: batch_workers must be positive", ErrInvalidConfig)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	case c.MaxBodyBytes < 1:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
