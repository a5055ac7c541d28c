// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It uses 'caarlos0/env' to map OS environment variables into a strongly-typed
struct with defaults, then runs cross-field checks in [Config.Validate].

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the Shelfmark API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StorageDriver selects the repository implementation ("postgres", "sqlite" or "memory").
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL). Required when StorageDriver is "postgres".
	DatabaseURL string `env:"DATABASE_URL"`

	// SQLitePath is the database file used when StorageDriver is "sqlite".
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/shelfmark.db"`

	// MigrationPath holds one migrations directory per SQL driver
	// ("postgres" and "sqlite").
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis). When set, goal synchronisation is serialised
	// across instances through a Redis lock instead of an in-process one.
	RedisURL string `env:"REDIS_URL"`

	// GoalLockTTL bounds how long a goal sync may hold its lock.
	GoalLockTTL time.Duration `env:"GOAL_LOCK_TTL" envDefault:"10s"`

	// Public key used to verify access tokens issued by the auth service.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Optional private key, only needed by tooling that mints tokens.
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// DayBoundaryTZ is the IANA zone whose midnight separates reading days.
	DayBoundaryTZ string `env:"DAY_BOUNDARY_TZ" envDefault:"UTC"`

	// AutoFinishOnLastPage moves a book to "read" when progress reaches its last page.
	AutoFinishOnLastPage bool `env:"AUTO_FINISH_ON_LAST_PAGE" envDefault:"true"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate performs the checks env tags cannot express.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when STORAGE_DRIVER=%s", StorageDriverPostgres)
		}
	case StorageDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required when STORAGE_DRIVER=%s", StorageDriverSQLite)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if _, err := time.LoadLocation(c.DayBoundaryTZ); err != nil {
		return fmt.Errorf("config: invalid DAY_BOUNDARY_TZ %q: %w", c.DayBoundaryTZ, err)
	}

	if c.GoalLockTTL <= 0 {
		return fmt.Errorf("config: GOAL_LOCK_TTL must be positive")
	}

	return nil
}

// MigrationsFor returns the migrations directory of a SQL storage driver.
func (c *Config) MigrationsFor(driver string) string {
	return filepath.Join(c.MigrationPath, driver)
}

// Location returns the zone that defines reading-day boundaries.
// It falls back to UTC; Validate has already rejected unknown zones.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.DayBoundaryTZ)
	if err != nil {
		return time.UTC
	}
	return location
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
