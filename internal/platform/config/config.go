// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Backend Selection

// DataBackend selects the directory's primary data source at startup.
//
// It replaces runtime sniffing of connection-URL contents with an explicit,
// typed discriminant resolved exactly once during Load.
type DataBackend string

const (
	// BackendPostgres serves the directory from the PostgreSQL store.
	BackendPostgres DataBackend = "postgres"

	// BackendStatic serves the directory from the in-process sample dataset.
	// Intended for demos and local development without a database.
	BackendStatic DataBackend = "static"
)

// # Configuration Schema

// Config holds all runtime configuration for the CareFinder API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis) — holds single-use magic-link sign-in tokens.
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for session and identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// DataBackend selects the primary directory source ("postgres" or "static").
	DataBackend DataBackend `env:"DATA_BACKEND" envDefault:"postgres"`

	// GoogleMapsAPIKey enables the Google Places fallback tier and the
	// scheduled ingestion job. Optional: absence degrades to "tier skipped"
	// rather than failing startup.
	GoogleMapsAPIKey string `env:"GOOGLE_MAPS_API_KEY"`

	// SyncSecret, when set, is the bearer token required to trigger the
	// place-ingestion job. When empty the endpoint trusts the scheduler.
	SyncSecret string `env:"SYNC_SECRET"`

	// ExtraOrigins is a comma-separated list of additional CORS origins
	// allowed outside development (staging frontends, preview deploys).
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Resolve the backend discriminant once; everything downstream switches
	// on the typed value, never on connection-string contents.
	switch cfg.DataBackend {
	case BackendPostgres, BackendStatic:
	default:
		return nil, fmt.Errorf("config: invalid DATA_BACKEND %q (expected postgres or static)", cfg.DataBackend)
	}

	return cfg, nil
}

// HasPlacesKey reports whether the Google Places tier is configured.
func (c *Config) HasPlacesKey() bool {
	return c.GoogleMapsAPIKey != ""
}

// AllowedExtraOrigins returns the additional CORS origins from EXTRA_ORIGINS.
func (c *Config) AllowedExtraOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
