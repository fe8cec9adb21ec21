// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first when present, so development machines do not need exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (stores, admin gateway) via constructors.
  - Zero Hidden State: No global variables are used to store config. The HAWK
    credential pair in particular is injected into the admin gateway at
    construction, never read from ambient process state at call time.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Fieldpress API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Document stores (one JSON file per article/book detail)
	ArticleDir string `env:"ARTICLE_DIR" envDefault:"./articles"`
	BookDir    string `env:"BOOK_DIR"    envDefault:"./books"`

	// Shared admin credential for HAWK request signing.
	//
	// The defaults are intentionally weak and mirror the published client
	// examples; operators MUST override HAWK_KEY in production.
	HawkID  string `env:"HAWK_ID"  envDefault:"billard"`
	HawkKey string `env:"HAWK_KEY" envDefault:"CHANGE_ME"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A missing .env file is not an error; exported variables always win.
func Load() (*Config, error) {

	// Best-effort .env preload for local development.
	_ = godotenv.Load()

	// Use the 'env' package to map environment variables to struct fields.
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDefaultCredentials reports whether the HAWK secret is still the insecure
// shipped default. Logged as a startup warning in production.
func (c *Config) UsesDefaultCredentials() bool {
	return c.HawkKey == "CHANGE_ME"
}

// AllowedOrigins returns the extra CORS origins from EXTRA_ORIGINS
// (comma-separated), beyond the primary domain.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	origins := strings.Split(c.ExtraOrigins, ",")
	for index := range origins {
		origins[index] = strings.TrimSpace(origins[index])
	}

	return origins
}
