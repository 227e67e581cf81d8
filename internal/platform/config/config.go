// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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
  - DI-Friendly: Passed to core components (Transport, Token Store) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the client is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Kiji client.
type Config struct {

	// Remote API
	APIBaseURL string `env:"API_BASE_URL,required"`

	// RequestTimeout is the hard ceiling for a single API call.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// Durable session storage. The file slot is the default; when
	// TOKEN_REDIS_URL is set, the redis-backed slot is used instead so
	// multiple replicas can share one session.
	TokenPath     string `env:"TOKEN_PATH" envDefault:".kiji/access_token"`
	TokenRedisURL string `env:"TOKEN_REDIS_URL"`

	// Outbound rate limiting (requests per second / burst)
	RateLimit int `env:"RATE_LIMIT" envDefault:"20"`
	RateBurst int `env:"RATE_BURST" envDefault:"40"`

	// RefreshInterval is how often the daemon re-synchronizes its stores.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5m"`

	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`
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

	return cfg, nil
}

// IsDevelopment reports whether the client is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the client is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
