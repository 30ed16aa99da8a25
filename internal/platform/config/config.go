// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles build-tool-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. Unlike a long-lived
server, most of zmhindex's inputs arrive as CLI flags; Config only covers the
settings that make sense as ambient environment state (the orchestration
server's port, optional Redis/Postgres endpoints, the signing passphrase).

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the build driver and orchestration server via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds environment-sourced runtime configuration for zmhindex.
// None of these are required: a plain `zmhindex build` run needs no
// environment variables at all, only flags.
type Config struct {
	// Environment selects the logging/behavior profile ("development" or "production").
	Environment string `env:"ZMHINDEX_ENV"   envDefault:"development"`
	Debug       bool   `env:"ZMHINDEX_DEBUG" envDefault:"false"`

	// OutDir is the default output directory for built artifacts, used when
	// the --out-dir flag is not given.
	OutDir string `env:"ZMHINDEX_OUT_DIR" envDefault:"./dist"`

	// CatalogDSN is the default catalog source DSN, used when no positional db argument is given.
	CatalogDSN string `env:"ZMHINDEX_DB"`

	// MigrationPath is the filesystem path to the SQL migrations directory
	// used by `zmhindex init-postgres`.
	MigrationPath string `env:"ZMHINDEX_MIGRATION_PATH" envDefault:"./migrations"`

	// RedisURL, if set, enables the advisory build lock and prior-digest
	// memoization. Builds run unlocked and unmemoized when empty.
	RedisURL string `env:"ZMHINDEX_REDIS_URL"`

	// SignPassphrase, if set, enables HMAC-signing of the manifest via a
	// derived key. Manifests are written unsigned when empty.
	SignPassphrase string `env:"ZMHINDEX_SIGN_PASSPHRASE"`

	// ServerPort is the orchestration server's listen port.
	ServerPort string `env:"ZMHINDEX_SERVER_PORT" envDefault:"8088"`

	// MetaShardDocs is the default number of documents per meta shard.
	MetaShardDocs int `env:"ZMHINDEX_META_SHARD_DOCS" envDefault:"4096"`

	// IndexShardCount is the default number of posting-list shards.
	IndexShardCount int `env:"ZMHINDEX_INDEX_SHARD_COUNT" envDefault:"8"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether zmhindex is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether zmhindex is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
