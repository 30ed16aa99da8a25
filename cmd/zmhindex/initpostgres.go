// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/zmhindex/internal/platform/config"
	"github.com/taibuivan/zmhindex/internal/platform/migration"
)

func newInitPostgresCmd() *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "init-postgres [dsn]",
		Short: "Create the comics(id, json) fixture table in a PostgreSQL catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logger := newLogger(debug)

			cfg, err := config.Load()
			if err != nil {
				return fatal(logger, "load configuration", err)
			}

			dsn := cfg.CatalogDSN
			if len(args) == 1 {
				dsn = args[0]
			}
			if dsn == "" {
				return fatal(logger, "init-postgres", errMissingDSN)
			}

			if migrationsPath == "" {
				migrationsPath = cfg.MigrationPath
			}

			logger.Info("running_catalog_migrations", slog.String("migrations_path", migrationsPath))
			if err := migration.RunUp(dsn, migrationsPath, logger); err != nil {
				return fatal(logger, "run migrations", err)
			}

			logger.Info("catalog_fixture_ready")
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsPath, "migrations-path", "", "path to the SQL migrations directory (default from ZMHINDEX_MIGRATION_PATH or ./migrations)")

	return cmd
}
