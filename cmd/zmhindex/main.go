// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Zmhindex builds the offline, content-addressed search index consumed by
the in-browser comic-catalog search client.

Usage:

	zmhindex build [db] [flags]
	zmhindex serve [db] [flags]
	zmhindex init-postgres [dsn] [flags]

No business logic lives here — this file only assembles the cobra
command tree. Each subcommand's own file owns its wiring.
*/
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/zmhindex/internal/platform/constants"
)

// errMissingDSN is returned when init-postgres has no DSN from either a
// positional argument or ZMHINDEX_DB.
var errMissingDSN = errors.New("a PostgreSQL DSN is required (positional argument or ZMHINDEX_DB)")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           constants.AppName,
		Short:         "Builds the offline comic-catalog search index",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().Bool("debug", false, "enable debug-level logging")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newInitPostgresCmd())

	return root
}

// newLogger builds the process-wide structured logger. debug raises the
// level to Debug; every log line carries the app name for correlation
// when multiple services share a log aggregator.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// fatal logs err as a structured failure and returns it wrapped with
// context; main turns a returned error into exit status 1. It is limited
// to top-level command wiring — deeper code returns errors as usual.
func fatal(logger *slog.Logger, context string, err error) error {
	logger.Error("command_failed", slog.String("context", context), slog.Any("error", err))
	return fmt.Errorf("%s: %w", context, err)
}
