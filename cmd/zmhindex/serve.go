// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/zmhindex/internal/api"
	"github.com/taibuivan/zmhindex/internal/build"
	"github.com/taibuivan/zmhindex/internal/catalog"
	"github.com/taibuivan/zmhindex/internal/platform/config"
	"github.com/taibuivan/zmhindex/internal/platform/constants"
	redisstore "github.com/taibuivan/zmhindex/internal/platform/redis"
)

func newServeCmd() *cobra.Command {
	var (
		addr            string
		outDir          string
		metaShardDocs   int
		indexShardCount int
		redisURL        string
	)

	cmd := &cobra.Command{
		Use:   "serve [db]",
		Short: "Run only the orchestration server, triggering builds on demand via /rebuild",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logger := newLogger(debug)

			cfg, err := config.Load()
			if err != nil {
				return fatal(logger, "load configuration", err)
			}

			dsn := defaultCatalogDSN
			if cfg.CatalogDSN != "" {
				dsn = cfg.CatalogDSN
			}
			if len(args) == 1 {
				dsn = args[0]
			}

			if outDir == "" {
				outDir = cfg.OutDir
			}
			if metaShardDocs <= 0 {
				metaShardDocs = cfg.MetaShardDocs
			}
			if indexShardCount <= 0 {
				indexShardCount = cfg.IndexShardCount
			}
			if redisURL == "" {
				redisURL = cfg.RedisURL
			}
			if addr == "" {
				addr = ":" + cfg.ServerPort
			}

			var redisClient *goredis.Client
			if redisURL != "" {
				redisClient, err = newRedisClient(context.Background(), redisURL, logger)
				if err != nil {
					return fatal(logger, "connect redis", err)
				}
				defer redisClient.Close()
			}

			opts := build.Options{
				OutDir:          outDir,
				MetaShardDocs:   metaShardDocs,
				IndexShardCount: indexShardCount,
				RedisClient:     redisClient,
			}

			return runServe(addr, cfg, dsn, opts, build.NewStore(), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from ZMHINDEX_SERVER_PORT)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory a triggered build writes to")
	cmd.Flags().IntVar(&metaShardDocs, "meta-shard-docs", 0, "documents per meta shard for triggered builds")
	cmd.Flags().IntVar(&indexShardCount, "index-shard-count", 0, "posting-list shard count for triggered builds")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "optional Redis URL for the advisory build lock")

	return cmd
}

// runServe wires the health/status/rebuild handlers and blocks serving
// HTTP until a shutdown signal arrives. It is shared by `zmhindex serve`
// and `zmhindex build --serve`.
func runServe(addr string, cfg *config.Config, dsn string, opts build.Options, store *build.Store, logger *slog.Logger) error {
	if addr != "" {
		cfg.ServerPort = trimColonPrefix(addr)
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCatalog: func() error {
			source, err := catalog.Open(appCtx, dsn)
			if err != nil {
				return err
			}
			return source.Close()
		},
		CheckCache: redisCheck(opts.RedisClient),
	}, logger)

	status, rebuild := api.NewBuildHandlers(api.BuildDependencies{
		Store: store,
		OpenSource: func() (catalog.Source, string, error) {
			source, err := catalog.Open(appCtx, dsn)
			return source, dsn, err
		},
		Options: opts,
	}, logger)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Status:    status,
		Rebuild:   rebuild,
	}

	server := api.NewServer(appCtx, cfg, logger, handlers)

	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	logger.Info("orchestration_server_running", slog.String("addr", ":"+cfg.ServerPort))

	select {
	case sig := <-quit:
		logger.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	appCancel()
	logger.Info("shutting_down_orchestration_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	logger.Info("graceful_shutdown_complete")
	return nil
}

func newRedisClient(ctx context.Context, redisURL string, logger *slog.Logger) (*goredis.Client, error) {
	return redisstore.NewClient(ctx, redisURL, logger)
}

func redisCheck(client *goredis.Client) func() error {
	if client == nil {
		return nil
	}
	return func() error {
		return redisstore.Ping(context.Background(), client)
	}
}

func trimColonPrefix(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return addr[1:]
	}
	return addr
}
