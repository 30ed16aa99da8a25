// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/zmhindex/internal/build"
	"github.com/taibuivan/zmhindex/internal/catalog"
	"github.com/taibuivan/zmhindex/internal/platform/config"
	"github.com/taibuivan/zmhindex/internal/signing"
	"github.com/taibuivan/zmhindex/pkg/uuidv7"
)

const defaultCatalogDSN = "data/zaimanhua.sqlite3"

func newBuildCmd() *cobra.Command {
	var (
		outDir          string
		generatedAt     string
		clean           bool
		metaShardDocs   int
		indexShardCount int
		parallel        bool
		redisURL        string
		signPassphrase  string
		serve           bool
		serveAddr       string
	)

	cmd := &cobra.Command{
		Use:   "build [db]",
		Short: "Scan the catalog source once and write a fresh set of index artifacts",
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
			if !cmd.Flags().Changed("meta-shard-docs") {
				metaShardDocs = cfg.MetaShardDocs
			}
			if !cmd.Flags().Changed("index-shard-count") {
				indexShardCount = cfg.IndexShardCount
			}
			if redisURL == "" {
				redisURL = cfg.RedisURL
			}
			if signPassphrase == "" {
				signPassphrase = cfg.SignPassphrase
			}

			buildID := uuidv7.New()
			logger = logger.With(slog.String("build_id", buildID))

			ctx := context.Background()

			genAt := time.Now().UTC()
			if generatedAt != "" {
				genAt, err = time.Parse(time.RFC3339, generatedAt)
				if err != nil {
					return fatal(logger, "parse --generated-at", err)
				}
			}

			source, err := catalog.Open(ctx, dsn)
			if err != nil {
				return fatal(logger, "open catalog source", err)
			}
			defer source.Close()

			var redisClient *goredis.Client
			if redisURL != "" {
				redisClient, err = newRedisClient(ctx, redisURL, logger)
				if err != nil {
					return fatal(logger, "connect redis", err)
				}
				defer redisClient.Close()
			}

			opts := build.Options{
				OutDir:          outDir,
				GeneratedAt:     genAt,
				Clean:           clean,
				MetaShardDocs:   metaShardDocs,
				IndexShardCount: indexShardCount,
				Parallel:        parallel,
				RedisClient:     redisClient,
			}

			logger.Info("build_starting", slog.String("source", dsn), slog.String("out_dir", outDir))
			result, err := build.Run(ctx, source, opts, logger)
			if err != nil {
				return fatal(logger, "run build", err)
			}

			if signPassphrase != "" && result.WroteArtifacts {
				if err := writeManifestSignature(outDir, signPassphrase, result, buildID, opts.GeneratedAt); err != nil {
					return fatal(logger, "sign manifest", err)
				}
			}

			logger.Info("build_finished",
				slog.Int("docs", result.Stats.Count),
				slog.Int("unique_tokens", result.Stats.UniqueTokens),
				slog.Bool("wrote_artifacts", result.WroteArtifacts),
			)

			if serve {
				store := build.NewStore()
				rec := build.NewRecord(dsn)
				rec.BuildID = buildID
				rec.Stats = result.Stats
				rec.ManifestSHA256 = result.ManifestSHA256
				rec.FinishedAt = time.Now().UTC()
				store.TryStart()
				store.Finish(rec)
				return runServe(serveAddr, cfg, dsn, opts, store, logger)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory for built artifacts (default from ZMHINDEX_OUT_DIR or ./dist)")
	cmd.Flags().StringVar(&generatedAt, "generated-at", "", "RFC3339 timestamp to record as the manifest's generatedAt (default now)")
	cmd.Flags().BoolVar(&clean, "clean", false, "remove stale managed assets left over from a previous build")
	cmd.Flags().IntVar(&metaShardDocs, "meta-shard-docs", 0, "documents per meta shard (default 4096)")
	cmd.Flags().IntVar(&indexShardCount, "index-shard-count", 0, "number of posting-list shards (default 8)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "encode shards concurrently (bit-identical output, faster on multi-core hosts)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "optional Redis URL enabling the advisory build lock and digest memoization")
	cmd.Flags().StringVar(&signPassphrase, "sign-passphrase", "", "optional passphrase to HMAC-sign the manifest into manifest.jwt")
	cmd.Flags().BoolVar(&serve, "serve", false, "start the orchestration server after the build completes")
	cmd.Flags().StringVar(&serveAddr, "addr", ":8088", "listen address when --serve is set")

	return cmd
}

func writeManifestSignature(outDir, passphrase string, result *build.Result, buildID string, generatedAt time.Time) error {
	key := signing.DeriveKey(passphrase, outDir)
	token, err := signing.Sign(key, result.ManifestSHA256, generatedAt.Format(time.RFC3339), buildID)
	if err != nil {
		return err
	}
	path := filepath.Join(outDir, "manifest.jwt")
	if err := os.WriteFile(path, []byte(token), 0o644); err != nil {
		return fmt.Errorf("write manifest.jwt: %w", err)
	}
	return nil
}
