// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Optional build coordination: an advisory lock so two build processes
never race on the same output directory, and a prior-manifest-digest
memoization so an unchanged source doesn't trigger a pointless
filesystem rewrite. Both are skipped rather than failing the build when
Redis is unconfigured or a Redis call fails (lock and digest-store
errors are logged) — build
coordination is an optimization, not a correctness requirement (a single
build process with no Redis configured behaves exactly as it always
has).
*/
package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/zmhindex/internal/platform/constants"
)

const lockLease = 5 * time.Minute

// Lock is a best-effort advisory lock over one output directory, backed
// by Redis when configured. A Lock with no Redis client behaves as an
// always-available no-op lock.
type Lock struct {
	client *goredis.Client
	key    string
	token  string
}

// NewLock returns a Lock for outDir. client may be nil, in which case
// Acquire always succeeds and Release is a no-op.
func NewLock(client *goredis.Client, outDir string) *Lock {
	return &Lock{
		client: client,
		key:    constants.RedisPrefixBuildLock + outDir,
		token:  fmt.Sprintf("%d", time.Now().UnixNano()),
	}
}

// Acquire attempts to take the lock, returning false if another build
// already holds it. With no Redis client configured it always succeeds.
func (l *Lock) Acquire(ctx context.Context, logger *slog.Logger) (bool, error) {
	if l.client == nil {
		return true, nil
	}
	ok, err := l.client.SetNX(ctx, l.key, l.token, lockLease).Result()
	if err != nil {
		logger.Warn("build_lock_unavailable", slog.Any("error", err))
		return true, nil
	}
	return ok, nil
}

// Release drops the lock if this process still holds it. Errors are
// logged, not returned: a lease that outlives its holder simply expires
// on its own after lockLease.
func (l *Lock) Release(ctx context.Context, logger *slog.Logger) {
	if l.client == nil {
		return
	}
	held, err := l.client.Get(ctx, l.key).Result()
	if err != nil {
		return
	}
	if held != l.token {
		return
	}
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		logger.Warn("build_lock_release_failed", slog.Any("error", err))
	}
}

// digestKey namespaces the prior-manifest-digest cache entry for outDir.
func digestKey(outDir string) string {
	return constants.RedisPrefixLastDigest + outDir
}

// stableDigest hashes everything about a build's output except fields
// that legitimately change between otherwise-identical runs
// (generatedAt, buildID), so two runs over an unchanged source produce
// the same digest.
func stableDigest(assets Assets) string {
	h := sha256.New()
	write := func(a Asset) { fmt.Fprintf(h, "%s:%s:%d;", a.Path, a.SHA256, a.Bytes) }

	write(assets.Dict)
	write(assets.Authors)
	write(assets.Tags)
	for _, a := range assets.MetaShards {
		write(a)
	}
	for _, a := range assets.IndexShards {
		write(a)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// unchangedSince reports whether digest matches the digest recorded for
// outDir on a previous successful build. A missing client, a missing
// prior record, or a Redis error all report false (proceed with the
// write) rather than blocking the build.
func unchangedSince(ctx context.Context, client *goredis.Client, outDir, digest string) bool {
	if client == nil {
		return false
	}
	prior, err := client.Get(ctx, digestKey(outDir)).Result()
	if err != nil {
		return false
	}
	return prior == digest
}

// rememberDigest stores digest as the latest known-good digest for
// outDir. Failures are non-fatal: memoization is a pure optimization.
func rememberDigest(ctx context.Context, client *goredis.Client, logger *slog.Logger, outDir, digest string) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, digestKey(outDir), digest, 0).Err(); err != nil {
		logger.Warn("build_digest_memoize_failed", slog.Any("error", err))
	}
}
