// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the orchestration HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs for the /rebuild route.
  - Headers: canonical request header names used by middleware.
  - Redis Prefixes: key namespaces for the advisory build lock and digest cache.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "zmhindex"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for a single orchestration-server request.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for an in-flight build or request to
	// complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP against /rebuild.
	DefaultRateLimitRPS = 0.2

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 2

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Headers

const (
	// HeaderXRequestID is the header carrying the request correlation id.
	HeaderXRequestID = "X-Request-ID"

	// HeaderXRealIP is set by a trusted proxy with the client's real IP.
	HeaderXRealIP = "X-Real-IP"

	// HeaderXForwardedFor is the standard proxy chain header.
	HeaderXForwardedFor = "X-Forwarded-For"

	// HeaderOrigin is the request Origin header.
	HeaderOrigin = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixBuildLock namespaces the advisory lock key guarding a single
	// concurrent build per output target.
	RedisPrefixBuildLock = "zmhindex:build_lock:"

	// RedisPrefixLastDigest namespaces the memoized manifest digest from the
	// previous successful build, used to skip re-signing identical output.
	RedisPrefixLastDigest = "zmhindex:last_digest:"
)
