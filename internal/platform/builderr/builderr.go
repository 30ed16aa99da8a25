// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package builderr defines the error taxonomy shared by the build driver,
the CLI, and the orchestration server.

A [BuildError] carries a machine-readable code, an operator-facing
message, the HTTP status the orchestration server should answer with if
the error surfaces from a request, and the underlying cause for logging.
The CLI does not map codes: any error exits with status 1.
*/
package builderr

import (
	"errors"
	"net/http"
)

// BuildError is the canonical error type for build-time and
// orchestration-server failures.
type BuildError struct {
	// Code is a machine-readable error identifier (e.g. "VALIDATION_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to surface to an operator.
	Message string `json:"error"`
	// HTTPStatus is the status the orchestration server answers with.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation failures, if any.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *BuildError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *BuildError) Unwrap() error { return e.Cause }

// ValidationError creates a 400 [BuildError] for bad flags or config,
// with optional per-field details.
func ValidationError(msg string, details ...FieldError) *BuildError {
	return &BuildError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Conflict creates a 409 [BuildError] for a build already in progress
// (a /rebuild request arriving while this server's own build runs).
func Conflict(msg string) *BuildError {
	return &BuildError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// NotFound creates a 404 [BuildError] for a named resource (an artifact,
// a build record).
func NotFound(resource string) *BuildError {
	return &BuildError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// RateLimited creates a 429 [BuildError] for a rebuild request arriving
// faster than the orchestration server's limiter allows.
func RateLimited(msg string) *BuildError {
	return &BuildError{
		Code:       "RATE_LIMITED",
		Message:    msg,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Internal creates a 500 [BuildError] wrapping an unexpected failure.
// The cause is retained for logging but never serialized to a client.
func Internal(cause error) *BuildError {
	return &BuildError{
		Code:       "INTERNAL_ERROR",
		Message:    "an unexpected error occurred during the build",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [BuildError], used when a readiness
// dependency (Redis, Postgres) cannot be reached.
func ServiceUnavailable(msg string) *BuildError {
	return &BuildError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// IsBuildError reports whether err (or any error in its chain) is a [*BuildError].
func IsBuildError(err error) bool {
	var be *BuildError
	return errors.As(err, &be)
}

// As extracts the [*BuildError] from err's chain, or nil if not found.
func As(err error) *BuildError {
	var be *BuildError
	if errors.As(err, &be) {
		return be
	}
	return nil
}
