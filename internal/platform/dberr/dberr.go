// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr bridges low-level database errors from either catalog
// backend into [builderr.BuildError].
package dberr

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/zmhindex/internal/platform/builderr"
)

// ErrNotFound is returned when a queried row doesn't exist, regardless
// of which backend produced it.
var ErrNotFound = builderr.NotFound("row")

// Wrap inspects a database error and classifies it into a
// [builderr.BuildError], recognizing both [sql.ErrNoRows] (the SQLite
// backend) and [pgx.ErrNoRows] (the PostgreSQL backend).
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	return builderr.Internal(err)
}
