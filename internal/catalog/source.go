// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/zmhindex/internal/platform/database/schema"
)

// Source streams every comic's raw JSON document from whichever
// relational store backs the catalog, ordered by ascending ID so the
// delta-varint encoders downstream never see a non-monotonic sequence.
//
// EachRow is a push (not pull) iterator on purpose: the builder never
// materializes the whole corpus in memory, and a push-style callback is
// the natural shape for "stream one sql.Rows cursor, feed every
// encoder, close the cursor" without an intermediate buffered channel.
type Source interface {
	EachRow(ctx context.Context, fn func(raw []byte) error) error
	Close() error
}

// Kind identifies which backend a DSN addresses.
type Kind int

const (
	// KindSQLite is the default, zero-dependency-at-runtime backend: a
	// single file on disk.
	KindSQLite Kind = iota
	// KindPostgres is the alternate backend for catalogs large enough
	// to live in a shared relational database.
	KindPostgres
)

// SniffKind classifies dsn by its scheme. Anything that isn't
// recognizably a PostgreSQL connection string or URL is treated as a
// SQLite file path, matching the original tool's single positional "db"
// argument.
func SniffKind(dsn string) Kind {
	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host=") && strings.Contains(dsn, "dbname="):
		return KindPostgres
	default:
		return KindSQLite
	}
}

// comicsQuery is shared by both backends: the catalog fixture exposes a
// single comics(id, json) table regardless of which engine stores it.
var comicsQuery = fmt.Sprintf(
	"SELECT %s FROM %s ORDER BY %s",
	schema.Comics.JSON, schema.Comics.Table, schema.Comics.ID,
)
