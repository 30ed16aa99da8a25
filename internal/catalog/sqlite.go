// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSource is the default catalog backend: a single SQLite file,
// read-only and opened once per build.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens path as a SQLite catalog. The file must already
// exist and contain a comics(id, json) table.
func OpenSQLite(path string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("catalog: open sqlite %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog: ping sqlite %q: %w", path, err)
	}
	return &SQLiteSource{db: db}, nil
}

// EachRow implements Source.
func (s *SQLiteSource) EachRow(ctx context.Context, fn func(raw []byte) error) error {
	rows, err := s.db.QueryContext(ctx, comicsQuery)
	if err != nil {
		return fmt.Errorf("catalog: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("catalog: scan: %w", err)
		}
		if err := fn(raw); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close implements Source.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
