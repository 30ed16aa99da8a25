// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource is the alternate catalog backend for corpora large
// enough to live in a shared PostgreSQL database rather than a single
// SQLite file.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and returns a ready PostgresSource. The
// target database must already have a comics(id, json) table, created
// via the `init-postgres` subcommand's migration.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("catalog: ping postgres: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// EachRow implements Source.
func (p *PostgresSource) EachRow(ctx context.Context, fn func(raw []byte) error) error {
	rows, err := p.pool.Query(ctx, comicsQuery)
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
func (p *PostgresSource) Close() error {
	p.pool.Close()
	return nil
}
