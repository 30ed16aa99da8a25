// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
)

// Open sniffs dsn and returns the matching Source implementation.
func Open(ctx context.Context, dsn string) (Source, error) {
	switch SniffKind(dsn) {
	case KindPostgres:
		return OpenPostgres(ctx, dsn)
	case KindSQLite:
		return OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("catalog: unrecognized dsn kind for %q", dsn)
	}
}
