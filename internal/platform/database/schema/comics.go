// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema centralizes the column-name constants for the one
// table the catalog sources read from, so the SQLite and PostgreSQL
// backends, the query text, and the init-postgres migration fixture
// never drift from each other.
package schema

// ComicsTable describes the single-table contract a catalog source
// reads: one row per comic, its full JSON document in the JSON column.
type ComicsTable struct {
	Table  string
	ID     string
	JSON   string
}

// Comics is the one table every catalog backend expects to find.
var Comics = ComicsTable{
	Table: "comics",
	ID:    "id",
	JSON:  "json",
}
