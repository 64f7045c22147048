package migrations

import "embed"

// FS contains embedded DuckDB DDL for the events table.
//
//go:embed *.sql
var FS embed.FS
