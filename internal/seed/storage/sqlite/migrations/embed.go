package migrations

import "embed"

// FS contains embedded SQLite DDL for the events table.
//
//go:embed *.sql
var FS embed.FS
