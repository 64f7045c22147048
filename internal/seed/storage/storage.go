// Package storage defines the persistence contract for seeded events.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/eventseed/internal/seed/event"
)

// ErrStorageNotConfigured is returned by store methods called on a nil or
// closed handle.
var ErrStorageNotConfigured = errors.New("storage is not configured")

// Driver names a storage backend.
type Driver string

const (
	DriverDuckDB Driver = "duckdb"
	DriverSQLite Driver = "sqlite"
)

// Drivers lists the supported backends in preference order.
func Drivers() []Driver {
	return []Driver{DriverDuckDB, DriverSQLite}
}

// FileName returns the default database file name for the driver.
func (d Driver) FileName() string {
	switch d {
	case DriverSQLite:
		return "events.db"
	default:
		return "events.duckdb"
	}
}

// Valid reports whether d is a supported backend.
func (d Driver) Valid() bool {
	for _, candidate := range Drivers() {
		if d == candidate {
			return true
		}
	}
	return false
}

// Store persists the events table.
type Store interface {
	// EnsureSchema creates the events table when it does not exist yet.
	EnsureSchema(ctx context.Context) error
	// ClearEvents deletes every row and reports how many were removed.
	ClearEvents(ctx context.Context) (int64, error)
	// InsertEvents writes events in one batched operation, preserving order.
	InsertEvents(ctx context.Context, events []event.Event) (int, error)
	// CountEvents returns the number of stored rows.
	CountEvents(ctx context.Context) (int, error)
	// ListEvents returns all rows ordered by starts_at then id.
	ListEvents(ctx context.Context) ([]event.Event, error)
	Close() error
}
