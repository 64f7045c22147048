// Package duckdb provides a DuckDB-backed events store.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/eventseed/internal/platform/storage/sqlschema"
	"github.com/louisbranch/eventseed/internal/seed/event"
	"github.com/louisbranch/eventseed/internal/seed/storage"
	"github.com/louisbranch/eventseed/internal/seed/storage/duckdb/migrations"
	duckdbdriver "github.com/marcboeker/go-duckdb"
)

// Store persists seeded events in a DuckDB file.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) the DuckDB file at path. The parent directory must
// already exist.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	connector, err := duckdbdriver.NewConnector(filepath.Clean(path), nil)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	sqlDB := sql.OpenDB(connector)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the DuckDB handle and its connector.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// EnsureSchema creates the events table if absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return storage.ErrStorageNotConfigured
	}
	if err := sqlschema.Apply(ctx, s.sqlDB, migrations.FS, "."); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ClearEvents deletes every row in the events table.
func (s *Store) ClearEvents(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, storage.ErrStorageNotConfigured
	}
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM "+event.Table)
	if err != nil {
		return 0, fmt.Errorf("clear events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear events rows affected: %w", err)
	}
	return n, nil
}

// InsertEvents bulk-loads events through the DuckDB appender on a single
// connection. Rows land in slice order. starts_at holds the wall-clock reading
// of StartsAt in its own location.
func (s *Store) InsertEvents(ctx context.Context, events []event.Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, storage.ErrStorageNotConfigured
	}
	if len(events) == 0 {
		return 0, nil
	}

	conn, err := s.sqlDB.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire duckdb conn: %w", err)
	}
	defer conn.Close()

	err = conn.Raw(func(raw any) error {
		driverConn, ok := raw.(driver.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver conn %T", raw)
		}
		appender, err := duckdbdriver.NewAppenderFromConn(driverConn, "", event.Table)
		if err != nil {
			return fmt.Errorf("new appender: %w", err)
		}
		for i, e := range events {
			if err := appender.AppendRow(
				e.ID,
				e.Title,
				event.WallClock(e.StartsAt),
				e.Description,
				e.Latitude,
				e.Longitude,
			); err != nil {
				_ = appender.Close()
				return fmt.Errorf("append event %d: %w", i, err)
			}
		}
		return appender.Close()
	})
	if err != nil {
		return 0, fmt.Errorf("insert events: %w", err)
	}
	return len(events), nil
}

// CountEvents returns the number of rows in the events table.
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, storage.ErrStorageNotConfigured
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+event.Table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// ListEvents returns every row ordered by starts_at, id. StartsAt is read
// back in time.Local.
func (s *Store) ListEvents(ctx context.Context) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, storage.ErrStorageNotConfigured
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, title, starts_at, description, latitude, longitude
		   FROM `+event.Table+`
		  ORDER BY starts_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var e event.Event
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.StartsAt, &description, &e.Latitude, &e.Longitude); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.StartsAt = event.FromWallClock(e.StartsAt, time.Local)
		e.Description = description.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
