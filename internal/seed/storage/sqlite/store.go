// Package sqlite provides a SQLite-backed events store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/eventseed/internal/platform/storage/sqlschema"
	"github.com/louisbranch/eventseed/internal/seed/event"
	"github.com/louisbranch/eventseed/internal/seed/storage"
	"github.com/louisbranch/eventseed/internal/seed/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// insertChunkSize keeps each multi-row INSERT well under SQLite's bound
// parameter limit (six parameters per row).
const insertChunkSize = 500

const eventColumns = "id, title, starts_at, description, latitude, longitude"

// startsAtLayout is the zone-less text form of starts_at.
const startsAtLayout = "2006-01-02 15:04:05.999999999"

// Store persists seeded events in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) the SQLite file at path. The parent directory must
// already exist.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
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

// InsertEvents writes events with multi-row INSERT statements inside one
// transaction, so the batch lands entirely or not at all.
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

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert transaction: %w", err)
	}
	for start := 0; start < len(events); start += insertChunkSize {
		end := min(start+insertChunkSize, len(events))
		query, args := buildInsert(events[start:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert events: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert transaction: %w", err)
	}
	return len(events), nil
}

func buildInsert(events []event.Event) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO " + event.Table + " (" + eventColumns + ") VALUES ")
	args := make([]any, 0, len(events)*6)
	for i, e := range events {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args, e.ID, e.Title, event.WallClock(e.StartsAt).Format(startsAtLayout), e.Description, e.Latitude, e.Longitude)
	}
	return b.String(), args
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
		`SELECT id, title, CAST(starts_at AS TEXT), description, latitude, longitude
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
		var startsAt string
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &startsAt, &description, &e.Latitude, &e.Longitude); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		parsed, err := time.ParseInLocation(startsAtLayout, startsAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse starts_at %q: %w", startsAt, err)
		}
		e.StartsAt = parsed
		e.Description = description.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}
