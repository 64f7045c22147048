package sqlschema

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyCreatesTables(t *testing.T) {
	db := openInMemoryDB(t)

	schema := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE IF NOT EXISTS items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
	}

	if err := Apply(context.Background(), db, schema, ""); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected applied table to exist")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openInMemoryDB(t)

	schema := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE IF NOT EXISTS items(id TEXT PRIMARY KEY);"),
		},
	}
	for i := 0; i < 3; i++ {
		if err := Apply(context.Background(), db, schema, "."); err != nil {
			t.Fatalf("apply schema pass %d: %v", i+1, err)
		}
	}
}

func TestApplyToleratesAlreadyExists(t *testing.T) {
	db := openInMemoryDB(t)

	schema := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE items(id TEXT PRIMARY KEY);"),
		},
	}
	if err := Apply(context.Background(), db, schema, ""); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if err := Apply(context.Background(), db, schema, ""); err != nil {
		t.Fatalf("re-apply non-guarded schema: %v", err)
	}
}

func TestApplyReportsBadSQL(t *testing.T) {
	db := openInMemoryDB(t)

	schema := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{
			Data: []byte("CREAT table things(id INT);"),
		},
	}
	if err := Apply(context.Background(), db, schema, ""); err == nil {
		t.Fatal("expected bad schema to fail")
	}
}

func TestApplyRespectsRootAndOrder(t *testing.T) {
	db := openInMemoryDB(t)

	schema := fstest.MapFS{
		"events/002_index.sql": &fstest.MapFile{
			Data: []byte("CREATE INDEX IF NOT EXISTS event_rows_title ON event_rows(title);"),
		},
		"events/001_events.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE IF NOT EXISTS event_rows(id TEXT PRIMARY KEY, title TEXT);"),
		},
		"events/README.md": &fstest.MapFile{Data: []byte("not sql")},
	}

	if err := Apply(context.Background(), db, schema, "events"); err != nil {
		t.Fatalf("apply schema with root: %v", err)
	}
	if !tableExists(t, db, "event_rows") {
		t.Fatal("expected table from root-based schema")
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if err := Apply(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected nil db error")
	}
}

func TestApplyHonorsCanceledContext(t *testing.T) {
	db := openInMemoryDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	schema := fstest.MapFS{
		"001_create.sql": &fstest.MapFile{Data: []byte("CREATE TABLE items(id TEXT);")},
	}
	err := Apply(ctx, db, schema, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestExtractUp(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "CREATE TABLE a(id INT);", want: "CREATE TABLE a(id INT);"},
		{name: "up only", content: "-- +migrate Up\nCREATE TABLE a(id INT);", want: "\nCREATE TABLE a(id INT);"},
		{name: "up and down", content: "-- +migrate Up\nX;\n-- +migrate Down\nY;", want: "\nX;\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractUp(tc.content); got != tc.want {
				t.Fatalf("ExtractUp = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	if IsAlreadyExistsError(nil) {
		t.Fatal("nil error is not already-exists")
	}
	if !IsAlreadyExistsError(errors.New("Catalog Error: Table with name events already exists!")) {
		t.Fatal("expected duckdb already-exists message to match")
	}
	if !IsAlreadyExistsError(errors.New("table items already exists")) {
		t.Fatal("expected sqlite already-exists message to match")
	}
	if IsAlreadyExistsError(errors.New("syntax error")) {
		t.Fatal("syntax error is not already-exists")
	}
}

func openInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	return db
}

func tableExists(t *testing.T, db *sql.DB, tableName string) bool {
	t.Helper()
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name = ?"
	var name string
	row := db.QueryRow(query, tableName)
	if err := row.Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return false
		}
		t.Fatalf("check table exists: %v", err)
	}
	return name == tableName
}
