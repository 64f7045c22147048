// Package seed replaces the events table of a local analytical database with
// a fresh batch of synthetic events.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/eventseed/internal/platform/otel"
	"github.com/louisbranch/eventseed/internal/seed/event"
	"github.com/louisbranch/eventseed/internal/seed/generator"
	"github.com/louisbranch/eventseed/internal/seed/storage"
	"github.com/louisbranch/eventseed/internal/seed/storage/duckdb"
	"github.com/louisbranch/eventseed/internal/seed/storage/sqlite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DataDir is the directory, relative to the project root, holding the
// database file.
const DataDir = "data"

// Config holds seed runner configuration.
type Config struct {
	RepoRoot string
	// DBPath overrides <RepoRoot>/data/<driver file>.
	DBPath string
	Driver storage.Driver
	Count  int
	// Seed fixes the random source; 0 draws a fresh one.
	Seed int64
	// Now is the clock used to schedule events. Nil means time.Now.
	Now             func() time.Time
	MetricsTextfile string
	Logger          *zap.Logger
}

// DefaultConfig returns configuration with common defaults.
func DefaultConfig() Config {
	return Config{
		Driver: storage.DriverDuckDB,
		Count:  event.DefaultCount,
	}
}

// Result describes a completed run.
type Result struct {
	Count    int
	Cleared  int64
	Path     string
	Seed     int64
	Duration time.Duration
}

// OpenFunc opens a store at path.
type OpenFunc func(path string) (storage.Store, error)

// Opener returns the OpenFunc for a driver.
func Opener(driver storage.Driver) (OpenFunc, error) {
	switch driver {
	case storage.DriverDuckDB:
		return func(path string) (storage.Store, error) { return duckdb.Open(path) }, nil
	case storage.DriverSQLite:
		return func(path string) (storage.Store, error) { return sqlite.Open(path) }, nil
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
}

// ResolvePath returns the database file the run writes to.
func ResolvePath(cfg Config) (string, error) {
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		return filepath.Clean(path), nil
	}
	if strings.TrimSpace(cfg.RepoRoot) == "" {
		return "", errors.New("repo root is required when no database path is set")
	}
	return filepath.Join(cfg.RepoRoot, DataDir, cfg.Driver.FileName()), nil
}

// Run generates cfg.Count events and replaces the events table with them.
// On success it prints one summary line to out. Store close failures are
// reported to errOut.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) (Result, error) {
	open, err := Opener(cfg.Driver)
	if err != nil {
		return Result{}, err
	}
	return run(ctx, cfg, open, out, errOut)
}

func run(ctx context.Context, cfg Config, open OpenFunc, out io.Writer, errOut io.Writer) (res Result, err error) {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Count < 0 {
		return Result{}, fmt.Errorf("count must be non-negative, got %d", cfg.Count)
	}

	started := time.Now()
	metrics := newRunMetrics(string(cfg.Driver))
	defer func() {
		res.Duration = time.Since(started)
		metrics.observe(res, err, time.Now())
		if writeErr := metrics.writeTextfile(cfg.MetricsTextfile); writeErr != nil {
			if err == nil {
				err = writeErr
			} else {
				logger.Warn("metrics textfile", zap.Error(writeErr))
			}
		}
	}()

	path, err := ResolvePath(cfg)
	if err != nil {
		return res, err
	}
	res.Path = path

	rng, seedVal, err := generator.NewSeededRNG(cfg.Seed)
	if err != nil {
		return res, err
	}
	res.Seed = seedVal
	logger = logger.With(zap.String("driver", string(cfg.Driver)), zap.String("path", path))
	logger.Debug("seeding", zap.Int64("seed", seedVal), zap.Int("count", cfg.Count))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return res, fmt.Errorf("create data dir: %w", err)
	}

	store, err := open(path)
	if err != nil {
		return res, fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			fmt.Fprintf(errOut, "Error: close store: %v\n", closeErr)
			if err == nil {
				err = fmt.Errorf("close store: %w", closeErr)
			}
		}
	}()

	attrs := []attribute.KeyValue{attribute.String("db.system", string(cfg.Driver))}

	if err := stage(ctx, "seed.ensure_schema", attrs, func(ctx context.Context) error {
		return store.EnsureSchema(ctx)
	}); err != nil {
		return res, err
	}

	if err := stage(ctx, "seed.clear", attrs, func(ctx context.Context) error {
		cleared, err := store.ClearEvents(ctx)
		res.Cleared = cleared
		return err
	}); err != nil {
		return res, err
	}
	logger.Debug("cleared events", zap.Int64("cleared", res.Cleared))

	events := generator.New(rng, cfg.Now).Events(cfg.Count)

	if err := stage(ctx, "seed.insert", attrs, func(ctx context.Context) error {
		n, err := store.InsertEvents(ctx, events)
		res.Count = n
		return err
	}); err != nil {
		return res, err
	}
	logger.Debug("inserted events", zap.Int("count", res.Count))

	fmt.Fprintf(out, "Seeded %d events into %s\n", res.Count, path)
	return res, nil
}

// stage runs fn inside a span, checking for cancellation first.
func stage(ctx context.Context, name string, attrs []attribute.KeyValue, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, span := otel.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
