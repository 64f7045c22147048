// Package storagetest holds the behavior suite every storage.Store backend
// must pass.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/eventseed/internal/seed/event"
	"github.com/louisbranch/eventseed/internal/seed/generator"
	"github.com/louisbranch/eventseed/internal/seed/storage"
)

// Opener opens a fresh store rooted at path. The suite closes it.
type Opener func(t *testing.T, path string) storage.Store

// Now is the clock used for generated fixtures. It reads in time.Local, the
// location stores list events in.
var Now = time.Date(2026, time.October, 19, 14, 25, 0, 0, time.Local)

// ZonedClocks are clock readings on either side of UTC.
var ZonedClocks = []time.Time{
	time.Date(2026, time.October, 19, 14, 37, 0, 0, time.FixedZone("JST", 9*3600)),
	time.Date(2026, time.October, 19, 22, 37, 0, 0, time.FixedZone("CDT", -5*3600)),
}

// Events generates count deterministic fixture events.
func Events(seed int64, count int) []event.Event {
	return EventsAt(Now, seed, count)
}

// EventsAt generates count deterministic fixture events scheduled from now.
func EventsAt(now time.Time, seed int64, count int) []event.Event {
	return generator.New(rand.New(rand.NewSource(seed)), func() time.Time { return now }).Events(count)
}

// CheckStoredWallClock fails t unless every raw starts_at text falls inside
// the wall-clock window StartsAtRange(now) spans in now's location.
func CheckStoredWallClock(t *testing.T, now time.Time, raw []string) {
	t.Helper()

	earliest, latest := event.StartsAtRange(now)
	lo, hi := event.WallClock(earliest), event.WallClock(latest)
	for _, text := range raw {
		stored, err := time.Parse(time.DateTime, text)
		if err != nil {
			t.Fatalf("parse stored starts_at %q: %v", text, err)
		}
		if stored.Before(lo) || stored.After(hi) {
			t.Fatalf("stored starts_at %s outside local window [%s, %s]",
				text, lo.Format(time.DateTime), hi.Format(time.DateTime))
		}
	}
}

// Run exercises the storage.Store contract against open. fileName is the
// database file created inside each subtest's temp directory.
func Run(t *testing.T, fileName string, open Opener) {
	t.Helper()

	openStore := func(t *testing.T) (storage.Store, string) {
		t.Helper()
		path := filepath.Join(t.TempDir(), fileName)
		store := open(t, path)
		t.Cleanup(func() { _ = store.Close() })
		if err := store.EnsureSchema(context.Background()); err != nil {
			t.Fatalf("ensure schema: %v", err)
		}
		return store, path
	}

	t.Run("ensure schema is idempotent", func(t *testing.T) {
		store, _ := openStore(t)
		for i := 0; i < 3; i++ {
			if err := store.EnsureSchema(context.Background()); err != nil {
				t.Fatalf("ensure schema pass %d: %v", i+1, err)
			}
		}
		count, err := store.CountEvents(context.Background())
		if err != nil {
			t.Fatalf("count events: %v", err)
		}
		if count != 0 {
			t.Fatalf("count = %d, want 0", count)
		}
	})

	t.Run("insert and list round trip", func(t *testing.T) {
		store, _ := openStore(t)
		want := Events(1, 12)

		n, err := store.InsertEvents(context.Background(), want)
		if err != nil {
			t.Fatalf("insert events: %v", err)
		}
		if n != len(want) {
			t.Fatalf("inserted = %d, want %d", n, len(want))
		}

		got, err := store.ListEvents(context.Background())
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("listed = %d, want %d", len(got), len(want))
		}
		byID := make(map[string]event.Event, len(want))
		for _, e := range want {
			byID[e.ID] = e
		}
		for _, e := range got {
			w, ok := byID[e.ID]
			if !ok {
				t.Fatalf("unexpected id %q", e.ID)
			}
			if err := sameEvent(e, w); err != nil {
				t.Fatalf("event %s: %v", e.ID, err)
			}
		}
		for i := 1; i < len(got); i++ {
			if event.WallClock(got[i].StartsAt).Before(event.WallClock(got[i-1].StartsAt)) {
				t.Fatalf("list not ordered by starts_at at %d", i)
			}
		}
	})

	t.Run("insert empty batch is a no-op", func(t *testing.T) {
		store, _ := openStore(t)
		n, err := store.InsertEvents(context.Background(), nil)
		if err != nil {
			t.Fatalf("insert empty batch: %v", err)
		}
		if n != 0 {
			t.Fatalf("inserted = %d, want 0", n)
		}
	})

	t.Run("clear removes every row", func(t *testing.T) {
		store, _ := openStore(t)
		if _, err := store.InsertEvents(context.Background(), Events(2, event.DefaultCount)); err != nil {
			t.Fatalf("insert events: %v", err)
		}
		cleared, err := store.ClearEvents(context.Background())
		if err != nil {
			t.Fatalf("clear events: %v", err)
		}
		if cleared != event.DefaultCount {
			t.Fatalf("cleared = %d, want %d", cleared, event.DefaultCount)
		}
		count, err := store.CountEvents(context.Background())
		if err != nil {
			t.Fatalf("count events: %v", err)
		}
		if count != 0 {
			t.Fatalf("count after clear = %d, want 0", count)
		}
	})

	t.Run("reseed replaces prior rows", func(t *testing.T) {
		store, _ := openStore(t)
		if _, err := store.InsertEvents(context.Background(), Events(3, 24)); err != nil {
			t.Fatalf("insert first batch: %v", err)
		}
		if _, err := store.ClearEvents(context.Background()); err != nil {
			t.Fatalf("clear events: %v", err)
		}
		if _, err := store.InsertEvents(context.Background(), Events(4, 10)); err != nil {
			t.Fatalf("insert second batch: %v", err)
		}
		count, err := store.CountEvents(context.Background())
		if err != nil {
			t.Fatalf("count events: %v", err)
		}
		if count != 10 {
			t.Fatalf("count = %d, want 10", count)
		}
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		store, _ := openStore(t)
		batch := Events(5, 2)
		batch[1].ID = batch[0].ID
		if _, err := store.InsertEvents(context.Background(), batch); err == nil {
			t.Fatal("expected primary key violation")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		store, _ := openStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := store.InsertEvents(ctx, Events(6, 1)); !errors.Is(err, context.Canceled) {
			t.Fatalf("insert err = %v, want context.Canceled", err)
		}
		if _, err := store.ClearEvents(ctx); !errors.Is(err, context.Canceled) {
			t.Fatalf("clear err = %v, want context.Canceled", err)
		}
	})

	t.Run("close twice", func(t *testing.T) {
		store, _ := openStore(t)
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
}

func sameEvent(got, want event.Event) error {
	switch {
	case got.Title != want.Title:
		return fmt.Errorf("title = %q, want %q", got.Title, want.Title)
	case got.Description != want.Description:
		return fmt.Errorf("description = %q, want %q", got.Description, want.Description)
	case !event.WallClock(got.StartsAt).Equal(event.WallClock(want.StartsAt)):
		return fmt.Errorf("starts_at = %v, want %v", got.StartsAt, want.StartsAt)
	case got.StartsAt.Location() != time.Local:
		return fmt.Errorf("starts_at location = %v, want Local", got.StartsAt.Location())
	case got.Latitude != want.Latitude:
		return fmt.Errorf("latitude = %v, want %v", got.Latitude, want.Latitude)
	case got.Longitude != want.Longitude:
		return fmt.Errorf("longitude = %v, want %v", got.Longitude, want.Longitude)
	}
	return nil
}
