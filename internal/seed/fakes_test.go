package seed

import (
	"context"
	"errors"

	"github.com/louisbranch/eventseed/internal/seed/event"
	"github.com/louisbranch/eventseed/internal/seed/storage"
)

// fakeStore records calls and returns injected errors.
type fakeStore struct {
	ensureErr error
	clearErr  error
	insertErr error
	closeErr  error

	cleared  int64
	inserted []event.Event
	calls    []string
	closed   bool
}

var _ storage.Store = (*fakeStore)(nil)

func (f *fakeStore) EnsureSchema(context.Context) error {
	f.calls = append(f.calls, "ensure")
	return f.ensureErr
}

func (f *fakeStore) ClearEvents(context.Context) (int64, error) {
	f.calls = append(f.calls, "clear")
	if f.clearErr != nil {
		return 0, f.clearErr
	}
	n := f.cleared + int64(len(f.inserted))
	f.inserted = nil
	return n, nil
}

func (f *fakeStore) InsertEvents(_ context.Context, events []event.Event) (int, error) {
	f.calls = append(f.calls, "insert")
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, events...)
	return len(events), nil
}

func (f *fakeStore) CountEvents(context.Context) (int, error) {
	return len(f.inserted), nil
}

func (f *fakeStore) ListEvents(context.Context) ([]event.Event, error) {
	return f.inserted, nil
}

func (f *fakeStore) Close() error {
	f.calls = append(f.calls, "close")
	f.closed = true
	return f.closeErr
}

func openFake(store *fakeStore) OpenFunc {
	return func(string) (storage.Store, error) { return store, nil }
}

func openFailing(err error) OpenFunc {
	return func(string) (storage.Store, error) { return nil, err }
}

var errBoom = errors.New("boom")
