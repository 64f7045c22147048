package random

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func withReader(t *testing.T, r io.Reader) {
	t.Helper()
	prev := entropy
	entropy = r
	t.Cleanup(func() { entropy = prev })
}

func TestNewSeedNonZero(t *testing.T) {
	for i := 0; i < 100; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		if seed == 0 {
			t.Fatal("expected non-zero seed")
		}
	}
}

func TestNewSeedSkipsZero(t *testing.T) {
	src := append(make([]byte, 8), 1, 0, 0, 0, 0, 0, 0, 0)
	withReader(t, bytes.NewReader(src))

	seed, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if seed != 1 {
		t.Fatalf("seed = %d, want 1", seed)
	}
}

func TestNewSeedReadError(t *testing.T) {
	withReader(t, failingReader{})

	_, err := NewSeed()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "read random seed") {
		t.Fatalf("expected read random seed prefix, got %v", err)
	}
}

func TestNewSeedGivesUpOnConstantZero(t *testing.T) {
	withReader(t, bytes.NewReader(make([]byte, 8*maxSeedAttempts)))

	if _, err := NewSeed(); err == nil {
		t.Fatal("expected error for all-zero source")
	}
}
