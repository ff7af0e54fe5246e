package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/qbank/internal/question"
	"github.com/roach88/qbank/internal/testutil"
)

// storeFactory builds a store seeded with the given records.
type storeFactory func(t *testing.T, seed []question.Question, opts ...Option) RecordStore

func newMemoryStore(t *testing.T, seed []question.Question, opts ...Option) RecordStore {
	t.Helper()
	return NewMemory(seed, opts...)
}

// createTestSQLite opens a seeded database in a temp dir.
func createTestSQLite(t *testing.T, seed []question.Question, opts ...Option) RecordStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path, opts...)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if len(seed) > 0 {
		if _, err := s.Seed(t.Context(), seed); err != nil {
			t.Fatalf("Seed() failed: %v", err)
		}
	}
	return s
}

// forEachStore runs fn against every RecordStore implementation.
func forEachStore(t *testing.T, fn func(t *testing.T, newStore storeFactory)) {
	t.Helper()
	factories := map[string]storeFactory{
		"memory": newMemoryStore,
		"sqlite": createTestSQLite,
	}
	for name, f := range factories {
		t.Run(name, func(t *testing.T) {
			fn(t, f)
		})
	}
}

func seeded(t *testing.T, newStore storeFactory, ids ...string) RecordStore {
	t.Helper()
	return newStore(t, testutil.Questions(), WithIDGenerator(NewFixedGenerator(ids...)))
}
