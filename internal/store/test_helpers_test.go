package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedCollection inserts categories named after their IDs, numbered 0..N-1.
func seedCollection(t *testing.T, s *Store, collection string, ids ...string) []category.Category {
	t.Helper()
	cats := make([]category.Category, len(ids))
	for i, id := range ids {
		cats[i] = category.Category{ID: id, Collection: collection, Name: id, Order: int64(i)}
		if err := s.Insert(context.Background(), cats[i]); err != nil {
			t.Fatalf("Insert(%s) failed: %v", id, err)
		}
	}
	return cats
}
