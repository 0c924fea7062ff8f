// Package testutil provides shared helpers and fixtures for storefront tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/HerbHall/storefront/internal/store"
)

// NewStore opens a fresh SQLite database in a temp directory and closes it
// when the test ends.
func NewStore(t testing.TB) *store.SQLiteStore {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "storefront.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
