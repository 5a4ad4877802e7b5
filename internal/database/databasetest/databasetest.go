// Package databasetest opens throwaway SQLite databases for tests.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fkhayef/splitledger/internal/database"
)

// Open opens a fresh SQLite database in a temporary directory that is
// removed when the test finishes.
func Open(t testing.TB) *database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(context.Background(), "sqlite://"+path, database.Options{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
