package database

import (
	"context"
	"testing"
)

// TestDB returns a migrated in-memory SQLite store that is closed when the
// test completes.
func TestDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CleanupTables empties all tables for a clean test state.
func CleanupTables(t *testing.T, db DBTX) {
	t.Helper()

	ctx := context.Background()
	tables := []string{"session_values"}
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("failed to clean table %s: %v", table, err)
		}
	}
}
