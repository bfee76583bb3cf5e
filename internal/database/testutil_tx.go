package database

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
)

var (
	testPostgres     *DB
	testPostgresOnce sync.Once
	testPostgresErr  error
)

// TestPostgres returns a shared, migrated PostgreSQL store.
// Skips the test if TEST_DATABASE_URL is not set.
func TestPostgres(t *testing.T) *DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	testPostgresOnce.Do(func() {
		ctx := context.Background()
		testPostgres, testPostgresErr = Open(ctx, dbURL)
		if testPostgresErr != nil {
			return
		}
		testPostgresErr = RunMigrations(ctx, testPostgres)
	})

	if testPostgresErr != nil {
		t.Fatalf("failed to setup test database: %v", testPostgresErr)
	}

	return testPostgres
}

// TestTx begins a transaction on db that is rolled back when the test
// completes, so tests sharing one database stay isolated.
//
//	tx := database.TestTx(t, database.TestPostgres(t))
//	repo := repository.NewSessionRepository(tx, database.DriverPostgres)
func TestTx(t *testing.T, db TxBeginner) *sql.Tx {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	return tx
}
