package database

import (
	"context"
	"fmt"
)

// RunMigrations creates the session store schema. The statements are valid
// for both SQLite and PostgreSQL and safe to re-run.
func RunMigrations(ctx context.Context, db DBTX) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS session_values (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_session_values_updated_at ON session_values(updated_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
