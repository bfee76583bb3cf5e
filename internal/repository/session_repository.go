// Package repository persists client-side state in the session store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/database"
)

// SessionRepository stores named string values, such as the auth token and
// the cached user record.
type SessionRepository struct {
	db     database.DBTX
	driver database.Driver
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db database.DBTX, driver database.Driver) *SessionRepository {
	return &SessionRepository{db: db, driver: driver}
}

// SessionValue is one stored value.
type SessionValue struct {
	Name      string
	Value     string
	UpdatedAt time.Time
}

func (r *SessionRepository) bind(query string) string {
	return database.Rebind(r.driver, query)
}

// Get returns the value stored under name. ok is false when nothing is stored.
func (r *SessionRepository) Get(ctx context.Context, name string) (value string, ok bool, err error) {
	err = r.db.QueryRowContext(ctx, r.bind(`
		SELECT value FROM session_values WHERE name = ?
	`), name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session value %q: %w", name, err)
	}
	return value, true, nil
}

// Set creates or replaces the value stored under name.
func (r *SessionRepository) Set(ctx context.Context, name, value string) error {
	_, err := r.db.ExecContext(ctx, r.bind(`
		INSERT INTO session_values (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`), name, value)
	if err != nil {
		return fmt.Errorf("failed to set session value %q: %w", name, err)
	}
	return nil
}

// Delete removes the named values. Missing names are ignored.
func (r *SessionRepository) Delete(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	_, err := r.db.ExecContext(ctx, r.bind(
		`DELETE FROM session_values WHERE name IN (`+placeholders+`)`,
	), args...)
	if err != nil {
		return fmt.Errorf("failed to delete session values: %w", err)
	}
	return nil
}

// List returns every stored value ordered by name.
func (r *SessionRepository) List(ctx context.Context) ([]SessionValue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, value, updated_at FROM session_values ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list session values: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var values []SessionValue
	for rows.Next() {
		var v SessionValue
		if err := rows.Scan(&v.Name, &v.Value, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session values: %w", err)
	}
	return values, nil
}
