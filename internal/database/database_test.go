package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDriverForDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dsn  string
		want Driver
	}{
		{dsn: "postgres://user:pw@localhost:5432/budgetbox", want: DriverPostgres},
		{dsn: "POSTGRESQL://localhost/budgetbox", want: DriverPostgres},
		{dsn: "/home/ada/.config/budgetbox/session.db", want: DriverSQLite},
		{dsn: ":memory:", want: DriverSQLite},
		{dsn: "file:session.db?mode=rwc", want: DriverSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, DriverForDSN(tt.dsn))
		})
	}
}

func TestRebind(t *testing.T) {
	t.Parallel()

	query := "INSERT INTO session_values (name, value) VALUES (?, ?)"
	require.Equal(t, query, Rebind(DriverSQLite, query))
	require.Equal(t, "INSERT INTO session_values (name, value) VALUES ($1, $2)", Rebind(DriverPostgres, query))
}

func TestOpen(t *testing.T) {
	t.Run("fails with empty dsn", func(t *testing.T) {
		db, err := Open(context.Background(), " ")
		require.Error(t, err)
		require.Nil(t, db)
	})

	t.Run("fails with unreachable postgres host", func(t *testing.T) {
		db, err := Open(context.Background(), "postgres://localhost:59999/nonexistent?connect_timeout=1")
		require.Error(t, err)
		require.Nil(t, db)
	})

	t.Run("creates sqlite file and parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "session.db")
		db, err := Open(context.Background(), path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		require.Equal(t, DriverSQLite, db.Driver)
		require.FileExists(t, path)
	})

	t.Run("traces postgres queries", func(t *testing.T) {
		dbURL := os.Getenv("TEST_DATABASE_URL")
		if dbURL == "" {
			t.Skip("TEST_DATABASE_URL not set, skipping integration test")
		}

		recorder := tracetest.NewSpanRecorder()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

		db, err := Open(context.Background(), dbURL, WithTracerProvider(tp))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		require.Equal(t, DriverPostgres, db.Driver)

		_, err = db.ExecContext(context.Background(), "SELECT 1")
		require.NoError(t, err)
		require.NotEmpty(t, recorder.Ended())
	})
}
