package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/database"
)

func TestSessionRepository(t *testing.T) {
	db := database.TestDB(t)
	ctx := context.Background()

	repo := NewSessionRepository(db, db.Driver)

	t.Run("missing value", func(t *testing.T) {
		value, ok, err := repo.Get(ctx, "authToken")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "authToken", "tok-1"))

		value, ok, err := repo.Get(ctx, "authToken")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "tok-1", value)
	})

	t.Run("set replaces", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "authToken", "tok-2"))

		value, _, err := repo.Get(ctx, "authToken")
		require.NoError(t, err)
		require.Equal(t, "tok-2", value)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "user", `{"id":1}`))

		values, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, values, 2)
		require.Equal(t, "authToken", values[0].Name)
		require.Equal(t, "user", values[1].Name)
		require.False(t, values[1].UpdatedAt.IsZero())
	})

	t.Run("delete several", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "authToken", "user", "missing"))
		require.NoError(t, repo.Delete(ctx))

		values, err := repo.List(ctx)
		require.NoError(t, err)
		require.Empty(t, values)
	})
}

func TestSessionRepository_CancelledContext(t *testing.T) {
	db := database.TestDB(t)
	repo := NewSessionRepository(db, db.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, repo.Set(ctx, "authToken", "tok"))
}

func TestSessionRepository_Postgres(t *testing.T) {
	tx := database.TestTx(t, database.TestPostgres(t))
	ctx := context.Background()

	repo := NewSessionRepository(tx, database.DriverPostgres)

	require.NoError(t, repo.Set(ctx, "authToken", "tok-1"))
	require.NoError(t, repo.Set(ctx, "authToken", "tok-2"))

	value, ok, err := repo.Get(ctx, "authToken")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-2", value)

	require.NoError(t, repo.Delete(ctx, "authToken"))
	_, ok, err = repo.Get(ctx, "authToken")
	require.NoError(t, err)
	require.False(t, ok)
}
