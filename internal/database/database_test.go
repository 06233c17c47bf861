package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskcalc/internal/database/repository"
	"github.com/jask/jaskcalc/internal/theme"
)

func TestMigrationsAndSeedDefaults(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	dbPath := filepath.Join(t.TempDir(), "nested", "calc.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath), "second run must be a no-op")

	v, dirty, err := Version(dbPath)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), v)

	require.NoError(t, SeedDefaults(ctx, db))
	prefs := repository.NewPrefsRepo(db)
	got, ok, err := prefs.Get(ctx, theme.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "theme-1", got)

	require.NoError(t, prefs.Set(ctx, theme.StorageKey, "theme-3"))
	require.NoError(t, SeedDefaults(ctx, db))
	got, _, err = prefs.Get(ctx, theme.StorageKey)
	require.NoError(t, err)
	require.Equal(t, "theme-3", got, "seeding must not overwrite a saved theme")
}

func TestVersionBeforeMigrations(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "fresh.db")
	v, dirty, err := Version(dbPath)
	require.NoError(t, err)
	require.False(t, dirty)
	require.Zero(t, v)
}
