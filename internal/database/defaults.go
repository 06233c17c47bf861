package database

import (
	"context"
	"database/sql"

	"github.com/jask/jaskcalc/internal/database/repository"
	"github.com/jask/jaskcalc/internal/theme"
)

// SeedDefaults writes first-run preferences. Existing values are kept, so it
// is safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	prefs := repository.NewPrefsRepo(db)
	_, err := prefs.SetIfAbsent(ctx, theme.StorageKey, theme.Default.String())
	return err
}
