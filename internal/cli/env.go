package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jask/jaskcalc/internal/config"
	"github.com/jask/jaskcalc/internal/database"
	"github.com/jask/jaskcalc/internal/database/repository"
	"github.com/jask/jaskcalc/internal/logger"
	"github.com/jask/jaskcalc/internal/prefs"
	"github.com/jask/jaskcalc/internal/theme"
	"github.com/jask/jaskcalc/internal/tui"
)

// env is everything a command needs after startup.
type env struct {
	cfg     config.Config
	db      *sql.DB
	themes  theme.Store
	history tui.HistoryStore
	closers []func() error
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

// openEnv loads config, starts logging and opens the configured preference
// backend. The history tape is only available on the sqlite backend.
func openEnv(ctx context.Context, opts *rootOptions, withHistory bool) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	stderr := opts.stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cleanup, err := logger.Setup(logger.Config{Dir: cfg.Log.Dir, Debug: cfg.Log.Debug || opts.debug})
	if err != nil {
		fmt.Fprintf(stderr, "warn: logging disabled: %v\n", err)
	} else {
		e.closers = append(e.closers, cleanup)
		if opts.debug {
			fmt.Fprintf(stderr, "debug: logging to %s\n", logger.Path())
		}
	}

	switch cfg.Storage.Backend {
	case config.BackendFile:
		store, err := prefs.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.themes = store
		logger.L().Debug("storage.file", "path", store.Path())
	default:
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open db: %w", err)
		}
		e.db = db
		e.closers = append(e.closers, db.Close)
		if err := database.RunMigrations(cfg.Database.Path); err != nil {
			e.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if err := database.SeedDefaults(ctx, db); err != nil {
			e.Close()
			return nil, fmt.Errorf("seed defaults: %w", err)
		}
		e.themes = repository.NewPrefsRepo(db)
		if withHistory && cfg.UI.HistorySize > 0 {
			e.history = repository.NewHistoryRepo(db)
		}
		logger.L().Debug("storage.sqlite", "path", cfg.Database.Path)
	}
	return e, nil
}
