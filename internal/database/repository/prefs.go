package repository

import (
	"context"
	"database/sql"
	"errors"
)

// PrefsRepo handles key-value preferences.
type PrefsRepo struct {
	db *sql.DB
}

func NewPrefsRepo(db *sql.DB) *PrefsRepo { return &PrefsRepo{db: db} }

// Get returns the value for key and whether it was present.
func (r *PrefsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (r *PrefsRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO preferences(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
	 value=excluded.value,
	 updated_at=CURRENT_TIMESTAMP;
	`, key, value)
	return err
}

// SetIfAbsent writes value only when key has no row yet. It reports whether
// a row was inserted.
func (r *PrefsRepo) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO preferences(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO NOTHING;
	`, key, value)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PrefsRepo) List(ctx context.Context) ([]Preference, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Preference
	for rows.Next() {
		var p Preference
		var updated string
		if err := rows.Scan(&p.Key, &p.Value, &updated); err != nil {
			return nil, err
		}
		p.UpdatedAt = parseSQLiteTime(updated)
		out = append(out, p)
	}
	return out, rows.Err()
}
