package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// HistoryRepo stores the calculation tape.
type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// Add inserts e, assigning an ID and timestamp when missing, then trims the
// tape to the newest keep rows (keep <= 0 disables trimming).
func (r *HistoryRepo) Add(ctx context.Context, e HistoryEntry, keep int) (HistoryEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return e, err
	}
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO history(id, expression, result, created_at) VALUES (?, ?, ?, ?)
	`, e.ID, e.Expression, e.Result, e.CreatedAt); err != nil {
		_ = tx.Rollback()
		return e, err
	}
	if keep > 0 {
		if _, err := tx.ExecContext(ctx, `
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, keep); err != nil {
			_ = tx.Rollback()
			return e, err
		}
	}
	return e, tx.Commit()
}

// Recent returns up to limit entries, newest first.
func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, expression, result, created_at FROM history
	ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Expression, &e.Result, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n)
	return n, err
}

func (r *HistoryRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM history`)
	return err
}
