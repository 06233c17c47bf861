package repository

import "time"

// Preference is a single key-value row.
type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// HistoryEntry is one successful evaluation.
type HistoryEntry struct {
	ID         string
	Expression string
	Result     string
	CreatedAt  time.Time
}
