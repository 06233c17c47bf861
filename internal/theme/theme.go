package theme

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StorageKey is the fixed preference key the selection is saved under.
const StorageKey = "calcTheme"

// ErrInvalidPosition is returned when a position outside 1..3 is requested.
var ErrInvalidPosition = errors.New("theme position must be 1, 2 or 3")

// Position is one of the three toggle positions.
type Position int

const (
	First  Position = 1
	Second Position = 2
	Third  Position = 3

	Default = First
	count   = 3
)

// Store is the key-value persistence the toggle reads and writes.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

func (p Position) Valid() bool { return p >= First && p <= Third }

// Next cycles forward, wrapping from the last position to the first.
func (p Position) Next() Position {
	if !p.Valid() || p == Third {
		return First
	}
	return p + 1
}

// String returns the stored form, e.g. "theme-2".
func (p Position) String() string {
	return "theme-" + strconv.Itoa(int(p))
}

// Select validates a directly chosen position.
func Select(n int) (Position, error) {
	p := Position(n)
	if !p.Valid() {
		return Default, fmt.Errorf("select %d: %w", n, ErrInvalidPosition)
	}
	return p, nil
}

// ParsePosition accepts "theme-N" or a bare "N".
func ParsePosition(s string) (Position, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "theme-")
	n, err := strconv.Atoi(s)
	if err != nil {
		return Default, fmt.Errorf("parse theme %q: %w", s, ErrInvalidPosition)
	}
	return Select(n)
}

// Load restores the saved position. A missing or unparsable value yields
// Default without error; only storage failures are returned.
func Load(ctx context.Context, store Store) (Position, error) {
	if store == nil {
		return Default, nil
	}
	raw, ok, err := store.Get(ctx, StorageKey)
	if err != nil {
		return Default, fmt.Errorf("load theme: %w", err)
	}
	if !ok {
		return Default, nil
	}
	p, err := ParsePosition(raw)
	if err != nil {
		return Default, nil
	}
	return p, nil
}

// Save persists p under StorageKey.
func Save(ctx context.Context, store Store, p Position) error {
	if !p.Valid() {
		return fmt.Errorf("save theme: %w", ErrInvalidPosition)
	}
	if store == nil {
		return nil
	}
	if err := store.Set(ctx, StorageKey, p.String()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// All returns the positions in display order.
func All() []Position {
	out := make([]Position, 0, count)
	for p := First; p <= Third; p++ {
		out = append(out, p)
	}
	return out
}
