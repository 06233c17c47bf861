package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/jask/jaskcalc/internal/theme"
)

func TestCommandRegistryHasExpectedCommands(t *testing.T) {
	want := map[string]bool{"theme": true, "clear": true, "history": true, "help": true, "quit": true}
	all := NewCommandRegistry().All()
	if len(all) != len(want) {
		t.Fatalf("command count = %d, want %d", len(all), len(want))
	}
	for _, cmd := range all {
		if !want[cmd.Name] {
			t.Fatalf("unexpected command %q", cmd.Name)
		}
	}
}

func TestCommandSuggest(t *testing.T) {
	r := NewCommandRegistry()
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"thme", "theme", true},
		{"claer", "clear", true},
		{"quti", "quit", true},
		{"histroy", "history", true},
		{"zzzzzz", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := r.Suggest(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("Suggest(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCommandRun(t *testing.T) {
	r := NewCommandRegistry()
	a := New(context.Background(), Repos{}, Options{})

	if _, err := r.Run("theme next", a); err != nil {
		t.Fatalf("theme next: %v", err)
	}
	if a.Theme() != theme.Second {
		t.Fatalf("theme = %d", a.Theme())
	}
	if _, err := r.Run("THEME 3", a); err != nil || a.Theme() != theme.Third {
		t.Fatalf("THEME 3: theme=%d err=%v", a.Theme(), err)
	}
	if _, err := r.Run("theme 4", a); !errors.Is(err, theme.ErrInvalidPosition) {
		t.Fatalf("theme 4 err = %v", err)
	}
	if _, err := r.Run("theme", a); err == nil {
		t.Fatal("theme without argument should fail")
	}
	if _, err := r.Run("history clear", a); err == nil {
		t.Fatal("history clear without a store should fail")
	}
	if _, err := r.Run("bogus", a); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("bogus err = %v", err)
	}
	if _, err := r.Run("help", a); err != nil || a.status != "commands: theme, clear, history, help, quit" {
		t.Fatalf("help: status=%q err=%v", a.status, err)
	}
	if _, err := r.Run("help theme", a); err != nil || a.status != "theme <1|2|3|next>: Switch the color theme" {
		t.Fatalf("help theme: status=%q err=%v", a.status, err)
	}
	if _, err := r.Run("help nope", a); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("help nope err = %v", err)
	}
	if cmd, err := r.Run("   ", a); cmd != nil || err != nil {
		t.Fatalf("blank line = %v, %v", cmd, err)
	}
}
