package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ---------------------------------------------------------------------------
// Keybinding overrides (keybindings.toml)
// ---------------------------------------------------------------------------

// KeyBinding overrides the keys of one action within a scope.
type KeyBinding struct {
	Scope  string   `toml:"scope"`
	Action string   `toml:"action"`
	Keys   []string `toml:"keys"`
}

type keybindingFile struct {
	Binding []KeyBinding `toml:"binding"`
}

// LoadKeybindings reads overrides from path. A missing file yields no
// overrides and no error.
func LoadKeybindings(path string) ([]KeyBinding, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read keybindings: %w", err)
	}
	return ParseKeybindings(data)
}

// ParseKeybindings parses TOML bytes into overrides.
func ParseKeybindings(data []byte) ([]KeyBinding, error) {
	var f keybindingFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse keybindings.toml: %w", err)
	}
	for i, b := range f.Binding {
		if strings.TrimSpace(b.Scope) == "" {
			return nil, fmt.Errorf("binding[%d]: scope is required", i)
		}
		if strings.TrimSpace(b.Action) == "" {
			return nil, fmt.Errorf("binding[%d] scope=%q: action is required", i, b.Scope)
		}
		if len(b.Keys) == 0 {
			return nil, fmt.Errorf("binding[%d] scope=%q action=%q: keys are required", i, b.Scope, b.Action)
		}
	}
	return f.Binding, nil
}

// SaveKeybindings writes overrides to path.
func SaveKeybindings(path string, items []KeyBinding) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(keybindingFile{Binding: items}); err != nil {
		return fmt.Errorf("encode keybindings.toml: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write keybindings.toml: %w", err)
	}
	return nil
}
