package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JASKCALC_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
	require.True(t, cfg.UI.Mouse)
	require.Equal(t, 50, cfg.UI.HistorySize)
	require.Equal(t, "jaskcalc.db", filepath.Base(cfg.Database.Path))
	require.False(t, cfg.Log.Debug)
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "/tmp/calc.db"

[storage]
backend = "FILE"

[ui]
mouse = false
history_size = 9000
`), 0o644))
	t.Setenv("JASKCALC_LOG_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/calc.db", cfg.Database.Path)
	require.Equal(t, BackendFile, cfg.Storage.Backend)
	require.False(t, cfg.UI.Mouse)
	require.Equal(t, 500, cfg.UI.HistorySize, "history size is clamped")
	require.True(t, cfg.Log.Debug)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
}

func TestLoadInvalidFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui\nmouse = "), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := Config{
		Database: DatabaseConfig{Path: "/data/calc.db"},
		Storage:  StorageConfig{Backend: BackendFile, Dir: "/data/prefs"},
		UI:       UIConfig{Mouse: false, HistorySize: 12, Keybindings: "/data/keys.toml"},
		Log:      LogConfig{Debug: true, Dir: "/data/logs"},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestParseKeybindings(t *testing.T) {
	items, err := ParseKeybindings([]byte(`
[[binding]]
scope = "keypad"
action = "cycle_theme"
keys = ["ctrl+t"]

[[binding]]
scope = "global"
action = "quit"
keys = ["ctrl+q", "q"]
`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, KeyBinding{Scope: "keypad", Action: "cycle_theme", Keys: []string{"ctrl+t"}}, items[0])
	require.Equal(t, []string{"ctrl+q", "q"}, items[1].Keys)
}

func TestParseKeybindingsValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing scope", "[[binding]]\naction = \"quit\"\nkeys = [\"q\"]\n"},
		{"missing action", "[[binding]]\nscope = \"global\"\nkeys = [\"q\"]\n"},
		{"missing keys", "[[binding]]\nscope = \"global\"\naction = \"quit\"\n"},
		{"bad toml", "[[binding]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKeybindings([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestKeybindingsSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb", "keybindings.toml")
	items := []KeyBinding{{Scope: "keypad", Action: "evaluate", Keys: []string{"enter", "="}}}
	require.NoError(t, SaveKeybindings(path, items))

	got, err := LoadKeybindings(path)
	require.NoError(t, err)
	require.Equal(t, items, got)

	none, err := LoadKeybindings(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Nil(t, none)
}
