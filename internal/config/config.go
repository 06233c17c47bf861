package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// StorageConfig selects where preferences live.
type StorageConfig struct {
	Backend string
	Dir     string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Mouse       bool
	HistorySize int    `mapstructure:"history_size"`
	Keybindings string // path to a TOML keybinding override file
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool
	Dir   string
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

// DefaultPath is the config file location when JASKCALC_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".config", "jaskcalc", "config.toml")
}

func dataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "jaskcalc")
}

// Load reads configuration from file and env. Env var overrides use prefix
// JASKCALC_. An explicit path takes precedence over JASKCALC_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir(), "jaskcalc.db"))
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.dir", "")
	v.SetDefault("ui.mouse", true)
	v.SetDefault("ui.history_size", 50)
	v.SetDefault("ui.keybindings", filepath.Join(homeDir(), ".config", "jaskcalc", "keybindings.toml"))
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", filepath.Join(dataDir(), "logs"))

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("JASKCALC_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JASKCALC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// no config file; defaults and env apply
		case explicit && errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

func normalize(c Config) Config {
	switch strings.ToLower(strings.TrimSpace(c.Storage.Backend)) {
	case BackendFile:
		c.Storage.Backend = BackendFile
	default:
		c.Storage.Backend = BackendSQLite
	}
	if c.UI.HistorySize < 0 {
		c.UI.HistorySize = 0
	}
	if c.UI.HistorySize > 500 {
		c.UI.HistorySize = 500
	}
	return c
}

// Save writes the provided config to path, creating the directory if needed.
// An empty path uses JASKCALC_CONFIG or DefaultPath.
func Save(path string, cfg Config) error {
	if path == "" {
		path = os.Getenv("JASKCALC_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("ui.mouse", cfg.UI.Mouse)
	v.Set("ui.history_size", cfg.UI.HistorySize)
	v.Set("ui.keybindings", cfg.UI.Keybindings)
	v.Set("log.debug", cfg.Log.Debug)
	v.Set("log.dir", cfg.Log.Dir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
