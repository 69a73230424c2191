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

// Config holds application configuration.
type Config struct {
	Store   StoreConfig
	UI      UIConfig
	Reorder ReorderConfig
	Log     LogConfig
}

// StoreConfig selects where items live. Backend is "json" or "sqlite";
// an empty Path means the backend default.
type StoreConfig struct {
	Backend string
	Path    string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string
	Color string // auto | always | never
}

// ReorderConfig controls drag-and-drop in the interactive list.
type ReorderConfig struct {
	Enabled bool
	Sync    bool // swap stored sort indices on every move
}

// LogConfig routes the debug log; an empty File discards it.
type LogConfig struct {
	File  string
	Level string
}

const envPrefix = "TADA"

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("store.backend", "json")
	v.SetDefault("store.path", "")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.color", "auto")
	v.SetDefault("reorder.enabled", true)
	v.SetDefault("reorder.sync", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Path returns the config file location: $TADA_CONFIG or
// ~/.config/tada/config.toml.
func Path() string {
	if p := os.Getenv("TADA_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tada", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix TADA_.
// A missing config file is not an error.
func Load() (Config, error) {
	v := newViper()
	v.SetConfigFile(Path())
	if err := v.ReadInConfig(); err != nil && !missing(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func missing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// Validate rejects unknown enum values.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("store.backend: unknown backend %q (want json or sqlite)", c.Store.Backend)
	}
	switch c.UI.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: unknown mode %q (want auto, always or never)", c.UI.Color)
	}
	return nil
}

// Save writes cfg to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.color", cfg.UI.Color)
	v.Set("reorder.enabled", cfg.Reorder.Enabled)
	v.Set("reorder.sync", cfg.Reorder.Sync)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
