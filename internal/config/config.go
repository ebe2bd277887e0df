// Package config loads finquest settings from a TOML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all finquest configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Display DisplayConfig `toml:"display"`
	Game    GameConfig    `toml:"game"`
}

// GeneralConfig holds storage and logging preferences.
type GeneralConfig struct {
	DataDir  string `toml:"data_dir,omitempty"`
	LogLevel string `toml:"log_level"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	CurrencySymbol string `toml:"currency_symbol"`
	Theme          string `toml:"theme"`
}

// GameConfig tunes the gamification rules.
type GameConfig struct {
	ComebackDays int `toml:"comeback_days"`
}

// envOverrides are read after the file and win over it.
type envOverrides struct {
	DataDir  string `env:"FINQUEST_DATA_DIR"`
	Currency string `env:"FINQUEST_CURRENCY"`
	LogLevel string `env:"FINQUEST_LOG_LEVEL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel: "warn",
		},
		Display: DisplayConfig{
			CurrencySymbol: "฿",
			Theme:          "flexoki-dark",
		},
		Game: GameConfig{
			ComebackDays: 7,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finquest")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finquest")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DefaultDataDir returns the XDG-compliant data directory.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finquest")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finquest")
}

// DataDir returns the configured data directory or the default one.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	return DefaultDataDir()
}

// Load reads the config file, returning defaults if it doesn't exist, and
// applies environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if ov.DataDir != "" {
		cfg.General.DataDir = ov.DataDir
	}
	if ov.Currency != "" {
		cfg.Display.CurrencySymbol = ov.Currency
	}
	if ov.LogLevel != "" {
		cfg.General.LogLevel = ov.LogLevel
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Keys lists the settings accepted by Set, in display order.
var Keys = []string{
	"general.data_dir",
	"general.log_level",
	"display.currency_symbol",
	"display.theme",
	"game.comeback_days",
}

// Set updates one setting by its dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "general.data_dir":
		c.General.DataDir = value
	case "general.log_level":
		if _, err := ParseLevel(value); err != nil {
			return err
		}
		c.General.LogLevel = value
	case "display.currency_symbol":
		c.Display.CurrencySymbol = value
	case "display.theme":
		c.Display.Theme = value
	case "game.comeback_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("comeback_days must be a positive whole number, got %q", value)
		}
		c.Game.ComebackDays = n
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns one setting by its dotted key.
func (c Config) Get(key string) (string, bool) {
	switch key {
	case "general.data_dir":
		return c.DataDir(), true
	case "general.log_level":
		return c.General.LogLevel, true
	case "display.currency_symbol":
		return c.Display.CurrencySymbol, true
	case "display.theme":
		return c.Display.Theme, true
	case "game.comeback_days":
		return strconv.Itoa(c.Game.ComebackDays), true
	}
	return "", false
}

// ParseLevel converts a level name such as "debug" or "warn".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
