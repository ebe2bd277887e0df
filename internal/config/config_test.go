package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("FINQUEST_DATA_DIR", "")
	t.Setenv("FINQUEST_CURRENCY", "")
	t.Setenv("FINQUEST_LOG_LEVEL", "")
	return dir
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte(body), 0o600))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, filepath.Join(dir, "data", "finquest"), cfg.DataDir())
	assert.False(t, Exists(), "config exists before Save")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.Display.CurrencySymbol = "$"
	cfg.Game.ComebackDays = 3
	require.NoError(t, Save(cfg))

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	writeConfig(t, "[display]\ncurrency_symbol = \"€\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "€", cfg.Display.CurrencySymbol)
	assert.Equal(t, 7, cfg.Game.ComebackDays)
}

func TestLoadBadFile(t *testing.T) {
	isolate(t)
	writeConfig(t, "[display\n")

	_, err := Load()
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FINQUEST_DATA_DIR", "/tmp/fq")
	t.Setenv("FINQUEST_CURRENCY", "£")
	t.Setenv("FINQUEST_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fq", cfg.DataDir())
	assert.Equal(t, "£", cfg.Display.CurrencySymbol)
	assert.Equal(t, "debug", cfg.General.LogLevel)
}

func TestSetAndGet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{"display.currency_symbol", "$", false},
		{"game.comeback_days", "14", false},
		{"game.comeback_days", "0", true},
		{"general.log_level", "error", false},
		{"general.log_level", "loud", true},
		{"display.font", "mono", true},
	}
	for _, tt := range tests {
		err := cfg.Set(tt.key, tt.value)
		if tt.wantErr {
			assert.Error(t, err, "Set(%q, %q)", tt.key, tt.value)
			continue
		}
		require.NoError(t, err, "Set(%q, %q)", tt.key, tt.value)
		got, _ := cfg.Get(tt.key)
		assert.Equal(t, tt.value, got)
	}
	assert.Equal(t, 14, cfg.Game.ComebackDays, "rejected update changed the value")
	_, ok := cfg.Get("display.font")
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}
