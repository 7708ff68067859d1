package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/probe"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"tilde only", "~", home},
		{"absolute path unchanged", "/usr/local/music", "/usr/local/music"},
		{"relative path unchanged", "music/albums", "music/albums"},
		{"empty string unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.input))
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join("cadence", "config.toml"),
		filepath.Join(filepath.Base(filepath.Dir(paths[0])), filepath.Base(paths[0])))
	assert.Equal(t, "config.toml", paths[1])
}

func TestLoadFiles_Defaults(t *testing.T) {
	cfg, err := loadFiles([]string{filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)

	assert.Empty(t, cfg.DefaultFolder)
	assert.Equal(t, probe.DefaultPacketCeiling, cfg.Probe.PacketCeiling)
	assert.Equal(t, 150*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, 30, cfg.UI.BarWidth)
	assert.InDelta(t, 0.1, cfg.Volume.Step, 1e-9)
	assert.InDelta(t, 2.0, cfg.Volume.Max, 1e-9)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoadFiles_Values(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", `
default_folder = "/srv/music"

[probe]
packet_ceiling = 250

[ui]
poll_interval_ms = 100
bar_width = 40

[volume]
step = 0.05
max = 1.5

[log]
file = "/tmp/cadence.log"
level = "DEBUG"
`)

	cfg, err := loadFiles([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "/srv/music", cfg.DefaultFolder)
	assert.Equal(t, 250, cfg.Probe.PacketCeiling)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, 40, cfg.UI.BarWidth)
	assert.InDelta(t, 0.05, cfg.Volume.Step, 1e-9)
	assert.InDelta(t, 1.5, cfg.Volume.Max, 1e-9)
	assert.Equal(t, "/tmp/cadence.log", cfg.Log.File)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoadFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	user := writeConfig(t, dir, "user.toml", "default_folder = \"/a\"\n[ui]\nbar_width = 12\n")
	local := writeConfig(t, dir, "local.toml", "default_folder = \"/b\"\n")

	cfg, err := loadFiles([]string{user, local})
	require.NoError(t, err)

	assert.Equal(t, "/b", cfg.DefaultFolder)
	assert.Equal(t, 12, cfg.UI.BarWidth)
}

func TestLoadFiles_InvalidValuesFallBack(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", `
[probe]
packet_ceiling = -1

[ui]
poll_interval_ms = 0
bar_width = -5

[volume]
step = 3.0
max = -1.0

[log]
level = "loud"
`)

	cfg, err := loadFiles([]string{path})
	require.NoError(t, err)

	assert.Equal(t, probe.DefaultPacketCeiling, cfg.Probe.PacketCeiling)
	assert.Equal(t, 150*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, 30, cfg.UI.BarWidth)
	assert.InDelta(t, 2.0, cfg.Volume.Max, 1e-9)
	assert.InDelta(t, 0.1, cfg.Volume.Step, 1e-9)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoadFiles_InvalidToml(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", "default_folder = [unclosed")

	_, err := loadFiles([]string{path})

	assert.Error(t, err)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Explicit(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), "custom.toml", "[ui]\nbar_width = 22\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 22, cfg.UI.BarWidth)
}

func TestStartFolder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := &Config{DefaultFolder: "/srv/music"}

	got, err := cfg.StartFolder("/data/songs")
	require.NoError(t, err)
	assert.Equal(t, "/data/songs", got)

	got, err = cfg.StartFolder("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/music", got)

	got, err = (&Config{}).StartFolder("")
	require.NoError(t, err)
	wd, _ := os.Getwd()
	assert.Equal(t, wd, got)

	got, err = (&Config{}).StartFolder("sub")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "sub"), got)
}
