package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/cadence/internal/probe"
)

const (
	appName = "cadence"

	defaultPollIntervalMS = 150
	defaultBarWidth       = 30
	defaultVolumeStep     = 0.1
	defaultVolumeMax      = 2.0
)

type Config struct {
	DefaultFolder string       `koanf:"default_folder"` // empty means cwd
	Probe         ProbeConfig  `koanf:"probe"`
	UI            UIConfig     `koanf:"ui"`
	Volume        VolumeConfig `koanf:"volume"`
	Log           LogConfig    `koanf:"log"`
}

// ProbeConfig bounds the duration estimation pass.
type ProbeConfig struct {
	PacketCeiling int `koanf:"packet_ceiling"` // values <= 0 use the default
}

type UIConfig struct {
	PollIntervalMS int `koanf:"poll_interval_ms"` // header refresh period
	BarWidth       int `koanf:"bar_width"`        // progress bar cells
}

type VolumeConfig struct {
	Step float64 `koanf:"step"`
	Max  float64 `koanf:"max"`
}

type LogConfig struct {
	File  string `koanf:"file"`  // empty logs under the XDG state dir
	Level string `koanf:"level"` // debug, info, warn or error
}

// Load reads the user and working-directory config files, then explicit
// when it is not empty. Later files override earlier ones. Missing
// implicit files are skipped; a missing explicit file is an error.
func Load(explicit string) (*Config, error) {
	paths := getConfigPaths()
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, explicit)
	}
	return loadFiles(paths)
}

func loadFiles(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/cadence/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd)
		"config.toml",
	}
}

func (c *Config) normalize() {
	c.DefaultFolder = expandPath(c.DefaultFolder)
	c.Log.File = expandPath(c.Log.File)

	if c.Probe.PacketCeiling <= 0 {
		c.Probe.PacketCeiling = probe.DefaultPacketCeiling
	}
	if c.UI.PollIntervalMS <= 0 {
		c.UI.PollIntervalMS = defaultPollIntervalMS
	}
	if c.UI.BarWidth <= 0 {
		c.UI.BarWidth = defaultBarWidth
	}
	if c.Volume.Max <= 0 {
		c.Volume.Max = defaultVolumeMax
	}
	if c.Volume.Step <= 0 || c.Volume.Step > c.Volume.Max {
		c.Volume.Step = defaultVolumeStep
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// PollInterval returns the header refresh period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.UI.PollIntervalMS) * time.Millisecond
}

// LogLevel returns the configured level, info when unset or invalid.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// StartFolder returns the folder to browse at startup: arg when given,
// then default_folder, then the working directory.
func (c *Config) StartFolder(arg string) (string, error) {
	folder := expandPath(arg)
	if folder == "" {
		folder = c.DefaultFolder
	}
	if folder == "" {
		return os.Getwd()
	}
	return filepath.Abs(folder)
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
