package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersByLevel(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		debug bool
		warn  bool
	}{
		{"debug", slog.LevelDebug, true, true},
		{"info", slog.LevelInfo, false, true},
		{"error", slog.LevelError, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.level)
			log.Debug("probe finished", "file", "a.flac")
			log.Warn("playback failed")

			assert.Equal(t, tt.debug, bytes.Contains(buf.Bytes(), []byte("probe finished")))
			assert.Equal(t, tt.warn, bytes.Contains(buf.Bytes(), []byte("playback failed")))
		})
	}
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cadence.log")

	log, closer, err := Open(path, slog.LevelInfo)
	require.NoError(t, err)
	log.Info("first", "n", 1)
	require.NoError(t, closer.Close())

	log, closer, err = Open(path, slog.LevelInfo)
	require.NoError(t, err)
	log.Info("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first n=1")
	assert.Contains(t, string(data), "msg=second")
}

func TestOpen_DirectoryError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, _, err := Open(filepath.Join(blocker, "cadence.log"), slog.LevelInfo)
	require.Error(t, err)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(t.Context(), slog.LevelError))
}
