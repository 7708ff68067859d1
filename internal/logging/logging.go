// Package logging sets up the application's slog logger. The TUI owns the
// terminal, so records always go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const relativeLogPath = "cadence/cadence.log"

// DefaultPath returns the log file under the XDG state directory, creating
// its parent directory.
func DefaultPath() (string, error) {
	return xdg.StateFile(relativeLogPath)
}

// Open returns a text logger appending to path, or to DefaultPath when
// path is empty. The returned closer closes the file.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, nil, fmt.Errorf("log path: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return New(f, level), f, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
