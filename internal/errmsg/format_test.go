package errmsg

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackStart,
			err:      errors.New("unsupported format"),
			expected: "Failed to start playback: unsupported format",
		},
		{
			name:     "wrapped error keeps chain text",
			op:       OpListFiles,
			err:      fmt.Errorf("read dir: %w", os.ErrPermission),
			expected: "Failed to list files: read dir: permission denied",
		},
		{
			name:     "initialization",
			op:       OpInitialize,
			err:      errors.New("no audio device"),
			expected: "Failed to initialize application: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			context:  "song.flac",
			expected: "",
		},
		{
			name:     "includes context",
			op:       OpPlaybackStart,
			context:  "song.flac",
			err:      errors.New("corrupt stream"),
			expected: "Failed to start playback 'song.flac': corrupt stream",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpOpenFolder,
			err:      errors.New("not a directory"),
			expected: "Failed to open folder: not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(tt.op, tt.context, tt.err); got != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", got, tt.expected)
			}
		})
	}
}
