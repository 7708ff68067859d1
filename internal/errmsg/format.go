// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Playback
	OpPlaybackStart Op = "start playback"
	OpAudioOutput   Op = "open audio output"

	// Browsing
	OpListFiles  Op = "list files"
	OpOpenFolder Op = "open folder"

	// Probing
	OpProbe Op = "probe duration"

	// Persistence and setup
	OpConfigLoad Op = "load config"
	OpStateLoad  Op = "load saved session"
	OpStateSave  Op = "save session"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming the object of the operation,
// usually a file or folder.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
