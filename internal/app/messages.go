// Package app contains the bubbletea model driving the player UI.
package app

import "time"

// TickMsg is sent periodically while playing to refresh the time line.
type TickMsg time.Time

// TrackFinishedMsg is sent when the current track played to its end.
type TrackFinishedMsg struct{}

// StderrMsg is sent when output from the audio backend was captured.
type StderrMsg struct {
	Line string
}
