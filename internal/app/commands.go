package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickCmd returns a command that sends TickMsg after interval.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchTrackFinished returns a command that waits for the player to finish
// a track naturally. Manual stops and replaced tracks do not signal.
func (m Model) WatchTrackFinished() tea.Cmd {
	ch := m.Player.FinishedChan()
	return func() tea.Msg {
		<-ch
		return TrackFinishedMsg{}
	}
}

// WatchStderr returns a command that waits for the next captured stderr
// line. It returns nil when there is nothing to watch.
func WatchStderr(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil // capture stopped
		}
		return StderrMsg{Line: line}
	}
}
