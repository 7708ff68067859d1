package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/player"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Picker.cursor.Clamp(m.Picker.Len(), m.listHeight())
		return m, nil

	case TickMsg:
		if m.Player.State() == player.Playing {
			return m, TickCmd(m.cfg.PollInterval())
		}
		m.ticking = false
		return m, nil

	case TrackFinishedMsg:
		m.log.Info("track finished")
		m.Player.Stop()
		return m, m.WatchTrackFinished()

	case StderrMsg:
		m.log.Debug("audio backend", "line", msg.Line)
		m.StatusMsg = msg.Line
		return m, WatchStderr(m.stderr)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Cursor blink and other prompt messages
	if m.InputActive {
		var cmd tea.Cmd
		m.FolderInput, cmd = m.FolderInput.Update(msg)
		return m, cmd
	}
	return m, nil
}
