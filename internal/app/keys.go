package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/keymap"
)

// keyResult is the outcome of a key handler.
type keyResult struct {
	handled bool
	cmd     tea.Cmd
}

var (
	notHandled   = keyResult{}
	handledNoCmd = keyResult{handled: true}
)

func handled(cmd tea.Cmd) keyResult {
	return keyResult{handled: true, cmd: cmd}
}

// chain runs handlers in order until one handles the key.
func chain(handlers ...func() keyResult) (bool, tea.Cmd) {
	for _, h := range handlers {
		if r := h(); r.handled {
			return true, r.cmd
		}
	}
	return false, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses the error
	if m.ErrorMsg != "" {
		m.ErrorMsg = ""
		return m, nil
	}

	if m.InputActive {
		return m.updateFolderInput(msg)
	}

	key := msg.String()

	if m.ShowHelp {
		switch m.Keys.Resolve(key) { //nolint:exhaustive // everything else is ignored
		case keymap.ActionHelp, keymap.ActionBack, keymap.ActionQuit:
			m.ShowHelp = false
		}
		return m, nil
	}

	_, cmd := chain(
		func() keyResult { return m.handleGlobalKeys(key) },
		func() keyResult { return m.handlePlaybackKeys(key) },
		func() keyResult {
			if m.Screen == ScreenFiles {
				return m.handleFileKeys(key)
			}
			return m.handleMenuKeys(key)
		},
	)
	return m, cmd
}

func (m *Model) handleGlobalKeys(key string) keyResult {
	switch m.Keys.Resolve(key) { //nolint:exhaustive // only handling global actions
	case keymap.ActionQuit:
		return handled(m.quit())
	case keymap.ActionHelp:
		m.ShowHelp = true
		return handledNoCmd
	}
	return notHandled
}

func (m *Model) handlePlaybackKeys(key string) keyResult {
	switch m.Keys.Resolve(key) { //nolint:exhaustive // only handling playback actions
	case keymap.ActionPlayPause:
		return handled(m.togglePause())
	case keymap.ActionStop:
		m.Player.Stop()
		return handledNoCmd
	case keymap.ActionVolumeUp:
		m.adjustVolume(m.cfg.Volume.Step)
		return handledNoCmd
	case keymap.ActionVolumeDown:
		m.adjustVolume(-m.cfg.Volume.Step)
		return handledNoCmd
	}
	return notHandled
}

func (m *Model) handleMenuKeys(key string) keyResult {
	items := BuildMenu(m.Player.State())
	n := len(items)
	m.MenuCursor.Clamp(n, n)

	switch m.Keys.Resolve(key) { //nolint:exhaustive // only handling list actions
	case keymap.ActionMoveUp:
		m.MenuCursor.Move(-1, n, n)
	case keymap.ActionMoveDown:
		m.MenuCursor.Move(1, n, n)
	case keymap.ActionJumpStart, keymap.ActionPageUp:
		m.MenuCursor.Jump(0, n, n)
	case keymap.ActionJumpEnd, keymap.ActionPageDown:
		m.MenuCursor.Jump(n-1, n, n)
	case keymap.ActionSelect:
		return handled(m.runMenuAction(items[m.MenuCursor.Pos()].Action))
	default:
		return notHandled
	}
	return handledNoCmd
}

func (m *Model) handleFileKeys(key string) keyResult {
	n, h := m.Picker.Len(), m.listHeight()

	switch m.Keys.Resolve(key) { //nolint:exhaustive // only handling picker actions
	case keymap.ActionMoveUp:
		m.Picker.cursor.Move(-1, n, h)
	case keymap.ActionMoveDown:
		m.Picker.cursor.Move(1, n, h)
	case keymap.ActionPageUp:
		m.Picker.cursor.Page(-1, n, h)
	case keymap.ActionPageDown:
		m.Picker.cursor.Page(1, n, h)
	case keymap.ActionJumpStart:
		m.Picker.cursor.Jump(0, n, h)
	case keymap.ActionJumpEnd:
		m.Picker.cursor.Jump(n-1, n, h)
	case keymap.ActionSelect:
		return handled(m.playSelected())
	case keymap.ActionBack:
		m.Screen = ScreenMenu
	case keymap.ActionOpenFolder:
		return handled(m.startFolderInput())
	default:
		return notHandled
	}
	return handledNoCmd
}

func (m *Model) runMenuAction(action MenuAction) tea.Cmd {
	switch action {
	case MenuSelectFile:
		m.showPicker()
	case MenuPauseResume:
		return m.togglePause()
	case MenuStop:
		m.Player.Stop()
	case MenuVolumeUp:
		m.adjustVolume(m.cfg.Volume.Step)
	case MenuVolumeDown:
		m.adjustVolume(-m.cfg.Volume.Step)
	case MenuQuit:
		return m.quit()
	}
	return nil
}

// showPicker refreshes the file list and switches to it.
func (m *Model) showPicker() {
	if err := m.Picker.Load(m.listHeight()); err != nil {
		m.log.Warn("list files", "folder", m.Picker.Folder(), "err", err)
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpListFiles, m.Picker.Folder(), err)
		return
	}
	m.Screen = ScreenFiles
}

func (m *Model) playSelected() tea.Cmd {
	f, ok := m.Picker.Selected()
	if !ok {
		return nil
	}
	if err := m.Player.Play(f.Path); err != nil {
		m.log.Warn("playback failed", "file", f.Path, "err", err)
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpPlaybackStart, f.Name, err)
		return nil
	}
	m.log.Info("playing", "file", f.Path)
	m.Screen = ScreenMenu
	m.saveSession()
	return m.startTick()
}

func (m *Model) togglePause() tea.Cmd {
	m.Player.Toggle()
	return m.startTick()
}

func (m *Model) adjustVolume(delta float64) {
	level := m.Player.AdjustVolume(delta)
	m.log.Debug("volume", "level", level)
	m.saveSession()
}

func (m *Model) quit() tea.Cmd {
	m.Player.Stop()
	m.saveSession()
	if err := m.StateMgr.Close(); err != nil {
		m.log.Error("close state", "err", err)
	}
	return tea.Quit
}
