package app

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/errmsg"
)

var errNotDirectory = errors.New("not a directory")

func newFolderInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "Folder: "
	ti.Placeholder = "~/Music"
	ti.CharLimit = 4096
	return ti
}

// startFolderInput opens the folder prompt, prefilled with the current
// folder.
func (m *Model) startFolderInput() tea.Cmd {
	m.FolderInput.SetValue(m.Picker.Folder())
	m.FolderInput.CursorEnd()
	m.FolderInput.Width = max(m.width()-len(m.FolderInput.Prompt)-1, 10)
	m.InputActive = true
	return m.FolderInput.Focus()
}

func (m *Model) closeFolderInput() {
	m.InputActive = false
	m.FolderInput.Blur()
}

func (m Model) updateFolderInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // the prompt handles the rest
	case tea.KeyEsc:
		m.closeFolderInput()
		return m, nil
	case tea.KeyEnter:
		m.closeFolderInput()
		m.openFolder(m.FolderInput.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.FolderInput, cmd = m.FolderInput.Update(msg)
	return m, cmd
}

// openFolder switches the picker to path. On error the current folder is
// kept.
func (m *Model) openFolder(path string) {
	folder, err := m.cfg.StartFolder(path)
	if err == nil {
		var info os.FileInfo
		if info, err = os.Stat(folder); err == nil && !info.IsDir() {
			err = errNotDirectory
		}
	}
	if err != nil {
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpOpenFolder, path, err)
		return
	}

	picker := newFilePicker(folder)
	if err := picker.Load(m.listHeight()); err != nil {
		m.log.Warn("list files", "folder", folder, "err", err)
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpListFiles, folder, err)
		return
	}
	m.log.Info("folder opened", "folder", folder, "files", picker.Len())
	m.Picker = picker
	m.Screen = ScreenFiles
	m.saveSession()
}
