package app

import "github.com/llehouerou/cadence/internal/state"

// saveSession persists the folder, the selected file and the volume.
func (m *Model) saveSession() {
	s := state.Session{
		Folder: m.Picker.Folder(),
		Volume: m.Player.Volume(),
	}
	if f, ok := m.Picker.Selected(); ok {
		s.SelectedName = f.Name
	}
	m.StateMgr.SaveSession(s)
}
