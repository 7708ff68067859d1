package app

import "github.com/llehouerou/cadence/internal/player"

// MenuAction is what a menu entry does when selected.
type MenuAction int

const (
	MenuSelectFile MenuAction = iota
	MenuPauseResume
	MenuStop
	MenuVolumeUp
	MenuVolumeDown
	MenuQuit
)

// MenuItem is one entry of the main menu.
type MenuItem struct {
	Label  string
	Action MenuAction
}

// BuildMenu returns the entries available for a playback state. Volume
// entries are present even when nothing is playing.
func BuildMenu(status player.State) []MenuItem {
	items := []MenuItem{{"Select file and play", MenuSelectFile}}

	switch status {
	case player.Playing:
		items = append(items, MenuItem{"Pause", MenuPauseResume}, MenuItem{"Stop", MenuStop})
	case player.Paused:
		items = append(items, MenuItem{"Resume", MenuPauseResume}, MenuItem{"Stop", MenuStop})
	case player.Stopped:
	}

	return append(items,
		MenuItem{"Volume +", MenuVolumeUp},
		MenuItem{"Volume -", MenuVolumeDown},
		MenuItem{"Quit", MenuQuit},
	)
}
