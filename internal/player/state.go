package player

import "github.com/llehouerou/cadence/internal/clock"

// State is the transport state of the player.
//
//	Stopped ──Play──▶ Playing ──Pause──▶ Paused
//	   ▲                │  ▲               │
//	   │                │  └────Resume─────┘
//	   └──Stop / end────┴──────Stop────────┘
//
// Play from any state stops the current track first. Pause while not
// playing and Resume while not paused are no-ops. The playback clock
// follows the same transitions: Playing maps to a running clock, Paused
// to a paused clock and Stopped to an idle one.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// Clock returns the clock state that goes with s.
func (s State) Clock() clock.State {
	switch s {
	case Playing:
		return clock.Running
	case Paused:
		return clock.Paused
	default:
		return clock.Idle
	}
}
