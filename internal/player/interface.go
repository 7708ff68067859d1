package player

import (
	"time"

	"github.com/llehouerou/cadence/internal/probe"
)

// Interface defines the player contract for dependency injection and testing.
type Interface interface {
	Play(path string) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	TrackInfo() *TrackInfo
	Elapsed() time.Duration
	Duration() probe.Estimate
	Volume() float64
	SetVolume(level float64)
	AdjustVolume(delta float64) float64
	Output() string
	FinishedChan() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
