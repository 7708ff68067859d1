package player

import (
	"time"

	"github.com/llehouerou/cadence/internal/probe"
)

// Mock is a test double for Player.
type Mock struct {
	state      State
	elapsed    time.Duration
	duration   probe.Estimate
	trackInfo  *TrackInfo
	volume     float64
	output     string
	playErr    error
	playCalls  []string
	stopCalls  int
	finishedCh chan struct{}
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:      Stopped,
		volume:     1,
		output:     "mock",
		finishedCh: make(chan struct{}, 1),
	}
}

func (m *Mock) Play(path string) error {
	m.playCalls = append(m.playCalls, path)
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.state = Stopped
}

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Toggle() {
	switch m.state {
	case Playing:
		m.Pause()
	case Paused:
		m.Resume()
	case Stopped:
		// Nothing to toggle when stopped
	}
}

func (m *Mock) State() State { return m.state }

func (m *Mock) TrackInfo() *TrackInfo { return m.trackInfo }

func (m *Mock) Elapsed() time.Duration { return m.elapsed }

func (m *Mock) Duration() probe.Estimate { return m.duration }

func (m *Mock) Volume() float64 { return m.volume }

func (m *Mock) SetVolume(level float64) {
	m.volume = min(max(level, 0), DefaultMaxVolume)
}

func (m *Mock) AdjustVolume(delta float64) float64 {
	m.SetVolume(m.volume + delta)
	return m.volume
}

func (m *Mock) Output() string { return m.output }

func (m *Mock) FinishedChan() <-chan struct{} {
	return m.finishedCh
}

// Test helpers

func (m *Mock) SetState(s State) { m.state = s }

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) PlayCalls() []string { return m.playCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

func (m *Mock) SetTrackInfo(info *TrackInfo) { m.trackInfo = info }

func (m *Mock) SetDuration(e probe.Estimate) { m.duration = e }

func (m *Mock) SetElapsed(d time.Duration) { m.elapsed = d }

func (m *Mock) SetOutput(s string) { m.output = s }

// SimulateFinished simulates a track finishing.
func (m *Mock) SimulateFinished() {
	select {
	case m.finishedCh <- struct{}{}:
	default:
	}
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
