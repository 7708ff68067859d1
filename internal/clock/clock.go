// Package clock tracks elapsed playback time across pauses.
//
// A Clock is not safe for concurrent use. It belongs to the control loop
// that also drives the audio sink.
package clock

import "time"

// State is the derived state of a Clock.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	}
	return "Unknown"
}

// Clock measures wall-clock playback time for the current track.
type Clock struct {
	total    time.Duration
	hasTotal bool

	start       time.Time // zero when idle
	pausedAt    time.Time // zero when not paused
	pausedAccum time.Duration
}

// New returns an idle clock.
func New() *Clock {
	return &Clock{}
}

// StartNew starts timing a new track. known tells whether total is
// meaningful. Any previous timing is discarded.
func (c *Clock) StartNew(total time.Duration, known bool) {
	*c = Clock{
		total:    max(total, 0),
		hasTotal: known,
		start:    time.Now(),
	}
}

// Pause freezes elapsed time. It does nothing unless the clock is running.
func (c *Clock) Pause() {
	if c.State() != Running {
		return
	}
	c.pausedAt = time.Now()
}

// Resume continues after a pause. It does nothing unless the clock is
// paused.
func (c *Clock) Resume() {
	if c.State() != Paused {
		return
	}
	c.pausedAccum += sub(time.Now(), c.pausedAt)
	c.pausedAt = time.Time{}
}

// Stop returns the clock to idle and forgets the total.
func (c *Clock) Stop() {
	*c = Clock{}
}

// State reports whether the clock is idle, running or paused.
func (c *Clock) State() State {
	switch {
	case c.start.IsZero():
		return Idle
	case !c.pausedAt.IsZero():
		return Paused
	default:
		return Running
	}
}

// Total returns the duration of the current track, if known.
func (c *Clock) Total() (time.Duration, bool) {
	if !c.hasTotal {
		return 0, false
	}
	return c.total, true
}

// Elapsed returns the playback time of the current track, excluding
// paused time. It never exceeds a known total.
func (c *Clock) Elapsed() time.Duration {
	var end time.Time
	switch c.State() {
	case Idle:
		return 0
	case Paused:
		end = c.pausedAt
	case Running:
		end = time.Now()
	}

	elapsed := max(sub(end, c.start)-c.pausedAccum, 0)
	if c.hasTotal {
		elapsed = min(elapsed, c.total)
	}
	return elapsed
}

// sub returns a-b, or zero if b is after a.
func sub(a, b time.Time) time.Duration {
	return max(a.Sub(b), 0)
}
