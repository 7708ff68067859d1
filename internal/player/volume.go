package player

import (
	"math"
)

// DefaultMaxVolume is the loudest level, twice the unity gain.
const DefaultMaxVolume = 2.0

// Volume returns the current level, 1.0 being the file's own loudness.
func (p *Player) Volume() float64 {
	return p.volumeLevel
}

// MaxVolume returns the upper bound of the volume level.
func (p *Player) MaxVolume() float64 {
	return p.maxVolume
}

// SetVolume sets the level, clamped to [0, MaxVolume]. It applies to the
// current track and to every track played afterwards.
func (p *Player) SetVolume(level float64) {
	p.volumeLevel = p.clampVolume(level)
	p.applyVolume()
}

// AdjustVolume changes the level by delta and returns the new level.
func (p *Player) AdjustVolume(delta float64) float64 {
	p.SetVolume(p.volumeLevel + delta)
	return p.volumeLevel
}

func (p *Player) clampVolume(level float64) float64 {
	// Round away float drift from repeated 0.1 steps
	level = math.Round(level*1000) / 1000
	return min(max(level, 0), p.maxVolume)
}

func (p *Player) applyVolume() {
	if p.volume == nil {
		return
	}
	p.sink.Lock()
	p.volume.Volume, p.volume.Silent = levelToVolume(p.volumeLevel)
	p.sink.Unlock()
}

// levelToVolume converts a linear level to beep's base-2 Volume value:
// 1.0 -> 0, 0.5 -> -1, 2.0 -> +1. A zero level is silent.
func levelToVolume(level float64) (volume float64, silent bool) {
	if level <= 0 {
		return 0, true
	}
	return math.Log2(level), false
}
