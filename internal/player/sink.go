package player

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// sinkBuffer is the amount of audio the speaker buffers ahead.
const sinkBuffer = time.Second / 10

// sink is the audio output the player streams into.
type sink interface {
	// Init opens the device at the given rate. Only the first call opens
	// it; later tracks are resampled to that rate.
	Init(rate beep.SampleRate) error
	// SampleRate is 0 until Init succeeded.
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// speakerSink outputs through the beep speaker (oto).
type speakerSink struct {
	rate beep.SampleRate
}

func (s *speakerSink) Init(rate beep.SampleRate) error {
	if s.rate != 0 {
		return nil
	}
	if err := speaker.Init(rate, rate.N(sinkBuffer)); err != nil {
		return fmt.Errorf("init speaker at %d Hz: %w", rate, err)
	}
	s.rate = rate
	return nil
}

func (s *speakerSink) SampleRate() beep.SampleRate { return s.rate }

func (s *speakerSink) Play(st beep.Streamer) { speaker.Play(st) }

func (s *speakerSink) Clear() {
	if s.rate != 0 {
		speaker.Clear()
	}
}

func (s *speakerSink) Lock() {
	if s.rate != 0 {
		speaker.Lock()
	}
}

func (s *speakerSink) Unlock() {
	if s.rate != 0 {
		speaker.Unlock()
	}
}
