// Package player plays audio files through the beep speaker and keeps a
// playback clock in step with it.
package player

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/llehouerou/cadence/internal/clock"
	"github.com/llehouerou/cadence/internal/media"
	"github.com/llehouerou/cadence/internal/probe"
)

// resampleQuality is the beep resampling quality used when a track's rate
// differs from the speaker's.
const resampleQuality = 4

// ErrNoPlayableTrack is returned when a file has no decodable track.
var ErrNoPlayableTrack = errors.New("no playable track")

// Options configures a Player.
type Options struct {
	Prober    *probe.Prober // nil uses the default ceiling
	Logger    *slog.Logger  // nil discards
	Volume    float64       // initial level, 1.0 is unity
	MaxVolume float64       // upper bound for Volume, DefaultMaxVolume when 0
}

type Player struct {
	sink   sink
	prober *probe.Prober
	logger *slog.Logger
	clock  *clock.Clock

	state     State
	file      *os.File
	format    media.Format
	stream    *trackStreamer
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	trackInfo *TrackInfo
	duration  probe.Estimate

	volumeLevel float64
	maxVolume   float64

	// generation invalidates end-of-track callbacks of stopped tracks.
	generation atomic.Uint64
	finishedCh chan struct{}
}

// New creates a player that outputs through the beep speaker. The
// speaker is opened lazily, at the rate of the first track played.
func New(opts Options) *Player {
	return newWithSink(&speakerSink{}, opts)
}

func newWithSink(s sink, opts Options) *Player {
	if opts.Prober == nil {
		opts.Prober = probe.New(probe.Options{Logger: opts.Logger})
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.MaxVolume <= 0 {
		opts.MaxVolume = DefaultMaxVolume
	}
	p := &Player{
		sink:       s,
		prober:     opts.Prober,
		logger:     opts.Logger,
		clock:      clock.New(),
		state:      Stopped,
		maxVolume:  opts.MaxVolume,
		finishedCh: make(chan struct{}, 1),
	}
	p.volumeLevel = p.clampVolume(opts.Volume)
	return p
}

// Play stops the current track and starts playing path. The duration is
// probed before the first sample is queued, and the clock starts when the
// streamer is handed to the speaker.
func (p *Player) Play(path string) error {
	p.Stop()

	// Drain any stale finish signal from the previous track
	select {
	case <-p.finishedCh:
	default:
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	est := p.prober.Probe(f, filepath.Ext(path))
	p.logger.Debug("probed duration",
		"path", path,
		"duration", est.Duration,
		"confidence", est.Confidence.String())

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return err
	}

	format, err := media.Open(f, media.HintFromPath(path))
	if err != nil {
		f.Close()
		return err
	}

	track, ok := format.DefaultTrack()
	if !ok {
		format.Close()
		f.Close()
		return ErrNoPlayableTrack
	}

	stream, err := newTrackStreamer(format, track.ID)
	if err != nil {
		format.Close()
		f.Close()
		return fmt.Errorf("%s decoder: %w", track.Codec, err)
	}

	rate := beep.SampleRate(track.SampleRate)
	if err := p.sink.Init(rate); err != nil {
		stream.Close()
		format.Close()
		f.Close()
		return err
	}

	p.file = f
	p.format = format
	p.stream = stream
	p.duration = est
	p.trackInfo = readTrackInfo(path, track)

	var playStreamer beep.Streamer = stream
	if out := p.sink.SampleRate(); rate != out {
		playStreamer = beep.Resample(resampleQuality, rate, out, stream)
	}
	p.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: false}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolume()

	gen := p.generation.Add(1)
	p.clock.StartNew(est.Value())
	p.setState(Playing)
	p.sink.Play(beep.Seq(p.volume, beep.Callback(func() {
		if p.generation.Load() != gen {
			return
		}
		select {
		case p.finishedCh <- struct{}{}:
		default:
		}
	})))

	return nil
}

// setState moves the transport to s once the clock has been moved.
func (p *Player) setState(s State) {
	if got := p.clock.State(); got != s.Clock() {
		p.logger.Error("clock out of step with transport", "state", s, "clock", got)
	}
	p.state = s
}

func (p *Player) State() State { return p.state }

func (p *Player) TrackInfo() *TrackInfo { return p.trackInfo }

// Elapsed returns the wall-clock playback time of the current track,
// clamped to its duration when known.
func (p *Player) Elapsed() time.Duration { return p.clock.Elapsed() }

// Duration returns the probed duration of the current track.
func (p *Player) Duration() probe.Estimate { return p.duration }

// Output describes the audio sink.
func (p *Player) Output() string {
	rate := p.sink.SampleRate()
	if rate == 0 {
		return "speaker (not started)"
	}
	return fmt.Sprintf("speaker @ %d Hz", int(rate))
}

// FinishedChan is signaled when the current track plays to its end.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}
