// Package probe determines how long a media file will play.
//
// Exact container metadata is preferred. When a container does not carry a
// frame count, a bounded decoding pass counts the frames of the default
// track instead.
package probe

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/llehouerou/cadence/internal/media"
)

// DefaultPacketCeiling bounds the estimation pass when no other ceiling is
// configured.
const DefaultPacketCeiling = 5000

// Confidence tells how a duration was obtained.
type Confidence int

const (
	// Unknown means no duration could be determined.
	Unknown Confidence = iota
	// Exact comes from a frame count declared by the container.
	Exact
	// Estimated comes from decoding the whole stream.
	Estimated
	// Truncated comes from a decoding pass stopped by the packet ceiling.
	// The duration is a lower bound.
	Truncated
)

func (c Confidence) String() string {
	switch c {
	case Exact:
		return "exact"
	case Estimated:
		return "estimated"
	case Truncated:
		return "truncated"
	case Unknown:
	}
	return "unknown"
}

// Estimate is the outcome of probing a file.
type Estimate struct {
	Duration   time.Duration
	Confidence Confidence
}

// Value returns the duration and whether it is known.
func (e Estimate) Value() (time.Duration, bool) {
	if e.Confidence == Unknown {
		return 0, false
	}
	return e.Duration, true
}

// Known reports whether a duration was determined.
func (e Estimate) Known() bool {
	return e.Confidence != Unknown
}

// Options configures a Prober.
type Options struct {
	// PacketCeiling is the maximum number of packets of the target track
	// read by the estimation pass. Values <= 0 use DefaultPacketCeiling.
	PacketCeiling int

	// Logger receives debug output. Nil uses slog.Default().
	Logger *slog.Logger
}

// Prober determines durations. It holds no state between calls and is
// safe for concurrent use.
type Prober struct {
	ceiling int
	logger  *slog.Logger
}

// New creates a Prober.
func New(opts Options) *Prober {
	ceiling := opts.PacketCeiling
	if ceiling <= 0 {
		ceiling = DefaultPacketCeiling
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{ceiling: ceiling, logger: logger}
}

// Ceiling returns the effective packet ceiling.
func (p *Prober) Ceiling() int {
	return p.ceiling
}

var defaultProber = New(Options{})

// Probe determines the duration of the media in h with default options.
// The hint is a file extension used only when content detection is
// inconclusive.
func Probe(h io.ReadSeeker, hint string) Estimate {
	return defaultProber.Probe(h, hint)
}

// Probe determines the duration of the media in h. It never fails: every
// problem degrades to an Unknown estimate.
func (p *Prober) Probe(h io.ReadSeeker, hint string) (est Estimate) {
	defer func() {
		// Decoder libraries may panic on corrupt input.
		if r := recover(); r != nil {
			p.logger.Debug("probe: decoder panic", "hint", hint, "panic", r)
			est = Estimate{}
		}
	}()

	f, err := media.Open(h, media.Hint{Extension: hint})
	if err != nil {
		p.logger.Debug("probe: open failed", "hint", hint, "err", err)
		return Estimate{}
	}
	defer f.Close()

	track, ok := f.DefaultTrack()
	if !ok || track.SampleRate <= 0 {
		p.logger.Debug("probe: no decodable track", "format", f.Name())
		return Estimate{}
	}

	if track.FramesKnown {
		est = Estimate{
			Duration:   FramesToDuration(track.Frames, track.SampleRate),
			Confidence: Exact,
		}
		p.logger.Debug("probe: exact", "format", f.Name(), "frames", track.Frames, "duration", est.Duration)
		return est
	}

	frames, truncated, err := p.countFrames(f, track.ID)
	if err != nil || frames == 0 {
		p.logger.Debug("probe: estimation gave nothing", "format", f.Name(), "err", err)
		return Estimate{}
	}

	est = Estimate{
		Duration:   FramesToDuration(frames, track.SampleRate),
		Confidence: Estimated,
	}
	if truncated {
		est.Confidence = Truncated
	}
	p.logger.Debug("probe: counted", "format", f.Name(), "frames", frames,
		"confidence", est.Confidence, "duration", est.Duration)
	return est
}

// countFrames decodes packets of the given track until the stream ends or
// the ceiling is reached. Packets that fail to decode are skipped but
// count toward the ceiling.
func (p *Prober) countFrames(f media.Format, trackID int) (frames uint64, truncated bool, err error) {
	dec, err := f.NewDecoder(trackID)
	if err != nil {
		return 0, false, err
	}
	defer dec.Close()

	packets := 0
	for packets < p.ceiling {
		pkt, err := f.NextPacket()
		if err != nil {
			// Any demux error ends the pass with what was counted so far.
			if !errors.Is(err, io.EOF) {
				p.logger.Debug("probe: demux stopped", "err", err)
			}
			return frames, false, nil
		}
		if pkt.TrackID != trackID {
			continue
		}
		packets++

		pcm, err := dec.Decode(pkt)
		if err != nil {
			continue
		}
		frames += uint64(len(pcm))
	}
	return frames, true, nil
}

// FramesToDuration converts a frame count at the given sample rate into
// a duration without floating point rounding.
func FramesToDuration(frames uint64, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	rate := uint64(sampleRate)
	secs := frames / rate
	rem := frames % rate
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/rate) //nolint:gosec // bounded by rate
}
