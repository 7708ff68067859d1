package player

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/clock"
	"github.com/llehouerou/cadence/internal/media"
	"github.com/llehouerou/cadence/internal/media/mediatest"
	"github.com/llehouerou/cadence/internal/probe"
)

// fakeSink records what the player hands to the speaker.
type fakeSink struct {
	rate    beep.SampleRate
	initErr error
	played  []beep.Streamer
	clears  int
	locks   int
}

func (s *fakeSink) Init(rate beep.SampleRate) error {
	if s.initErr != nil {
		return s.initErr
	}
	if s.rate == 0 {
		s.rate = rate
	}
	return nil
}

func (s *fakeSink) SampleRate() beep.SampleRate { return s.rate }
func (s *fakeSink) Play(st beep.Streamer)       { s.played = append(s.played, st) }
func (s *fakeSink) Clear()                      { s.clears++ }
func (s *fakeSink) Lock()                       { s.locks++ }
func (s *fakeSink) Unlock()                     {}

// drain streams st to its end, as the speaker would.
func drain(st beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := st.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func writeWAV(t *testing.T, name string, w mediatest.WAV) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, w.Bytes(), 0o600))
	return path
}

func TestPlayer_PlayDrivesClock(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		path := writeWAV(t, "tone.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 16000})
		fs := &fakeSink{}
		p := newWithSink(fs, Options{Volume: 1})

		require.NoError(t, p.Play(path))

		assert.Equal(t, Playing, p.State())
		assert.Equal(t, clock.Running, p.clock.State())
		assert.Equal(t, probe.Estimate{Duration: 2 * time.Second, Confidence: probe.Exact}, p.Duration())
		assert.Zero(t, p.Elapsed())
		require.Len(t, fs.played, 1)

		time.Sleep(500 * time.Millisecond)
		assert.Equal(t, 500*time.Millisecond, p.Elapsed())

		p.Pause()
		assert.Equal(t, Paused, p.State())
		assert.True(t, p.ctrl.Paused)
		time.Sleep(time.Second)
		assert.Equal(t, 500*time.Millisecond, p.Elapsed())

		p.Resume()
		assert.False(t, p.ctrl.Paused)
		time.Sleep(250 * time.Millisecond)
		assert.Equal(t, 750*time.Millisecond, p.Elapsed())

		// Elapsed is clamped to the probed duration
		time.Sleep(5 * time.Second)
		assert.Equal(t, 2*time.Second, p.Elapsed())

		p.Stop()
		assert.Equal(t, Stopped, p.State())
		assert.Equal(t, clock.Idle, p.clock.State())
		assert.Zero(t, p.Elapsed())
		assert.False(t, p.Duration().Known())
		assert.Nil(t, p.TrackInfo())
		assert.Equal(t, 1, fs.clears)
	})
}

func TestPlayer_TrackInfo(t *testing.T) {
	path := writeWAV(t, "intro.wav", mediatest.WAV{SampleRate: 8000, Channels: 1, Frames: 800})
	p := newWithSink(&fakeSink{}, Options{})

	require.NoError(t, p.Play(path))

	info := p.TrackInfo()
	require.NotNil(t, info)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, "intro.wav", info.Name)
	assert.Empty(t, info.Title)
	assert.Equal(t, "PCM", info.Codec)
	assert.Equal(t, 8000, info.SampleRate)
}

func TestPlayer_FinishedSignal(t *testing.T) {
	path := writeWAV(t, "short.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 2500})
	fs := &fakeSink{}
	p := newWithSink(fs, Options{Volume: 1})

	require.NoError(t, p.Play(path))
	assert.Equal(t, 2500, drain(fs.played[0]))

	select {
	case <-p.FinishedChan():
	default:
		t.Fatal("expected finish signal")
	}
}

func TestPlayer_StoppedTrackDoesNotSignal(t *testing.T) {
	path := writeWAV(t, "short.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 100})
	fs := &fakeSink{}
	p := newWithSink(fs, Options{})

	require.NoError(t, p.Play(path))
	old := fs.played[0]
	p.Stop()

	// The speaker may still pull the old streamer after Clear
	drain(old)

	select {
	case <-p.FinishedChan():
		t.Fatal("stopped track must not signal")
	default:
	}
}

func TestPlayer_PlayReplacesTrack(t *testing.T) {
	first := writeWAV(t, "a.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 100})
	second := writeWAV(t, "b.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 100})
	fs := &fakeSink{}
	p := newWithSink(fs, Options{})

	require.NoError(t, p.Play(first))
	require.NoError(t, p.Play(second))

	assert.Equal(t, "b.wav", p.TrackInfo().Name)
	assert.Equal(t, 1, fs.clears)
	assert.Len(t, fs.played, 2)

	drain(fs.played[0])
	select {
	case <-p.FinishedChan():
		t.Fatal("replaced track must not signal")
	default:
	}
}

func TestPlayer_ResamplesToSinkRate(t *testing.T) {
	path := writeWAV(t, "low.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 8000})
	fs := &fakeSink{rate: 16000}
	p := newWithSink(fs, Options{Volume: 1})

	require.NoError(t, p.Play(path))

	assert.Equal(t, "speaker @ 16000 Hz", p.Output())
	assert.Equal(t, 8000, p.TrackInfo().SampleRate)
	assert.InDelta(t, 16000, drain(fs.played[0]), 64)
}

func TestPlayer_PlayErrors(t *testing.T) {
	dir := t.TempDir()
	notAudio := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notAudio, []byte("plain text, no audio here"), 0o600))

	p := newWithSink(&fakeSink{}, Options{})

	err := p.Play(filepath.Join(dir, "missing.flac"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, Stopped, p.State())

	err = p.Play(notAudio)
	require.ErrorIs(t, err, media.ErrUnsupportedFormat)
	assert.Equal(t, Stopped, p.State())
	assert.Equal(t, clock.Idle, p.clock.State())
}

func TestPlayer_SinkInitError(t *testing.T) {
	path := writeWAV(t, "a.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 100})
	initErr := errors.New("no audio device")
	p := newWithSink(&fakeSink{initErr: initErr}, Options{})

	err := p.Play(path)

	require.ErrorIs(t, err, initErr)
	assert.Equal(t, Stopped, p.State())
	assert.Nil(t, p.file)
	assert.Equal(t, "speaker (not started)", p.Output())
}

func TestPlayer_ControlsWhileStopped(t *testing.T) {
	fs := &fakeSink{}
	p := newWithSink(fs, Options{})

	p.Pause()
	p.Resume()
	p.Toggle()
	p.Stop()

	assert.Equal(t, Stopped, p.State())
	assert.Zero(t, fs.clears)
	assert.Zero(t, fs.locks)
}

func TestPlayer_Toggle(t *testing.T) {
	path := writeWAV(t, "a.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 100})
	p := newWithSink(&fakeSink{}, Options{})
	require.NoError(t, p.Play(path))

	p.Toggle()
	assert.Equal(t, Paused, p.State())
	assert.Equal(t, clock.Paused, p.clock.State())

	p.Toggle()
	assert.Equal(t, Playing, p.State())
	assert.Equal(t, clock.Running, p.clock.State())
}

func TestPlayer_Volume(t *testing.T) {
	p := newWithSink(&fakeSink{}, Options{Volume: 1})

	p.AdjustVolume(0.1)
	p.AdjustVolume(0.1)
	assert.Equal(t, 1.3, p.AdjustVolume(0.1))
	assert.Equal(t, 1.3, p.Volume())

	p.SetVolume(5)
	assert.Equal(t, DefaultMaxVolume, p.Volume())

	p.SetVolume(-1)
	assert.Zero(t, p.Volume())
	assert.Zero(t, p.AdjustVolume(-0.1))
}

func TestPlayer_VolumeAppliedToStream(t *testing.T) {
	path := writeWAV(t, "a.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 100})
	p := newWithSink(&fakeSink{}, Options{Volume: 0.5})
	require.NoError(t, p.Play(path))

	assert.InDelta(t, -1, p.volume.Volume, 1e-9)
	assert.False(t, p.volume.Silent)

	p.SetVolume(0)
	assert.True(t, p.volume.Silent)

	p.SetVolume(2)
	assert.InDelta(t, 1, p.volume.Volume, 1e-9)
	assert.False(t, p.volume.Silent)
}

func TestPlayer_MaxVolumeOption(t *testing.T) {
	p := newWithSink(&fakeSink{}, Options{Volume: 3, MaxVolume: 1.5})

	assert.Equal(t, 1.5, p.MaxVolume())
	assert.Equal(t, 1.5, p.Volume())
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		level  float64
		want   float64
		silent bool
	}{
		{0, 0, true},
		{-0.5, 0, true},
		{0.25, -2, false},
		{0.5, -1, false},
		{1, 0, false},
		{2, 1, false},
	}
	for _, tt := range tests {
		got, silent := levelToVolume(tt.level)
		assert.Equal(t, tt.silent, silent, "level %v", tt.level)
		assert.InDelta(t, tt.want, got, 1e-9, "level %v", tt.level)
	}
}

// fakeFormat serves canned packets for a single track.
type fakeFormat struct {
	packets []media.Packet
	err     error
}

func (f *fakeFormat) Name() string          { return "fake" }
func (f *fakeFormat) Tracks() []media.Track { return nil }
func (f *fakeFormat) DefaultTrack() (media.Track, bool) {
	return media.Track{}, false
}

func (f *fakeFormat) NextPacket() (media.Packet, error) {
	if len(f.packets) == 0 {
		if f.err != nil {
			return media.Packet{}, f.err
		}
		return media.Packet{}, io.EOF
	}
	p := f.packets[0]
	f.packets = f.packets[1:]
	return p, nil
}

func (f *fakeFormat) NewDecoder(int) (media.Decoder, error) { return fakeDecoder{}, nil }
func (f *fakeFormat) Close() error                          { return nil }

// fakeDecoder yields one frame per payload byte and rejects "bad".
type fakeDecoder struct{}

func (fakeDecoder) Decode(p media.Packet) ([][2]float64, error) {
	if string(p.Data) == "bad" {
		return nil, errors.New("corrupt packet")
	}
	return make([][2]float64, len(p.Data)), nil
}

func (fakeDecoder) Close() error { return nil }

func TestTrackStreamer(t *testing.T) {
	demuxErr := errors.New("truncated page")
	tests := []struct {
		name        string
		packets     []media.Packet
		err         error
		wantFrames  int
		wantSkipped int
		wantErr     error
	}{
		{
			name: "frames of the target track only",
			packets: []media.Packet{
				{TrackID: 1, Data: make([]byte, 300)},
				{TrackID: 2, Data: make([]byte, 999)},
				{TrackID: 1, Data: make([]byte, 700)},
			},
			wantFrames: 1000,
		},
		{
			name: "undecodable packets are skipped",
			packets: []media.Packet{
				{TrackID: 1, Data: []byte("bad")},
				{TrackID: 1, Data: make([]byte, 10)},
				{TrackID: 1, Data: nil},
			},
			wantFrames:  10,
			wantSkipped: 1,
		},
		{
			name:       "demux error ends the stream",
			packets:    []media.Packet{{TrackID: 1, Data: make([]byte, 5)}},
			err:        demuxErr,
			wantFrames: 5,
			wantErr:    demuxErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := newTrackStreamer(&fakeFormat{packets: tt.packets, err: tt.err}, 1)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFrames, drain(s))
			assert.Equal(t, tt.wantSkipped, s.skipped)
			assert.Equal(t, tt.wantErr, s.Err())

			n, ok := s.Stream(make([][2]float64, 8))
			assert.Zero(t, n)
			assert.False(t, ok)
		})
	}
}

func TestTrackStreamer_WAVSession(t *testing.T) {
	path := writeWAV(t, "a.wav", mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 2500})
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	format, err := media.Open(f, media.HintFromPath(path))
	require.NoError(t, err)
	track, ok := format.DefaultTrack()
	require.True(t, ok)

	s, err := newTrackStreamer(format, track.ID)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 2500, drain(s))
	require.NoError(t, s.Err())
}
