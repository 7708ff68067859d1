package probe

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/media/mediatest"
)

func TestProbe_ExactFromStreamInfo(t *testing.T) {
	data := mediatest.FLAC{TotalSamples: 441000}.Bytes()

	est := Probe(bytes.NewReader(data), "flac")

	assert.Equal(t, Exact, est.Confidence)
	assert.Equal(t, 10*time.Second, est.Duration)
	d, ok := est.Value()
	assert.True(t, ok)
	assert.Equal(t, 10*time.Second, d)
}

func TestProbe_ExactWithoutHint(t *testing.T) {
	data := mediatest.WAV{SampleRate: 8000, Channels: 2, Frames: 16000}.Bytes()

	est := Probe(bytes.NewReader(data), "")

	assert.Equal(t, Exact, est.Confidence)
	assert.Equal(t, 2*time.Second, est.Duration)
}

func TestProbe_ExactFromOggGranule(t *testing.T) {
	const serial = 11
	data := mediatest.Ogg(
		mediatest.OggPage{Flags: mediatest.OggBOS, Serial: serial,
			Packets: [][]byte{mediatest.OpusHead(2, 312)}},
		mediatest.OggPage{Serial: serial, Seq: 1,
			Packets: [][]byte{mediatest.OpusTags()}},
		mediatest.OggPage{Flags: mediatest.OggEOS, Serial: serial, Seq: 2, Granule: 48000*3 + 312,
			Packets: [][]byte{{0xFC, 0xFF, 0xFE}}},
	)

	est := Probe(bytes.NewReader(data), "opus")

	assert.Equal(t, Exact, est.Confidence)
	assert.Equal(t, 3*time.Second, est.Duration)
}

func TestProbe_FLACMetadataLayouts(t *testing.T) {
	tests := []struct {
		name string
		flac mediatest.FLAC
		hint string
		want Estimate
	}{
		{"streaminfo only", mediatest.FLAC{TotalSamples: 441000}, "", Estimate{10 * time.Second, Exact}},
		{"streaminfo only, wrong hint", mediatest.FLAC{TotalSamples: 441000}, "mp3", Estimate{10 * time.Second, Exact}},
		{"padding", mediatest.FLAC{TotalSamples: 441000, Padding: 64}, "", Estimate{10 * time.Second, Exact}},
		{"padding, wrong hint", mediatest.FLAC{TotalSamples: 441000, Padding: 64}, "ogg", Estimate{10 * time.Second, Exact}},
		{
			"padding, no total",
			mediatest.FLAC{Frames: 3, Padding: 16},
			"flac",
			Estimate{FramesToDuration(3*mediatest.FLACBlockSize, mediatest.FLACSampleRate), Estimated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Probe(bytes.NewReader(tt.flac.Bytes()), tt.hint)
			assert.Equal(t, tt.want, est)
		})
	}
}

func TestProbe_NoFramesIsUnknown(t *testing.T) {
	data := mediatest.FLAC{}.Bytes()

	est := Probe(bytes.NewReader(data), "flac")

	assert.Equal(t, Unknown, est.Confidence)
	_, ok := est.Value()
	assert.False(t, ok)
	assert.False(t, est.Known())
}

func TestProbe_EstimatedWhenStreamExhausted(t *testing.T) {
	data := mediatest.FLAC{Frames: 5}.Bytes()

	est := Probe(bytes.NewReader(data), "")

	assert.Equal(t, Estimated, est.Confidence)
	assert.Equal(t, FramesToDuration(5*mediatest.FLACBlockSize, mediatest.FLACSampleRate), est.Duration)
}

func TestProbe_TruncatedAtCeiling(t *testing.T) {
	data := mediatest.FLAC{Frames: 20}.Bytes()
	p := New(Options{PacketCeiling: 8})

	est := p.Probe(bytes.NewReader(data), "flac")

	assert.Equal(t, Truncated, est.Confidence)
	assert.Equal(t, FramesToDuration(8*mediatest.FLACBlockSize, mediatest.FLACSampleRate), est.Duration)
}

func TestProbe_UnsupportedIsUnknown(t *testing.T) {
	est := Probe(bytes.NewReader([]byte("plain text is not audio")), "txt")
	assert.Equal(t, Estimate{}, est)
}

func TestProbe_EmptyInputIsUnknown(t *testing.T) {
	est := Probe(bytes.NewReader(nil), "mp3")
	assert.False(t, est.Known())
}

type panicReader struct{}

func (panicReader) Read([]byte) (int, error) { panic("boom") }
func (panicReader) Seek(int64, int) (int64, error) { panic("boom") }

func TestProbe_RecoversPanics(t *testing.T) {
	var est Estimate
	require.NotPanics(t, func() {
		est = Probe(panicReader{}, "flac")
	})
	assert.Equal(t, Unknown, est.Confidence)
}

func TestProbe_DoesNotRequireSeekStart(t *testing.T) {
	data := mediatest.FLAC{TotalSamples: 44100}.Bytes()
	r := bytes.NewReader(data)
	_, err := r.Seek(7, io.SeekStart)
	require.NoError(t, err)

	est := Probe(r, "")

	assert.Equal(t, Exact, est.Confidence)
	assert.Equal(t, time.Second, est.Duration)
}

func TestNew_Ceiling(t *testing.T) {
	tests := []struct {
		name    string
		ceiling int
		want    int
	}{
		{"default", 0, DefaultPacketCeiling},
		{"negative", -3, DefaultPacketCeiling},
		{"custom", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(Options{PacketCeiling: tt.ceiling}).Ceiling(); got != tt.want {
				t.Errorf("Ceiling() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFramesToDuration(t *testing.T) {
	tests := []struct {
		name   string
		frames uint64
		rate   int
		want   time.Duration
	}{
		{"ten seconds", 441000, 44100, 10 * time.Second},
		{"fraction", 22050, 44100, 500 * time.Millisecond},
		{"zero frames", 0, 48000, 0},
		{"zero rate", 1000, 0, 0},
		{"odd rate", 1, 3, 333333333 * time.Nanosecond},
		{"long", 48000 * 3600 * 5, 48000, 5 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FramesToDuration(tt.frames, tt.rate); got != tt.want {
				t.Errorf("FramesToDuration(%d, %d) = %v, want %v", tt.frames, tt.rate, got, tt.want)
			}
		})
	}
}

func TestConfidence_String(t *testing.T) {
	tests := []struct {
		c    Confidence
		want string
	}{
		{Unknown, "unknown"},
		{Exact, "exact"},
		{Estimated, "estimated"},
		{Truncated, "truncated"},
		{Confidence(9), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
