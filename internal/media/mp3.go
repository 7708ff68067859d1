package media

import (
	"errors"
	"io"

	"github.com/llehouerou/go-mp3"
)

// mp3FrameSamples is the number of frames in one MPEG-1 Layer III frame.
const mp3FrameSamples = 1152

// mp3BytesPerFrame: go-mp3 always outputs 16-bit stereo.
const mp3BytesPerFrame = 4

var errMP3SampleRate = errors.New("mp3: invalid sample rate")

// mp3Format wraps llehouerou/go-mp3. The library exposes a PCM stream
// rather than raw frames, so each packet is one MP3 frame worth of
// decoded audio.
type mp3Format struct {
	decoder *mp3.Decoder
	track   Track
	buf     []byte
	done    bool
}

func openMP3(r io.ReadSeeker) (Format, error) {
	decoder, err := mp3.NewDecoder(nopCloser{r})
	if err != nil {
		return nil, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate <= 0 {
		return nil, errMP3SampleRate
	}

	// SampleCount comes from the frame index go-mp3 builds when the
	// source can seek; it is negative or zero when unknown.
	count := decoder.SampleCount()

	return &mp3Format{
		decoder: decoder,
		buf:     make([]byte, mp3FrameSamples*mp3BytesPerFrame),
		track: Track{
			Codec:       CodecMP3,
			SampleRate:  sampleRate,
			Channels:    2,
			Frames:      uint64(max(count, 0)),
			FramesKnown: count > 0,
		},
	}, nil
}

func (f *mp3Format) Name() string { return "mp3" }

func (f *mp3Format) Tracks() []Track { return []Track{f.track} }

func (f *mp3Format) DefaultTrack() (Track, bool) { return defaultTrack(f.Tracks()) }

func (f *mp3Format) NextPacket() (Packet, error) {
	if f.done {
		return Packet{}, io.EOF
	}
	n, err := io.ReadFull(f.decoder, f.buf)
	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return Packet{}, err
		}
		f.done = true
	}
	if n < mp3BytesPerFrame {
		return Packet{}, io.EOF
	}
	return Packet{TrackID: f.track.ID, pcm: pcm16LEToStereo(f.buf[:n], 2)}, nil
}

func (f *mp3Format) NewDecoder(trackID int) (Decoder, error) {
	if trackID != f.track.ID {
		return nil, ErrNoTrack
	}
	return passthroughDecoder{trackID: trackID}, nil
}

func (f *mp3Format) Close() error { return nil }
