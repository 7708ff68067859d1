package media

import (
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// wavPacketFrames is how many frames one WAV packet holds. PCM has no
// packet structure of its own.
const wavPacketFrames = 1024

// wavFormat reads RIFF/WAVE files through beep's decoder, whose length
// comes straight from the data chunk size.
type wavFormat struct {
	streamer beep.StreamSeekCloser
	track    Track
}

func openWAV(r io.ReadSeeker) (Format, error) {
	streamer, format, err := wav.Decode(nopCloser{r})
	if err != nil {
		return nil, err
	}

	frames := streamer.Len()
	return &wavFormat{
		streamer: streamer,
		track: Track{
			Codec:       CodecPCM,
			SampleRate:  int(format.SampleRate),
			Channels:    format.NumChannels,
			Frames:      uint64(max(frames, 0)),
			FramesKnown: frames > 0,
		},
	}, nil
}

func (f *wavFormat) Name() string { return "wav" }

func (f *wavFormat) Tracks() []Track { return []Track{f.track} }

func (f *wavFormat) DefaultTrack() (Track, bool) { return defaultTrack(f.Tracks()) }

func (f *wavFormat) NextPacket() (Packet, error) {
	buf := make([][2]float64, wavPacketFrames)
	n, _ := f.streamer.Stream(buf)
	if n == 0 {
		if err := f.streamer.Err(); err != nil {
			return Packet{}, err
		}
		return Packet{}, io.EOF
	}
	return Packet{TrackID: f.track.ID, pcm: buf[:n]}, nil
}

func (f *wavFormat) NewDecoder(trackID int) (Decoder, error) {
	if trackID != f.track.ID {
		return nil, ErrNoTrack
	}
	return passthroughDecoder{trackID: trackID}, nil
}

func (f *wavFormat) Close() error {
	return f.streamer.Close()
}
