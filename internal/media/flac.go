package media

import (
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// flacFormat demuxes native FLAC streams. mewkiz/flac parses and decodes
// a frame in one call, so packets carry decoded frames.
type flacFormat struct {
	stream *flac.Stream
	track  Track
	bps    int
}

func openFLAC(r io.ReadSeeker) (Format, error) {
	// Hide Close from mewkiz so the caller keeps ownership of r.
	stream, err := flac.New(struct{ io.Reader }{r})
	if err != nil {
		return nil, err
	}

	info := stream.Info
	return &flacFormat{
		stream: stream,
		bps:    int(info.BitsPerSample),
		track: Track{
			Codec:      CodecFLAC,
			SampleRate: int(info.SampleRate),
			Channels:   int(info.NChannels),
			// STREAMINFO uses 0 for "unknown total".
			Frames:      info.NSamples,
			FramesKnown: info.NSamples > 0,
		},
	}, nil
}

func (f *flacFormat) Name() string { return "flac" }

func (f *flacFormat) Tracks() []Track { return []Track{f.track} }

func (f *flacFormat) DefaultTrack() (Track, bool) { return defaultTrack(f.Tracks()) }

func (f *flacFormat) NextPacket() (Packet, error) {
	fr, err := f.stream.ParseNext()
	if err != nil {
		return Packet{}, err
	}
	return Packet{TrackID: f.track.ID, pcm: f.frameToStereo(fr)}, nil
}

func (f *flacFormat) NewDecoder(trackID int) (Decoder, error) {
	if trackID != f.track.ID {
		return nil, ErrNoTrack
	}
	return passthroughDecoder{trackID: trackID}, nil
}

func (f *flacFormat) Close() error { return nil }

func (f *flacFormat) frameToStereo(fr *frame.Frame) [][2]float64 {
	bps := int(fr.BitsPerSample)
	if bps == 0 {
		bps = f.bps
	}
	if bps == 0 || len(fr.Subframes) == 0 {
		return nil
	}
	scale := float64(int64(1) << (bps - 1))

	left := fr.Subframes[0].Samples
	right := left
	if len(fr.Subframes) > 1 {
		right = fr.Subframes[1].Samples
	}

	n := min(int(fr.BlockSize), len(left), len(right))
	out := make([][2]float64, n)
	for i := range n {
		out[i][0] = float64(left[i]) / scale
		out[i][1] = float64(right[i]) / scale
	}
	return out
}
