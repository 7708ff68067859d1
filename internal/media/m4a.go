package media

import (
	"context"
	"errors"
	"io"
	"math"

	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// alacFrameSize is the ALAC default frames per packet.
const alacFrameSize = 4096

var errM4ACodec = errors.New("m4a: unsupported codec")

// m4aFormat reads the audio samples (packets) of an MP4/M4A container.
type m4aFormat struct {
	container *m4a.Reader
	track     Track
	next      int
}

func openM4A(r io.ReadSeeker) (Format, error) {
	container, err := m4a.Open(nopCloser{r})
	if err != nil {
		return nil, err
	}

	var codec Codec
	switch container.Codec() {
	case m4a.CodecAAC:
		codec = CodecAAC
	case m4a.CodecALAC:
		codec = CodecALAC
	case m4a.CodecUnknown:
		codec = CodecUnknown
	}

	sampleRate := int(container.SampleRate())
	track := Track{
		Codec:      codec,
		SampleRate: sampleRate,
		Channels:   int(container.Channels()),
	}
	// The media header stores the duration in its own timescale; convert
	// it back to frames at the audio rate.
	if d := container.Duration(); d > 0 && sampleRate > 0 {
		track.Frames = uint64(math.Round(d.Seconds() * float64(sampleRate)))
		track.FramesKnown = true
	}

	return &m4aFormat{container: container, track: track}, nil
}

func (f *m4aFormat) Name() string { return "m4a" }

func (f *m4aFormat) Tracks() []Track { return []Track{f.track} }

func (f *m4aFormat) DefaultTrack() (Track, bool) { return defaultTrack(f.Tracks()) }

func (f *m4aFormat) NextPacket() (Packet, error) {
	if f.next >= f.container.SampleCount() {
		return Packet{}, io.EOF
	}
	data, err := f.container.ReadSample(f.next)
	if err != nil {
		return Packet{}, err
	}
	f.next++
	return Packet{TrackID: f.track.ID, Data: data}, nil
}

func (f *m4aFormat) NewDecoder(trackID int) (Decoder, error) {
	if trackID != f.track.ID {
		return nil, ErrNoTrack
	}

	switch f.track.Codec {
	case CodecAAC:
		ctx := context.Background()
		decoder, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, err
		}
		if err := decoder.Init(ctx, f.container.CodecConfig()); err != nil {
			decoder.Close(ctx)
			return nil, err
		}
		return &aacPacketDecoder{trackID: trackID, decoder: decoder, channels: f.track.Channels}, nil

	case CodecALAC:
		sampleSize := int(f.container.SampleSize())
		decoder, err := alac.NewWithConfig(alac.Config{
			SampleRate:  f.track.SampleRate,
			SampleSize:  sampleSize,
			NumChannels: f.track.Channels,
			FrameSize:   alacFrameSize,
		})
		if err != nil {
			return nil, err
		}
		return &alacPacketDecoder{
			trackID:    trackID,
			decoder:    decoder,
			channels:   f.track.Channels,
			sampleSize: sampleSize,
		}, nil
	}
	return nil, errM4ACodec
}

func (f *m4aFormat) Close() error { return nil }

type aacPacketDecoder struct {
	trackID  int
	decoder  *faad2.Decoder
	channels int
}

func (d *aacPacketDecoder) Decode(p Packet) ([][2]float64, error) {
	if p.TrackID != d.trackID {
		return nil, ErrNoTrack
	}
	pcm, err := d.decoder.Decode(context.Background(), p.Data)
	if err != nil {
		return nil, err
	}
	return int16ToStereo(pcm, d.channels), nil
}

func (d *aacPacketDecoder) Close() error {
	d.decoder.Close(context.Background())
	return nil
}

type alacPacketDecoder struct {
	trackID    int
	decoder    *alac.Alac
	channels   int
	sampleSize int
}

func (d *alacPacketDecoder) Decode(p Packet) ([][2]float64, error) {
	if p.TrackID != d.trackID {
		return nil, ErrNoTrack
	}
	raw := d.decoder.Decode(p.Data)
	if d.sampleSize == 24 {
		return pcm24LEToStereo(raw, d.channels), nil
	}
	return pcm16LEToStereo(raw, d.channels), nil
}

func (d *alacPacketDecoder) Close() error { return nil }
