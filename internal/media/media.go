// Package media opens audio containers as demuxing sessions.
//
// A session ([Format]) exposes the tracks found in a stream and yields
// packets one at a time. A [Decoder] turns the packets of one track into
// stereo PCM frames. Duration probing and playback both sit on top of it.
package media

import (
	"errors"
	"io"
)

var (
	// ErrUnsupportedFormat is returned when neither content sniffing nor
	// the extension hint identify a container we can open.
	ErrUnsupportedFormat = errors.New("media: unsupported format")

	// ErrNoTrack is returned when a track id is not part of the session.
	ErrNoTrack = errors.New("media: no such track")
)

// Track describes one decodable stream inside a container.
type Track struct {
	ID         int
	Codec      Codec
	SampleRate int // 0 when the container does not declare it
	Channels   int

	// Frames is the exact number of frames in the track. Only meaningful
	// when FramesKnown is set; a zero count is a valid length.
	Frames      uint64
	FramesKnown bool
}

// Decodable reports whether a decoder can be built for the track.
func (t Track) Decodable() bool {
	return t.Codec != CodecUnknown
}

// Packet is one demuxed chunk of a track.
type Packet struct {
	TrackID int
	Data    []byte

	// pcm carries frames for containers whose library decodes while
	// demuxing (FLAC, MP3, WAV). Their decoder just hands them over.
	pcm [][2]float64
}

// Format is an open demuxing session.
type Format interface {
	// Name returns the container name ("flac", "ogg", ...).
	Name() string

	// Tracks returns every track found in the container.
	Tracks() []Track

	// DefaultTrack returns the first decodable track.
	DefaultTrack() (Track, bool)

	// NextPacket returns the next packet in container order, for any
	// track. It returns io.EOF once the stream is exhausted.
	NextPacket() (Packet, error)

	// NewDecoder builds a decoder for the given track.
	NewDecoder(trackID int) (Decoder, error)

	// Close releases decoder resources held by the session. It does not
	// close the underlying handle.
	Close() error
}

// Decoder turns packets of a single track into stereo frames.
type Decoder interface {
	Decode(p Packet) ([][2]float64, error)
	Close() error
}

// Hint carries optional information used to disambiguate detection.
type Hint struct {
	Extension string // with or without the leading dot
}

// HintFromPath builds a Hint from a file name.
func HintFromPath(path string) Hint {
	return Hint{Extension: extOf(path)}
}

// Open detects the container in r and starts a demuxing session on it.
// Detection inspects the content first; the hint is only consulted when
// the content is ambiguous.
func Open(r io.ReadSeeker, hint Hint) (Format, error) {
	kind, err := detect(r, hint)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindFLAC:
		return openFLAC(r)
	case kindOgg:
		return openOgg(r)
	case kindMP3:
		return openMP3(r)
	case kindWAV:
		return openWAV(r)
	case kindM4A:
		return openM4A(r)
	case kindUnknown:
	}
	return nil, ErrUnsupportedFormat
}

// defaultTrack returns the first decodable track with a sample rate.
func defaultTrack(tracks []Track) (Track, bool) {
	for _, t := range tracks {
		if t.Decodable() {
			return t, true
		}
	}
	return Track{}, false
}

// passthroughDecoder hands over frames decoded by the demuxer.
type passthroughDecoder struct {
	trackID int
}

func (d passthroughDecoder) Decode(p Packet) ([][2]float64, error) {
	if p.TrackID != d.trackID {
		return nil, ErrNoTrack
	}
	return p.pcm, nil
}

func (passthroughDecoder) Close() error { return nil }

// nopCloser adds a no-op Close to a ReadSeeker so libraries that want a
// ReadSeekCloser never close the caller's handle.
type nopCloser struct {
	io.ReadSeeker
}

func (nopCloser) Close() error { return nil }
