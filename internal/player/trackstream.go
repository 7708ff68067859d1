package player

import (
	"errors"
	"io"

	"github.com/llehouerou/cadence/internal/media"
)

// trackStreamer adapts one track of a media session to beep.Streamer.
// Packets that fail to decode are skipped; the stream ends at the first
// demuxing error or at EOF.
type trackStreamer struct {
	format  media.Format
	decoder media.Decoder
	trackID int

	buf     [][2]float64
	err     error
	done    bool
	skipped int
}

func newTrackStreamer(f media.Format, trackID int) (*trackStreamer, error) {
	dec, err := f.NewDecoder(trackID)
	if err != nil {
		return nil, err
	}
	return &trackStreamer{format: f, decoder: dec, trackID: trackID}, nil
}

func (s *trackStreamer) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for n < len(samples) {
		if len(s.buf) == 0 && !s.fill() {
			break
		}
		c := copy(samples[n:], s.buf)
		s.buf = s.buf[c:]
		n += c
	}
	return n, n > 0
}

// Err returns the demuxing error that ended the stream, if any.
func (s *trackStreamer) Err() error {
	return s.err
}

// fill decodes packets until frames are buffered or the stream ends.
func (s *trackStreamer) fill() bool {
	for !s.done {
		pkt, err := s.format.NextPacket()
		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			return false
		}
		if pkt.TrackID != s.trackID {
			continue
		}
		frames, err := s.decoder.Decode(pkt)
		if err != nil {
			s.skipped++
			continue
		}
		if len(frames) > 0 {
			s.buf = frames
			return true
		}
	}
	return false
}

func (s *trackStreamer) Close() error {
	return s.decoder.Close()
}
