package media

import (
	"errors"
	"fmt"
	"io"
)

// oggHeaderPageLimit bounds how many pages are read while collecting the
// codec headers of every logical stream.
const oggHeaderPageLimit = 256

// oggStream is one logical bitstream of an Ogg file.
type oggStream struct {
	serial  uint32
	trackID int
	info    oggCodecInfo
	headers [][]byte
	partial []byte
	broken  bool // codec headers could not be parsed
}

func (s *oggStream) headersComplete() bool {
	return s.broken || len(s.headers) >= s.info.headers
}

// oggFormat demultiplexes Ogg pages into per-stream packets.
type oggFormat struct {
	r       io.ReadSeeker
	streams map[uint32]*oggStream
	order   []*oggStream
	pending []Packet
	eof     bool
}

func openOgg(r io.ReadSeeker) (Format, error) {
	f := &oggFormat{
		r:       r,
		streams: make(map[uint32]*oggStream),
	}

	// BOS pages of all multiplexed streams come first, followed by their
	// header packets. Read until every stream has its headers.
	sawData := false
	for pages := 0; pages < oggHeaderPageLimit; pages++ {
		if sawData && f.headersComplete() {
			break
		}
		hdr, err := f.readPage()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			f.eof = true
			break
		}
		if err != nil {
			return nil, err
		}
		if !hdr.bos() {
			sawData = true
		}
	}

	if len(f.order) == 0 {
		return nil, fmt.Errorf("ogg: %w", ErrUnsupportedFormat)
	}
	return f, nil
}

func (f *oggFormat) Name() string { return "ogg" }

func (f *oggFormat) headersComplete() bool {
	for _, s := range f.order {
		if !s.headersComplete() {
			return false
		}
	}
	return true
}

// Tracks returns one track per logical stream. The frame count comes from
// the granule position of the stream's last page when r can seek.
func (f *oggFormat) Tracks() []Track {
	tracks := make([]Track, 0, len(f.order))
	for _, s := range f.order {
		t := Track{
			ID:         s.trackID,
			Codec:      s.info.codec,
			SampleRate: s.info.sampleRate,
			Channels:   s.info.channels,
		}
		if !s.headersComplete() || s.broken {
			t.Codec = CodecUnknown
		}
		if t.Decodable() {
			if granule, ok := scanLastGranule(f.r, s.serial); ok {
				t.Frames = s.info.framesFromGranule(granule)
				t.FramesKnown = true
			}
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func (f *oggFormat) DefaultTrack() (Track, bool) {
	return defaultTrack(f.Tracks())
}

func (f *oggFormat) NextPacket() (Packet, error) {
	for len(f.pending) == 0 {
		if f.eof {
			return Packet{}, io.EOF
		}
		if _, err := f.readPage(); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				// A truncated final page ends the stream.
				err = io.EOF
			}
			if errors.Is(err, io.EOF) {
				f.eof = true
			}
			return Packet{}, err
		}
	}

	p := f.pending[0]
	f.pending = f.pending[1:]
	return p, nil
}

func (f *oggFormat) NewDecoder(trackID int) (Decoder, error) {
	for _, s := range f.order {
		if s.trackID != trackID {
			continue
		}
		if !s.headersComplete() || s.broken {
			return nil, errHeadersIncomplete
		}
		switch s.info.codec {
		case CodecOpus:
			return newOpusPacketDecoder(trackID, s.info)
		case CodecVorbis:
			return newVorbisPacketDecoder(trackID, s.info, s.headers)
		default:
			return nil, fmt.Errorf("ogg: no decoder for %s", s.info.codec)
		}
	}
	return nil, ErrNoTrack
}

func (f *oggFormat) Close() error { return nil }

// readPage reads one page and routes its packets to their stream.
func (f *oggFormat) readPage() (*oggPageHeader, error) {
	hdr, err := parseOggPageHeader(f.r)
	if err != nil {
		return nil, err
	}
	packets, partial, err := readOggPageBody(f.r, hdr)
	if err != nil {
		return nil, err
	}

	s, ok := f.streams[hdr.SerialNumber]
	if !ok {
		if !hdr.bos() || len(packets) == 0 {
			// Data for a stream whose start we never saw.
			return hdr, nil
		}
		s = f.addStream(hdr.SerialNumber, packets[0])
	}

	if hdr.continued() {
		switch {
		case s.partial == nil && len(packets) > 0:
			packets = packets[1:]
		case s.partial == nil:
			partial = nil
		case len(packets) > 0:
			packets[0] = joinPacket(s.partial, packets[0])
		case partial != nil:
			partial = joinPacket(s.partial, partial)
		}
	}
	s.partial = partial

	for _, pkt := range packets {
		f.route(s, pkt)
	}
	return hdr, nil
}

func (f *oggFormat) addStream(serial uint32, first []byte) *oggStream {
	s := &oggStream{
		serial:  serial,
		trackID: len(f.order),
	}
	info, err := detectOggCodec(first)
	if err != nil {
		s.broken = true
		info = oggCodecInfo{codec: CodecUnknown, headers: 1}
	}
	s.info = info
	f.streams[serial] = s
	f.order = append(f.order, s)
	return s
}

// route stores header packets on the stream and queues the rest.
func (f *oggFormat) route(s *oggStream, pkt []byte) {
	if len(s.headers) < s.info.headers {
		s.headers = append(s.headers, joinPacket(nil, pkt))
		return
	}
	f.pending = append(f.pending, Packet{TrackID: s.trackID, Data: pkt})
}
