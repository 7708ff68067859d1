package media

import (
	"encoding/binary"
	"errors"

	"github.com/jfreymuth/vorbis"
	"github.com/jj11hh/opus"
)

// opusSampleRate is the rate every Opus stream decodes to.
const opusSampleRate = 48000

// opusMaxFrame is the largest Opus frame (120ms at 48kHz), per channel.
const opusMaxFrame = 5760

var (
	errInvalidOpusHead     = errors.New("opus: invalid OpusHead packet")
	errUnsupportedOpus     = errors.New("opus: unsupported version")
	errInvalidVorbisHeader = errors.New("vorbis: invalid identification header")
	errHeadersIncomplete   = errors.New("ogg: codec headers incomplete")
)

// oggCodecInfo is what the identification header of a logical stream
// tells us about it.
type oggCodecInfo struct {
	codec      Codec
	sampleRate int
	channels   int
	preSkip    int
	headers    int // header packets preceding audio, identification included
}

// detectOggCodec inspects the first packet of a logical stream. Streams
// with an unrecognized codec still get an info with CodecUnknown so their
// packets can be attributed and skipped.
func detectOggCodec(first []byte) (oggCodecInfo, error) {
	switch {
	case len(first) >= 8 && string(first[:8]) == "OpusHead":
		return parseOpusHead(first)
	case len(first) >= 7 && first[0] == 0x01 && string(first[1:7]) == "vorbis":
		return parseVorbisIdent(first)
	}
	return oggCodecInfo{codec: CodecUnknown, headers: 1}, nil
}

func parseOpusHead(packet []byte) (oggCodecInfo, error) {
	if len(packet) < 19 {
		return oggCodecInfo{}, errInvalidOpusHead
	}
	// Only the major version (upper nibble) must match.
	if packet[8]>>4 != 0 {
		return oggCodecInfo{}, errUnsupportedOpus
	}
	return oggCodecInfo{
		codec:      CodecOpus,
		sampleRate: opusSampleRate,
		channels:   int(packet[9]),
		preSkip:    int(binary.LittleEndian.Uint16(packet[10:12])),
		headers:    2, // OpusHead, OpusTags
	}, nil
}

func parseVorbisIdent(packet []byte) (oggCodecInfo, error) {
	// [0] type, [1:7] "vorbis", [7:11] version, [11] channels, [12:16] rate
	if len(packet) < 16 {
		return oggCodecInfo{}, errInvalidVorbisHeader
	}
	if binary.LittleEndian.Uint32(packet[7:11]) != 0 {
		return oggCodecInfo{}, errInvalidVorbisHeader
	}
	return oggCodecInfo{
		codec:      CodecVorbis,
		sampleRate: int(binary.LittleEndian.Uint32(packet[12:16])),
		channels:   int(packet[11]),
		headers:    3, // identification, comment, setup
	}, nil
}

// framesFromGranule converts the last granule position of a stream into
// a frame count.
func (c oggCodecInfo) framesFromGranule(granule int64) uint64 {
	if c.codec == CodecOpus {
		granule -= int64(c.preSkip)
	}
	return uint64(max(granule, 0))
}

// opusPacketDecoder decodes Opus packets with jj11hh/opus.
type opusPacketDecoder struct {
	trackID  int
	decoder  *opus.Decoder
	channels int
	pcm      []float32
}

func newOpusPacketDecoder(trackID int, info oggCodecInfo) (*opusPacketDecoder, error) {
	decoder, err := opus.NewDecoder(opusSampleRate, info.channels)
	if err != nil {
		return nil, err
	}
	return &opusPacketDecoder{
		trackID:  trackID,
		decoder:  decoder,
		channels: info.channels,
		pcm:      make([]float32, opusMaxFrame*info.channels),
	}, nil
}

func (d *opusPacketDecoder) Decode(p Packet) ([][2]float64, error) {
	if p.TrackID != d.trackID {
		return nil, ErrNoTrack
	}
	n, err := d.decoder.DecodeFloat32(p.Data, d.pcm)
	if err != nil {
		return nil, err
	}
	return float32ToStereo(d.pcm[:n*d.channels], d.channels), nil
}

func (d *opusPacketDecoder) Close() error { return nil }

// vorbisPacketDecoder decodes Vorbis packets with jfreymuth/vorbis.
type vorbisPacketDecoder struct {
	trackID  int
	decoder  *vorbis.Decoder
	channels int
}

func newVorbisPacketDecoder(trackID int, info oggCodecInfo, headers [][]byte) (*vorbisPacketDecoder, error) {
	if len(headers) < info.headers {
		return nil, errHeadersIncomplete
	}
	decoder := &vorbis.Decoder{}
	for _, hdr := range headers {
		if err := decoder.ReadHeader(hdr); err != nil {
			return nil, err
		}
	}
	return &vorbisPacketDecoder{
		trackID:  trackID,
		decoder:  decoder,
		channels: info.channels,
	}, nil
}

func (d *vorbisPacketDecoder) Decode(p Packet) ([][2]float64, error) {
	if p.TrackID != d.trackID {
		return nil, ErrNoTrack
	}
	samples, err := d.decoder.Decode(p.Data)
	if err != nil {
		return nil, err
	}
	return float32ToStereo(samples, d.channels), nil
}

func (d *vorbisPacketDecoder) Close() error {
	d.decoder.Clear()
	return nil
}
