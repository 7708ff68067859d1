// Package mediatest builds small in-memory audio streams for tests.
package mediatest

import (
	"bytes"
	"encoding/binary"
)

// FLACBlockSize is the number of samples in every frame built by FLAC.
const FLACBlockSize = 192

// FLAC describes a synthetic mono 16-bit FLAC stream at 44.1kHz.
type FLAC struct {
	// TotalSamples is written to STREAMINFO. Zero means "unknown".
	TotalSamples uint64

	// Frames is the number of audio frames that follow the metadata.
	// Every frame holds FLACBlockSize samples of a constant value.
	Frames int

	// Padding, when positive, adds a PADDING block of that many bytes
	// after STREAMINFO, which is then no longer the last metadata block.
	Padding int
}

// FLACSampleRate is the sample rate of streams built by FLAC.
const FLACSampleRate = 44100

// Bytes encodes the stream.
func (f FLAC) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("fLaC")

	// Metadata block header: type 0 (STREAMINFO), length 34.
	var last byte = 0x80
	if f.Padding > 0 {
		last = 0
	}
	buf.Write([]byte{last, 0x00, 0x00, 34})

	var info [34]byte
	binary.BigEndian.PutUint16(info[0:2], FLACBlockSize)
	binary.BigEndian.PutUint16(info[2:4], FLACBlockSize)
	// info[4:10]: min/max frame size left unknown.
	// 20 bits sample rate, 3 bits channels-1, 5 bits bps-1, 36 bits samples.
	packed := uint64(FLACSampleRate)<<44 |
		uint64(0)<<41 |
		uint64(16-1)<<36 |
		(f.TotalSamples & (1<<36 - 1))
	binary.BigEndian.PutUint64(info[10:18], packed)
	// info[18:34]: MD5 left zero.
	buf.Write(info[:])

	if f.Padding > 0 {
		// Last block, type 1 (PADDING), 24-bit length.
		buf.Write([]byte{0x81, byte(f.Padding >> 16), byte(f.Padding >> 8), byte(f.Padding)})
		buf.Write(make([]byte, f.Padding))
	}

	for i := range f.Frames {
		buf.Write(flacFrame(uint32(i))) //nolint:gosec // test frame counts are small
	}
	return buf.Bytes()
}

// flacFrame encodes one fixed-blocksize frame with a single CONSTANT
// subframe.
func flacFrame(number uint32) []byte {
	header := []byte{
		0xFF, 0xF8, // sync code, fixed blocking strategy
		0x19, // block size 192, sample rate 44.1kHz
		0x08, // mono, 16 bits per sample
	}
	header = append(header, utf8Number(number)...)
	header = append(header, crc8(header))

	frame := append(header,
		0x00,       // subframe header: CONSTANT, no wasted bits
		0x00, 0x00, // constant sample value
	)
	sum := crc16(frame)
	return append(frame, byte(sum>>8), byte(sum))
}

// utf8Number encodes a frame number the way FLAC frame headers do.
func utf8Number(n uint32) []byte {
	switch {
	case n < 0x80:
		return []byte{byte(n)}
	case n < 0x800:
		return []byte{0xC0 | byte(n>>6), 0x80 | byte(n&0x3F)}
	default:
		return []byte{0xE0 | byte(n>>12), 0x80 | byte(n>>6&0x3F), 0x80 | byte(n&0x3F)}
	}
}

func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for range 8 {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
