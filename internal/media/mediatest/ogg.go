package mediatest

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Ogg page header flags.
const (
	OggContinued = 0x01
	OggBOS       = 0x02
	OggEOS       = 0x04
)

// OggPage describes one page of a synthetic Ogg stream.
type OggPage struct {
	Flags   byte
	Granule int64
	Serial  uint32
	Seq     uint32
	Packets [][]byte

	// Open leaves the last packet unterminated so that it continues on
	// the next page. Its length must be a multiple of 255.
	Open bool
}

// Bytes encodes the page, checksum included.
func (p OggPage) Bytes() []byte {
	var lacing []byte
	var body []byte
	for i, pkt := range p.Packets {
		n := len(pkt)
		for n >= 255 {
			lacing = append(lacing, 255)
			n -= 255
		}
		last := i == len(p.Packets)-1
		if last && p.Open {
			if n != 0 {
				panic(fmt.Sprintf("mediatest: open packet length %d is not a multiple of 255", len(pkt)))
			}
		} else {
			lacing = append(lacing, byte(n))
		}
		body = append(body, pkt...)
	}

	var buf bytes.Buffer
	buf.WriteString("OggS")
	buf.WriteByte(0) // version
	buf.WriteByte(p.Flags)
	_ = binary.Write(&buf, binary.LittleEndian, p.Granule)
	_ = binary.Write(&buf, binary.LittleEndian, p.Serial)
	_ = binary.Write(&buf, binary.LittleEndian, p.Seq)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(0)) // checksum, patched below
	buf.WriteByte(byte(len(lacing)))
	buf.Write(lacing)
	buf.Write(body)

	page := buf.Bytes()
	binary.LittleEndian.PutUint32(page[22:26], oggCRC(page))
	return page
}

// Ogg concatenates pages.
func Ogg(pages ...OggPage) []byte {
	var buf bytes.Buffer
	for _, p := range pages {
		buf.Write(p.Bytes())
	}
	return buf.Bytes()
}

// OpusHead returns an Opus identification header.
func OpusHead(channels int, preSkip uint16) []byte {
	head := make([]byte, 19)
	copy(head, "OpusHead")
	head[8] = 1
	head[9] = byte(channels)
	binary.LittleEndian.PutUint16(head[10:12], preSkip)
	binary.LittleEndian.PutUint32(head[12:16], 48000)
	// output gain and mapping family stay zero
	return head
}

// OpusTags returns an empty Opus comment header.
func OpusTags() []byte {
	tags := make([]byte, 16)
	copy(tags, "OpusTags")
	// vendor length and comment count stay zero
	return tags
}

var oggCRCTable = func() [256]uint32 {
	var t [256]uint32
	for i := range t {
		r := uint32(i) << 24 //nolint:gosec // i < 256
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04C11DB7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

func oggCRC(page []byte) uint32 {
	var crc uint32
	for _, b := range page {
		crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^b]
	}
	return crc
}
