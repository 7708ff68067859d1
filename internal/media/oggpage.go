package media

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	errInvalidOggMagic   = errors.New("ogg: invalid capture pattern")
	errInvalidOggVersion = errors.New("ogg: unsupported version")
)

// Page header flags.
const (
	oggContinued = 0x01
	oggBOS       = 0x02
	oggEOS       = 0x04
)

const (
	oggHeaderSize = 27
	// oggTailWindow is how much of the end of the stream is searched for
	// the last page of a logical stream.
	oggTailWindow = 64 * 1024
)

// oggPageHeader represents the header of an Ogg page.
type oggPageHeader struct {
	HeaderType   byte
	GranulePos   int64
	SerialNumber uint32
	SequenceNum  uint32
	NumSegments  uint8
	SegmentTable []uint8
}

func (h *oggPageHeader) continued() bool { return h.HeaderType&oggContinued != 0 }
func (h *oggPageHeader) bos() bool       { return h.HeaderType&oggBOS != 0 }

// bodySize returns the total number of body bytes described by the
// segment table.
func (h *oggPageHeader) bodySize() int {
	n := 0
	for _, s := range h.SegmentTable {
		n += int(s)
	}
	return n
}

// parseOggPageHeader reads and parses an Ogg page header from the reader.
func parseOggPageHeader(r io.Reader) (*oggPageHeader, error) {
	var buf [oggHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}

	if string(buf[0:4]) != "OggS" {
		return nil, errInvalidOggMagic
	}
	if buf[4] != 0 {
		return nil, errInvalidOggVersion
	}

	hdr := &oggPageHeader{
		HeaderType:   buf[5],
		GranulePos:   int64(binary.LittleEndian.Uint64(buf[6:14])), //nolint:gosec // granule is a signed field
		SerialNumber: binary.LittleEndian.Uint32(buf[14:18]),
		SequenceNum:  binary.LittleEndian.Uint32(buf[18:22]),
		// checksum at buf[22:26] is not verified
		NumSegments: buf[26],
	}

	if hdr.NumSegments > 0 {
		hdr.SegmentTable = make([]uint8, hdr.NumSegments)
		if _, err := io.ReadFull(r, hdr.SegmentTable); err != nil {
			return nil, err
		}
	}

	return hdr, nil
}

// readOggPageBody reads the page body and splits it into packets.
// A packet ends at the first lacing value below 255; bytes after the last
// such value belong to a packet continued on the next page and are
// returned as partial.
func readOggPageBody(r io.Reader, hdr *oggPageHeader) (packets [][]byte, partial []byte, err error) {
	body := make([]byte, hdr.bodySize())
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, nil, err
	}

	start, pos := 0, 0
	for _, seg := range hdr.SegmentTable {
		pos += int(seg)
		if seg < 255 {
			packets = append(packets, body[start:pos])
			start = pos
		}
	}
	if start < len(body) {
		partial = body[start:]
	}
	return packets, partial, nil
}

// joinPacket concatenates the pieces of a packet split across pages.
func joinPacket(head, tail []byte) []byte {
	out := make([]byte, len(head)+len(tail))
	copy(out, head)
	copy(out[len(head):], tail)
	return out
}

// scanLastGranule finds the granule position of the last page of the
// given logical stream in the final oggTailWindow bytes of r. It restores
// the read position before returning.
func scanLastGranule(r io.ReadSeeker, serial uint32) (int64, bool) {
	cur, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	defer func() { _, _ = r.Seek(cur, io.SeekStart) }()

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil || size < oggHeaderSize {
		return 0, false
	}

	window := min(int64(oggTailWindow), size)
	if _, err := r.Seek(size-window, io.SeekStart); err != nil {
		return 0, false
	}
	buf := make([]byte, window)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, false
	}
	buf = buf[:n]

	for i := len(buf) - oggHeaderSize; i >= 0; i-- {
		if buf[i] != 'O' || string(buf[i:i+4]) != "OggS" || buf[i+4] != 0 {
			continue
		}
		if binary.LittleEndian.Uint32(buf[i+14:i+18]) != serial {
			continue
		}
		granule := int64(binary.LittleEndian.Uint64(buf[i+6 : i+14])) //nolint:gosec // granule is a signed field
		if granule < 0 {
			// -1 marks a page on which no packet ends
			continue
		}
		return granule, true
	}
	return 0, false
}
