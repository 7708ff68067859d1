package media

import (
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

type containerKind int

const (
	kindUnknown containerKind = iota
	kindFLAC
	kindOgg
	kindMP3
	kindWAV
	kindM4A
)

func (k containerKind) String() string {
	switch k {
	case kindFLAC:
		return "flac"
	case kindOgg:
		return "ogg"
	case kindMP3:
		return "mp3"
	case kindWAV:
		return "wav"
	case kindM4A:
		return "m4a"
	case kindUnknown:
	}
	return "unknown"
}

// id3Magic starts an ID3v2 tag.
const id3Magic = "ID3"

// flacMagic starts a native FLAC stream. mimetype only recognizes it when
// STREAMINFO is not the last metadata block, so it is checked first.
const flacMagic = "fLaC"

// mimeKinds maps detected MIME types to containers. Order matters only
// for readability; a node matches at most one entry.
var mimeKinds = []struct {
	mime string
	kind containerKind
}{
	{"audio/flac", kindFLAC},
	{"audio/ogg", kindOgg},
	{"application/ogg", kindOgg},
	{"audio/mpeg", kindMP3},
	{"audio/wav", kindWAV},
	{"audio/x-m4a", kindM4A},
	{"audio/mp4", kindM4A},
	{"video/mp4", kindM4A},
}

// detect identifies the container in r and leaves r positioned where the
// container's demuxer expects to start reading.
func detect(r io.ReadSeeker, hint Hint) (containerKind, error) {
	start, err := skipID3v2(r)
	if err != nil {
		return kindUnknown, err
	}

	kind, err := sniffFLAC(r, start)
	if err != nil {
		return kindUnknown, err
	}
	if kind == kindUnknown {
		m, err := mimetype.DetectReader(r)
		if err != nil {
			return kindUnknown, err
		}
		kind = kindFromMIME(m)
	}
	if kind == kindUnknown && start > 0 {
		// An ID3v2 tag in front of undetectable data is an MP3 whose first
		// frame did not look like one to the sniffer.
		kind = kindMP3
	}
	if kind == kindUnknown {
		kind = kindFromExt(hint.Extension)
	}
	if kind == kindUnknown {
		return kindUnknown, ErrUnsupportedFormat
	}

	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return kindUnknown, err
	}
	return kind, nil
}

// sniffFLAC reports kindFLAC when the data at start carries the FLAC
// signature. r is left at start either way.
func sniffFLAC(r io.ReadSeeker, start int64) (containerKind, error) {
	magic := make([]byte, len(flacMagic))
	n, err := io.ReadFull(r, magic)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return kindUnknown, err
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return kindUnknown, err
	}
	if n == len(flacMagic) && string(magic) == flacMagic {
		return kindFLAC, nil
	}
	return kindUnknown, nil
}

func kindFromMIME(m *mimetype.MIME) containerKind {
	for n := m; n != nil; n = n.Parent() {
		for _, mk := range mimeKinds {
			if n.Is(mk.mime) {
				return mk.kind
			}
		}
	}
	return kindUnknown
}

func kindFromExt(ext string) containerKind {
	switch normalizeExt(ext) {
	case ExtFLAC:
		return kindFLAC
	case ExtOGG, ExtOGA, ExtOPUS:
		return kindOgg
	case ExtMP3:
		return kindMP3
	case ExtWAV:
		return kindWAV
	case ExtM4A, ExtMP4:
		return kindM4A
	}
	return kindUnknown
}

// skipID3v2 skips an ID3v2 tag at the start of r and returns the offset of
// the data that follows it (0 when there is no tag). Some taggers prepend
// ID3v2 to FLAC files, which the FLAC demuxer does not expect.
func skipID3v2(r io.ReadSeeker) (int64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, err
	}

	var offset int64
	if n == len(header) && string(header[0:3]) == id3Magic {
		// Size is a syncsafe integer: 7 bits per byte.
		size := int64(header[6]&0x7F)<<21 | int64(header[7]&0x7F)<<14 |
			int64(header[8]&0x7F)<<7 | int64(header[9]&0x7F)
		offset = 10 + size
		if header[5]&0x10 != 0 {
			offset += 10 // footer
		}
	}

	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}
	return offset, nil
}
