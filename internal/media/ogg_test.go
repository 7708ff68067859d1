package media

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/cadence/internal/media/mediatest"
)

func filled(n int, b byte) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func opusStream(lastGranule int64) []byte {
	const serial = 7
	return mediatest.Ogg(
		mediatest.OggPage{Flags: mediatest.OggBOS, Serial: serial, Seq: 0,
			Packets: [][]byte{mediatest.OpusHead(2, 312)}},
		mediatest.OggPage{Serial: serial, Seq: 1,
			Packets: [][]byte{mediatest.OpusTags()}},
		mediatest.OggPage{Serial: serial, Seq: 2, Granule: -1,
			Packets: [][]byte{filled(100, 0xA1), filled(510, 0xB1)}, Open: true},
		mediatest.OggPage{Flags: mediatest.OggContinued | mediatest.OggEOS, Serial: serial, Seq: 3,
			Granule: lastGranule,
			Packets: [][]byte{filled(20, 0xB1), filled(30, 0xC1)}},
	)
}

func TestOpenOgg_Opus(t *testing.T) {
	f, err := Open(bytes.NewReader(opusStream(48312)), Hint{})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "ogg", f.Name())

	track, ok := f.DefaultTrack()
	require.True(t, ok)
	assert.Equal(t, CodecOpus, track.Codec)
	assert.Equal(t, 48000, track.SampleRate)
	assert.Equal(t, 2, track.Channels)
	assert.True(t, track.FramesKnown)
	assert.Equal(t, uint64(48000), track.Frames, "pre-skip is subtracted")
}

func TestOggFormat_NextPacketJoinsContinuedPackets(t *testing.T) {
	f, err := Open(bytes.NewReader(opusStream(48312)), Hint{})
	require.NoError(t, err)
	defer f.Close()

	var sizes []int
	for {
		p, err := f.NextPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, 0, p.TrackID)
		sizes = append(sizes, len(p.Data))
	}
	assert.Equal(t, []int{100, 530, 30}, sizes)

	_, err = f.NextPacket()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOggFormat_DropsOrphanContinuation(t *testing.T) {
	const serial = 3
	data := mediatest.Ogg(
		mediatest.OggPage{Flags: mediatest.OggBOS, Serial: serial,
			Packets: [][]byte{mediatest.OpusHead(1, 0)}},
		mediatest.OggPage{Serial: serial, Seq: 1,
			Packets: [][]byte{mediatest.OpusTags()}},
		// Continues a packet that never started.
		mediatest.OggPage{Flags: mediatest.OggContinued, Serial: serial, Seq: 2, Granule: 960,
			Packets: [][]byte{filled(40, 1), filled(50, 2)}},
	)

	f, err := Open(bytes.NewReader(data), Hint{})
	require.NoError(t, err)

	p, err := f.NextPacket()
	require.NoError(t, err)
	assert.Len(t, p.Data, 50)

	_, err = f.NextPacket()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOggFormat_UnknownCodecIsNotDecodable(t *testing.T) {
	data := mediatest.Ogg(
		mediatest.OggPage{Flags: mediatest.OggBOS, Serial: 1,
			Packets: [][]byte{[]byte("\x80theora-ish")}},
		mediatest.OggPage{Serial: 1, Seq: 1, Granule: 10,
			Packets: [][]byte{filled(8, 0)}},
	)

	f, err := Open(bytes.NewReader(data), Hint{Extension: ".ogg"})
	require.NoError(t, err)

	tracks := f.Tracks()
	require.Len(t, tracks, 1)
	assert.Equal(t, CodecUnknown, tracks[0].Codec)
	assert.False(t, tracks[0].FramesKnown)

	_, ok := f.DefaultTrack()
	assert.False(t, ok)

	_, err = f.NewDecoder(0)
	assert.Error(t, err)
}

func TestOggFormat_MissingFinalGranule(t *testing.T) {
	// No page carries a granule position.
	data := mediatest.Ogg(
		mediatest.OggPage{Flags: mediatest.OggBOS, Serial: 9, Granule: -1,
			Packets: [][]byte{mediatest.OpusHead(2, 0)}},
		mediatest.OggPage{Serial: 9, Seq: 1, Granule: -1,
			Packets: [][]byte{mediatest.OpusTags()}},
		mediatest.OggPage{Serial: 9, Seq: 2, Granule: -1,
			Packets: [][]byte{filled(10, 0)}},
	)

	f, err := Open(bytes.NewReader(data), Hint{})
	require.NoError(t, err)

	track, ok := f.DefaultTrack()
	require.True(t, ok)
	assert.False(t, track.FramesKnown)
}

func TestParseOggPageHeader_Errors(t *testing.T) {
	page := mediatest.OggPage{Flags: mediatest.OggBOS, Packets: [][]byte{{1}}}.Bytes()

	badMagic := append([]byte{}, page...)
	badMagic[0] = 'X'
	_, err := parseOggPageHeader(bytes.NewReader(badMagic))
	assert.ErrorIs(t, err, errInvalidOggMagic)

	badVersion := append([]byte{}, page...)
	badVersion[4] = 1
	_, err = parseOggPageHeader(bytes.NewReader(badVersion))
	assert.ErrorIs(t, err, errInvalidOggVersion)

	_, err = parseOggPageHeader(bytes.NewReader(page[:10]))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadOggPageBody_Lacing(t *testing.T) {
	page := mediatest.OggPage{
		Packets: [][]byte{filled(255, 1), filled(3, 2), filled(255, 3)},
		Open:    true,
	}.Bytes()

	r := bytes.NewReader(page)
	hdr, err := parseOggPageHeader(r)
	require.NoError(t, err)
	// 255 needs a terminating 0 lacing value; the open packet has none.
	assert.Equal(t, []uint8{255, 0, 3, 255}, hdr.SegmentTable)

	packets, partial, err := readOggPageBody(r, hdr)
	require.NoError(t, err)
	require.Len(t, packets, 2)
	assert.Len(t, packets[0], 255)
	assert.Len(t, packets[1], 3)
	assert.Len(t, partial, 255)
}

func TestScanLastGranule_RestoresPosition(t *testing.T) {
	r := bytes.NewReader(opusStream(96312))
	_, err := r.Seek(5, io.SeekStart)
	require.NoError(t, err)

	granule, ok := scanLastGranule(r, 7)
	require.True(t, ok)
	assert.Equal(t, int64(96312), granule)

	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Equal(t, int64(5), pos)

	_, ok = scanLastGranule(r, 8)
	assert.False(t, ok, "unknown serial")
}

func TestDetectOggCodec_Vorbis(t *testing.T) {
	ident := make([]byte, 30)
	ident[0] = 0x01
	copy(ident[1:], "vorbis")
	ident[11] = 2
	ident[12], ident[13] = 0x44, 0xAC // 44100

	info, err := detectOggCodec(ident)
	require.NoError(t, err)
	assert.Equal(t, CodecVorbis, info.codec)
	assert.Equal(t, 44100, info.sampleRate)
	assert.Equal(t, 2, info.channels)
	assert.Equal(t, 3, info.headers)
	assert.Equal(t, uint64(1000), info.framesFromGranule(1000))
}

func TestDetectOggCodec_BadOpusHead(t *testing.T) {
	_, err := detectOggCodec([]byte("OpusHead\x01"))
	assert.ErrorIs(t, err, errInvalidOpusHead)

	head := mediatest.OpusHead(2, 0)
	head[8] = 0x10
	_, err = detectOggCodec(head)
	assert.ErrorIs(t, err, errUnsupportedOpus)
}
