package mediatest

import (
	"bytes"
	"encoding/binary"
)

// WAV describes a synthetic 16-bit PCM wave file filled with silence.
type WAV struct {
	SampleRate int
	Channels   int
	Frames     int
}

// Bytes encodes the file.
func (w WAV) Bytes() []byte {
	blockAlign := w.Channels * 2
	dataSize := w.Frames * blockAlign

	var buf bytes.Buffer
	le := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	buf.WriteString("RIFF")
	le(uint32(36 + dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	le(uint32(16))
	le(uint16(1)) // PCM
	le(uint16(w.Channels))
	le(uint32(w.SampleRate))
	le(uint32(w.SampleRate * blockAlign))
	le(uint16(blockAlign))
	le(uint16(16))

	buf.WriteString("data")
	le(uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}
