package media

// Codec identifies the compression used by a track.
type Codec int

const (
	CodecUnknown Codec = iota
	CodecPCM
	CodecFLAC
	CodecMP3
	CodecVorbis
	CodecOpus
	CodecAAC
	CodecALAC
)

// String returns the display name of the codec.
func (c Codec) String() string {
	switch c {
	case CodecPCM:
		return "PCM"
	case CodecFLAC:
		return "FLAC"
	case CodecMP3:
		return "MP3"
	case CodecVorbis:
		return "VORBIS"
	case CodecOpus:
		return "OPUS"
	case CodecAAC:
		return "AAC"
	case CodecALAC:
		return "ALAC"
	case CodecUnknown:
	}
	return "Unknown"
}
