package media

// Sample converters from interleaved decoder output to stereo frames.
// Mono is duplicated to both channels; channels past the second are
// dropped.

func float32ToStereo(samples []float32, channels int) [][2]float64 {
	if channels <= 0 {
		return nil
	}
	frames := make([][2]float64, len(samples)/channels)
	for i := range frames {
		base := i * channels
		l := float64(samples[base])
		r := l
		if channels > 1 {
			r = float64(samples[base+1])
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

func int16ToStereo(pcm []int16, channels int) [][2]float64 {
	if channels <= 0 {
		return nil
	}
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		base := i * channels
		l := float64(pcm[base]) / 32768.0
		r := l
		if channels > 1 {
			r = float64(pcm[base+1]) / 32768.0
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

// pcm16LEToStereo converts little-endian 16-bit interleaved bytes.
func pcm16LEToStereo(data []byte, channels int) [][2]float64 {
	if channels <= 0 {
		return nil
	}
	bytesPerFrame := 2 * channels
	frames := make([][2]float64, len(data)/bytesPerFrame)
	for i := range frames {
		offset := i * bytesPerFrame
		left := int16(data[offset]) | int16(data[offset+1])<<8

		right := left
		if channels > 1 {
			right = int16(data[offset+2]) | int16(data[offset+3])<<8
		}

		frames[i][0] = float64(left) / 32768.0
		frames[i][1] = float64(right) / 32768.0
	}
	return frames
}

// pcm24LEToStereo converts little-endian 24-bit interleaved bytes.
func pcm24LEToStereo(data []byte, channels int) [][2]float64 {
	if channels <= 0 {
		return nil
	}
	bytesPerFrame := 3 * channels
	frames := make([][2]float64, len(data)/bytesPerFrame)
	for i := range frames {
		offset := i * bytesPerFrame
		left := int24(data[offset:])

		right := left
		if channels > 1 {
			right = int24(data[offset+3:])
		}

		frames[i][0] = float64(left) / 8388608.0 // 2^23
		frames[i][1] = float64(right) / 8388608.0
	}
	return frames
}

func int24(b []byte) int32 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&0x800000 != 0 {
		v |= ^0xFFFFFF // sign extend
	}
	return v
}
