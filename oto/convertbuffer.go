package oto

import (
	"encoding/binary"
	"math"

	"github.com/tphakala/simd/f32"
)

// FloatBufferTo16BitLE appends the samples to dst as 16-bit little-endian
// integers, clipping values outside [-1, 1].
func FloatBufferTo16BitLE(buff []float32, dst []byte) []byte {
	for _, v := range buff {
		var uv int16
		if v < -1.0 {
			uv = -math.MaxInt16
		} else if v > 1.0 {
			uv = math.MaxInt16
		} else {
			uv = int16(v * math.MaxInt16)
		}
		dst = binary.LittleEndian.AppendUint16(dst, uint16(uv))
	}
	return dst
}

// FloatBufferToFloatLE appends the samples to dst as 32-bit little-endian
// floats.
func FloatBufferToFloatLE(buff []float32, dst []byte) []byte {
	for _, v := range buff {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}

// interleave writes the frames of channels into dst, one frame after another.
// dst must hold len(channels)*frames samples.
func interleave(dst []float32, channels [][]float32, frames int) {
	switch len(channels) {
	case 1:
		copy(dst, channels[0][:frames])
	case 2:
		f32.Interleave2(dst[:2*frames], channels[0][:frames], channels[1][:frames])
	default:
		n := len(channels)
		for c, ch := range channels {
			for i, v := range ch[:frames] {
				dst[i*n+c] = v
			}
		}
	}
}
