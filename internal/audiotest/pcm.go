// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"
)

// S16 encodes samples as little-endian signed 16-bit PCM.
func S16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}

	return out
}

// S16Constant returns frames × channels samples of value v.
func S16Constant(frames, channels int, v int16) []byte {
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = v
	}

	return S16(samples...)
}

// S16Ramp returns a mono ramp start, start+1, ...
func S16Ramp(frames int, start int16) []byte {
	samples := make([]int16, frames)
	for i := range samples {
		samples[i] = start + int16(i)
	}

	return S16(samples...)
}

// F32 encodes samples as little-endian float32.
func F32(samples ...float32) []byte {
	out := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(s))
	}

	return out
}

// F64 encodes samples as little-endian float64.
func F64(samples ...float64) []byte {
	out := make([]byte, 8*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(s))
	}

	return out
}

// ReadS16 decodes little-endian signed 16-bit PCM.
func ReadS16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}

	return out
}

// ReadF32 decodes little-endian float32 PCM.
func ReadF32(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}

	return out
}

// AllZero reports whether every byte of b is zero.
func AllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}

	return true
}
