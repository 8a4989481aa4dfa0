// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 quantises a normalised sample to signed 16-bit PCM.
// The scale is 32768 so that every int16 value survives a decode/encode
// round trip; ties round to even and the result is clamped.
func Float32ToInt16(x float32) int16 {
	v := math.RoundToEven(float64(x) * 32768.0)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// Float32ToUint8 quantises a normalised sample to unsigned 8-bit PCM
// (128 is silence).
func Float32ToUint8(x float32) uint8 {
	v := math.RoundToEven(float64(x)*128.0) + 128
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	if v < 0 {
		return 0
	}

	return uint8(v)
}

// Int16ToFloat32 is the inverse of Float32ToInt16 for in-range values.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Uint8ToFloat32 is the inverse of Float32ToUint8 for in-range values.
func Uint8ToFloat32(v uint8) float32 {
	return float32(int(v)-128) / 128.0
}

// IntToFloat32 normalises an integer PCM sample of the given bit depth.
// Unsigned samples are centred on half the range first, as in 8-bit WAV.
func IntToFloat32(v, bitDepth int, unsigned bool) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		bitDepth = 16
	}

	half := int64(1) << (bitDepth - 1)
	x := int64(v)
	if unsigned {
		x -= half
	}

	return float32(float64(x) / float64(half))
}
