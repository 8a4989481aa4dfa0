// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"

	"github.com/ik5/alemu/utils"
)

// Decode converts src, encoded as sf, into interleaved float32 samples
// normalised to [-1, 1]. It stops at whichever of dst or src runs out
// first and returns the number of whole frames written. MSADPCM input is
// consumed in whole blocks.
func Decode(dst []float32, src []byte, sf SampleFormat) int {
	if sf.Channels <= 0 {
		return 0
	}
	if sf.Kind == MSADPCM {
		return decodeMSADPCM(dst, src, sf.Channels, sf.FramesPerBlock())
	}

	align := sf.FrameAlign()
	if align == 0 {
		return 0
	}
	frames := min(len(src)/align, len(dst)/sf.Channels)
	n := frames * sf.Channels

	switch sf.Kind {
	case U8:
		for i := range n {
			dst[i] = utils.Uint8ToFloat32(src[i])
		}
	case S16:
		for i := range n {
			dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(src[2*i:])))
		}
	case F32:
		for i := range n {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
		}
	case F64:
		for i := range n {
			dst[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:])))
		}
	default:
		return 0
	}

	return frames
}

// Encode writes src as little-endian samples of the given kind and returns
// the number of bytes written. Only PCM kinds can be encoded.
func Encode(dst []byte, src []float32, kind Kind) int {
	width := kind.BytesPerSample()
	if width == 0 {
		return 0
	}
	n := min(len(src), len(dst)/width)

	switch kind {
	case U8:
		for i := range n {
			dst[i] = utils.Float32ToUint8(src[i])
		}
	case S16:
		for i := range n {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(utils.Float32ToInt16(src[i])))
		}
	case F32:
		for i := range n {
			binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(src[i]))
		}
	case F64:
		for i := range n {
			binary.LittleEndian.PutUint64(dst[8*i:], math.Float64bits(float64(src[i])))
		}
	}

	return n * width
}
