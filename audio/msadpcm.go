// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"

	"github.com/ik5/alemu/utils"
)

var (
	adpcmCoef1 = [7]int32{256, 512, 0, 192, 240, 460, 392}
	adpcmCoef2 = [7]int32{0, -256, 0, 64, 0, -208, -232}
	adpcmAdapt = [16]int32{230, 230, 230, 230, 307, 409, 512, 614, 768, 614, 512, 409, 307, 230, 230, 230}
)

type adpcmChannel struct {
	coef1, coef2 int32
	delta        int32
	s1, s2       int32
}

func (c *adpcmChannel) expand(nibble byte) int16 {
	signed := int32(nibble)
	if signed >= 8 {
		signed -= 16
	}

	pred := (c.s1*c.coef1+c.s2*c.coef2)/256 + signed*c.delta
	pred = max(math.MinInt16, min(math.MaxInt16, pred))

	c.s2 = c.s1
	c.s1 = pred

	c.delta = adpcmAdapt[nibble] * c.delta / 256
	if c.delta < 16 {
		c.delta = 16
	}

	return int16(pred)
}

// decodeMSADPCM expands whole blocks of src into dst. Each block starts
// with a 7 byte header per channel (predictor, delta, sample1, sample2);
// sample2 is emitted first, then sample1, then one sample per nibble,
// high nibble first, channels interleaved.
func decodeMSADPCM(dst []float32, src []byte, channels, framesPerBlock int) int {
	blockBytes := ((framesPerBlock-2)/2 + 7) * channels
	if blockBytes <= 0 {
		return 0
	}

	blocks := min(len(src)/blockBytes, len(dst)/(framesPerBlock*channels))
	var state [2]adpcmChannel

	for b := range blocks {
		block := src[b*blockBytes : (b+1)*blockBytes]
		out := dst[b*framesPerBlock*channels : (b+1)*framesPerBlock*channels]

		for ch := range channels {
			idx := int(block[ch])
			if idx >= len(adpcmCoef1) {
				idx = 0
			}
			st := &state[ch]
			st.coef1 = adpcmCoef1[idx]
			st.coef2 = adpcmCoef2[idx]
			st.delta = int32(int16(binary.LittleEndian.Uint16(block[channels+2*ch:])))
			st.s1 = int32(int16(binary.LittleEndian.Uint16(block[3*channels+2*ch:])))
			st.s2 = int32(int16(binary.LittleEndian.Uint16(block[5*channels+2*ch:])))

			out[ch] = utils.Int16ToFloat32(int16(st.s2))
			out[channels+ch] = utils.Int16ToFloat32(int16(st.s1))
		}

		k := 2 * channels
		for _, v := range block[7*channels:] {
			for _, nibble := range [2]byte{v >> 4, v & 0x0f} {
				if k >= len(out) {
					break
				}
				out[k] = utils.Int16ToFloat32(state[k%channels].expand(nibble))
				k++
			}
		}
	}

	return blocks * framesPerBlock
}
