// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/alemu/utils"
)

// Resampler is the fractional read position of one voice. It performs
// linear interpolation between the frame under the cursor and the one
// after it, and tells the caller how many whole frames to advance.
// The phase is kept between calls so a voice resampled across several
// render blocks produces the same stream as one large block.
type Resampler struct {
	phase float64
}

// MaxStep is the most source frames one output frame may consume.
const MaxStep = 255

// Step is the number of source frames consumed per output frame, clamped
// to MaxStep.
func Step(srcRate, dstRate int, pitch float32) float64 {
	if srcRate <= 0 || dstRate <= 0 {
		return 0
	}

	return min(float64(pitch)*float64(srcRate)/float64(dstRate), MaxStep)
}

// Phase is the current fractional position in [0, 1).
func (r *Resampler) Phase() float64 { return r.phase }

// Reset drops the fractional position.
func (r *Resampler) Reset() { r.phase = 0 }

// Interpolate writes one frame into dst. next is only read when the phase
// is non-zero, so it may be nil at unity step.
func (r *Resampler) Interpolate(dst, cur, next []float32) {
	if r.phase == 0 || next == nil {
		copy(dst, cur)
		return
	}

	t := float32(r.phase)
	for c := range dst {
		dst[c] = utils.Lerp(cur[c], next[c], t)
	}
}

// Advance moves the phase by step and returns the whole frames crossed.
func (r *Resampler) Advance(step float64) int {
	r.phase += step
	whole := math.Floor(r.phase)
	r.phase -= whole

	return int(whole)
}
