// SPDX-License-Identifier: EPL-2.0

package al

import (
	"github.com/ik5/alemu/audio"
)

// Render mixes the next frames output frames into dst using the context's
// output format and returns the number of bytes written. Only whole frames
// that fit in dst are rendered.
func (c *Context) Render(dst []byte, frames int) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	frames = min(frames, len(dst)/c.output.FrameBytes())
	if frames <= 0 {
		return 0
	}

	mix := c.renderLocked(frames)

	return audio.Encode(dst, mix, c.output.Encoding)
}

// RenderFloat32 is Render without the final encode. dst receives
// interleaved samples; the return value is the number of frames.
func (c *Context) RenderFloat32(dst []float32, frames int) int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	frames = min(frames, len(dst)/c.output.Channels)
	if frames <= 0 {
		return 0
	}

	mix := c.renderLocked(frames)
	copy(dst, mix)

	return frames
}

// renderLocked advances every playing source by frames output frames and
// returns their sum. The slice is reused by the next call.
func (c *Context) renderLocked(frames int) []float32 {
	ch := c.output.Channels
	n := frames * ch
	if cap(c.mix) < n {
		c.mix = make([]float32, n)
		c.voice = make([]float32, n)
	}
	c.mix = c.mix[:n]
	c.voice = c.voice[:n]
	clear(c.mix)

	if c.suspended {
		return c.mix
	}

	c.sources.each(func(id ID, s *source) {
		if s.state != Playing {
			return
		}

		produced, exhausted := s.pullFrames(c.voice, frames, ch, c.output.SampleRate)
		if exhausted {
			c.log.Debug("source stopped", "id", id, "frames", produced)
		}

		gain := s.gain * c.listener.gain
		if gain == 0 {
			return
		}
		for i, v := range c.voice[:produced*ch] {
			c.mix[i] += v * gain
		}
	})

	return c.mix
}
