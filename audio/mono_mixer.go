// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MapFrame copies one frame of srcCh channels into dstCh channels.
// Equal counts copy, mono is duplicated to every output channel and
// anything wider is averaged down to mono.
func MapFrame(dst []float32, dstCh int, src []float32, srcCh int) {
	switch {
	case srcCh == dstCh:
		copy(dst[:dstCh], src[:srcCh])
	case srcCh == 1:
		for c := range dstCh {
			dst[c] = src[0]
		}
	case dstCh == 1:
		dst[0] = average(src[:srcCh])
	default:
		for c := range dstCh {
			dst[c] = src[c%srcCh]
		}
	}
}

func average(frame []float32) float32 {
	switch len(frame) {
	case 2:
		return (frame[0] + frame[1]) * 0.5
	case 4:
		return (frame[0] + frame[1] + frame[2] + frame[3]) * 0.25
	}

	sum := float32(0)
	for _, v := range frame {
		sum += v
	}

	return sum / float32(len(frame))
}

// MonoMixer converts a multi-channel Source to mono by averaging channels.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	needed := len(dst) * channels
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	frames := n / channels
	for f := range frames {
		MapFrame(dst[f:f+1], 1, m.tmp[f*channels:(f+1)*channels], channels)
	}

	return frames, err
}
