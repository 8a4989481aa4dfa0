// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Clip is a block of encoded PCM ready to be passed to BufferData.
type Clip struct {
	Format     Format
	SampleRate int
	Data       []byte
}

// Frames is the number of sample frames held by the clip.
func (c Clip) Frames() int {
	return NewSampleFormat(c.Format, 0).Frames(len(c.Data))
}

// ReadClip drains src and encodes it as kind. Sources with more than two
// channels are mixed down to mono first.
func ReadClip(src Source, kind Kind) (Clip, error) {
	if !kind.PCM() {
		return Clip{}, ErrUnsupportedEncoding
	}
	if src.SampleRate() <= 0 {
		return Clip{}, ErrInvalidSampleRate
	}
	if src.Channels() > 2 {
		src = NewMonoMixer(src)
	}

	channels := src.Channels()
	format, err := FormatFor(kind, channels)
	if err != nil {
		return Clip{}, err
	}

	buf := make([]float32, 4096*channels)
	enc := make([]byte, len(buf)*kind.BytesPerSample())
	var data []byte

	for {
		n, err := src.ReadSamples(buf)
		n -= n % channels
		if n > 0 {
			w := Encode(enc, buf[:n], kind)
			data = append(data, enc[:w]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return Clip{}, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return Clip{Format: format, SampleRate: src.SampleRate(), Data: data}, nil
}
