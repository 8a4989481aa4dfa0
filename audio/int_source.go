// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/alemu/utils"
)

// IntReader is implemented by the go-audio WAV and AIFF decoders.
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntSource adapts a go-audio integer PCM decoder to Source.
type IntSource struct {
	dec      IntReader
	format   *goaudio.Format
	bitDepth int
	unsigned bool
	buf      *goaudio.IntBuffer
}

// NewIntSource wraps dec. unsigned marks 8-bit data centred on 128.
func NewIntSource(dec IntReader, format *goaudio.Format, bitDepth int, unsigned bool) *IntSource {
	return &IntSource{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		unsigned: unsigned,
	}
}

func (s *IntSource) SampleRate() int { return s.format.SampleRate }
func (s *IntSource) Channels() int   { return s.format.NumChannels }
func (s *IntSource) Close() error    { return nil }

func (s *IntSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v, s.bitDepth, s.unsigned)
	}

	// A short read without an error is the end of the stream.
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}
