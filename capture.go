// SPDX-License-Identifier: EPL-2.0

package alemu

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/alemu/al"
	"github.com/ik5/alemu/formats/wav"
	"github.com/ik5/alemu/utils"
)

// Capture renders frames output frames from ctx, quantum frames per
// Render call, and returns them as interleaved 16-bit PCM. Splitting the
// same total into different quanta yields the same samples.
func Capture(ctx *al.Context, frames, quantum int) (*goaudio.IntBuffer, error) {
	if frames < 0 {
		return nil, ErrInvalidFrames
	}
	if quantum <= 0 {
		return nil, ErrInvalidQuantum
	}

	out := ctx.OutputFormat()
	ch := out.Channels
	data := make([]int, 0, frames*ch)
	block := make([]float32, quantum*ch)

	for done := 0; done < frames; {
		n := ctx.RenderFloat32(block, min(quantum, frames-done))
		for _, v := range block[:n*ch] {
			data = append(data, int(utils.Float32ToInt16(v)))
		}
		done += n
	}

	return &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: ch, SampleRate: out.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}, nil
}

// CaptureWAV is Capture followed by writing a 16-bit WAV file to w.
func CaptureWAV(w io.WriteSeeker, ctx *al.Context, frames, quantum int) error {
	buf, err := Capture(ctx, frames, quantum)
	if err != nil {
		return err
	}
	if err := wav.Write(w, buf); err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	return nil
}
