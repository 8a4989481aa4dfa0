// SPDX-License-Identifier: EPL-2.0

package alemu

import (
	"fmt"
	"os"

	"github.com/ik5/alemu/al"
	"github.com/ik5/alemu/audio"
	"github.com/ik5/alemu/formats/aiff"
	"github.com/ik5/alemu/formats/mp3"
	"github.com/ik5/alemu/formats/vorbis"
	"github.com/ik5/alemu/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder, keyed by
// file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// LoadClip decodes the file at path with the decoder registered for its
// extension and encodes the samples as kind.
func LoadClip(reg *audio.Registry, path string, kind audio.Kind) (audio.Clip, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return audio.Clip{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	clip, err := audio.ReadClip(src, kind)
	if err != nil {
		return audio.Clip{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return clip, nil
}

// UploadClip creates a buffer holding clip. The buffer is deleted again
// if the upload fails.
func UploadClip(ctx *al.Context, clip audio.Clip) (al.ID, error) {
	id, err := ctx.CreateBuffer()
	if err != nil {
		return 0, err
	}

	if err := ctx.BufferData(id, clip.Format, clip.Data, clip.SampleRate); err != nil {
		_ = ctx.DeleteBuffer(id)
		return 0, err
	}

	return id, nil
}
