// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"

	"github.com/ik5/alemu/internal/audiotest"
)

func encode(t *testing.T, rate, channels, bitDepth int, samples []int) []byte {
	t.Helper()

	w := &audiotest.WriteSeeker{}
	enc := aiff.NewEncoder(w, rate, bitDepth, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	return w.Bytes()
}

func TestDecoder_RoundTrip16(t *testing.T) {
	t.Parallel()

	samples := []int{0, 16384, -16384, -32768, 32767, 8192}
	src, err := Decoder{}.Decode(bytes.NewReader(encode(t, 22050, 2, 16, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Fatalf("metadata = %d Hz, %d ch", src.SampleRate(), src.Channels())
	}

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(samples) {
		t.Fatalf("ReadSamples() = %d, want %d", n, len(samples))
	}
	for i, s := range samples {
		if want := float32(s) / 32768; dst[i] != want {
			t.Errorf("sample %d = %v, want %v", i, dst[i], want)
		}
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty": nil,
		"wav":   []byte("RIFF\x24\x00\x00\x00WAVEfmt "),
		"text":  []byte("This is not AIFF data"),
	} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("%s: Decode() error = nil", name)
		}
	}
}

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	errs := []error{ErrNotAiffFile, ErrUnsupportedBitDepth, ErrUnsupportedAiffLayout}
	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v matches %v", a, b)
			}
		}
	}
}
