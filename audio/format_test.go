// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func TestFormat_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format   Format
		kind     Kind
		channels int
		align    int
	}{
		{FormatMono8, U8, 1, 1},
		{FormatStereo8, U8, 2, 2},
		{FormatMono16, S16, 1, 2},
		{FormatStereo16, S16, 2, 4},
		{FormatMonoFloat32, F32, 1, 4},
		{FormatStereoFloat32, F32, 2, 8},
		{FormatMonoDouble, F64, 1, 8},
		{FormatStereoDouble, F64, 2, 16},
		{FormatMonoMSADPCM, MSADPCM, 1, 38},
		{FormatStereoMSADPCM, MSADPCM, 2, 76},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			if !tt.format.Valid() {
				t.Fatalf("%v.Valid() = false", tt.format)
			}
			if got := tt.format.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			if got := tt.format.Channels(); got != tt.channels {
				t.Errorf("Channels() = %d, want %d", got, tt.channels)
			}

			sf := NewSampleFormat(tt.format, 0)
			if err := sf.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if got := sf.FrameAlign(); got != tt.align {
				t.Errorf("FrameAlign() = %d, want %d", got, tt.align)
			}

			back, err := FormatFor(tt.kind, tt.channels)
			if err != nil || back != tt.format {
				t.Errorf("FormatFor(%v, %d) = %v, %v", tt.kind, tt.channels, back, err)
			}
		})
	}
}

func TestFormat_Unknown(t *testing.T) {
	t.Parallel()

	f := Format(0x1234)
	if f.Valid() {
		t.Error("Format(0x1234).Valid() = true")
	}
	if f.Kind() != KindUnknown || f.Channels() != 0 {
		t.Errorf("unknown format reports kind %v channels %d", f.Kind(), f.Channels())
	}
	if f.String() != "format(0x1234)" {
		t.Errorf("String() = %q", f.String())
	}

	if _, err := FormatFor(S16, 6); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("FormatFor(S16, 6) error = %v, want ErrInvalidChannels", err)
	}
}

func TestKind_Bits(t *testing.T) {
	t.Parallel()

	want := map[Kind]int{U8: 8, S16: 16, F32: 32, F64: 64, MSADPCM: 4, KindUnknown: 0}
	for k, bits := range want {
		if got := k.Bits(); got != bits {
			t.Errorf("%v.Bits() = %d, want %d", k, got, bits)
		}
	}

	if MSADPCM.PCM() || !S16.PCM() {
		t.Error("PCM() misclassifies kinds")
	}
}

func TestSampleFormat_ADPCMAlignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		align     int
		wantErr   error
		wantBytes int
	}{
		{name: "default", align: 0, wantBytes: 38},
		{name: "wav style 500 frames", align: 500, wantBytes: 256},
		{name: "minimum", align: 2, wantBytes: 7},
		{name: "odd", align: 63, wantErr: ErrInvalidBlockAlign},
		{name: "too small", align: 1, wantErr: ErrInvalidBlockAlign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sf := SampleFormat{Kind: MSADPCM, Channels: 1, BlockAlign: tt.align}
			err := sf.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if got := sf.FrameAlign(); got != tt.wantBytes {
				t.Errorf("FrameAlign() = %d, want %d", got, tt.wantBytes)
			}
		})
	}
}

func TestSampleFormat_FramesAndBytes(t *testing.T) {
	t.Parallel()

	stereo16 := NewSampleFormat(FormatStereo16, 0)
	if got := stereo16.Frames(40); got != 10 {
		t.Errorf("Frames(40) = %d, want 10", got)
	}
	if got := stereo16.Bytes(10); got != 40 {
		t.Errorf("Bytes(10) = %d, want 40", got)
	}

	adpcm := NewSampleFormat(FormatMonoMSADPCM, 64)
	if got := adpcm.Frames(38 * 3); got != 192 {
		t.Errorf("ADPCM Frames(114) = %d, want 192", got)
	}
	if got := adpcm.Bytes(100); got != 38 {
		t.Errorf("ADPCM Bytes(100) = %d, want 38 (whole blocks)", got)
	}

	bad := SampleFormat{Kind: S16, Channels: 3}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("Validate() = %v, want ErrInvalidChannels", err)
	}
}
