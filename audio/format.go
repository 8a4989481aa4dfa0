// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Kind is the sample encoding of a PCM block.
type Kind uint8

// Sample encodings.
const (
	KindUnknown Kind = iota
	U8
	S16
	F32
	F64
	MSADPCM
)

// DefaultADPCMBlockAlign is the number of sample frames per MS-ADPCM block
// used when a buffer does not set an explicit unpack alignment.
const DefaultADPCMBlockAlign = 64

func (k Kind) String() string {
	switch k {
	case U8:
		return "8bits unsigned"
	case S16:
		return "16bits signed"
	case F32:
		return "32bits float"
	case F64:
		return "64bits float"
	case MSADPCM:
		return "MS-ADPCM"
	default:
		return fmt.Sprintf("unknown sample kind %d", uint8(k))
	}
}

// Bits per sample as reported to callers. MS-ADPCM reports 4.
func (k Kind) Bits() int {
	switch k {
	case U8:
		return 8
	case S16:
		return 16
	case F32:
		return 32
	case F64:
		return 64
	case MSADPCM:
		return 4
	default:
		return 0
	}
}

// BytesPerSample is 0 for block-compressed kinds.
func (k Kind) BytesPerSample() int {
	switch k {
	case U8:
		return 1
	case S16:
		return 2
	case F32:
		return 4
	case F64:
		return 8
	default:
		return 0
	}
}

// PCM reports whether k is an uncompressed encoding usable for output.
func (k Kind) PCM() bool {
	return k.BytesPerSample() > 0
}

// Format is the buffer format enum understood by BufferData. The values
// are the native OpenAL ones so intercepted calls map through unchanged.
type Format int32

// Buffer formats.
const (
	FormatMono8         Format = 0x1100
	FormatMono16        Format = 0x1101
	FormatStereo8       Format = 0x1102
	FormatStereo16      Format = 0x1103
	FormatMonoFloat32   Format = 0x10010
	FormatStereoFloat32 Format = 0x10011
	FormatMonoDouble    Format = 0x10012
	FormatStereoDouble  Format = 0x10013
	FormatMonoMSADPCM   Format = 0x1302
	FormatStereoMSADPCM Format = 0x1303
)

type formatInfo struct {
	kind     Kind
	channels int
	name     string
}

var formatTable = map[Format]formatInfo{
	FormatMono8:         {U8, 1, "MONO8"},
	FormatMono16:        {S16, 1, "MONO16"},
	FormatStereo8:       {U8, 2, "STEREO8"},
	FormatStereo16:      {S16, 2, "STEREO16"},
	FormatMonoFloat32:   {F32, 1, "MONO_FLOAT32"},
	FormatStereoFloat32: {F32, 2, "STEREO_FLOAT32"},
	FormatMonoDouble:    {F64, 1, "MONO_DOUBLE"},
	FormatStereoDouble:  {F64, 2, "STEREO_DOUBLE"},
	FormatMonoMSADPCM:   {MSADPCM, 1, "MONO_MSADPCM"},
	FormatStereoMSADPCM: {MSADPCM, 2, "STEREO_MSADPCM"},
}

// Valid reports whether f is a recognised format enum.
func (f Format) Valid() bool {
	_, ok := formatTable[f]
	return ok
}

func (f Format) Kind() Kind {
	return formatTable[f].kind
}

func (f Format) Channels() int {
	return formatTable[f].channels
}

func (f Format) String() string {
	if info, ok := formatTable[f]; ok {
		return info.name
	}

	return fmt.Sprintf("format(0x%x)", int32(f))
}

// FormatFor returns the enum for a kind/channel pair.
func FormatFor(kind Kind, channels int) (Format, error) {
	for f, info := range formatTable {
		if info.kind == kind && info.channels == channels {
			return f, nil
		}
	}

	if channels != 1 && channels != 2 {
		return 0, ErrInvalidChannels
	}

	return 0, ErrUnknownFormat
}

// SampleFormat describes how a block of bytes is laid out. Widths and
// alignment are derived on every call from Kind, Channels and BlockAlign.
type SampleFormat struct {
	Kind     Kind
	Channels int
	// BlockAlign is the number of sample frames per compressed block.
	// Only meaningful for MSADPCM; 0 selects DefaultADPCMBlockAlign.
	BlockAlign int
}

// NewSampleFormat builds the SampleFormat of a Format enum.
func NewSampleFormat(f Format, blockAlign int) SampleFormat {
	return SampleFormat{Kind: f.Kind(), Channels: f.Channels(), BlockAlign: blockAlign}
}

// Validate checks the combination is decodable.
func (sf SampleFormat) Validate() error {
	if sf.Kind == KindUnknown || sf.Kind > MSADPCM {
		return ErrUnknownFormat
	}
	if sf.Channels != 1 && sf.Channels != 2 {
		return ErrInvalidChannels
	}
	if sf.Kind == MSADPCM {
		align := sf.FramesPerBlock()
		if align < 2 || align%2 != 0 {
			return ErrInvalidBlockAlign
		}
	}

	return nil
}

// FramesPerBlock is the number of sample frames covered by FrameAlign bytes.
func (sf SampleFormat) FramesPerBlock() int {
	if sf.Kind != MSADPCM {
		return 1
	}
	if sf.BlockAlign <= 0 {
		return DefaultADPCMBlockAlign
	}

	return sf.BlockAlign
}

// FrameAlign is the byte size of the smallest addressable unit: one frame
// for PCM, one block for MSADPCM.
func (sf SampleFormat) FrameAlign() int {
	if sf.Kind == MSADPCM {
		return ((sf.FramesPerBlock()-2)/2 + 7) * sf.Channels
	}

	return sf.Kind.BytesPerSample() * sf.Channels
}

// Frames converts a byte size to whole sample frames.
func (sf SampleFormat) Frames(size int) int {
	align := sf.FrameAlign()
	if align <= 0 {
		return 0
	}

	return size / align * sf.FramesPerBlock()
}

// Bytes converts a frame count to bytes, rounding down to whole units.
func (sf SampleFormat) Bytes(frames int) int {
	return frames / sf.FramesPerBlock() * sf.FrameAlign()
}
