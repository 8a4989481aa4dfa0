// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample-format layer shared by the emulated
// device and the file loaders.
//
// # Sample Formats
//
// Format is the buffer format enum (MONO16, STEREO_FLOAT32, ...), carrying
// the native numeric values. SampleFormat is the decoded view of it: kind,
// channel count and, for MS-ADPCM, the block alignment in frames. Byte
// widths and frame alignment are computed from those three fields on
// every call:
//
//	sf := audio.NewSampleFormat(audio.FormatStereo16, 0)
//	sf.FrameAlign() // 4
//	sf.Frames(4096) // 1024
//
// # Conversion
//
// Decode and Encode are the only places that know how each kind is laid
// out in memory. Samples in between are float32 in [-1.0, 1.0]:
//   - U8 is offset binary around 128
//   - S16 is scaled by 32768 so every value round-trips exactly
//   - F32 and F64 are passed through
//   - MS-ADPCM is decoded block by block; it cannot be encoded
//
// Integer output rounds half to even and clamps, so identical input always
// produces identical bytes.
//
// # Resampling
//
// Resampler keeps the fractional read position of one voice and
// interpolates linearly between neighbouring frames. Step combines pitch
// and the source/output rate ratio.
//
// # Channel Mapping
//
// MapFrame converts one frame between channel counts (mono is duplicated,
// wider layouts are averaged). MonoMixer applies the same averaging to a
// whole streaming Source.
//
// # Loading
//
// Source and Decoder describe streaming file decoders (see the formats
// packages). Registry selects a decoder by container extension, and
// ReadClip drains a Source into a Clip that can be uploaded with
// BufferData.
package audio
