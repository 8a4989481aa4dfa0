// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// streams into an audio.Source. Vorbis is the usual container for game
// audio, which makes it the most common input when replaying a game's
// sound calls.
//
// # Supported Formats
//
// The decoder supports:
//   - Ogg Vorbis (.ogg files)
//   - Variable bitrates
//   - Any channel count and sample rate the stream declares
//
// # Decoding Vorbis Files
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer source.Close()
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// n counts samples, not frames, and is always a multiple of the channel
// count. The tail of dst that does not hold a whole frame is not written.
//
// # Output Format
//
// Vorbis decoder output:
//   - Sample format: float32 as produced by oggvorbis, nominally in
//     [-1.0, 1.0]
//   - Channels: as declared by the stream
//   - Sample rate: as declared by the stream (commonly 44.1kHz or 48kHz)
//
// # Channel Layout
//
// Samples are interleaved in Vorbis channel order:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// Buffers only hold mono or stereo. audio.ReadClip mixes streams with
// more than two channels down to mono before upload:
//
//	clip, _ := audio.ReadClip(source, audio.F32)
//	buf, _ := alemu.UploadClip(ctx, clip)
//
// Encoding the clip as audio.F32 keeps the decoder's precision; S16 halves
// the buffer size and quantises with round half to even.
//
// # Limitations
//
// Note:
//   - Vorbis encoding is not supported (decoding only)
//   - Seeking is not exposed; sources are read front to back
//   - Comment headers are parsed by oggvorbis and not exposed
package vorbis
