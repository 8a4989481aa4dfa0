// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// AIFF is Apple's counterpart of WAV: big-endian integer PCM with the
// sample rate stored as an 80-bit float. Decoder accepts 8, 16, 24 and
// 32-bit files with any channel count and returns an audio.Source of
// normalised float32 samples.
//
//	f, _ := os.Open("effect.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//		// try another container
//	}
//	clip, err := audio.ReadClip(src, audio.S16)
package aiff
