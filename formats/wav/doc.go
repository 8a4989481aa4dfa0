// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// Decoder accepts 8, 16, 24 and 32-bit integer PCM and yields an
// audio.Source of normalised float32 samples, ready for audio.ReadClip.
//
// Write and WriteS16 store rendered output. The go-audio encoder patches
// the RIFF sizes on close, so the destination has to be an io.WriteSeeker
// such as *os.File:
//
//	f, _ := os.Create("mix.wav")
//	defer f.Close()
//	err := wav.WriteS16(f, 44100, 2, samples)
package wav
