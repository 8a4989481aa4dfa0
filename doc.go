// SPDX-License-Identifier: EPL-2.0

// Package alemu wires the emulated audio device in package al to files on
// disk.
//
// The device itself lives in al: buffers, sources and a Context whose
// Render output depends only on the calls made before it. This package
// adds the plumbing around it:
//
//   - NewRegistry returns an audio.Registry with the WAV, AIFF, MP3 and
//     Ogg Vorbis decoders of the formats packages.
//   - LoadClip decodes a file into an audio.Clip and UploadClip turns a
//     clip into a buffer.
//   - Capture renders a context offline into a go-audio IntBuffer and
//     CaptureWAV stores the same frames as a WAV file.
//
// # Quick Start
//
//	ctx, _ := al.NewContext(al.DefaultOptions())
//	reg := alemu.NewRegistry()
//
//	clip, _ := alemu.LoadClip(reg, "loop.ogg", audio.S16)
//	buf, _ := alemu.UploadClip(ctx, clip)
//
//	src, _ := ctx.CreateSource()
//	_ = ctx.SetSourcei(src, al.Buffer, int32(buf))
//	_ = ctx.SetSourcei(src, al.Looping, 1)
//	_ = ctx.SourcePlay(src)
//
//	f, _ := os.Create("mix.wav")
//	defer f.Close()
//	_ = alemu.CaptureWAV(f, ctx, 44100*5, 1024)
//
// Capturing with the same call sequence always produces the same bytes,
// which makes the output usable as a golden file in tests.
package alemu
