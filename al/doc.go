// SPDX-License-Identifier: EPL-2.0

/*
Package al is a deterministic stand-in for an OpenAL-style audio device.

A Context owns buffers and sources addressed by ID handles. Buffers hold
sample data in one of the formats of package audio; sources play a single
attached buffer (STATIC) or a queue of buffers (STREAMING) through the
INITIAL, PLAYING, PAUSED and STOPPED states. Render produces the mix of
every playing source for a given number of frames, and its output depends
only on the sequence of calls made before it: there is no clock and no
device.

	ctx, _ := al.NewContext(al.DefaultOptions())
	buf, _ := ctx.CreateBuffer()
	_ = ctx.BufferData(buf, audio.FormatMono16, pcm, 44100)
	src, _ := ctx.CreateSource()
	_ = ctx.SetSourcei(src, al.Buffer, int32(buf))
	_ = ctx.SourcePlay(src)
	out := make([]byte, 1024*4)
	ctx.Render(out, 1024)

Failing calls return an *Error wrapping an ErrorKind and also record the
kind as the pending context error, which GetError returns once. Only the
first error since the last GetError is kept.

Pitch is applied with linear interpolation. Positional parameters are
stored and reported back but do not affect the mix.
*/
package al
