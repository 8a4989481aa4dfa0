// SPDX-License-Identifier: EPL-2.0

package al

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/ik5/alemu/audio"
)

var monoS16 = OutputFormat{SampleRate: 44100, Channels: 1, Encoding: audio.S16}

func newTestContext(t testing.TB, out OutputFormat) *Context {
	t.Helper()

	opts := DefaultOptions()
	opts.Output = out
	opts.Logger = slog.New(slog.DiscardHandler)

	c, err := NewContext(opts)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}

	return c
}

func mustBuffer(t testing.TB, c *Context, format audio.Format, data []byte, rate int) ID {
	t.Helper()

	id, err := c.CreateBuffer()
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if err := c.BufferData(id, format, data, rate); err != nil {
		t.Fatalf("BufferData() error = %v", err)
	}

	return id
}

func mustSource(t testing.TB, c *Context) ID {
	t.Helper()

	id, err := c.CreateSource()
	if err != nil {
		t.Fatalf("CreateSource() error = %v", err)
	}

	return id
}

// playStatic attaches buf to a new source and starts it.
func playStatic(t testing.TB, c *Context, buf ID) ID {
	t.Helper()

	src := mustSource(t, c)
	if err := c.SetSourcei(src, Buffer, int32(buf)); err != nil {
		t.Fatalf("SetSourcei(Buffer) error = %v", err)
	}
	if err := c.SourcePlay(src); err != nil {
		t.Fatalf("SourcePlay() error = %v", err)
	}

	return src
}

func render(c *Context, frames int) []byte {
	out := make([]byte, frames*c.OutputFormat().FrameBytes())
	n := c.Render(out, frames)

	return out[:n]
}

func wantState(t testing.TB, c *Context, src ID, want State) {
	t.Helper()

	got, err := c.SourceState(src)
	if err != nil {
		t.Fatalf("SourceState() error = %v", err)
	}
	if got != want {
		t.Errorf("state = %v, want %v", got, want)
	}
}

// wantKind checks err carries kind and that kind is the pending error.
func wantKind(t testing.TB, c *Context, err error, kind ErrorKind) {
	t.Helper()

	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want %v", err, kind)
	}
	if got := c.GetError(); got != kind {
		t.Errorf("GetError() = %v, want %v", got, kind)
	}
}
