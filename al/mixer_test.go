// SPDX-License-Identifier: EPL-2.0

package al

import (
	"bytes"
	"testing"

	"github.com/ik5/alemu/audio"
	"github.com/ik5/alemu/internal/audiotest"
)

func TestRender_SilenceWithoutSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  OutputFormat
	}{
		{"s16 mono", monoS16},
		{"s16 stereo", OutputFormat{SampleRate: 48000, Channels: 2, Encoding: audio.S16}},
		{"f32 stereo", OutputFormat{SampleRate: 48000, Channels: 2, Encoding: audio.F32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestContext(t, tt.out)
			out := render(c, 64)
			if len(out) != 64*tt.out.FrameBytes() {
				t.Fatalf("Render() wrote %d bytes, want %d", len(out), 64*tt.out.FrameBytes())
			}
			if !audiotest.AllZero(out) {
				t.Error("output is not silent")
			}
		})
	}
}

func TestRender_SilenceU8(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, OutputFormat{SampleRate: 8000, Channels: 1, Encoding: audio.U8})
	for i, v := range render(c, 16) {
		if v != 128 {
			t.Fatalf("sample %d = %d, want 128", i, v)
		}
	}
}

func TestRender_ExhaustionThenSilence(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Constant(10, 1, 1000), 44100)
	src := playStatic(t, c, buf)

	first := audiotest.ReadS16(render(c, 5))
	for i, v := range first {
		if v != 1000 {
			t.Errorf("first render frame %d = %d, want 1000", i, v)
		}
	}
	wantState(t, c, src, Playing)

	second := audiotest.ReadS16(render(c, 10))
	for i, v := range second {
		want := int16(0)
		if i < 5 {
			want = 1000
		}
		if v != want {
			t.Errorf("second render frame %d = %d, want %d", i, v, want)
		}
	}
	wantState(t, c, src, Stopped)

	if off, _ := c.GetSourcei(src, SampleOffset); off != 0 {
		t.Errorf("SampleOffset after exhaustion = %d, want 0", off)
	}
}

func TestRender_SumOfHalfGains(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Constant(20, 1, 1000), 44100)

	for range 2 {
		src := mustSource(t, c)
		_ = c.SetSourcei(src, Buffer, int32(buf))
		_ = c.SetSourcef(src, Gain, 0.5)
		_ = c.SourcePlay(src)
	}

	for i, v := range audiotest.ReadS16(render(c, 20)) {
		if v != 1000 {
			t.Fatalf("frame %d = %d, want 1000", i, v)
		}
	}
}

func TestRender_ZeroGainMatchesAbsentSource(t *testing.T) {
	t.Parallel()

	setup := func(withMuted bool) *Context {
		c := newTestContext(t, monoS16)
		loud := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(64, -32), 44100)
		if withMuted {
			quiet := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Constant(64, 1, 30000), 44100)
			src := mustSource(t, c)
			_ = c.SetSourcei(src, Buffer, int32(quiet))
			_ = c.SetSourcef(src, Gain, 0)
			_ = c.SourcePlay(src)
		}
		playStatic(t, c, loud)

		return c
	}

	with := render(setup(true), 80)
	without := render(setup(false), 80)
	if !bytes.Equal(with, without) {
		t.Error("zero-gain source changed the mix")
	}
}

func TestRender_ListenerGain(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Constant(8, 1, 1000), 44100)
	src := playStatic(t, c, buf)
	_ = c.SetSourcef(src, Gain, 2)
	_ = c.SetListenerGain(0.25)

	if got := audiotest.ReadS16(render(c, 1)); got[0] != 500 {
		t.Errorf("frame = %d, want 500", got[0])
	}
}

func TestRender_LoopPointsContainPosition(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(100, 0), 44100)
	if err := c.SetBufferiv(buf, LoopPoints, 10, 20); err != nil {
		t.Fatalf("SetBufferiv() error = %v", err)
	}
	src := mustSource(t, c)
	_ = c.SetSourcei(src, Buffer, int32(buf))
	_ = c.SetSourcei(src, Looping, 1)
	_ = c.SourcePlay(src)

	out := audiotest.ReadS16(render(c, 200))
	for i := range 20 {
		if out[i] != int16(i) {
			t.Fatalf("frame %d = %d, want %d", i, out[i], i)
		}
	}
	for i, v := range out[20:] {
		if v < 10 || v >= 20 {
			t.Fatalf("frame %d = %d escaped the loop range", i+20, v)
		}
		if want := int16(10 + i%10); v != want {
			t.Fatalf("frame %d = %d, want %d", i+20, v, want)
		}
	}
	wantState(t, c, src, Playing)
}

func TestRender_LoopingWholeBuffer(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(4, 0), 44100)
	src := mustSource(t, c)
	_ = c.SetSourcei(src, Buffer, int32(buf))
	_ = c.SetSourcei(src, Looping, 1)
	_ = c.SourcePlay(src)

	out := audiotest.ReadS16(render(c, 10))
	want := []int16{0, 1, 2, 3, 0, 1, 2, 3, 0, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("frame %d = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestRender_StreamingQueue(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	a := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(3, 0), 44100)
	empty, _ := c.CreateBuffer()
	b := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(3, 10), 44100)
	src := mustSource(t, c)
	_ = c.SourceQueueBuffers(src, a, empty, b)
	_ = c.SetSourcei(src, Looping, 1)
	_ = c.SourcePlay(src)

	out := audiotest.ReadS16(render(c, 8))
	want := []int16{0, 1, 2, 10, 11, 12, 0, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("frame %d = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestRender_ChannelMapping(t *testing.T) {
	t.Parallel()

	stereo := OutputFormat{SampleRate: 44100, Channels: 2, Encoding: audio.S16}

	c := newTestContext(t, stereo)
	playStatic(t, c, mustBuffer(t, c, audio.FormatMono16, audiotest.S16(100, 200), 44100))
	if got := audiotest.ReadS16(render(c, 2)); !equalS16(got, []int16{100, 100, 200, 200}) {
		t.Errorf("mono to stereo = %v", got)
	}

	c = newTestContext(t, monoS16)
	playStatic(t, c, mustBuffer(t, c, audio.FormatStereo16, audiotest.S16(100, 300, -50, 50), 44100))
	if got := audiotest.ReadS16(render(c, 2)); !equalS16(got, []int16{200, 0}) {
		t.Errorf("stereo to mono = %v", got)
	}
}

func TestRender_Resampling(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16(0, 100, 200, 300), 22050)
	src := playStatic(t, c, buf)

	got := audiotest.ReadS16(render(c, 8))
	// The last frame has no successor and is held.
	want := []int16{0, 50, 100, 150, 200, 250, 300, 300}
	if !equalS16(got, want) {
		t.Errorf("upsampled = %v, want %v", got, want)
	}
	wantState(t, c, src, Stopped)

	c = newTestContext(t, monoS16)
	buf = mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(8, 0), 44100)
	src = playStatic(t, c, buf)
	_ = c.SetSourcef(src, Pitch, 2)

	got = audiotest.ReadS16(render(c, 5))
	if want := []int16{0, 2, 4, 6, 0}; !equalS16(got, want) {
		t.Errorf("pitch 2 = %v, want %v", got, want)
	}
}

func TestRender_PhaseContinuity(t *testing.T) {
	t.Parallel()

	setup := func() *Context {
		c := newTestContext(t, monoS16)
		samples := make([]int16, 500)
		for i := range samples {
			samples[i] = int16(i * 37 % 2000)
		}
		buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16(samples...), 32000)
		src := playStatic(t, c, buf)
		_ = c.SetSourcef(src, Pitch, 0.75)

		return c
	}

	whole := render(setup(), 300)

	c := setup()
	var pieces []byte
	for _, n := range []int{1, 7, 64, 100, 128} {
		pieces = append(pieces, render(c, n)...)
	}

	if !bytes.Equal(whole, pieces) {
		t.Error("split renders differ from one large render")
	}
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	run := func() []byte {
		c := newTestContext(t, OutputFormat{SampleRate: 48000, Channels: 2, Encoding: audio.S16})
		a := mustBuffer(t, c, audio.FormatMonoFloat32, audiotest.F32(0.1, 0.4, -0.3, 0.9, -0.7), 11025)
		b := mustBuffer(t, c, audio.FormatStereo8, []byte{0, 255, 64, 192, 128, 100}, 8000)

		s1 := playStatic(t, c, a)
		_ = c.SetSourcei(s1, Looping, 1)
		_ = c.SetSourcef(s1, Pitch, 1.3)
		s2 := playStatic(t, c, b)
		_ = c.SetSourcef(s2, Gain, 0.7)

		var out []byte
		for range 5 {
			out = append(out, render(c, 97)...)
		}

		return out
	}

	if !bytes.Equal(run(), run()) {
		t.Error("identical call sequences produced different output")
	}
}

func TestRender_DeletedBufferKeepsPlaying(t *testing.T) {
	t.Parallel()

	setup := func() (*Context, ID) {
		c := newTestContext(t, monoS16)
		buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(32, 5), 44100)
		playStatic(t, c, buf)

		return c, buf
	}

	control, _ := setup()
	want := render(control, 40)

	c, buf := setup()
	got := render(c, 10)
	if err := c.DeleteBuffer(buf); err != nil {
		t.Fatalf("DeleteBuffer() error = %v", err)
	}
	if c.IsBuffer(buf) {
		t.Error("IsBuffer() after delete = true")
	}
	got = append(got, render(c, 30)...)

	if !bytes.Equal(got, want) {
		t.Error("deleting the buffer changed what the source plays")
	}
	wantKind(t, c, c.BufferData(buf, audio.FormatMono16, nil, 44100), InvalidName)
}

func TestRender_SuspendFreezesSources(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(10, 1), 44100)
	playStatic(t, c, buf)
	render(c, 2)

	c.Suspend()
	if !c.Suspended() {
		t.Fatal("Suspended() = false")
	}
	if !audiotest.AllZero(render(c, 5)) {
		t.Error("suspended context produced output")
	}

	c.Process()
	if got := audiotest.ReadS16(render(c, 1)); got[0] != 3 {
		t.Errorf("frame after Process = %d, want 3", got[0])
	}
}

func TestRender_ShortDestination(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, OutputFormat{SampleRate: 44100, Channels: 2, Encoding: audio.S16})
	if n := c.Render(make([]byte, 10), 100); n != 8 {
		t.Errorf("Render() = %d bytes, want 8", n)
	}
	if n := c.Render(make([]byte, 3), 1); n != 0 {
		t.Errorf("Render() into a partial frame = %d, want 0", n)
	}
	if n := c.Render(nil, 0); n != 0 {
		t.Errorf("Render(nil, 0) = %d", n)
	}
}

func TestRenderFloat32(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, OutputFormat{SampleRate: 44100, Channels: 1, Encoding: audio.F32})
	playStatic(t, c, mustBuffer(t, c, audio.FormatMonoFloat32, audiotest.F32(0.25, -0.5), 44100))

	dst := make([]float32, 4)
	if n := c.RenderFloat32(dst, 4); n != 4 {
		t.Fatalf("RenderFloat32() = %d, want 4", n)
	}
	want := []float32{0.25, -0.5, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestRender_F32Output(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, OutputFormat{SampleRate: 44100, Channels: 2, Encoding: audio.F32})
	playStatic(t, c, mustBuffer(t, c, audio.FormatMonoFloat32, audiotest.F32(0.25, -0.5), 44100))

	got := audiotest.ReadF32(render(c, 3))
	want := []float32{0.25, 0.25, -0.5, -0.5, 0, 0}
	if len(got) != len(want) {
		t.Fatalf("rendered %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRender_OutputFormatChange(t *testing.T) {
	t.Parallel()

	c := newTestContext(t, monoS16)
	playStatic(t, c, mustBuffer(t, c, audio.FormatMono16, audiotest.S16(16384, 16384, 16384), 44100))
	render(c, 1)

	err := c.SetOutputFormat(OutputFormat{SampleRate: 44100, Channels: 1, Encoding: audio.MSADPCM})
	wantKind(t, c, err, InvalidValue)

	if err := c.SetOutputFormat(OutputFormat{SampleRate: 44100, Channels: 2, Encoding: audio.U8}); err != nil {
		t.Fatalf("SetOutputFormat() error = %v", err)
	}
	if got := render(c, 1); !bytes.Equal(got, []byte{192, 192}) {
		t.Errorf("u8 stereo frame = %v, want [192 192]", got)
	}
}

func TestRender_PitchIsClamped(t *testing.T) {
	t.Parallel()

	for _, pitch := range []float32{1e7, 1e30} {
		c := newTestContext(t, monoS16)

		looped := playStatic(t, c, mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(4, 0), 44100))
		_ = c.SetSourcei(looped, Looping, 1)
		if err := c.SetSourcef(looped, Pitch, pitch); err != nil {
			t.Fatalf("SetSourcef(Pitch, %v) error = %v", pitch, err)
		}
		if got, _ := c.GetSourcef(looped, Pitch); got != pitch {
			t.Errorf("GetSourcef(Pitch) = %v, want %v", got, pitch)
		}

		// Each output frame advances MaxStep frames: 255 % 4 == 3.
		render(c, 1)
		if off, _ := c.GetSourcei(looped, SampleOffset); off != 3 {
			t.Errorf("pitch %v: SampleOffset = %d, want 3", pitch, off)
		}
		render(c, 64)

		once := playStatic(t, c, mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(10, 0), 44100))
		_ = c.SetSourcef(once, Pitch, pitch)
		render(c, 4)
		wantState(t, c, once, Stopped)
	}
}

func TestRender_NoAllocs(t *testing.T) {
	c := newTestContext(t, OutputFormat{SampleRate: 48000, Channels: 2, Encoding: audio.S16})
	buf := mustBuffer(t, c, audio.FormatMono16, audiotest.S16Ramp(100, 0), 22050)
	for range 4 {
		src := playStatic(t, c, buf)
		_ = c.SetSourcei(src, Looping, 1)
	}
	out := make([]byte, 256*4)
	c.Render(out, 256)

	allocs := testing.AllocsPerRun(100, func() {
		c.Render(out, 256)
	})
	if allocs != 0 {
		t.Errorf("Render() allocated %v times per call, want 0", allocs)
	}
}

func BenchmarkRender_16Voices(b *testing.B) {
	c := newTestContext(b, OutputFormat{SampleRate: 48000, Channels: 2, Encoding: audio.S16})
	buf := mustBuffer(b, c, audio.FormatStereo16, audiotest.S16Constant(48000, 2, 1000), 44100)
	for range 16 {
		src := playStatic(b, c, buf)
		_ = c.SetSourcei(src, Looping, 1)
	}
	out := make([]byte, 1024*4)

	for b.Loop() {
		c.Render(out, 1024)
	}
}

func equalS16(a, b []int16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
