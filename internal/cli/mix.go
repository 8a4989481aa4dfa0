// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/alemu"
	"github.com/ik5/alemu/al"
	"github.com/ik5/alemu/audio"
	"github.com/ik5/alemu/formats/wav"
)

type mixOptions struct {
	rate     int
	channels int
	encoding string
	quantum  int
	duration float64
	gain     float32
	pitch    float32
	loop     bool
	out      string
	digest   bool
}

var encodings = map[string]audio.Kind{
	"u8":  audio.U8,
	"s16": audio.S16,
	"f32": audio.F32,
	"f64": audio.F64,
}

func parseEncoding(name string) (audio.Kind, error) {
	kind, ok := encodings[strings.ToLower(name)]
	if !ok {
		return audio.KindUnknown, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	return kind, nil
}

func newMixCmd(logger func(io.Writer) *slog.Logger) *cobra.Command {
	var opts mixOptions

	cmd := &cobra.Command{
		Use:   "mix <audio_file>...",
		Short: "Mix audio files into one deterministic render",
		Long: `Upload every input file into its own buffer, play all of them at once
and render the mix offline.

Without --duration the render runs until every source has stopped. Looping
sources never stop, so --loop requires --duration.

Examples:
  # Mix two files into a 48kHz stereo WAV
  alrender mix drums.wav bass.ogg --rate 48000 --out mix.wav

  # Render 2 seconds of a looped clip as raw float32 and print its digest
  alrender mix loop.aiff --loop --duration 2 --encoding f32 --out loop.raw --digest

Supported Input Formats:
  WAV (.wav), AIFF (.aif, .aiff), MP3 (.mp3), Ogg Vorbis (.ogg)

Output:
  .wav paths get a 16-bit WAV file (requires --encoding s16), anything
  else receives the raw interleaved little-endian samples.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMix(cmd, args, opts, logger(cmd.ErrOrStderr()))
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.rate, "rate", 44100, "Output sample rate in Hz")
	flags.IntVar(&opts.channels, "channels", 2, "Output channels (1 or 2)")
	flags.StringVar(&opts.encoding, "encoding", "s16", "Output encoding: u8, s16, f32 or f64")
	flags.IntVar(&opts.quantum, "quantum", 1024, "Frames rendered per Render call")
	flags.Float64Var(&opts.duration, "duration", 0, "Seconds to render, 0 renders until all sources stop")
	flags.Float32Var(&opts.gain, "gain", 1, "Gain applied to every source")
	flags.Float32Var(&opts.pitch, "pitch", 1, "Pitch applied to every source")
	flags.BoolVar(&opts.loop, "loop", false, "Loop every source")
	flags.StringVar(&opts.out, "out", "", "Output path, .wav for a WAV file, anything else for raw PCM")
	flags.BoolVar(&opts.digest, "digest", false, "Print the SHA-256 of the rendered bytes")

	return cmd
}

func (o mixOptions) validate() (audio.Kind, error) {
	kind, err := parseEncoding(o.encoding)
	if err != nil {
		return kind, err
	}
	if !(o.pitch > 0) {
		return kind, ErrInvalidPitch
	}
	if o.duration < 0 || math.IsNaN(o.duration) || math.IsInf(o.duration, 0) {
		return kind, ErrInvalidDuration
	}
	if o.loop && o.duration == 0 {
		return kind, ErrUnboundedMix
	}
	if o.quantum <= 0 {
		return kind, alemu.ErrInvalidQuantum
	}
	if isWAV(o.out) && kind != audio.S16 {
		return kind, ErrWAVEncoding
	}

	return kind, nil
}

func runMix(cmd *cobra.Command, files []string, opts mixOptions, log *slog.Logger) error {
	kind, err := opts.validate()
	if err != nil {
		return err
	}

	ctxOpts := al.DefaultOptions()
	ctxOpts.Output = al.OutputFormat{SampleRate: opts.rate, Channels: opts.channels, Encoding: kind}
	ctxOpts.Logger = log

	ctx, err := al.NewContext(ctxOpts)
	if err != nil {
		return err
	}
	defer ctx.Close()

	log.Info("Mix starting",
		"inputs", len(files),
		"rate", opts.rate,
		"channels", opts.channels,
		"encoding", kind,
		"quantum", opts.quantum)

	reg := alemu.NewRegistry()
	sources := make([]al.ID, 0, len(files))
	for _, path := range files {
		src, err := loadSource(ctx, reg, path, opts, log)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	if err := ctx.SourcePlayv(sources...); err != nil {
		return err
	}

	data, err := render(ctx, sources, opts)
	if err != nil {
		return err
	}
	frames := len(data) / ctx.OutputFormat().FrameBytes()

	log.Info("Mix complete", "frames", frames, "bytes", len(data))

	if opts.out != "" {
		if err := writeOutput(opts, data); err != nil {
			return err
		}
		log.Info("Wrote output", "path", opts.out)
	}

	if opts.digest {
		fmt.Fprintf(cmd.OutOrStdout(), "%x\n", sha256.Sum256(data))
	}

	return nil
}

func loadSource(ctx *al.Context, reg *audio.Registry, path string, opts mixOptions, log *slog.Logger) (al.ID, error) {
	clip, err := alemu.LoadClip(reg, path, audio.F32)
	if err != nil {
		return 0, err
	}

	buf, err := alemu.UploadClip(ctx, clip)
	if err != nil {
		return 0, fmt.Errorf("uploading %s: %w", path, err)
	}

	src, err := ctx.CreateSource()
	if err != nil {
		return 0, err
	}
	if err := ctx.SetSourcei(src, al.Buffer, int32(buf)); err != nil {
		return 0, err
	}
	if err := ctx.SetSourcef(src, al.Gain, opts.gain); err != nil {
		return 0, fmt.Errorf("gain %v: %w", opts.gain, err)
	}
	if err := ctx.SetSourcef(src, al.Pitch, opts.pitch); err != nil {
		return 0, err
	}
	if opts.loop {
		if err := ctx.SetSourcei(src, al.Looping, 1); err != nil {
			return 0, err
		}
	}

	log.Info("Loaded input",
		"path", path,
		"format", clip.Format,
		"sample_rate", clip.SampleRate,
		"frames", clip.Frames())

	return src, nil
}

// render runs the context for the requested duration, or until every
// source has stopped when no duration is given.
func render(ctx *al.Context, sources []al.ID, opts mixOptions) ([]byte, error) {
	fb := ctx.OutputFormat().FrameBytes()
	block := make([]byte, opts.quantum*fb)

	if opts.duration > 0 {
		total := int(math.Round(opts.duration * float64(opts.rate)))
		data := make([]byte, 0, total*fb)
		for done := 0; done < total; {
			n := ctx.Render(block, min(opts.quantum, total-done)) / fb
			data = append(data, block[:n*fb]...)
			done += n
		}

		return data, nil
	}

	var data []byte
	for {
		n := ctx.Render(block, opts.quantum)
		data = append(data, block[:n]...)

		stopped, err := allStopped(ctx, sources)
		if err != nil {
			return nil, err
		}
		if stopped {
			return data, nil
		}
	}
}

func allStopped(ctx *al.Context, sources []al.ID) (bool, error) {
	for _, id := range sources {
		state, err := ctx.SourceState(id)
		if err != nil {
			return false, err
		}
		if state != al.Stopped {
			return false, nil
		}
	}

	return true, nil
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

func writeOutput(opts mixOptions, data []byte) error {
	if !isWAV(opts.out) {
		if err := os.WriteFile(opts.out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.out, err)
		}

		return nil
	}

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opts.out, err)
	}
	defer f.Close()

	if err := wav.WriteS16(f, opts.rate, opts.channels, samples); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}

	return f.Close()
}
