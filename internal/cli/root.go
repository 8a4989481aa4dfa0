// SPDX-License-Identifier: EPL-2.0

// Package cli implements the alrender command line.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the alrender command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "alrender",
		Short: "Deterministic offline renderer for the AL emulation core",
		Long: `alrender drives the AL emulation core without an audio device.
Audio files are uploaded into buffers, played through sources and the mix
is rendered in fixed quanta, so two runs with the same input produce the
same bytes.

Commands:
  - mix: render one or more audio files into a WAV or raw PCM file`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	root.AddCommand(newMixCmd(func(w io.Writer) *slog.Logger {
		return newLogger(w, verbose)
	}))

	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
