package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-audio-fixture/internal/doctor"
	"github.com/example/go-audio-fixture/internal/encoder"
	"github.com/example/go-audio-fixture/internal/preset"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the encoder, output directory and preset catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			ff := encoder.FFmpeg{Binary: cfg.Encoder.Binary}
			dcfg := doctor.Config{
				EncoderVersion: func() (string, error) {
					return ff.Version(cmd.Context())
				},
				SkipEncoder: !cfg.Encoder.Enabled,
				OutputDir:   cfg.Output.Dir,
				PresetFile:  cfg.Presets.File,
				LoadPresets: func(path string) error {
					_, err := preset.LoadFile(path)
					return err
				},
			}

			out := cmd.OutOrStdout()
			result := doctor.Run(dcfg, out)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(out, "doctor checks passed")

			return nil
		},
	}
}
