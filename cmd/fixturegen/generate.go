package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/example/go-audio-fixture/internal/config"
	"github.com/example/go-audio-fixture/internal/encoder"
	"github.com/example/go-audio-fixture/internal/fixture"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Synthesize a sine-wave fixture and write it as WAV (and optionally a compressed copy)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			res, err := fixture.Build(cmd.Context(), buildRequest(cfg))
			if err != nil {
				return err
			}

			return reportResult(cmd.OutOrStdout(), res)
		},
	}
}

func fixtureParams(cfg config.Config) fixture.Params {
	return fixture.Params{
		SampleRate:      cfg.Fixture.SampleRate,
		DurationSeconds: cfg.Fixture.DurationSeconds,
		FrequencyHz:     cfg.Fixture.FrequencyHz,
		AmplitudeScale:  cfg.Fixture.AmplitudeScale,
		FadeSeconds:     cfg.Fixture.FadeSeconds,
	}
}

func buildRequest(cfg config.Config) fixture.Request {
	req := fixture.Request{
		Params:    fixtureParams(cfg),
		OutputDir: cfg.Output.Dir,
		BaseName:  cfg.Output.Name,
		Logger:    slog.Default(),
	}

	if cfg.Encoder.Enabled {
		req.Transcoder = encoder.FFmpeg{
			Binary:  cfg.Encoder.Binary,
			Codec:   cfg.Encoder.Codec,
			Bitrate: cfg.Encoder.Bitrate,
			Timeout: cfg.Encoder.Timeout,
		}
		req.CompressedExt = cfg.Encoder.Extension
		if req.CompressedExt == "" {
			req.CompressedExt = encoder.ExtensionFor(cfg.Encoder.Codec)
		}
	}

	return req
}

func reportResult(w io.Writer, res fixture.Result) error {
	if res.Degraded() {
		if _, err := fmt.Fprintf(w, "warning: encoder step skipped: %v\n", res.Fallback); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "fixture: %s (%s, %d bytes, %d samples)\n", res.Path, res.Kind, res.Size, res.Samples)

	return err
}
