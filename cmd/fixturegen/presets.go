package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/go-audio-fixture/internal/config"
	"github.com/example/go-audio-fixture/internal/preset"
	"github.com/spf13/cobra"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect speech-recognition decoding presets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List preset versions and details for the selected model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, reg, err := presetRegistry()
			if err != nil {
				return err
			}
			return listPresets(cmd.OutOrStdout(), reg, cfg.Presets.Model)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <version>",
		Short: "Show one preset (e.g. V2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, err := presetRegistry()
			if err != nil {
				return err
			}
			version, err := preset.ParseVersion(args[0])
			if err != nil {
				return err
			}
			p, err := reg.Get(cfg.Presets.Model, version)
			if err != nil {
				return err
			}
			return writePreset(cmd.OutOrStdout(), p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "compare <version> <version>",
		Short: "Show the decoding parameters that differ between two presets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reg, err := presetRegistry()
			if err != nil {
				return err
			}
			return comparePresets(cmd.OutOrStdout(), reg, cfg.Presets.Model, args[0], args[1])
		},
	})

	return cmd
}

// loadPresetFile is swapped in tests.
var loadPresetFile = func(path string) (preset.Registry, error) {
	return preset.LoadFile(path)
}

func presetRegistry() (config.Config, preset.Registry, error) {
	cfg, err := requireConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	if cfg.Presets.File == "" {
		return cfg, preset.Builtin(), nil
	}

	reg, err := loadPresetFile(cfg.Presets.File)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, reg, nil
}

func listPresets(w io.Writer, reg preset.Registry, model string) error {
	summaries, err := reg.List(model)
	if err != nil {
		return err
	}
	current, err := reg.Current(model)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "model: %s\n", model)
	fmt.Fprintf(w, "current: V%d\n\n", current)

	for _, s := range summaries {
		p, err := reg.Get(model, s.Version)
		if err != nil {
			return err
		}
		if err := writePreset(w, p); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	return nil
}

func writePreset(w io.Writer, p preset.Preset) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", p.Label(), p.Description)
	for _, f := range preset.Fields(p) {
		fmt.Fprintf(tw, "  %s\t%s\n", f[0], f[1])
	}

	return tw.Flush()
}

func comparePresets(w io.Writer, reg preset.Registry, model, rawA, rawB string) error {
	va, err := preset.ParseVersion(rawA)
	if err != nil {
		return err
	}
	vb, err := preset.ParseVersion(rawB)
	if err != nil {
		return err
	}

	a, err := reg.Get(model, va)
	if err != nil {
		return err
	}
	b, err := reg.Get(model, vb)
	if err != nil {
		return err
	}

	diffs := preset.Compare(a, b)
	if len(diffs) == 0 {
		_, err := fmt.Fprintf(w, "%s and %s are identical\n", a.Label(), b.Label())
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "field\t%s\t%s\n", a.Label(), b.Label())
	for _, d := range diffs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Field, d.A, d.B)
	}

	return tw.Flush()
}
