package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-audio-fixture/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "fixturegen",
		Short:         "Audio test fixture generator and decoding preset inspector",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newPresetsCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Output.Dir == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}
