package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/example/go-audio-fixture/internal/config"
)

// runRoot executes the root command with args and returns captured stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	orig := activeCfg
	t.Cleanup(func() { activeCfg = orig })

	var out bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"generate", "presets", "doctor"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentFlags(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"config", "output-dir", "sample-rate", "encode", "model", "log-level"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s persistent flag to be registered", name)
		}
	}
}

func TestRoot_InvalidConfigurationRejected(t *testing.T) {
	_, err := runRoot(t, "generate", "--log-level=loud", "--output-dir", t.TempDir())
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestSetupLogger_DoesNotPanic(_ *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		setupLogger(level)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(_ *testing.T) {
	setupLogger("not-a-level")
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	activeCfg = config.Config{}

	_, err := requireConfig()
	if err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	orig := activeCfg

	t.Cleanup(func() { activeCfg = orig })

	activeCfg = config.Config{
		Output: config.OutputConfig{Dir: "/some/output"},
	}

	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if got.Output.Dir != "/some/output" {
		t.Errorf("unexpected Output.Dir: %q", got.Output.Dir)
	}
}
