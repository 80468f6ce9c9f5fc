package doctor_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-audio-fixture/internal/doctor"
)

const ffmpegBanner = "ffmpeg version 6.1.1-3ubuntu5 Copyright (c) 2000-2023 the FFmpeg developers"

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		EncoderVersion: func() (string, error) { return ffmpegBanner, nil },
		OutputDir:      t.TempDir(),
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "ffmpeg version 6.1.1") {
		t.Error("output should mention the encoder version")
	}

	if !strings.Contains(out.String(), "preset catalog: built-in") {
		t.Error("output should mention the built-in preset catalog")
	}
}

// ---------------------------------------------------------------------------
// encoder
// ---------------------------------------------------------------------------

func TestRun_EncoderMissingFails(t *testing.T) {
	cfg := doctor.Config{
		EncoderVersion: func() (string, error) { return "", errBinaryNotFound },
		OutputDir:      t.TempDir(),
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when the encoder is not found")
	}

	if !hasFailureContaining(result.Failures(), "encoder") {
		t.Errorf("expected failure mentioning encoder, got: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "fall back to WAV") {
		t.Errorf("output should explain the WAV fallback: %q", out.String())
	}
}

func TestRun_EncoderVersions(t *testing.T) {
	tests := []struct {
		banner   string
		wantFail bool
	}{
		{ffmpegBanner, false},
		{"ffmpeg version 4.4.2-0ubuntu0.22.04.1", false},
		{"ffmpeg version 7.0 Copyright", false},
		{"ffmpeg version N-112345-gdeadbeef", false},
		{"ffmpeg version 3.4.8", true},
		{"ffmpeg version x.y", true},
		{"garbage", true},
	}

	for _, tt := range tests {
		t.Run(tt.banner, func(t *testing.T) {
			cfg := doctor.Config{
				EncoderVersion: func() (string, error) { return tt.banner, nil },
				OutputDir:      t.TempDir(),
			}

			var out strings.Builder
			result := doctor.Run(cfg, &out)

			if result.Failed() != tt.wantFail {
				t.Errorf("Failed() = %v; want %v (failures %v)", result.Failed(), tt.wantFail, result.Failures())
			}
		})
	}
}

func TestRun_SkipEncoder(t *testing.T) {
	called := false
	cfg := doctor.Config{
		EncoderVersion: func() (string, error) { called = true; return "", errBinaryNotFound },
		SkipEncoder:    true,
		OutputDir:      t.TempDir(),
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if called {
		t.Error("encoder probe should not run when skipped")
	}

	if result.Failed() {
		t.Errorf("unexpected failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "skipped") {
		t.Error("output should report the skipped check")
	}
}

func TestRun_NilEncoderProbeFails(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{OutputDir: t.TempDir()}, &out)

	if !hasFailureContaining(result.Failures(), "encoder") {
		t.Errorf("expected encoder failure, got %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// output directory
// ---------------------------------------------------------------------------

func TestRun_OutputDirCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	cfg := doctor.Config{SkipEncoder: true, OutputDir: dir}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Fatalf("unexpected failures: %v", result.Failures())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("probe file left behind: %v", entries)
	}
}

func TestRun_OutputDirUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := doctor.Config{SkipEncoder: true, OutputDir: filepath.Join(blocker, "out")}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "output dir") {
		t.Errorf("expected output dir failure, got %v", result.Failures())
	}
}

func TestRun_OutputDirEmpty(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{SkipEncoder: true}, &out)

	if !hasFailureContaining(result.Failures(), "output dir") {
		t.Errorf("expected output dir failure, got %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// preset catalog
// ---------------------------------------------------------------------------

func TestRun_PresetCatalog(t *testing.T) {
	t.Run("loader error fails", func(t *testing.T) {
		cfg := doctor.Config{
			SkipEncoder: true,
			OutputDir:   t.TempDir(),
			PresetFile:  "presets.yaml",
			LoadPresets: func(string) error { return errors.New("invalid preset catalog") },
		}

		var out strings.Builder
		result := doctor.Run(cfg, &out)

		if !hasFailureContaining(result.Failures(), "preset catalog") {
			t.Errorf("expected preset failure, got %v", result.Failures())
		}
	})

	t.Run("loader success passes", func(t *testing.T) {
		var gotPath string
		cfg := doctor.Config{
			SkipEncoder: true,
			OutputDir:   t.TempDir(),
			PresetFile:  "presets.yaml",
			LoadPresets: func(p string) error { gotPath = p; return nil },
		}

		var out strings.Builder
		result := doctor.Run(cfg, &out)

		if result.Failed() {
			t.Errorf("unexpected failures: %v", result.Failures())
		}

		if gotPath != "presets.yaml" {
			t.Errorf("loader called with %q", gotPath)
		}
	})
}

func TestRun_OutputContainsPassAndFailMarkers(t *testing.T) {
	cfg := doctor.Config{
		EncoderVersion: func() (string, error) { return "", errBinaryNotFound },
		OutputDir:      t.TempDir(),
	}

	var out strings.Builder
	doctor.Run(cfg, &out)

	if !strings.Contains(out.String(), doctor.PassMark) {
		t.Error("output should contain a pass mark")
	}

	if !strings.Contains(out.String(), doctor.FailMark) {
		t.Error("output should contain a fail mark")
	}
}

func TestResult_AddFailure(t *testing.T) {
	var r doctor.Result
	r.AddFailure("external")

	if !r.Failed() || r.Failures()[0] != "external" {
		t.Errorf("AddFailure not recorded: %v", r.Failures())
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

var errBinaryNotFound = sentinelError("binary not found")

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

func hasFailureContaining(failures []string, substr string) bool {
	for _, f := range failures {
		if strings.Contains(f, substr) {
			return true
		}
	}

	return false
}
