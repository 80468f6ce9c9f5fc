// Package testutil provides shared skip helpers and WAV assertions for tests.
//
// Typical usage:
//
//	func TestRealEncoder(t *testing.T) {
//	    bin := testutil.RequireFFmpeg(t)
//	    ...
//	}
package testutil

import (
	"os"
	"os/exec"
	"testing"
)

// RequireFFmpeg skips the test if no ffmpeg binary is found in PATH or at the
// path given by the FIXTUREGEN_ENCODER_BINARY environment variable. It
// returns the resolved binary path.
func RequireFFmpeg(tb testing.TB) string {
	tb.Helper()

	exe := os.Getenv("FIXTUREGEN_ENCODER_BINARY")
	if exe == "" {
		exe = "ffmpeg"
	}

	path, err := exec.LookPath(exe)
	if err != nil {
		tb.Skipf("ffmpeg not available (%q not in PATH); set FIXTUREGEN_ENCODER_BINARY to override", exe)
	}

	return path
}
