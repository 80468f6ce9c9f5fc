// Package encoder wraps the external ffmpeg binary used to turn PCM fixtures
// into compressed containers.
package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrEncoderUnavailable is returned when the encoder binary cannot be found.
	ErrEncoderUnavailable = errors.New("encoder unavailable")
	// ErrEncoderFailure is returned when the encoder exits non-zero or times out.
	ErrEncoderFailure = errors.New("encoder failed")
)

const (
	DefaultBinary  = "ffmpeg"
	DefaultCodec   = "libopus"
	DefaultBitrate = "128k"
	DefaultTimeout = 30 * time.Second

	stderrTail = 512
)

// FFmpeg transcodes audio files by invoking an ffmpeg executable.
type FFmpeg struct {
	Binary  string
	Codec   string
	Bitrate string
	Timeout time.Duration
}

// DefaultFFmpeg encodes to Opus at 128 kbit/s.
func DefaultFFmpeg() FFmpeg {
	return FFmpeg{
		Binary:  DefaultBinary,
		Codec:   DefaultCodec,
		Bitrate: DefaultBitrate,
		Timeout: DefaultTimeout,
	}
}

// Available checks if a binary is available in the system PATH.
func Available(binName string) (string, bool) {
	path, err := exec.LookPath(binName)

	return path, err == nil
}

func (f FFmpeg) binary() string {
	if f.Binary == "" {
		return DefaultBinary
	}

	return f.Binary
}

func (f FFmpeg) timeout() time.Duration {
	if f.Timeout <= 0 {
		return DefaultTimeout
	}

	return f.Timeout
}

// Args returns the ffmpeg argument list for converting src into dst.
func (f FFmpeg) Args(src, dst string) []string {
	codec, bitrate := f.Codec, f.Bitrate
	if codec == "" {
		codec = DefaultCodec
	}
	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	return []string{
		"-y",
		"-hide_banner", "-loglevel", "error",
		"-i", src,
		"-c:a", codec,
		"-b:a", bitrate,
		dst,
	}
}

// Transcode converts the file at src into dst, overwriting dst.
func (f FFmpeg) Transcode(ctx context.Context, src, dst string) error {
	slog.Debug("encoder.Transcode", "src", src, "dst", dst, "stage", "start")

	bin := f.binary()
	path, found := Available(bin)
	if !found {
		return fmt.Errorf("%w: %s not found", ErrEncoderUnavailable, bin)
	}

	timeout := f.timeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, f.Args(src, dst)...)
	cmd.WaitDelay = time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			slog.Debug("encoder.Transcode", "src", src, "stage", "timeout")

			return fmt.Errorf("%w: timed out after %v", ErrEncoderFailure, timeout)
		}

		slog.Debug("encoder.Transcode", "src", src, "stage", "error")

		return fmt.Errorf("%w: %s: %w", ErrEncoderFailure, tail(stderr.String()), err)
	}

	slog.Debug("encoder.Transcode", "dst", dst, "stage", "done")

	return nil
}

// Version runs `<binary> -version` and returns the first line of output.
func (f FFmpeg) Version(ctx context.Context) (string, error) {
	bin := f.binary()
	path, found := Available(bin)
	if !found {
		return "", fmt.Errorf("%w: %s not found", ErrEncoderUnavailable, bin)
	}

	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s -version: %w", ErrEncoderFailure, bin, err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")

	return strings.TrimSpace(line), nil
}

// ExtensionFor returns the container extension conventionally used for an
// ffmpeg audio codec name.
func ExtensionFor(codec string) string {
	switch strings.ToLower(codec) {
	case "libmp3lame", "mp3":
		return "mp3"
	case "aac", "libfdk_aac":
		return "m4a"
	case "flac":
		return "flac"
	case "libvorbis", "vorbis":
		return "ogg"
	default:
		return "webm"
	}
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrTail {
		s = "..." + s[len(s)-stderrTail:]
	}

	return s
}
