// Package doctor provides environment preflight checks for fixturegen.
package doctor

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// MinEncoderMajor is the oldest ffmpeg major release accepted.
const MinEncoderMajor = 4

// VersionFunc returns a version string or an error if the component is unavailable.
type VersionFunc func() (string, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// EncoderVersion returns the first line of `ffmpeg -version`.
	EncoderVersion VersionFunc
	// SkipEncoder skips the encoder check (transcoding disabled).
	SkipEncoder bool
	// OutputDir must exist or be creatable, and accept new files.
	OutputDir string
	// PresetFile is checked with LoadPresets when non-empty.
	PresetFile  string
	LoadPresets func(path string) error
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- encoder binary ---------------------------------------------------
	switch {
	case cfg.SkipEncoder:
		fmt.Fprintf(w, "%s encoder: skipped (transcoding disabled)\n", PassMark)
	case cfg.EncoderVersion == nil:
		res.fail("encoder: no version probe configured")
		fmt.Fprintf(w, "%s encoder: no version probe configured\n", FailMark)
	default:
		ver, err := cfg.EncoderVersion()
		if err != nil {
			res.fail(fmt.Sprintf("encoder: %v", err))
			fmt.Fprintf(w, "%s encoder: not available (%v); fixtures fall back to WAV\n", FailMark, err)
		} else if verErr := checkEncoderVersion(ver); verErr != nil {
			res.fail(fmt.Sprintf("encoder version: %v", verErr))
			fmt.Fprintf(w, "%s encoder %s: %v\n", FailMark, ver, verErr)
		} else {
			fmt.Fprintf(w, "%s encoder: %s\n", PassMark, ver)
		}
	}

	// ---- output directory -------------------------------------------------
	if err := checkWritableDir(cfg.OutputDir); err != nil {
		res.fail(fmt.Sprintf("output dir %q: %v", cfg.OutputDir, err))
		fmt.Fprintf(w, "%s output dir %s: %v\n", FailMark, cfg.OutputDir, err)
	} else {
		fmt.Fprintf(w, "%s output dir: %s\n", PassMark, cfg.OutputDir)
	}

	// ---- preset catalog ---------------------------------------------------
	if cfg.PresetFile == "" {
		fmt.Fprintf(w, "%s preset catalog: built-in\n", PassMark)
	} else if cfg.LoadPresets != nil {
		if err := cfg.LoadPresets(cfg.PresetFile); err != nil {
			res.fail(fmt.Sprintf("preset catalog %q: %v", cfg.PresetFile, err))
			fmt.Fprintf(w, "%s preset catalog %s: %v\n", FailMark, cfg.PresetFile, err)
		} else {
			fmt.Fprintf(w, "%s preset catalog: %s\n", PassMark, cfg.PresetFile)
		}
	}

	return res
}

func checkWritableDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()

	return os.Remove(name)
}

// checkEncoderVersion returns an error if ver reports an ffmpeg release older
// than MinEncoderMajor. ver is expected to look like
// "ffmpeg version 6.1.1-3ubuntu5 Copyright ...". Development builds
// ("ffmpeg version N-112345-g...") are accepted as-is.
func checkEncoderVersion(ver string) error {
	fields := strings.Fields(ver)
	if len(fields) < 3 || fields[1] != "version" {
		return fmt.Errorf("cannot parse %q", ver)
	}

	release := fields[2]
	if strings.HasPrefix(release, "N-") || strings.HasPrefix(release, "git-") {
		return nil
	}

	major, _, err := parseMajorMinor(release)
	if err != nil {
		return fmt.Errorf("cannot parse %q: %w", ver, err)
	}
	if major < MinEncoderMajor {
		return fmt.Errorf("requires ffmpeg >=%d, got %d", MinEncoderMajor, major)
	}

	return nil
}

func parseMajorMinor(ver string) (major, minor int, err error) {
	parts := strings.SplitN(ver, ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("unexpected version format %q", ver)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad major in %q: %w", ver, err)
	}
	minor, err = strconv.Atoi(leadingDigits(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad minor in %q: %w", ver, err)
	}
	return major, minor, nil
}

// leadingDigits trims distro suffixes such as "1-3ubuntu5".
func leadingDigits(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		return s
	}
	return s[:end]
}
