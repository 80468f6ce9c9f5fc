package fixture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// Transcoder converts the PCM file at src into a compressed container at dst.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}

// Kind identifies which artifact a Result points at.
type Kind string

const (
	KindPCM        Kind = "wav"
	KindCompressed Kind = "compressed"
)

// Request describes one fixture build.
type Request struct {
	Params    Params
	OutputDir string
	// BaseName is the file name without extension; DefaultBaseName is used when empty.
	BaseName string
	// Transcoder is optional. When nil the PCM file is the final artifact.
	Transcoder Transcoder
	// CompressedExt is the extension of the transcoded file, without the dot.
	CompressedExt string
	Logger        *slog.Logger
}

// Result is either the compressed artifact or, when the encoder could not
// produce one, the PCM artifact together with the reason.
type Result struct {
	Path     string
	Kind     Kind
	Size     int64
	Samples  int
	Fallback error
}

// Degraded reports whether the encoder step was skipped because it failed.
func (r Result) Degraded() bool { return r.Fallback != nil }

// DefaultBaseName mirrors the historical fixture naming, e.g.
// test_audio_440hz_5sec.
func DefaultBaseName(p Params) string {
	return fmt.Sprintf("test_audio_%shz_%ssec",
		strconv.FormatFloat(p.FrequencyHz, 'f', -1, 64),
		strconv.FormatFloat(p.DurationSeconds, 'f', -1, 64))
}

// Build synthesizes the fixture, writes it under OutputDir and optionally
// transcodes it. Only invalid parameters and PCM write failures are returned
// as errors; encoder failures degrade to the PCM artifact.
func Build(ctx context.Context, req Request) (Result, error) {
	logger := req.Logger
	if logger == nil {
		logger = slog.Default()
	}

	wave, err := Synthesize(req.Params)
	if err != nil {
		return Result{}, err
	}

	if req.OutputDir == "" {
		return Result{}, &IOError{Path: req.OutputDir, Err: fmt.Errorf("output directory not set")}
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return Result{}, &IOError{Path: req.OutputDir, Err: err}
	}

	name := req.BaseName
	if name == "" {
		name = DefaultBaseName(req.Params)
	}
	wavPath := filepath.Join(req.OutputDir, name+".wav")

	if req.Transcoder == nil {
		if err := Persist(wave, wavPath); err != nil {
			return Result{}, err
		}
		return finish(wavPath, KindPCM, wave, nil)
	}

	tmp, err := os.CreateTemp("", "fixture-*.wav")
	if err != nil {
		return Result{}, &IOError{Path: os.TempDir(), Err: err}
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := Persist(wave, tmpPath); err != nil {
		return Result{}, err
	}

	ext := req.CompressedExt
	if ext == "" {
		ext = "webm"
	}
	outPath := filepath.Join(req.OutputDir, name+"."+ext)

	logger.Debug("fixture.Build", "stage", "transcode", "src", tmpPath, "dst", outPath)
	encErr := req.Transcoder.Transcode(ctx, tmpPath, outPath)
	if encErr == nil {
		return finish(outPath, KindCompressed, wave, nil)
	}

	logger.Warn("transcode failed, keeping PCM fixture",
		slog.String("path", wavPath),
		slog.String("error", encErr.Error()),
	)
	if err := copyFile(tmpPath, wavPath); err != nil {
		return Result{}, err
	}

	return finish(wavPath, KindPCM, wave, encErr)
}

func finish(path string, kind Kind, wave *Waveform, fallback error) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, &IOError{Path: path, Err: err}
	}

	return Result{
		Path:     path,
		Kind:     kind,
		Size:     info.Size(),
		Samples:  wave.Len(),
		Fallback: fallback,
	}, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return &IOError{Path: src, Err: err}
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return &IOError{Path: dst, Err: err}
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = &IOError{Path: dst, Err: closeErr}
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return &IOError{Path: dst, Err: err}
	}

	return nil
}
