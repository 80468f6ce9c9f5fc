package fixture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/go-audio-fixture/internal/audio"
	"github.com/example/go-audio-fixture/internal/testutil"
)

func TestPersist_WritesReadablePCM(t *testing.T) {
	w, err := Synthesize(Params{SampleRate: 16000, DurationSeconds: 0.5, FrequencyHz: 440, AmplitudeScale: 0.3, FadeSeconds: 0.05})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := Persist(w, path); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if got := testutil.AssertValidWAV(t, data, 16000); got != w.Len() {
		t.Errorf("data chunk holds %d samples; want %d", got, w.Len())
	}

	samples, format, err := audio.DecodeWAV(data)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}

	if len(samples) != w.Len() {
		t.Errorf("decoded %d samples; want %d", len(samples), w.Len())
	}

	want := audio.Format{SampleRate: 16000, Channels: 1, BitDepth: 16}
	if format != want {
		t.Errorf("format = %+v; want %+v", format, want)
	}

	if samples[0] != 0 || samples[len(samples)-1] != 0 {
		t.Errorf("faded endpoints = %v, %v; want 0, 0", samples[0], samples[len(samples)-1])
	}
}

func TestPersist_UnwritablePath(t *testing.T) {
	w, err := Synthesize(Params{SampleRate: 100, DurationSeconds: 1, FrequencyHz: 5, AmplitudeScale: 1})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	path := filepath.Join(t.TempDir(), "missing", "dir", "tone.wav")

	err = Persist(w, path)
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Persist error = %v; want ErrIO", err)
	}

	var ioErr *IOError
	if !errors.As(err, &ioErr) || ioErr.Path != path {
		t.Errorf("error does not carry path %q: %v", path, err)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("underlying cause not preserved: %v", err)
	}
}

func TestPersist_NilWaveform(t *testing.T) {
	err := Persist(nil, filepath.Join(t.TempDir(), "x.wav"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("Persist(nil) = %v; want ErrIO", err)
	}
}
