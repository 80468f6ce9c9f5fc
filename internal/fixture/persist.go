package fixture

import (
	"errors"
	"os"

	"github.com/example/go-audio-fixture/internal/audio"
)

// Persist writes w to path as a mono 16-bit PCM WAV file at the waveform's
// sample rate. A partially written file is removed on failure.
func Persist(w *Waveform, path string) (err error) {
	if w == nil {
		return &IOError{Path: path, Err: errors.New("nil waveform")}
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &IOError{Path: path, Err: closeErr}
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := audio.Encode(f, w.samples, w.sampleRate); err != nil {
		return &IOError{Path: path, Err: err}
	}

	return nil
}
