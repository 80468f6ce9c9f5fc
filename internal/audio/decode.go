package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cwbudde/wav"
)

// Fixture WAV layout: mono, 16-bit PCM. Sample rate is caller-defined.
const (
	Channels = 1
	BitDepth = 16
)

// ErrFormatMismatch is returned when a decoded WAV does not match the expected format.
var ErrFormatMismatch = errors.New("WAV format mismatch")

// Format describes the fmt chunk of a decoded WAV stream.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DecodeWAV decodes WAV bytes and returns float32 PCM samples together with
// the stream format. It validates that the data is mono 16-bit PCM.
func DecodeWAV(data []byte) ([]float32, Format, error) {
	if len(data) == 0 {
		return nil, Format{}, errors.New("empty WAV input")
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, Format{}, errors.New("invalid WAV file")
	}

	format := Format{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	if format.Channels != Channels {
		return nil, format, fmt.Errorf("%w: channels %d, want %d", ErrFormatMismatch, format.Channels, Channels)
	}
	if format.BitDepth != BitDepth {
		return nil, format, fmt.Errorf("%w: bit depth %d, want %d", ErrFormatMismatch, format.BitDepth, BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, format, fmt.Errorf("reading PCM data: %w", err)
	}

	return buf.Data, format, nil
}
