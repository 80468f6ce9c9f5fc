package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"
)

// Encode writes float64 samples in [-1, 1] to ws as a mono 16-bit PCM WAV
// stream at sampleRate. The header sizes are patched on close, so ws must be
// seekable.
func Encode(ws io.WriteSeeker, samples []float64, sampleRate int) error {
	if sampleRate < 1 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	enc := wav.NewEncoder(ws, sampleRate, BitDepth, Channels, 1) // 1 = PCM

	data := make([]float32, len(samples))
	for i, s := range samples {
		data[i] = float32(s)
	}

	pcmBuf := &goaudio.Float32Buffer{
		Data:           data,
		Format:         &goaudio.Format{SampleRate: sampleRate, NumChannels: Channels},
		SourceBitDepth: BitDepth,
	}

	if err := enc.Write(pcmBuf); err != nil {
		return fmt.Errorf("writing PCM: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}

	return nil
}

// EncodeWAV encodes samples into an in-memory WAV byte slice.
func EncodeWAV(samples []float64, sampleRate int) ([]byte, error) {
	var buf bytes.Buffer

	// wav.NewEncoder requires an io.WriteSeeker; bytes.Buffer is not one.
	if err := Encode(&seekBuffer{buf: &buf}, samples, sampleRate); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// seekBuffer wraps a bytes.Buffer to satisfy io.WriteSeeker.
type seekBuffer struct {
	buf *bytes.Buffer
	pos int
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	if s.pos == s.buf.Len() {
		n, err := s.buf.Write(p)
		s.pos += n
		return n, err
	}
	// Writing in the middle: overwrite existing bytes.
	data := s.buf.Bytes()
	n := copy(data[s.pos:], p)
	if n < len(p) {
		data = append(data, p[n:]...)
		s.buf.Reset()
		s.buf.Write(data)
		n = len(p)
	}
	s.pos += n
	return n, nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int
	switch whence {
	case io.SeekStart:
		newPos = int(offset)
	case io.SeekCurrent:
		newPos = s.pos + int(offset)
	case io.SeekEnd:
		newPos = s.buf.Len() + int(offset)
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if newPos < 0 {
		return 0, fmt.Errorf("seek before start")
	}
	s.pos = newPos
	return int64(newPos), nil
}
