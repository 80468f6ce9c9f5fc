// Package fixture synthesizes deterministic sine-wave audio fixtures and
// writes them out as PCM WAV files, optionally handing them to an external
// encoder.
package fixture

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/example/go-audio-fixture/internal/audio"
)

// Params are the synthesis inputs.
type Params struct {
	SampleRate      int
	DurationSeconds float64
	FrequencyHz     float64
	AmplitudeScale  float64
	FadeSeconds     float64
}

// DefaultParams is a five second A4 tone at 0.3 with 100 ms fades.
func DefaultParams() Params {
	return Params{
		SampleRate:      44100,
		DurationSeconds: 5.0,
		FrequencyHz:     440,
		AmplitudeScale:  0.3,
		FadeSeconds:     0.1,
	}
}

// SampleCount is round(sample_rate * duration).
func (p Params) SampleCount() int {
	return int(math.Round(float64(p.SampleRate) * p.DurationSeconds))
}

// FadeCount is round(fade * sample_rate).
func (p Params) FadeCount() int {
	return int(math.Round(p.FadeSeconds * float64(p.SampleRate)))
}

// Validate reports the first field outside its allowed range.
func (p Params) Validate() error {
	switch {
	case p.SampleRate <= 0:
		return &InvalidParameterError{Field: "sample_rate", Value: float64(p.SampleRate), Reason: "must be > 0"}
	case !positive(p.DurationSeconds):
		return &InvalidParameterError{Field: "duration_seconds", Value: p.DurationSeconds, Reason: "must be > 0"}
	case !positive(p.FrequencyHz):
		return &InvalidParameterError{Field: "frequency_hz", Value: p.FrequencyHz, Reason: "must be > 0"}
	case !positive(p.AmplitudeScale) || p.AmplitudeScale > 1:
		return &InvalidParameterError{Field: "amplitude_scale", Value: p.AmplitudeScale, Reason: "must be in (0, 1]"}
	case math.IsNaN(p.FadeSeconds) || p.FadeSeconds < 0 || p.FadeSeconds > p.DurationSeconds/2:
		return &InvalidParameterError{Field: "fade_seconds", Value: p.FadeSeconds, Reason: "must be in [0, duration_seconds/2]"}
	case p.SampleCount() < 1:
		return &InvalidParameterError{Field: "duration_seconds", Value: p.DurationSeconds, Reason: "yields no samples at this sample rate"}
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Waveform is an immutable mono sample sequence.
type Waveform struct {
	samples    []float64
	sampleRate int
}

// Samples returns a copy of the sample data.
func (w *Waveform) Samples() []float64 {
	return append([]float64(nil), w.samples...)
}

func (w *Waveform) Len() int        { return len(w.samples) }
func (w *Waveform) SampleRate() int { return w.sampleRate }

// Duration is the nominal playback length.
func (w *Waveform) Duration() time.Duration {
	return time.Duration(float64(len(w.samples)) / float64(w.sampleRate) * float64(time.Second))
}

// Peak is the largest absolute sample value.
func (w *Waveform) Peak() float64 { return audio.Peak(w.samples) }

// Synthesize renders a faded sine tone. It is pure: identical params produce
// identical samples.
func Synthesize(p Params) (*Waveform, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.SampleCount()

	// Time points cover [0, duration] with both endpoints included.
	samples := audio.Linspace(0, p.DurationSeconds, n)
	floats.Scale(2*math.Pi*p.FrequencyHz, samples)
	for i, phase := range samples {
		samples[i] = p.AmplitudeScale * math.Sin(phase)
	}

	if f := p.FadeCount(); f > 0 {
		audio.FadeIn(samples, f)
		audio.FadeOut(samples, f)
	}

	return &Waveform{samples: samples, sampleRate: p.SampleRate}, nil
}
