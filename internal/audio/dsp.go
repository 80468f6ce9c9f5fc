package audio

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced values from start to stop, both ends
// inclusive. A single point is start; n <= 0 yields an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}

	out := floats.Span(make([]float64, n), start, stop)
	out[n-1] = stop

	return out
}

// FadeIn scales the first n samples in place by a linear ramp from 0 to 1.
func FadeIn(samples []float64, n int) []float64 {
	n = min(n, len(samples))
	if n <= 0 {
		return samples
	}

	floats.Mul(samples[:n], Linspace(0, 1, n))

	return samples
}

// FadeOut scales the last n samples in place by a linear ramp from 1 to 0.
func FadeOut(samples []float64, n int) []float64 {
	n = min(n, len(samples))
	if n <= 0 {
		return samples
	}

	floats.Mul(samples[len(samples)-n:], Linspace(1, 0, n))

	return samples
}

// Peak returns the largest absolute sample value.
func Peak(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	return floats.Norm(samples, math.Inf(1))
}
