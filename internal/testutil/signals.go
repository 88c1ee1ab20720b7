package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic sine wave with the given phase offset in
// radians.
func Sine(freqHz, sampleRate, amplitude, phase float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return out
}

// DampedSine generates a sine wave with an exponential envelope
// exp(decay * t). Negative decay gives a decaying oscillation, positive
// decay a growing one.
func DampedSine(freqHz, sampleRate, amplitude, decay float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = amplitude * math.Exp(decay*t) * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates white noise in [-amplitude, amplitude] with a fixed seed
// for reproducibility.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Add returns the element-wise sum of a and b, truncated to the shorter
// length.
func Add(a, b []float64) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// UniformTimestamps returns n timestamps in seconds spaced by 1/sampleRate.
func UniformTimestamps(sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	dt := 1 / sampleRate
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}
