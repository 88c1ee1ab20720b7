package core

import "fmt"

// Context carries the immutable sampling configuration shared by every lens.
//
// A Context is constructed once by the caller and reused across many signal
// analyses. It holds no per-call state, so a single value is safe for
// concurrent use from multiple goroutines.
type Context struct {
	sampleRate float64
}

// NewContext creates a sampling context. sampleRate is in samples/second
// and must be > 0.
func NewContext(sampleRate float64) (Context, error) {
	if sampleRate <= 0 {
		return Context{}, fmt.Errorf("core: sample rate must be > 0: %f", sampleRate)
	}

	return Context{sampleRate: sampleRate}, nil
}

// SampleRate returns the configured sampling rate in samples/second.
func (c Context) SampleRate() float64 { return c.sampleRate }

// Nyquist returns half the configured sampling rate in Hz.
func (c Context) Nyquist() float64 { return c.sampleRate / 2 }

// Timestamps synthesizes n uniform timestamps in seconds starting at zero,
// spaced by the sampling interval. Used when the caller supplies a signal
// without explicit timestamps.
func (c Context) Timestamps(n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	dt := 1 / c.sampleRate
	for i := range out {
		out[i] = float64(i) * dt
	}

	return out
}
