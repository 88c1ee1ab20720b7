// Package pass provides lowpass filter cascade design.
//
// Filters are designed as normalized second-order sections consumed by
// dsp/filter/biquad, which keeps high-order designs numerically stable.
package pass

import (
	"math"

	"github.com/fourlens/fourlens/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
// Returns nil for invalid parameters.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, LowpassRBJ(freq, q, sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}

// LowpassRBJ designs a single lowpass biquad at freq (Hz) with quality
// factor q, following the RBJ audio-EQ cookbook formulas.
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return biquad.Coefficients{}
	}

	if q <= 0 {
		q = 1 / math.Sqrt2
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	norm := 1 / a0

	return biquad.Coefficients{
		B0: (1 - cosw) / 2 * norm,
		B1: (1 - cosw) * norm,
		B2: (1 - cosw) / 2 * norm,
		A1: -2 * cosw * norm,
		A2: (1 - alpha) * norm,
	}
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2 // default Q
	}

	return 1 / (2 * s)
}

// butterworthFirstOrderLP designs a first-order lowpass Butterworth section.
// Used for odd-order filters.
func butterworthFirstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		B2: 0,
		A1: (k - 1) * norm,
		A2: 0,
	}
}
