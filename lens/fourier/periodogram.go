package fourier

import (
	"math"

	"github.com/fourlens/fourlens/stats"
)

// Periodogram computes the Lomb-Scargle least-squares power spectrum of the
// signal at the given frequencies (Hz). The mean offset is fitted by
// centering, and power is normalized by the residual variance so that a
// noise-only peak has expectation near 1.
//
// The phase shift tau makes the sine and cosine terms orthogonal at each
// frequency, which is what makes the estimate exact least-squares for
// irregular spacing.
func Periodogram(signal, timestamps []float64, freqs []float64) []float64 {
	n := len(signal)
	power := make([]float64, len(freqs))
	if n < 2 || len(timestamps) != n {
		return power
	}

	mean, variance, _, _ := stats.Moments(signal)
	if variance <= 0 {
		return power
	}

	centered := make([]float64, n)
	for i, v := range signal {
		centered[i] = v - mean
	}

	for k, f := range freqs {
		power[k] = powerAt(centered, timestamps, variance, f)
	}

	return power
}

// powerAt evaluates the normalized Lomb-Scargle power at a single frequency.
// The signal must already be mean-centered.
func powerAt(centered, timestamps []float64, variance, freq float64) float64 {
	omega := 2 * math.Pi * freq

	// tan(2*omega*tau) = sum sin(2*omega*t) / sum cos(2*omega*t)
	var s2, c2 float64
	for _, t := range timestamps {
		s, c := math.Sincos(2 * omega * t)
		s2 += s
		c2 += c
	}
	tau := math.Atan2(s2, c2) / (2 * omega)

	var sc, ss, cc, cs float64
	for i, t := range timestamps {
		s, c := math.Sincos(omega * (t - tau))
		x := centered[i]
		sc += x * c
		ss += x * s
		cc += c * c
		cs += s * s
	}

	var p float64
	if cc > 0 {
		p += sc * sc / cc
	}
	if cs > 0 {
		p += ss * ss / cs
	}

	return p / (2 * variance)
}
