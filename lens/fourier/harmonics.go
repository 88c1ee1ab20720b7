package fourier

import (
	"math"

	"github.com/fourlens/fourlens/stats"
)

// extractHarmonics performs iterative sinusoid subtraction: at each step the
// residual's periodogram peak is fitted by least squares over the original
// timestamps, recorded, and subtracted. The residual is threaded through
// loop locals so concurrent analyses never share state.
//
// Peak powers are rescaled to the original signal's variance: the
// periodogram normalizes by the residual's own variance, under which even a
// negligible coherent leftover scores high, so the stopping floor would
// never trigger.
func extractHarmonics(signal, timestamps, freqs []float64, maxHarmonics int) []Harmonic {
	originalVariance := stats.Variance(signal)
	if originalVariance <= 0 {
		return nil
	}

	residual := append([]float64(nil), signal...)
	harmonics := make([]Harmonic, 0, maxHarmonics)

	for len(harmonics) < maxHarmonics {
		power := Periodogram(residual, timestamps, freqs)

		peakBin := 0
		peakPower := power[0]
		for i, p := range power {
			if p > peakPower {
				peakPower = p
				peakBin = i
			}
		}

		peakPower *= stats.Variance(residual) / originalVariance
		if peakPower < harmonicNoiseFloor {
			break
		}

		freq := refinePeak(residual, timestamps, freqs, peakBin)
		a, b := fitSinusoid(residual, timestamps, freq)

		amplitude := math.Hypot(a, b)
		if amplitude == 0 {
			break
		}

		harmonics = append(harmonics, Harmonic{
			Frequency:   freq,
			PeriodHours: periodHours(freq),
			Power:       peakPower,
			Amplitude:   amplitude,
			Phase:       phaseFromCoefficients(a, b),
		})

		omega := 2 * math.Pi * freq
		for i, t := range timestamps {
			s, c := math.Sincos(omega * t)
			residual[i] -= a*c + b*s
		}
	}

	if len(harmonics) == 0 {
		return nil
	}

	return harmonics
}

// fitSinusoid solves the 2x2 least-squares problem
//
//	x(t) ~ a*cos(2*pi*f*t) + b*sin(2*pi*f*t)
//
// over the given timestamps via the normal equations.
func fitSinusoid(signal, timestamps []float64, freq float64) (a, b float64) {
	omega := 2 * math.Pi * freq

	var cc, cs, ss, xc, xs float64
	for i, t := range timestamps {
		s, c := math.Sincos(omega * t)
		cc += c * c
		cs += c * s
		ss += s * s
		xc += signal[i] * c
		xs += signal[i] * s
	}

	det := cc*ss - cs*cs
	if det == 0 {
		return 0, 0
	}

	a = (xc*ss - xs*cs) / det
	b = (xs*cc - xc*cs) / det

	return a, b
}

// phaseFromCoefficients converts sin/cos regression coefficients into a
// phase in [0, 2*pi) under the model x(t) = A*cos(2*pi*f*t - phi), so that
// phi = 0 places the sinusoid peak at t = 0.
func phaseFromCoefficients(a, b float64) float64 {
	phi := math.Atan2(b, a)
	if phi < 0 {
		phi += 2 * math.Pi
	}

	return phi
}
