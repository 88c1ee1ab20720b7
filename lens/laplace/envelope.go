package laplace

import (
	"math"

	"github.com/fourlens/fourlens/stats"
)

const envelopeWindows = 8

// envelopeGrowthRate estimates the exponential growth rate (1/s) of the
// signal envelope by regressing log windowed RMS against time. A stationary
// signal yields a rate near zero; a growing envelope yields a positive rate.
//
// The spectral quality factor alone cannot distinguish growth from decay
// (both produce the same peak sharpness), so this supplies the sign of the
// pole real part.
func envelopeGrowthRate(signal []float64, sampleRate float64) float64 {
	n := len(signal)
	w := n / envelopeWindows
	if w < 2 || sampleRate <= 0 {
		return 0
	}

	times := make([]float64, 0, envelopeWindows)
	logRMS := make([]float64, 0, envelopeWindows)

	for k := 0; k < envelopeWindows; k++ {
		seg := signal[k*w : (k+1)*w]

		// Offsets are removed per window: a global mean would be dominated
		// by the largest windows and mask the envelope of the smallest.
		mean := stats.Mean(seg)

		var sumSq float64
		for _, v := range seg {
			d := v - mean
			sumSq += d * d
		}

		rms := math.Sqrt(sumSq / float64(w))
		if rms <= 0 {
			continue
		}

		times = append(times, (float64(k)+0.5)*float64(w)/sampleRate)
		logRMS = append(logRMS, math.Log(rms))
	}

	if len(times) < 2 {
		return 0
	}

	return regressionSlope(times, logRMS)
}

func regressionSlope(x, y []float64) float64 {
	n := float64(len(x))

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX float64
	for i := range x {
		dx := x[i] - meanX
		cov += dx * (y[i] - meanY)
		varX += dx * dx
	}

	if varX == 0 {
		return 0
	}

	return cov / varX
}
