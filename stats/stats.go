// Package stats provides the scalar signal statistics shared by the lenses:
// single-pass moments, RMS, and order statistics (median, median filter).
package stats

import (
	"math"
	"sort"
)

// Moments returns the mean, population variance, skewness, and excess
// kurtosis of the signal using Welford's online algorithm for numerical
// stability on higher-order moments.
func Moments(signal []float64) (mean, variance, skewness, kurtosis float64) {
	n := len(signal)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var m2, m3, m4 float64

	for i, x := range signal {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN
	}

	nf := float64(n)

	variance = m2 / nf
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return mean, variance, skewness, kurtosis
}

// Mean returns the arithmetic mean of the signal using Kahan summation.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Variance returns the population variance of the signal.
func Variance(signal []float64) float64 {
	_, variance, _, _ := Moments(signal)
	return variance
}

// StdDev returns the population standard deviation of the signal.
func StdDev(signal []float64) float64 {
	return math.Sqrt(Variance(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Median returns the median of the signal. The input is not modified.
// Returns 0 for an empty signal.
func Median(signal []float64) float64 {
	n := len(signal)
	if n == 0 {
		return 0
	}

	sorted := append([]float64(nil), signal...)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MedianFilter applies a sliding-window median of the given odd window size
// and returns a new slice. Edges use a truncated window. An even or
// non-positive window falls back to the nearest valid size.
func MedianFilter(signal []float64, window int) []float64 {
	n := len(signal)
	if n == 0 {
		return nil
	}

	if window < 1 {
		window = 1
	}

	if window%2 == 0 {
		window++
	}

	half := window / 2
	out := make([]float64, n)
	buf := make([]float64, 0, window)

	for i := range signal {
		lo := i - half
		if lo < 0 {
			lo = 0
		}

		hi := i + half
		if hi >= n {
			hi = n - 1
		}

		buf = append(buf[:0], signal[lo:hi+1]...)
		sort.Float64s(buf)
		m := len(buf)

		if m%2 == 1 {
			out[i] = buf[m/2]
		} else {
			out[i] = (buf[m/2-1] + buf[m/2]) / 2
		}
	}

	return out
}
