package wavelet

import (
	"math"

	"github.com/fourlens/fourlens/dsp/spectrum"
	"github.com/fourlens/fourlens/stats"
)

// Indices closer than this are merged into one transient event.
const transientMergeGap = 5

// Transient is one detected burst of time-localized energy. TimeSeconds is
// populated only when the sampling rate is known.
type Transient struct {
	TimeIndex       int     // center of the event
	TimeSeconds     float64 // TimeIndex converted via the sampling rate
	Intensity       float64 // peak of the cross-scale power at the event
	DurationSamples int
}

// detectTransients thresholds the per-time cross-scale power at mean + 2
// standard deviations and merges nearby exceedances into events.
func detectTransients(tf [][]float64) []Transient {
	if len(tf) == 0 || len(tf[0]) == 0 {
		return nil
	}

	power := marginalOverScales(tf)

	mean, variance, _, _ := stats.Moments(power)
	threshold := mean + 2*math.Sqrt(variance)

	var events []Transient
	start, last := -1, -1
	peak := 0.0

	flush := func() {
		if start < 0 {
			return
		}
		events = append(events, Transient{
			TimeIndex:       (start + last) / 2,
			Intensity:       peak,
			DurationSamples: last - start + 1,
		})
	}

	for t, p := range power {
		if p <= threshold {
			continue
		}

		if start >= 0 && t-last <= transientMergeGap {
			last = t
			if p > peak {
				peak = p
			}
			continue
		}

		flush()
		start, last, peak = t, t, p
	}
	flush()

	return events
}

// powerMap converts complex coefficients into the [scale][time]
// squared-magnitude map shared by scoring and transient detection.
func powerMap(coeffs [][]complex128) [][]float64 {
	out := make([][]float64, len(coeffs))
	for s, row := range coeffs {
		pr := make([]float64, len(row))
		spectrum.PowerInto(pr, row)
		out[s] = pr
	}
	return out
}
