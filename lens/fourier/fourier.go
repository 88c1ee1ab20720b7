// Package fourier provides the frequency-domain rhythm lens: a least-squares
// (Lomb-Scargle) periodogram tolerant of irregular sampling, dominant-period
// estimation with a false-alarm significance, and optional iterative
// multi-harmonic decomposition.
package fourier

import (
	"fmt"
	"math"

	"github.com/fourlens/fourlens/dsp/core"
	"github.com/fourlens/fourlens/stats"
)

const (
	defaultMaxHarmonics = 5

	// Longest period searched for, in hours. Rhythms slower than this are
	// indistinguishable from trend on typical telemetry spans.
	maxPeriodHours = 100

	// Iterative extraction stops once the residual peak drops below this
	// normalized power.
	harmonicNoiseFloor = 0.1

	secondsPerHour = 3600.0
	secondsPerDay  = 86400.0
)

// Config holds Fourier lens parameters.
type Config struct {
	// SampleRate (samples/second) is used to synthesize timestamps when the
	// caller provides none.
	SampleRate float64

	// DetectHarmonics enables iterative sinusoid-subtraction decomposition.
	DetectHarmonics bool

	// MaxHarmonics caps the number of extracted components (default 5).
	MaxHarmonics int
}

// Harmonic is one extracted sinusoidal component.
type Harmonic struct {
	Frequency   float64 // Hz
	PeriodHours float64
	Power       float64 // normalized periodogram power at extraction time
	Amplitude   float64 // Euclidean norm of the sin/cos regression coefficients
	Phase       float64 // radians in [0, 2*pi); 0 = peak at t=0
}

// Result holds the Fourier lens output. Frequencies and PowerSpectrum are
// parallel slices. Harmonics is nil unless harmonic detection was requested,
// and is ordered by extraction (strongest first).
type Result struct {
	Frequencies         []float64
	PowerSpectrum       []float64
	DominantFrequency   float64
	DominantPeriodHours float64
	Significance        float64
	Harmonics           []Harmonic
	HarmonicPower       float64
}

// Analyze runs the lens over a uniformly sampled signal, synthesizing
// timestamps from cfg.SampleRate.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if cfg.SampleRate <= 0 {
		return Result{}, fmt.Errorf("fourier: sample rate must be > 0: %f", cfg.SampleRate)
	}

	ctx, err := core.NewContext(cfg.SampleRate)
	if err != nil {
		return Result{}, err
	}

	return AnalyzeTimestamps(signal, ctx.Timestamps(len(signal)), cfg)
}

// AnalyzeTimestamps runs the lens over a signal with explicit timestamps in
// seconds. Timestamps must be strictly increasing and parallel to the signal.
func AnalyzeTimestamps(signal, timestamps []float64, cfg Config) (Result, error) {
	cfg = normalizeConfig(cfg)

	if len(signal) < 2 {
		return Result{}, fmt.Errorf("fourier: signal too short: %d", len(signal))
	}

	if len(timestamps) != len(signal) {
		return Result{}, fmt.Errorf("fourier: timestamp/signal length mismatch: %d != %d", len(timestamps), len(signal))
	}

	for i := 1; i < len(timestamps); i++ {
		if !(timestamps[i] > timestamps[i-1]) {
			return Result{}, fmt.Errorf("fourier: timestamps must be strictly increasing at index %d", i)
		}
	}

	freqs, err := FrequencyGrid(timestamps)
	if err != nil {
		return Result{}, err
	}

	power := Periodogram(signal, timestamps, freqs)

	peakBin := 0
	peakPower := power[0]
	for i, p := range power {
		if p > peakPower {
			peakPower = p
			peakBin = i
		}
	}

	res := Result{
		Frequencies:       freqs,
		PowerSpectrum:     power,
		DominantFrequency: refinePeak(signal, timestamps, freqs, peakBin),
		Significance:      core.Clamp(1-falseAlarmProbability(peakPower, len(freqs)), 0, 1),
	}
	res.DominantPeriodHours = periodHours(res.DominantFrequency)

	if cfg.DetectHarmonics {
		res.Harmonics = extractHarmonics(signal, timestamps, freqs, cfg.MaxHarmonics)
		for _, h := range res.Harmonics {
			res.HarmonicPower += h.Power
		}
	}

	return res, nil
}

// FrequencyGrid builds the search grid for the given timestamps. The lower
// bound corresponds to the 100-hour period floor; the upper bound is the
// Nyquist frequency derived from the median inter-sample interval, which is
// robust to gaps. Grid density scales with the total span.
func FrequencyGrid(timestamps []float64) ([]float64, error) {
	n := len(timestamps)
	if n < 2 {
		return nil, fmt.Errorf("fourier: need at least 2 timestamps: %d", n)
	}

	diffs := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diffs[i-1] = timestamps[i] - timestamps[i-1]
	}

	medianDt := stats.Median(diffs)
	if medianDt <= 0 {
		return nil, fmt.Errorf("fourier: non-positive median sampling interval: %f", medianDt)
	}

	span := timestamps[n-1] - timestamps[0]
	if span <= 0 {
		return nil, fmt.Errorf("fourier: zero time span")
	}

	fMin := 1 / (maxPeriodHours * secondsPerHour)
	fMax := 1 / (2 * medianDt)
	if fMax <= fMin {
		return nil, fmt.Errorf("fourier: sampling too coarse for the %dh period floor", maxPeriodHours)
	}

	df := 1 / (float64(samplesPerPeak(span)) * span)

	count := int((fMax-fMin)/df) + 1
	freqs := make([]float64, 0, count)
	for f := fMin; f <= fMax; f += df {
		freqs = append(freqs, f)
	}

	return freqs, nil
}

// samplesPerPeak returns the oversampling factor used for the frequency
// grid: denser grids for longer spans, balancing resolution against cost.
func samplesPerPeak(spanSeconds float64) int {
	days := spanSeconds / secondsPerDay

	switch {
	case days > 30:
		return 10
	case days > 7:
		return 7
	default:
		return 5
	}
}

// falseAlarmProbability estimates the probability that a normalized
// periodogram peak of height z arises from noise alone, over m independent
// frequencies:
//
//	FAP = 1 - (1 - e^-z)^m
func falseAlarmProbability(z float64, m int) float64 {
	if z <= 0 || m <= 0 {
		return 1
	}

	p := -math.Expm1(-z) // 1 - e^-z, accurate for large z

	fap := -math.Expm1(float64(m) * math.Log(p))
	if fap < 0 {
		return 0
	}

	if fap > 1 {
		return 1
	}

	return fap
}

// refinePeak sharpens the arg-max frequency with a golden-section search of
// the continuous periodogram power between the peak bin's neighbors. The
// grid packs several bins into each spectral peak, so the power is unimodal
// over that bracket. Searching the power itself also handles asymmetric
// peaks (clipped or rectified waveforms) where a parabolic fit through three
// coarse samples lands off-center.
func refinePeak(signal, timestamps, freqs []float64, bin int) float64 {
	lo, hi := freqs[bin], freqs[bin]
	if bin > 0 {
		lo = freqs[bin-1]
	}
	if bin < len(freqs)-1 {
		hi = freqs[bin+1]
	}
	if hi <= lo {
		return freqs[bin]
	}

	mean, variance, _, _ := stats.Moments(signal)
	if variance <= 0 {
		return freqs[bin]
	}

	centered := make([]float64, len(signal))
	for i, v := range signal {
		centered[i] = v - mean
	}

	invPhi := (math.Sqrt(5) - 1) / 2

	a, b := lo, hi
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	p1 := powerAt(centered, timestamps, variance, x1)
	p2 := powerAt(centered, timestamps, variance, x2)

	tol := (hi - lo) * 1e-6
	for b-a > tol {
		if p1 < p2 {
			a, x1, p1 = x1, x2, p2
			x2 = a + invPhi*(b-a)
			p2 = powerAt(centered, timestamps, variance, x2)
		} else {
			b, x2, p2 = x2, x1, p1
			x1 = b - invPhi*(b-a)
			p1 = powerAt(centered, timestamps, variance, x1)
		}
	}

	return (a + b) / 2
}

func periodHours(freq float64) float64 {
	if freq <= 0 {
		return math.Inf(1)
	}

	return (1 / freq) / secondsPerHour
}

func normalizeConfig(cfg Config) Config {
	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	return cfg
}
