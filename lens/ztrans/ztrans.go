// Package ztrans provides the digital-filter lens: a Butterworth lowpass
// cascade applied with zero-phase (forward+backward) filtering, plus a
// noise-reduction metric comparing high-frequency residual variance before
// and after filtering.
package ztrans

import (
	"fmt"

	"github.com/fourlens/fourlens/dsp/core"
	"github.com/fourlens/fourlens/dsp/filter/biquad"
	"github.com/fourlens/fourlens/dsp/filter/pass"
	"github.com/fourlens/fourlens/stats"
)

const (
	defaultOrder = 4

	// Cutoff is clamped below Nyquist to keep the bilinear design stable.
	maxCutoffNyquistRatio = 0.99

	// Window for the median-filter residual used by the noise metric.
	residualWindow = 5
)

// Config holds z-transform lens parameters.
type Config struct {
	SampleRate float64

	// CutoffFrequency in Hz. Defaults to Nyquist/4 when zero; always clamped
	// to 0.99*Nyquist.
	CutoffFrequency float64

	// Order of the Butterworth characteristic (default 4).
	Order int
}

// Result holds the denoised signal and the achieved noise reduction.
type Result struct {
	FilteredSignal        []float64
	NoiseReductionPercent float64 // in [0, 100]
	CutoffFrequency       float64 // Hz, after defaulting and clamping
}

// Analyze designs a Butterworth lowpass at the configured cutoff and applies
// it with zero-phase filtering. The input signal is not modified.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if cfg.SampleRate <= 0 {
		return Result{}, fmt.Errorf("ztrans: sample rate must be > 0: %f", cfg.SampleRate)
	}

	if len(signal) < 2 {
		return Result{}, fmt.Errorf("ztrans: signal too short: %d", len(signal))
	}

	cfg = normalizeConfig(cfg)

	sections := pass.ButterworthLP(cfg.CutoffFrequency, cfg.Order, cfg.SampleRate)
	if len(sections) == 0 {
		return Result{}, fmt.Errorf("ztrans: filter design failed for cutoff %f Hz at %f Hz", cfg.CutoffFrequency, cfg.SampleRate)
	}

	filtered := filtfilt(signal, sections)

	return Result{
		FilteredSignal:        filtered,
		NoiseReductionPercent: noiseReduction(signal, filtered),
		CutoffFrequency:       cfg.CutoffFrequency,
	}, nil
}

func normalizeConfig(cfg Config) Config {
	nyquist := cfg.SampleRate / 2

	if cfg.CutoffFrequency <= 0 {
		cfg.CutoffFrequency = nyquist / 4
	}

	if cfg.CutoffFrequency > maxCutoffNyquistRatio*nyquist {
		cfg.CutoffFrequency = maxCutoffNyquistRatio * nyquist
	}

	if cfg.Order <= 0 {
		cfg.Order = defaultOrder
	}

	return cfg
}

// filtfilt applies the cascade forward and backward for zero phase shift.
// Edge transients are suppressed by odd-reflection padding at both ends.
func filtfilt(signal []float64, sections []biquad.Coefficients) []float64 {
	n := len(signal)
	padLen := core.ClampInt(3*2*len(sections), 0, n-1)

	buf := make([]float64, n+2*padLen)
	for i := 0; i < padLen; i++ {
		buf[i] = 2*signal[0] - signal[padLen-i]
	}
	copy(buf[padLen:], signal)
	for i := 0; i < padLen; i++ {
		buf[padLen+n+i] = 2*signal[n-1] - signal[n-2-i]
	}

	chain := biquad.NewChain(sections)
	chain.ProcessBlock(buf)

	reverse(buf)
	chain.Reset()
	chain.ProcessBlock(buf)
	reverse(buf)

	out := make([]float64, n)
	copy(out, buf[padLen:padLen+n])

	return out
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

// noiseReduction compares the variance of each signal's deviation from its
// own median-filtered version. The median filter tracks the underlying
// trend, so the deviation is dominated by high-frequency noise.
func noiseReduction(before, after []float64) float64 {
	varBefore := residualVariance(before)
	if varBefore == 0 {
		return 0
	}

	varAfter := residualVariance(after)

	return core.Clamp(100*(1-varAfter/varBefore), 0, 100)
}

func residualVariance(signal []float64) float64 {
	trend := stats.MedianFilter(signal, residualWindow)

	residual := make([]float64, len(signal))
	for i := range signal {
		residual[i] = signal[i] - trend[i]
	}

	return stats.Variance(residual)
}
