// Package laplace provides the system-stability lens: a Welch-averaged
// power spectral density is fitted by a canonical second-order model whose
// s-plane poles classify the signal as stable, oscillatory, or unstable.
package laplace

import (
	"fmt"
	"math"

	"github.com/fourlens/fourlens/dsp/core"
	"github.com/fourlens/fourlens/dsp/spectrum"
	"github.com/fourlens/fourlens/stats"
)

// Stability classifies the fitted second-order system.
type Stability int

const (
	Stable Stability = iota
	Oscillatory
	Unstable
)

// String returns the lower-case classification name.
func (s Stability) String() string {
	switch s {
	case Stable:
		return "stable"
	case Oscillatory:
		return "oscillatory"
	case Unstable:
		return "unstable"
	default:
		return "unknown"
	}
}

const (
	// Pole real parts within this margin of zero classify as oscillatory.
	marginalRealPart = 0.01

	minDampingRatio = 0.01
	maxDampingRatio = 2.0

	// Fallback damping when the spectral quality factor is degenerate.
	defaultDampingRatio = 0.5
)

// Config holds Laplace lens parameters.
type Config struct {
	SampleRate float64
}

// Result holds the fitted second-order model: its two s-plane poles, the
// stability classification they imply, and the model parameters.
type Result struct {
	Poles            []complex128
	Stability        Stability
	NaturalFrequency float64 // Hz
	DampingRatio     float64
}

// Analyze fits a second-order model to the signal's averaged power spectrum
// and locates its poles.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if cfg.SampleRate <= 0 {
		return Result{}, fmt.Errorf("laplace: sample rate must be > 0: %f", cfg.SampleRate)
	}

	if len(signal) < 8 {
		return Result{}, fmt.Errorf("laplace: signal too short: %d", len(signal))
	}

	freqs, psd, err := WelchPSD(signal, cfg.SampleRate)
	if err != nil {
		return Result{}, err
	}

	peakBin, peakPower := spectrum.PeakBin(psd, true)
	if peakBin < 0 {
		return Result{}, fmt.Errorf("laplace: empty power spectrum")
	}

	medianPower := stats.Median(psd[1:])

	q := 0.0
	if medianPower > 0 {
		q = peakPower / medianPower
	}

	zeta := defaultDampingRatio
	if q > 0 {
		zeta = 1 / (2 * q)
	}
	zeta = core.Clamp(zeta, minDampingRatio, maxDampingRatio)

	omegaN := 2 * math.Pi * freqs[peakBin]

	// The quality factor measures peak sharpness only; the envelope growth
	// rate supplies the sign of the pole real part, so a growing signal can
	// actually classify as unstable.
	growth := envelopeGrowthRate(signal, cfg.SampleRate)

	res := Result{
		NaturalFrequency: omegaN / (2 * math.Pi),
		DampingRatio:     zeta,
	}

	if zeta < 1 {
		re := growth - zeta*omegaN
		im := omegaN * math.Sqrt(1-zeta*zeta)
		res.Poles = []complex128{complex(re, im), complex(re, -im)}

		switch {
		case re < -marginalRealPart:
			res.Stability = Stable
		case math.Abs(re) <= marginalRealPart:
			res.Stability = Oscillatory
		default:
			res.Stability = Unstable
		}

		return res, nil
	}

	// Overdamped: two real poles on the negative axis.
	root := math.Sqrt(zeta*zeta - 1)
	res.Poles = []complex128{
		complex(growth-omegaN*(zeta-root), 0),
		complex(growth-omegaN*(zeta+root), 0),
	}
	res.Stability = Stable

	return res, nil
}
