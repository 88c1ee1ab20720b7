// Package wavelet provides the time-frequency lens: a continuous wavelet
// transform with automatic basis selection, transient-event detection, and
// an optional orthogonal multi-resolution decomposition with denoising.
package wavelet

import "fmt"

// MinLength is the minimum number of samples the wavelet lens accepts; the
// scale ladder degenerates below this.
const MinLength = 64

const defaultMRALevels = 5

// Config holds wavelet lens parameters.
type Config struct {
	// SampleRate, when positive, converts transient indices to seconds.
	SampleRate float64

	// Wavelet selects the CWT basis when AutoSelect is off (default Morlet).
	Wavelet Type

	// AutoSelect scores every catalogue basis and uses the best.
	AutoSelect bool

	// EnableMRA adds the discrete multi-resolution decomposition.
	EnableMRA bool

	// MRALevels is the requested decomposition depth (default 5; clamped to
	// what the signal length supports).
	MRALevels int
}

// Result holds the wavelet lens output. Coefficients and TimeFrequencyMap
// are indexed [scale][time] and parallel to Scales. Selection is non-nil
// only when auto-selection ran; MRA only when requested.
type Result struct {
	Scales           []float64
	Coefficients     [][]complex128
	TimeFrequencyMap [][]float64
	Transients       []Transient
	Wavelet          Type
	Selection        *Selection
	MRA              *MRA
}

// Analyze computes the continuous wavelet transform of the signal and
// detects transient events. Basis auto-selection and multi-resolution
// denoising are enabled via cfg.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) < MinLength {
		return Result{}, fmt.Errorf("wavelet: signal too short: %d < %d", len(signal), MinLength)
	}

	cfg = normalizeConfig(cfg)
	scales := defaultScales(len(signal))

	res := Result{
		Scales:  scales,
		Wavelet: cfg.Wavelet,
	}

	if cfg.AutoSelect {
		basis, coeffs, selection := selectBasis(signal, scales)
		res.Wavelet = basis
		res.Coefficients = coeffs
		res.Selection = &selection
	} else {
		coeffs, err := Transform(signal, cfg.Wavelet, scales)
		if err != nil {
			return Result{}, err
		}
		res.Coefficients = coeffs
	}

	res.TimeFrequencyMap = powerMap(res.Coefficients)
	res.Transients = detectTransients(res.TimeFrequencyMap)

	if cfg.SampleRate > 0 {
		for i := range res.Transients {
			res.Transients[i].TimeSeconds = float64(res.Transients[i].TimeIndex) / cfg.SampleRate
		}
	}

	if cfg.EnableMRA {
		res.MRA = analyzeMRA(signal, cfg.MRALevels)
	}

	return res, nil
}

func normalizeConfig(cfg Config) Config {
	if cfg.MRALevels <= 0 {
		cfg.MRALevels = defaultMRALevels
	}

	return cfg
}
