package wavelet

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/fourlens/fourlens/dsp/core"
)

// Transform computes the continuous wavelet transform of the signal for the
// given basis and integer scales. The result is indexed [scale][time].
//
// Each scale is evaluated as a frequency-domain cross-correlation against
// the sampled, energy-normalized kernel, which keeps the cost near
// O(scales * n log n) instead of the O(scales * n * support) of direct
// correlation.
func Transform(signal []float64, basis Type, scales []float64) ([][]complex128, error) {
	n := len(signal)
	if n == 0 {
		return nil, fmt.Errorf("wavelet: empty signal")
	}

	if len(scales) == 0 {
		return nil, fmt.Errorf("wavelet: no scales")
	}

	maxScale := scales[0]
	for _, s := range scales {
		if s <= 0 {
			return nil, fmt.Errorf("wavelet: scale must be > 0: %f", s)
		}
		if s > maxScale {
			maxScale = s
		}
	}

	maxHalf := int(basis.supportRadius()*maxScale) + 1
	fftSize := core.NextPowerOf2(n + 2*maxHalf + 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("wavelet: failed to create FFT plan: %w", err)
	}

	// Signal spectrum is shared by every scale.
	sigPadded := make([]complex128, fftSize)
	for i, v := range signal {
		sigPadded[i] = complex(v, 0)
	}

	sigFreq := make([]complex128, fftSize)
	if err := plan.Forward(sigFreq, sigPadded); err != nil {
		return nil, fmt.Errorf("wavelet: forward FFT failed: %w", err)
	}

	kernPadded := make([]complex128, fftSize)
	kernFreq := make([]complex128, fftSize)
	prod := make([]complex128, fftSize)
	corr := make([]complex128, fftSize)

	coeffs := make([][]complex128, len(scales))
	for si, scale := range scales {
		kern, half, err := basis.kernel(scale)
		if err != nil {
			return nil, err
		}

		// Center the kernel at index 0 with wraparound so the correlation
		// output aligns with the signal's time axis.
		for i := range kernPadded {
			kernPadded[i] = 0
		}
		for j := -half; j <= half; j++ {
			idx := j
			if idx < 0 {
				idx += fftSize
			}
			kernPadded[idx] = kern[j+half]
		}

		if err := plan.Forward(kernFreq, kernPadded); err != nil {
			return nil, fmt.Errorf("wavelet: forward FFT failed: %w", err)
		}

		// Cross-correlation: X(f) * conj(K(f)).
		for i := range prod {
			k := kernFreq[i]
			prod[i] = sigFreq[i] * complex(real(k), -imag(k))
		}

		if err := plan.Inverse(corr, prod); err != nil {
			return nil, fmt.Errorf("wavelet: inverse FFT failed: %w", err)
		}

		row := make([]complex128, n)
		copy(row, corr[:n])
		coeffs[si] = row
	}

	return coeffs, nil
}

// defaultScales returns the integer scale ladder 1..min(128, n/4).
func defaultScales(n int) []float64 {
	maxScale := n / 4
	if maxScale > 128 {
		maxScale = 128
	}
	if maxScale < 1 {
		maxScale = 1
	}

	out := make([]float64, maxScale)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}
