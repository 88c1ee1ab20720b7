package laplace

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/fourlens/fourlens/dsp/core"
	"github.com/fourlens/fourlens/dsp/spectrum"
	"github.com/fourlens/fourlens/dsp/window"
)

const (
	maxSegmentLength = 256
	minSegmentLength = 4
)

// WelchPSD estimates a one-sided power spectral density by averaging
// Hann-windowed, 50%-overlapped segment periodograms. Segment means are
// removed before windowing so the DC bin reflects only residual offset.
//
// Returns parallel frequency (Hz) and power slices of length fftSize/2+1.
func WelchPSD(signal []float64, sampleRate float64) ([]float64, []float64, error) {
	n := len(signal)
	if n < minSegmentLength {
		return nil, nil, fmt.Errorf("laplace: welch needs at least %d samples: %d", minSegmentLength, n)
	}

	segLen := n / 4
	if segLen > maxSegmentLength {
		segLen = maxSegmentLength
	}
	if segLen < minSegmentLength {
		segLen = minSegmentLength
	}

	step := segLen / 2
	if step < 1 {
		step = 1
	}

	fftSize := core.NextPowerOf2(segLen)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("laplace: failed to create FFT plan: %w", err)
	}

	coeffs := window.Generate(window.TypeHann, segLen, window.WithPeriodic())
	powerGain := window.PowerGain(coeffs)
	if powerGain <= 0 {
		powerGain = 1
	}

	binCount := fftSize/2 + 1
	psd := make([]float64, binCount)
	segPower := make([]float64, fftSize)
	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)

	segments := 0
	for start := 0; start+segLen <= n; start += step {
		seg := signal[start : start+segLen]

		mean := 0.0
		for _, v := range seg {
			mean += v
		}
		mean /= float64(segLen)

		for i := 0; i < segLen; i++ {
			in[i] = complex((seg[i]-mean)*coeffs[i], 0)
		}
		for i := segLen; i < fftSize; i++ {
			in[i] = 0
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, nil, fmt.Errorf("laplace: forward FFT failed: %w", err)
		}

		spectrum.PowerInto(segPower, out)
		for i := 0; i < binCount; i++ {
			psd[i] += segPower[i]
		}

		segments++
	}

	if segments == 0 {
		return nil, nil, fmt.Errorf("laplace: no full segments in %d samples", n)
	}

	// Average over segments and correct for the window power loss. Interior
	// bins carry both halves of the two-sided spectrum.
	norm := 1 / (float64(segments) * float64(segLen) * powerGain)
	for i := range psd {
		psd[i] *= norm
		if i > 0 && i < binCount-1 {
			psd[i] *= 2
		}
	}

	freqs := make([]float64, binCount)
	for i := range freqs {
		freqs[i] = float64(i) * sampleRate / float64(fftSize)
	}

	return freqs, psd, nil
}
