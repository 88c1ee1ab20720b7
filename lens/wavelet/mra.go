package wavelet

import "math"

// Multi-resolution analysis uses an orthogonal Daubechies-4 decomposition
// regardless of the continuous basis selected for the CWT: the continuous
// catalogue has no exact discrete inverse, so a documented orthogonal
// substitute keeps the band reconstructions exact.
//
// db4 analysis lowpass filter (orthonormal, sum = sqrt 2).
var db4DecLo = []float64{
	0.23037781330885523,
	0.7148465705525415,
	0.6308807679295904,
	-0.02798376941698385,
	-0.18703481171888114,
	0.030841381835986965,
	0.032883011666982945,
	-0.010597401784997278,
}

// MRA holds the multi-resolution decomposition bands, each reconstructed to
// the original signal length.
type MRA struct {
	Levels int

	// Approximation is the coarsest band.
	Approximation []float64

	// Details holds one band per level, finest first.
	Details [][]float64

	// Denoised is the approximation plus the coarsest max(1, levels-2)
	// detail bands; the finest bands are dropped as presumed noise.
	Denoised []float64

	// ReconstructionError is the RMS difference between the original signal
	// and the sum of all bands.
	ReconstructionError float64
}

type decomposition struct {
	approx  []float64
	details [][]float64 // finest first
	padded  int
}

// analyzeMRA decomposes the signal at up to the requested number of levels
// (clamped so the coarsest level still covers the filter support) and
// reconstructs every band to full length.
func analyzeMRA(signal []float64, levels int) *MRA {
	n := len(signal)
	if n < 2 {
		return nil
	}

	levels = clampLevels(n, levels)
	if levels < 1 {
		return nil
	}

	dec := decompose(signal, levels)

	out := &MRA{
		Levels:        levels,
		Approximation: dec.reconstructApprox()[:n],
		Details:       make([][]float64, levels),
	}

	for j := 0; j < levels; j++ {
		out.Details[j] = dec.reconstructDetail(j)[:n]
	}

	// Full reconstruction check against the original.
	full := make([]float64, n)
	copy(full, out.Approximation)
	for _, band := range out.Details {
		for i, v := range band {
			full[i] += v
		}
	}

	var sumSq float64
	for i, v := range full {
		d := signal[i] - v
		sumSq += d * d
	}
	out.ReconstructionError = math.Sqrt(sumSq / float64(n))

	keep := levels - 2
	if keep < 1 {
		keep = 1
	}

	denoised := make([]float64, n)
	copy(denoised, out.Approximation)
	for j := levels - keep; j < levels; j++ {
		for i, v := range out.Details[j] {
			denoised[i] += v
		}
	}
	out.Denoised = denoised

	return out
}

// clampLevels limits the decomposition depth so the coarsest approximation
// still holds at least one filter length of samples.
func clampLevels(n, levels int) int {
	if levels < 1 {
		levels = 1
	}

	maxLevels := 0
	for m := n; m >= 2*len(db4DecLo); m /= 2 {
		maxLevels++
	}

	if levels > maxLevels {
		levels = maxLevels
	}

	return levels
}

// decompose runs a periodized orthogonal DWT. The input is edge-padded to a
// multiple of 2^levels so every level halves cleanly; the padding is
// truncated again after band reconstruction.
func decompose(signal []float64, levels int) decomposition {
	block := 1 << levels
	padded := ((len(signal) + block - 1) / block) * block

	current := make([]float64, padded)
	copy(current, signal)
	for i := len(signal); i < padded; i++ {
		current[i] = signal[len(signal)-1]
	}

	dec := decomposition{
		details: make([][]float64, levels),
		padded:  padded,
	}

	for j := 0; j < levels; j++ {
		approx, detail := dwtStep(current)
		dec.details[j] = detail
		current = approx
	}
	dec.approx = current

	return dec
}

// dwtStep performs one periodized analysis step. len(x) must be even.
func dwtStep(x []float64) (approx, detail []float64) {
	n := len(x)
	half := n / 2
	filterLen := len(db4DecLo)

	approx = make([]float64, half)
	detail = make([]float64, half)

	for i := 0; i < half; i++ {
		var a, d float64
		for k := 0; k < filterLen; k++ {
			v := x[(2*i+k)%n]
			a += db4DecLo[k] * v
			d += db4DecHi(k) * v
		}
		approx[i] = a
		detail[i] = d
	}

	return approx, detail
}

// idwtStep inverts dwtStep; for an orthonormal filter bank the synthesis is
// the transpose of the analysis.
func idwtStep(approx, detail []float64) []float64 {
	half := len(approx)
	n := 2 * half
	filterLen := len(db4DecLo)

	x := make([]float64, n)
	for i := 0; i < half; i++ {
		a := approx[i]
		d := detail[i]
		for k := 0; k < filterLen; k++ {
			x[(2*i+k)%n] += db4DecLo[k]*a + db4DecHi(k)*d
		}
	}

	return x
}

// db4DecHi returns the quadrature-mirror highpass tap for index k.
func db4DecHi(k int) float64 {
	tap := db4DecLo[len(db4DecLo)-1-k]
	if k%2 == 1 {
		return -tap
	}
	return tap
}

func (d decomposition) reconstructApprox() []float64 {
	current := append([]float64(nil), d.approx...)
	for j := len(d.details) - 1; j >= 0; j-- {
		current = idwtStep(current, make([]float64, len(current)))
	}
	return current
}

// reconstructDetail reconstructs the detail band at index j (finest first)
// to full padded length with every other band zeroed.
func (d decomposition) reconstructDetail(j int) []float64 {
	detail := d.details[j]
	current := idwtStep(make([]float64, len(detail)), detail)

	for level := j - 1; level >= 0; level-- {
		current = idwtStep(current, make([]float64, len(current)))
	}

	return current
}
