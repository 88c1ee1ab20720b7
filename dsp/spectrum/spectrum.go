// Package spectrum provides spectrum-domain extraction helpers.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by external FFT backends and provides
// magnitude/power extraction and peak location.
package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// SIMD-optimized kernels are used when available. Scratch buffers are pooled
// internally, so in steady state this allocates only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// SIMD-optimized kernels are used when available. Scratch buffers are pooled
// internally, so in steady state this allocates only the output slice.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// PowerInto computes |X[k]|^2 into dst without allocating. dst must have the
// same length as in.
func PowerInto(dst []float64, in []complex128) {
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(dst, re, im)
	putScratch(buf)
}

// PeakBin returns the index and value of the maximum bin. When skipDC is
// true, bin 0 is excluded from the search. Returns index -1 for an empty
// spectrum (or a single-bin spectrum with skipDC).
func PeakBin(power []float64, skipDC bool) (int, float64) {
	start := 0
	if skipDC {
		start = 1
	}

	if start >= len(power) {
		return -1, 0
	}

	bestBin := start
	bestVal := power[start]
	for i := start + 1; i < len(power); i++ {
		if power[i] > bestVal {
			bestVal = power[i]
			bestBin = i
		}
	}

	return bestBin, bestVal
}
