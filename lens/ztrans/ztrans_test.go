package ztrans

import (
	"math"
	"testing"

	"github.com/fourlens/fourlens/internal/testutil"
)

func TestAnalyzeDefaults(t *testing.T) {
	signal := testutil.Sine(1, 100, 1, 0, 400)

	res, err := Analyze(signal, Config{SampleRate: 100})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Default cutoff is a quarter of Nyquist.
	if math.Abs(res.CutoffFrequency-12.5) > 1e-12 {
		t.Fatalf("default cutoff mismatch: got %f want 12.5", res.CutoffFrequency)
	}
	if len(res.FilteredSignal) != len(signal) {
		t.Fatalf("output length mismatch: got %d want %d", len(res.FilteredSignal), len(signal))
	}
}

func TestAnalyzeCutoffClampedBelowNyquist(t *testing.T) {
	signal := testutil.Sine(1, 100, 1, 0, 400)

	res, err := Analyze(signal, Config{SampleRate: 100, CutoffFrequency: 80})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if res.CutoffFrequency > 0.99*50 {
		t.Fatalf("cutoff not clamped: got %f", res.CutoffFrequency)
	}
}

func TestAnalyzePreservesPassbandTone(t *testing.T) {
	clean := testutil.Sine(0.5, 100, 1, 0, 1000)

	res, err := Analyze(clean, Config{SampleRate: 100})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Zero-phase filtering of a tone far below cutoff is near-identity.
	if corr := testutil.Correlation(res.FilteredSignal, clean); corr < 0.999 {
		t.Fatalf("passband tone distorted: correlation %f", corr)
	}
}

func TestAnalyzeRecoversToneFromNoise(t *testing.T) {
	clean := testutil.Sine(0.5, 100, 1, 0, 1000)
	noisy := testutil.Add(clean, testutil.Noise(13, 0.4, 1000))

	res, err := Analyze(noisy, Config{SampleRate: 100, CutoffFrequency: 5})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	before := testutil.Correlation(noisy, clean)
	after := testutil.Correlation(res.FilteredSignal, clean)
	if after <= before {
		t.Fatalf("filtering must improve correlation with the clean tone: %f <= %f", after, before)
	}

	if res.NoiseReductionPercent <= 0 || res.NoiseReductionPercent > 100 {
		t.Fatalf("noise reduction out of range: %f", res.NoiseReductionPercent)
	}
}

func TestAnalyzeNoiseReductionGrowsWithNoise(t *testing.T) {
	clean := testutil.Sine(2, 100, 1, 0, 1000)

	reduction := func(amp float64) float64 {
		noisy := testutil.Add(clean, testutil.Noise(21, amp, 1000))

		res, err := Analyze(noisy, Config{SampleRate: 100, CutoffFrequency: 5})
		if err != nil {
			t.Fatalf("amp %f: Analyze failed: %v", amp, err)
		}
		if res.NoiseReductionPercent < 0 || res.NoiseReductionPercent > 100 {
			t.Fatalf("amp %f: reduction out of range: %f", amp, res.NoiseReductionPercent)
		}

		return res.NoiseReductionPercent
	}

	// The same tone under heavier noise leaves the filter more to remove.
	low := reduction(0.1)
	high := reduction(0.6)
	if high <= low {
		t.Fatalf("noise reduction must grow with noise level: %f <= %f", high, low)
	}
}

func TestAnalyzeDoesNotModifyInput(t *testing.T) {
	signal := testutil.Sine(2, 100, 1, 0, 256)
	orig := append([]float64(nil), signal...)

	if _, err := Analyze(signal, Config{SampleRate: 100}); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for i := range orig {
		if signal[i] != orig[i] {
			t.Fatalf("input modified at %d", i)
		}
	}
}

func TestAnalyzeConstantSignalZeroReduction(t *testing.T) {
	res, err := Analyze(testutil.DC(3, 200), Config{SampleRate: 100})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if res.NoiseReductionPercent != 0 {
		t.Fatalf("constant signal must report zero reduction: got %f", res.NoiseReductionPercent)
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	if _, err := Analyze([]float64{1, 2, 3}, Config{SampleRate: 0}); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := Analyze([]float64{1}, Config{SampleRate: 100}); err == nil {
		t.Fatal("expected error for single-sample signal")
	}
}

func TestAnalyzeZeroPhaseAlignment(t *testing.T) {
	// The peak of a slow pulse must stay in place after zero-phase filtering.
	signal := make([]float64, 512)
	for i := range signal {
		d := float64(i - 256)
		signal[i] = math.Exp(-d * d / (2 * 40 * 40))
	}

	res, err := Analyze(signal, Config{SampleRate: 100, CutoffFrequency: 5})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	peak := 0
	for i, v := range res.FilteredSignal {
		if v > res.FilteredSignal[peak] {
			peak = i
		}
	}

	if peak < 254 || peak > 258 {
		t.Fatalf("pulse peak shifted: got index %d want ~256", peak)
	}
}
