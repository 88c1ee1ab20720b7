package fourier

import (
	"math"
	"testing"

	"github.com/fourlens/fourlens/internal/testutil"
)

func TestPeriodogramPeakPowerPureSine(t *testing.T) {
	const (
		n  = 1000
		f0 = 0.05
	)

	timestamps := testutil.UniformTimestamps(1, n)
	signal := testutil.Sine(f0, 1, 1, 0, n)

	power := Periodogram(signal, timestamps, []float64{f0})

	// Variance-normalized power of a clean sinusoid at its own frequency
	// approaches n/2.
	if math.Abs(power[0]-n/2) > 0.1*n/2 {
		t.Fatalf("peak power mismatch: got %f want ~%d", power[0], n/2)
	}
}

func TestPeriodogramAmplitudeInvariant(t *testing.T) {
	const n = 512

	timestamps := testutil.UniformTimestamps(2, n)
	signal := testutil.Add(
		testutil.Sine(0.1, 2, 1, 0.3, n),
		testutil.Noise(7, 0.2, n),
	)

	scaled := make([]float64, n)
	for i, v := range signal {
		scaled[i] = 5 * v
	}

	freqs := []float64{0.05, 0.1, 0.2, 0.4}
	a := Periodogram(signal, timestamps, freqs)
	b := Periodogram(scaled, timestamps, freqs)

	for i := range freqs {
		if math.Abs(a[i]-b[i]) > 1e-9*math.Max(1, a[i]) {
			t.Fatalf("frequency %f: normalized power not scale-invariant: %g vs %g", freqs[i], a[i], b[i])
		}
	}
}

func TestPeriodogramDistinguishesFrequencies(t *testing.T) {
	const n = 800

	timestamps := testutil.UniformTimestamps(4, n)
	signal := testutil.Sine(0.25, 4, 1, 0, n)

	power := Periodogram(signal, timestamps, []float64{0.1, 0.25, 0.7})

	if power[1] < 100*power[0] || power[1] < 100*power[2] {
		t.Fatalf("power at the true frequency must dominate: %v", power)
	}
}

func TestPeriodogramConstantSignal(t *testing.T) {
	const n = 100

	timestamps := testutil.UniformTimestamps(1, n)
	power := Periodogram(testutil.DC(2, n), timestamps, []float64{0.1, 0.2})

	testutil.RequireFinite(t, power)
	for i, p := range power {
		if p != 0 {
			t.Fatalf("constant signal must have zero power at index %d: got %f", i, p)
		}
	}
}
