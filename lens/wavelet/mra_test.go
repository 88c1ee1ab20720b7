package wavelet

import (
	"math"
	"testing"

	"github.com/fourlens/fourlens/internal/testutil"
)

func TestDb4FilterOrthonormal(t *testing.T) {
	var sum, sumSq, cross float64
	for k := range db4DecLo {
		sum += db4DecLo[k]
		sumSq += db4DecLo[k] * db4DecLo[k]
		cross += db4DecLo[k] * db4DecHi(k)
	}

	if math.Abs(sum-math.Sqrt2) > 1e-12 {
		t.Fatalf("lowpass sum mismatch: got %.15f want sqrt(2)", sum)
	}
	if math.Abs(sumSq-1) > 1e-12 {
		t.Fatalf("lowpass energy mismatch: got %.15f want 1", sumSq)
	}
	if math.Abs(cross) > 1e-12 {
		t.Fatalf("filters not orthogonal: dot product %.15g", cross)
	}
}

func TestDWTStepRoundtrip(t *testing.T) {
	x := testutil.Add(
		testutil.Sine(3, 64, 1, 0.7, 64),
		testutil.Noise(11, 0.3, 64),
	)

	approx, detail := dwtStep(x)
	if len(approx) != 32 || len(detail) != 32 {
		t.Fatalf("band length mismatch: %d, %d", len(approx), len(detail))
	}

	got := idwtStep(approx, detail)
	testutil.RequireSliceNearlyEqual(t, got, x, 1e-10)
}

func TestAnalyzeMRAReconstruction(t *testing.T) {
	// Non-power-of-two length exercises the padding path.
	signal := testutil.Add(
		testutil.Sine(5, 300, 1, 0, 300),
		testutil.Noise(3, 0.4, 300),
	)

	mra := analyzeMRA(signal, 4)
	if mra == nil {
		t.Fatal("expected a decomposition")
	}
	if mra.Levels != 4 {
		t.Fatalf("level mismatch: got %d want 4", mra.Levels)
	}
	if len(mra.Details) != 4 {
		t.Fatalf("detail band count mismatch: got %d", len(mra.Details))
	}

	n := len(signal)
	if len(mra.Approximation) != n || len(mra.Denoised) != n {
		t.Fatalf("band lengths mismatch: approx %d, denoised %d, want %d", len(mra.Approximation), len(mra.Denoised), n)
	}
	for j, band := range mra.Details {
		if len(band) != n {
			t.Fatalf("detail %d length mismatch: got %d", j, len(band))
		}
	}

	// The orthogonal bank reconstructs the signal exactly.
	if mra.ReconstructionError > 1e-10 {
		t.Fatalf("reconstruction error too large: %g", mra.ReconstructionError)
	}
}

func TestAnalyzeMRADenoisesHighFrequencyNoise(t *testing.T) {
	clean := testutil.Sine(2, 256, 1, 0, 512)
	noisy := testutil.Add(clean, testutil.Noise(9, 0.5, 512))

	mra := analyzeMRA(noisy, 5)
	if mra == nil {
		t.Fatal("expected a decomposition")
	}

	var errNoisy, errDenoised float64
	for i := range clean {
		d := noisy[i] - clean[i]
		errNoisy += d * d
		d = mra.Denoised[i] - clean[i]
		errDenoised += d * d
	}

	if errDenoised >= errNoisy {
		t.Fatalf("denoising did not reduce error: %g >= %g", errDenoised, errNoisy)
	}
}

func TestAnalyzeMRAClampsLevels(t *testing.T) {
	mra := analyzeMRA(make([]float64, 40), 5)
	if mra == nil {
		t.Fatal("expected a decomposition")
	}

	// 40 samples support two halvings before the coarsest band drops below
	// the filter support.
	if mra.Levels != 2 {
		t.Fatalf("level clamp mismatch: got %d want 2", mra.Levels)
	}
}

func TestAnalyzeMRATinySignal(t *testing.T) {
	if mra := analyzeMRA([]float64{1}, 3); mra != nil {
		t.Fatalf("expected nil for a one-sample signal: %+v", mra)
	}
}

func TestAnalyzeWithMRA(t *testing.T) {
	signal := testutil.Add(
		testutil.Sine(2, 256, 1, 0, 512),
		testutil.Noise(5, 0.2, 512),
	)

	res, err := Analyze(signal, Config{EnableMRA: true})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if res.MRA == nil {
		t.Fatal("MRA must be present when enabled")
	}
	if res.MRA.Levels != defaultMRALevels {
		t.Fatalf("default level mismatch: got %d want %d", res.MRA.Levels, defaultMRALevels)
	}
}
