package pass

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/fourlens/fourlens/dsp/filter/biquad"
)

func TestButterworthLPInvalidParams(t *testing.T) {
	cases := []struct {
		freq       float64
		order      int
		sampleRate float64
	}{
		{0, 4, 48000},
		{-100, 4, 48000},
		{1000, 0, 48000},
		{1000, 4, 0},
		{24000, 4, 48000}, // at Nyquist
		{30000, 4, 48000}, // above Nyquist
	}

	for _, c := range cases {
		if got := ButterworthLP(c.freq, c.order, c.sampleRate); got != nil {
			t.Fatalf("expected nil for freq=%f order=%d rate=%f", c.freq, c.order, c.sampleRate)
		}
	}
}

func TestButterworthLPSectionCount(t *testing.T) {
	cases := []struct{ order, sections int }{
		{1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 4},
	}

	for _, c := range cases {
		sections := ButterworthLP(1000, c.order, 48000)
		if len(sections) != c.sections {
			t.Fatalf("order %d: got %d sections, want %d", c.order, len(sections), c.sections)
		}
	}
}

func TestButterworthLPOddOrderFirstOrderTail(t *testing.T) {
	sections := ButterworthLP(1000, 5, 48000)

	last := sections[len(sections)-1]
	if last.B2 != 0 || last.A2 != 0 {
		t.Fatalf("odd-order tail must be first-order: B2=%f A2=%f", last.B2, last.A2)
	}
}

func TestButterworthLPUnityDCGain(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 6} {
		for _, section := range ButterworthLP(500, order, 8000) {
			num := section.B0 + section.B1 + section.B2
			den := 1 + section.A1 + section.A2
			if math.Abs(num/den-1) > 1e-12 {
				t.Fatalf("order %d: DC gain mismatch: got %v", order, num/den)
			}
		}
	}
}

func TestButterworthLPStablePoles(t *testing.T) {
	for _, order := range []int{2, 4, 5, 8} {
		for _, section := range ButterworthLP(2000, order, 48000) {
			for _, p := range section.Poles() {
				if cmplx.Abs(p) >= 1 {
					t.Fatalf("order %d: pole outside unit circle: %v", order, p)
				}
			}
		}
	}
}

func TestButterworthLPAttenuation(t *testing.T) {
	const (
		sampleRate = 1000.0
		cutoff     = 50.0
		n          = 4000
	)

	chain := biquad.NewChain(ButterworthLP(cutoff, 4, sampleRate))

	// Passband tone at cutoff/5.
	pass := make([]float64, n)
	for i := range pass {
		pass[i] = math.Sin(2 * math.Pi * 10 * float64(i) / sampleRate)
	}
	chain.ProcessBlock(pass)

	// Stopband tone at 5x cutoff.
	chain.Reset()
	stop := make([]float64, n)
	for i := range stop {
		stop[i] = math.Sin(2 * math.Pi * 250 * float64(i) / sampleRate)
	}
	chain.ProcessBlock(stop)

	passRMS := rms(pass[n/2:])
	stopRMS := rms(stop[n/2:])

	if passRMS < 0.6 {
		t.Fatalf("passband tone attenuated too much: RMS %f", passRMS)
	}

	// 4th-order Butterworth at 5x cutoff: roughly 56 dB down.
	if stopRMS > 0.01*passRMS {
		t.Fatalf("stopband tone not attenuated: pass RMS %f, stop RMS %f", passRMS, stopRMS)
	}
}

func TestLowpassRBJDefaultsQ(t *testing.T) {
	got := LowpassRBJ(1000, 0, 48000)
	want := LowpassRBJ(1000, 1/math.Sqrt2, 48000)

	if got != want {
		t.Fatalf("non-positive q must fall back to Butterworth q: got %+v want %+v", got, want)
	}
}

func TestLowpassRBJInvalidParams(t *testing.T) {
	if got := LowpassRBJ(0, 0.7, 48000); got != (biquad.Coefficients{}) {
		t.Fatalf("expected zero coefficients: %+v", got)
	}
	if got := LowpassRBJ(1000, 0.7, 0); got != (biquad.Coefficients{}) {
		t.Fatalf("expected zero coefficients: %+v", got)
	}
}

func rms(buf []float64) float64 {
	var sumSq float64
	for _, v := range buf {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(buf)))
}
