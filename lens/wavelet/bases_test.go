package wavelet

import (
	"math"
	"testing"
)

func TestCatalogue(t *testing.T) {
	cat := Catalogue()
	if len(cat) != 4 {
		t.Fatalf("catalogue size mismatch: got %d", len(cat))
	}

	want := map[Type]string{
		Morlet:        "morlet",
		MexicanHat:    "mexican_hat",
		GaussianDeriv: "gaussian_deriv",
		Paul:          "paul",
	}
	for _, basis := range cat {
		if basis.String() != want[basis] {
			t.Fatalf("name mismatch for %d: got %q want %q", basis, basis.String(), want[basis])
		}
	}

	if Type(99).String() != "unknown" {
		t.Fatalf("unexpected name for invalid type: %q", Type(99).String())
	}
}

func TestKernelUnitEnergy(t *testing.T) {
	// Every catalogue basis is unit-energy; the sampled kernel at a
	// moderate scale approximates the integral closely.
	for _, basis := range Catalogue() {
		kern, half, err := basis.kernel(8)
		if err != nil {
			t.Fatalf("%v: kernel failed: %v", basis, err)
		}
		if len(kern) != 2*half+1 {
			t.Fatalf("%v: kernel length mismatch: %d vs half %d", basis, len(kern), half)
		}

		energy := 0.0
		for _, c := range kern {
			energy += real(c)*real(c) + imag(c)*imag(c)
		}

		if math.Abs(energy-1) > 0.05 {
			t.Fatalf("%v: kernel energy mismatch: got %f want ~1", basis, energy)
		}
	}
}

func TestKernelRejectsNonPositiveScale(t *testing.T) {
	if _, _, err := Morlet.kernel(0); err == nil {
		t.Fatal("expected error for zero scale")
	}
	if _, _, err := Morlet.kernel(-2); err == nil {
		t.Fatal("expected error for negative scale")
	}
}

func TestMexicanHatIsReal(t *testing.T) {
	for _, x := range []float64{-2, -0.5, 0, 0.5, 2} {
		if imag(MexicanHat.eval(x)) != 0 {
			t.Fatalf("Mexican hat must be real-valued at %f", x)
		}
		if imag(GaussianDeriv.eval(x)) != 0 {
			t.Fatalf("Gaussian derivative must be real-valued at %f", x)
		}
	}

	// Zero crossings of the Mexican hat sit at |x| = 1.
	if v := real(MexicanHat.eval(1)); math.Abs(v) > 1e-12 {
		t.Fatalf("Mexican hat must vanish at x=1: got %g", v)
	}
}

func TestGaussianDerivIsOdd(t *testing.T) {
	for _, x := range []float64{0.25, 1, 3} {
		pos := real(GaussianDeriv.eval(x))
		neg := real(GaussianDeriv.eval(-x))
		if math.Abs(pos+neg) > 1e-12 {
			t.Fatalf("Gaussian derivative must be odd: psi(%f)=%g psi(%f)=%g", x, pos, -x, neg)
		}
	}

	if v := real(GaussianDeriv.eval(0)); v != 0 {
		t.Fatalf("Gaussian derivative must vanish at 0: got %g", v)
	}
}

func TestMorletModulus(t *testing.T) {
	// |psi(x)| is the Gaussian envelope, independent of the carrier phase.
	for _, x := range []float64{0, 0.5, 1.5} {
		c := Morlet.eval(x)
		mod := math.Hypot(real(c), imag(c))
		want := math.Pow(math.Pi, -0.25) * math.Exp(-x*x/2)
		if math.Abs(mod-want) > 1e-12 {
			t.Fatalf("Morlet modulus mismatch at %f: got %g want %g", x, mod, want)
		}
	}
}
