package wavelet

import (
	"fmt"
	"math"
)

// Type identifies a continuous mother wavelet from the closed catalogue.
// Every basis exposes the same sampled-kernel capability, so the
// auto-selector can iterate the catalogue generically.
type Type int

const (
	Morlet Type = iota
	MexicanHat
	GaussianDeriv
	Paul
)

// Catalogue returns every continuous basis available for auto-selection.
func Catalogue() []Type {
	return []Type{Morlet, MexicanHat, GaussianDeriv, Paul}
}

// String returns the basis name.
func (t Type) String() string {
	switch t {
	case Morlet:
		return "morlet"
	case MexicanHat:
		return "mexican_hat"
	case GaussianDeriv:
		return "gaussian_deriv"
	case Paul:
		return "paul"
	default:
		return "unknown"
	}
}

// Center frequency of the Morlet carrier. The common choice 6 makes the
// wavelet admissible in practice while keeping good time resolution.
const morletOmega0 = 6.0

// Order of the Paul wavelet.
const paulOrder = 4

// supportRadius returns the half-width of the effective support in units of
// the scale. Samples beyond this radius are negligible for kernel purposes.
func (t Type) supportRadius() float64 {
	switch t {
	case Paul:
		// Algebraic decay |x|^-(m+1) needs a wider cut than the Gaussians.
		return 10
	default:
		return 5
	}
}

// eval returns the mother wavelet value at dimensionless position x = t/s.
func (t Type) eval(x float64) complex128 {
	switch t {
	case Morlet:
		gauss := math.Exp(-x * x / 2)
		norm := math.Pow(math.Pi, -0.25)
		s, c := math.Sincos(morletOmega0 * x)
		return complex(norm*gauss*c, norm*gauss*s)

	case MexicanHat:
		norm := 2 / (math.Sqrt(3) * math.Pow(math.Pi, 0.25))
		return complex(norm*(1-x*x)*math.Exp(-x*x/2), 0)

	case GaussianDeriv:
		norm := math.Sqrt2 * math.Pow(math.Pi, -0.25)
		return complex(-norm*x*math.Exp(-x*x/2), 0)

	case Paul:
		// psi(x) = (2^m * i^m * m!) / sqrt(pi*(2m)!) * (1-ix)^-(m+1)
		m := paulOrder
		norm := math.Exp2(float64(m)) * factorial(m) / math.Sqrt(math.Pi*factorial(2*m))
		// (1 - ix)^-(m+1)
		base := complex(1, -x)
		inv := 1 / powComplex(base, m+1)
		// i^4 = 1 for the order used here.
		return complex(norm, 0) * inv

	default:
		return 0
	}
}

// kernel samples the conjugate-ready wavelet at integer offsets for the
// given scale, normalized by 1/sqrt(scale) to preserve energy across scales.
// The returned slice covers offsets [-half, half].
func (t Type) kernel(scale float64) ([]complex128, int, error) {
	if scale <= 0 {
		return nil, 0, fmt.Errorf("wavelet: scale must be > 0: %f", scale)
	}

	half := int(math.Ceil(t.supportRadius() * scale))
	if half < 1 {
		half = 1
	}

	norm := complex(1/math.Sqrt(scale), 0)
	out := make([]complex128, 2*half+1)
	for j := -half; j <= half; j++ {
		out[j+half] = norm * t.eval(float64(j)/scale)
	}

	return out, half, nil
}

func factorial(n int) float64 {
	out := 1.0
	for i := 2; i <= n; i++ {
		out *= float64(i)
	}
	return out
}

func powComplex(z complex128, n int) complex128 {
	out := complex(1, 0)
	for i := 0; i < n; i++ {
		out *= z
	}
	return out
}
