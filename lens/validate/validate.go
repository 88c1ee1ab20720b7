// Package validate provides the pre-flight quality gate applied to a signal
// before any lens runs on it.
package validate

import (
	"math"

	"github.com/fourlens/fourlens/stats"
)

// MinLength is the minimum number of samples a signal must carry to be
// considered analyzable.
const MinLength = 50

const (
	minStdDev   = 1e-10
	minVariance = 1e-8
)

// Report holds the named results of every quality check. Callers must
// branch on AllPassed before running a lens; a failed report is not an
// error condition.
type Report struct {
	SufficientLength   bool
	NotConstant        bool
	NoNaN              bool
	NoInf              bool
	SufficientVariance bool
	AllPassed          bool
}

// Check runs all quality checks on the signal. It never fails: a nil or
// empty signal simply fails every data-dependent check.
func Check(signal []float64) Report {
	r := Report{
		SufficientLength: len(signal) >= MinLength,
		NoNaN:            true,
		NoInf:            true,
	}

	for _, v := range signal {
		if math.IsNaN(v) {
			r.NoNaN = false
		}

		if math.IsInf(v, 0) {
			r.NoInf = false
		}
	}

	// Variance of a signal containing NaN or Inf is meaningless; only
	// evaluate spread checks on finite data.
	if r.NoNaN && r.NoInf && len(signal) > 0 {
		variance := stats.Variance(signal)
		r.NotConstant = math.Sqrt(variance) > minStdDev
		r.SufficientVariance = variance > minVariance
	}

	r.AllPassed = r.SufficientLength && r.NotConstant && r.NoNaN && r.NoInf && r.SufficientVariance

	return r
}
