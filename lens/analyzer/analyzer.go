// Package analyzer provides the facade that aggregates the four lenses
// behind a shared sampling context: validate once, then dispatch to any or
// all of the Fourier, wavelet, Laplace, and z-transform lenses.
package analyzer

import (
	"errors"
	"fmt"

	"github.com/fourlens/fourlens/dsp/core"
	"github.com/fourlens/fourlens/lens/fourier"
	"github.com/fourlens/fourlens/lens/laplace"
	"github.com/fourlens/fourlens/lens/validate"
	"github.com/fourlens/fourlens/lens/wavelet"
	"github.com/fourlens/fourlens/lens/ztrans"
)

// ErrValidationFailed is returned by AnalyzeAll when the pre-flight quality
// gate rejects the signal. The accompanying Summary still carries the
// report so callers can inspect which check failed.
var ErrValidationFailed = errors.New("analyzer: signal failed validation")

// Kind discriminates the per-lens results aggregated by AnalyzeAll.
type Kind int

const (
	KindFourier Kind = iota
	KindWavelet
	KindLaplace
	KindZTransform
)

// String returns the lens name.
func (k Kind) String() string {
	switch k {
	case KindFourier:
		return "fourier"
	case KindWavelet:
		return "wavelet"
	case KindLaplace:
		return "laplace"
	case KindZTransform:
		return "ztransform"
	default:
		return "unknown"
	}
}

// Result is a tagged union over the four lens result types: exactly the
// pointer matching Kind is non-nil.
type Result struct {
	Kind       Kind
	Fourier    *fourier.Result
	Wavelet    *wavelet.Result
	Laplace    *laplace.Result
	ZTransform *ztrans.Result
}

// Summary aggregates one validation report and the results of every lens
// that ran.
type Summary struct {
	Report  validate.Report
	Results []Result
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithHarmonics enables iterative harmonic extraction on the Fourier lens,
// capped at maxHarmonics components (0 keeps the default cap).
func WithHarmonics(maxHarmonics int) Option {
	return func(a *Analyzer) {
		a.detectHarmonics = true
		a.maxHarmonics = maxHarmonics
	}
}

// WithWavelet fixes the CWT basis instead of the default Morlet.
func WithWavelet(t wavelet.Type) Option {
	return func(a *Analyzer) {
		a.waveletType = t
		a.autoSelect = false
	}
}

// WithAutoSelect enables wavelet basis auto-selection.
func WithAutoSelect() Option {
	return func(a *Analyzer) {
		a.autoSelect = true
	}
}

// WithMRA enables the multi-resolution decomposition at the given depth
// (0 keeps the default depth).
func WithMRA(levels int) Option {
	return func(a *Analyzer) {
		a.enableMRA = true
		a.mraLevels = levels
	}
}

// WithCutoff sets the z-transform lens lowpass cutoff in Hz.
func WithCutoff(freq float64) Option {
	return func(a *Analyzer) {
		a.cutoff = freq
	}
}

// WithFilterOrder sets the z-transform lens Butterworth order.
func WithFilterOrder(order int) Option {
	return func(a *Analyzer) {
		a.filterOrder = order
	}
}

// Analyzer dispatches signals to the four lenses. It holds only immutable
// configuration, so one Analyzer is safe for concurrent use; every analysis
// threads its working state through locals.
type Analyzer struct {
	ctx core.Context

	detectHarmonics bool
	maxHarmonics    int
	waveletType     wavelet.Type
	autoSelect      bool
	enableMRA       bool
	mraLevels       int
	cutoff          float64
	filterOrder     int
}

// New creates an Analyzer for the given sampling rate (samples/second).
func New(sampleRate float64, opts ...Option) (*Analyzer, error) {
	ctx, err := core.NewContext(sampleRate)
	if err != nil {
		return nil, err
	}

	a := &Analyzer{ctx: ctx}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a, nil
}

// Context returns the shared sampling context.
func (a *Analyzer) Context() core.Context { return a.ctx }

// Validate runs the pre-flight quality gate.
func (a *Analyzer) Validate(signal []float64) validate.Report {
	return validate.Check(signal)
}

// Fourier runs the frequency-domain rhythm lens.
func (a *Analyzer) Fourier(signal []float64) (fourier.Result, error) {
	return fourier.Analyze(signal, a.fourierConfig())
}

// FourierTimestamps runs the Fourier lens with explicit timestamps.
func (a *Analyzer) FourierTimestamps(signal, timestamps []float64) (fourier.Result, error) {
	return fourier.AnalyzeTimestamps(signal, timestamps, a.fourierConfig())
}

// Wavelet runs the time-frequency transient lens.
func (a *Analyzer) Wavelet(signal []float64) (wavelet.Result, error) {
	return wavelet.Analyze(signal, wavelet.Config{
		SampleRate: a.ctx.SampleRate(),
		Wavelet:    a.waveletType,
		AutoSelect: a.autoSelect,
		EnableMRA:  a.enableMRA,
		MRALevels:  a.mraLevels,
	})
}

// Laplace runs the stability-classification lens.
func (a *Analyzer) Laplace(signal []float64) (laplace.Result, error) {
	return laplace.Analyze(signal, laplace.Config{SampleRate: a.ctx.SampleRate()})
}

// ZTransform runs the digital-filter denoising lens.
func (a *Analyzer) ZTransform(signal []float64) (ztrans.Result, error) {
	return ztrans.Analyze(signal, ztrans.Config{
		SampleRate:      a.ctx.SampleRate(),
		CutoffFrequency: a.cutoff,
		Order:           a.filterOrder,
	})
}

// AnalyzeAll validates the signal once and, when it passes, runs all four
// lenses. The returned Summary always carries the validation report; on
// validation failure the error is ErrValidationFailed.
func (a *Analyzer) AnalyzeAll(signal []float64) (Summary, error) {
	summary := Summary{Report: a.Validate(signal)}
	if !summary.Report.AllPassed {
		return summary, ErrValidationFailed
	}

	fr, err := a.Fourier(signal)
	if err != nil {
		return summary, fmt.Errorf("analyzer: fourier lens: %w", err)
	}
	summary.Results = append(summary.Results, Result{Kind: KindFourier, Fourier: &fr})

	wr, err := a.Wavelet(signal)
	if err != nil {
		return summary, fmt.Errorf("analyzer: wavelet lens: %w", err)
	}
	summary.Results = append(summary.Results, Result{Kind: KindWavelet, Wavelet: &wr})

	lr, err := a.Laplace(signal)
	if err != nil {
		return summary, fmt.Errorf("analyzer: laplace lens: %w", err)
	}
	summary.Results = append(summary.Results, Result{Kind: KindLaplace, Laplace: &lr})

	zr, err := a.ZTransform(signal)
	if err != nil {
		return summary, fmt.Errorf("analyzer: ztransform lens: %w", err)
	}
	summary.Results = append(summary.Results, Result{Kind: KindZTransform, ZTransform: &zr})

	return summary, nil
}

func (a *Analyzer) fourierConfig() fourier.Config {
	return fourier.Config{
		SampleRate:      a.ctx.SampleRate(),
		DetectHarmonics: a.detectHarmonics,
		MaxHarmonics:    a.maxHarmonics,
	}
}
