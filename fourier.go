package fourierseries

import (
	"errors"
	"fmt"
	"math"

	"github.com/jbhersch/fast-fourier-series/internal/padding"
	"github.com/jbhersch/fast-fourier-series/internal/spectral"
)

// PaddingStrategy selects the formula that synthesizes the padded tail.
type PaddingStrategy = padding.Strategy

const (
	// PadNeville fits one cubic through the last two samples and the first
	// two samples moved to the wrap point. The series at the wrap point
	// reproduces the head value exactly. This is the default.
	PadNeville = padding.Neville

	// PadBlend blends a tail line and a head line across the gap. The
	// padded curve starts at the last sample with the tail slope and ends at
	// the head value with the head slope.
	PadBlend = padding.Blend
)

// ParsePadding maps "neville" or "blend" to a PaddingStrategy. The empty
// name selects PadNeville.
func ParsePadding(name string) (PaddingStrategy, error) {
	s, err := padding.ParseStrategy(name)
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s, nil
}

// Backend names the FFT implementation used for decomposition and filtering.
type Backend string

const (
	// BackendGonum uses gonum's real FFT. This is the default.
	BackendGonum Backend = spectral.BackendGonum

	// BackendGoDSP uses github.com/mjibson/go-dsp.
	BackendGoDSP Backend = spectral.BackendGoDSP
)

// Config holds model construction parameters.
type Config struct {
	// Pad is the number of synthetic samples appended past the last
	// abscissa so the series closes smoothly onto its head. 0 disables
	// padding.
	Pad int

	// Threshold enables the noise filter when in (0, 1): every harmonic
	// with magnitude below Threshold times the largest non-DC magnitude is
	// zeroed before padding. Other values disable filtering.
	Threshold float64

	// Padding selects the padding formula.
	Padding PaddingStrategy

	// Backend selects the FFT implementation. Empty means BackendGonum.
	Backend Backend

	// EnableParallel fits the signals of a FitMulti call concurrently.
	// Has no effect on single-signal construction.
	EnableParallel bool
}

// Common errors returned by the package.
var (
	// ErrInvalidInput indicates samples or construction parameters that
	// cannot produce a valid model.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidArgument indicates an invalid evaluation argument.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DefaultConfig returns a configuration with filtering and padding disabled.
func DefaultConfig() *Config {
	return &Config{
		Padding: PadNeville,
		Backend: BackendGonum,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Pad < 0 {
		return fmt.Errorf("%w: pad must be non-negative, got %d", ErrInvalidInput, c.Pad)
	}

	if math.IsNaN(c.Threshold) {
		return fmt.Errorf("%w: threshold is NaN", ErrInvalidInput)
	}

	if !c.Padding.Valid() {
		return fmt.Errorf("%w: unknown padding strategy %v", ErrInvalidInput, c.Padding)
	}

	if _, ok := spectral.ForName(string(c.Backend)); !ok {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidInput, c.Backend)
	}

	return nil
}

// Info describes how a model was built.
type Info struct {
	// Backend is the FFT implementation in use.
	Backend Backend

	// Padding is the padding formula. Meaningful only when Pad > 0.
	Padding PaddingStrategy

	// Pad is the number of synthetic samples appended.
	Pad int

	// Filtered reports whether the noise filter ran.
	Filtered bool

	// KeptBins is the number of non-DC spectral bins (up to n/2) that
	// survived the noise filter. Equal to n/2 when the filter is off.
	KeptBins int
}

// Model is a truncated Fourier series fitted to uniformly spaced samples.
// A Model is immutable after construction and safe for concurrent use.
type Model struct {
	x, y []float64
	n0   int

	xa, xb float64
	h      float64
	period float64

	m  int
	a0 float64
	a  []float64
	b  []float64

	// Derivative weights, indexed like a and b.
	d1c, d1s []float64 // k*b, -k*a
	d2c, d2s []float64 // -k^2*a, -k^2*b

	info Info
}

// Fit builds a model from samples with the default padding formula and
// FFT backend. pad = 0 disables padding; threshold outside (0, 1)
// disables noise filtering.
func Fit(x, y []float64, pad int, threshold float64) (*Model, error) {
	config := DefaultConfig()
	config.Pad = pad
	config.Threshold = threshold
	return New(x, y, config)
}

// New builds a model from samples (x[i], y[i]).
//
// x must hold at least two finite, strictly increasing, uniformly spaced
// values and y must have the same length. Construction runs the optional
// noise filter, then the optional padding, then the decomposition. A nil
// config uses DefaultConfig. The inputs are copied and never modified.
func New(x, y []float64, config *Config) (*Model, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := validateSamples(x, y); err != nil {
		return nil, err
	}

	t, _ := spectral.ForName(string(config.Backend))
	info := Info{
		Backend: Backend(t.Name()),
		Padding: config.Padding,
		Pad:     config.Pad,
	}

	var filtered []float64
	filtered, info.KeptBins = spectral.Denoise(t, y, config.Threshold)
	info.Filtered = spectral.Active(config.Threshold)

	xs, ys, err := padding.Extend(x, filtered, config.Pad, config.Padding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	coeffs, err := spectral.Decompose(t, ys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	n := len(xs)
	h := (xs[n-1] - xs[0]) / float64(n-1)
	model := &Model{
		x:      xs,
		y:      ys,
		n0:     len(x),
		xa:     xs[0],
		xb:     xs[n-1],
		h:      h,
		period: xs[n-1] - xs[0] + h,
		m:      coeffs.M,
		a0:     coeffs.A0,
		a:      coeffs.A,
		b:      coeffs.B,
		info:   info,
	}
	model.precomputeDerivatives()
	return model, nil
}

// precomputeDerivatives fills the derivative weight vectors so evaluation
// of every order is the same pair of dot products.
func (m *Model) precomputeDerivatives() {
	count := len(m.a)
	m.d1c = make([]float64, count)
	m.d1s = make([]float64, count)
	m.d2c = make([]float64, count)
	m.d2s = make([]float64, count)
	for i := range count {
		k := float64(i + 1)
		m.d1c[i] = k * m.b[i]
		m.d1s[i] = -k * m.a[i]
		m.d2c[i] = -k * k * m.a[i]
		m.d2s[i] = -k * k * m.b[i]
	}
}

// validateSamples checks the sample preconditions.
func validateSamples(x, y []float64) error {
	if len(x) < minSamples {
		return fmt.Errorf("%w: need at least %d samples, got %d", ErrInvalidInput, minSamples, len(x))
	}

	if len(x) != len(y) {
		return fmt.Errorf("%w: x has %d samples but y has %d", ErrInvalidInput, len(x), len(y))
	}

	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return fmt.Errorf("%w: non-finite sample at index %d", ErrInvalidInput, i)
		}
	}

	h := (x[len(x)-1] - x[0]) / float64(len(x)-1)
	scale := math.Max(math.Abs(x[0]), math.Abs(x[len(x)-1]))
	tol := math.Max(spacingTolerance*h, roundingSlack*epsilon*scale)
	for i := 1; i < len(x); i++ {
		step := x[i] - x[i-1]
		if step <= 0 {
			return fmt.Errorf("%w: x not strictly increasing at index %d", ErrInvalidInput, i)
		}
		if math.Abs(step-h) > tol {
			return fmt.Errorf("%w: x not uniformly spaced at index %d (step %g, mean %g)", ErrInvalidInput, i, step, h)
		}
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// X returns a copy of the abscissas, including padded ones.
func (m *Model) X() []float64 {
	return append([]float64(nil), m.x...)
}

// Y returns a copy of the (filtered, padded) sample values the series was
// fitted to. The first OriginalLen values belong to the input.
func (m *Model) Y() []float64 {
	return append([]float64(nil), m.y...)
}

// OriginalLen returns the sample count before padding.
func (m *Model) OriginalLen() int {
	return m.n0
}

// Len returns the sample count after padding.
func (m *Model) Len() int {
	return len(m.x)
}

// Domain returns the first and last abscissa of the padded series.
func (m *Model) Domain() (xa, xb float64) {
	return m.xa, m.xb
}

// Spacing returns the uniform sample spacing h.
func (m *Model) Spacing() float64 {
	return m.h
}

// Period returns the fundamental period L = (xb - xa) + h.
func (m *Model) Period() float64 {
	return m.period
}

// Harmonics returns m = ceil(n/2), the number of retained terms including
// the DC term.
func (m *Model) Harmonics() int {
	return m.m
}

// DC returns the zero-frequency term a0.
func (m *Model) DC() float64 {
	return m.a0
}

// Coefficients returns copies of the cosine and sine coefficients.
// Index 0 holds harmonic 1.
func (m *Model) Coefficients() (a, b []float64) {
	return append([]float64(nil), m.a...), append([]float64(nil), m.b...)
}

// Info returns construction details.
func (m *Model) Info() Info {
	return m.info
}
