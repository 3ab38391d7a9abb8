// Package spectral implements the discrete Fourier decomposition of a
// uniformly sampled real sequence into harmonic coefficients, and the
// frequency-domain noise filter built on top of it.
package spectral

import (
	"github.com/mjibson/go-dsp/fft"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer computes forward and inverse DFTs of real sequences.
//
// Forward returns the non-redundant half of the spectrum, bins 0..n/2.
// Bins above n/2 are complex conjugates of earlier bins for real input.
// Inverse takes the same half-spectrum layout and returns a normalized
// real sequence of length n (the inverse of Forward, not n times it).
type Transformer interface {
	Forward(seq []float64) []complex128
	Inverse(coeffs []complex128, n int) []float64
	Name() string
}

// Backend names.
const (
	BackendGonum = "gonum"
	BackendGoDSP = "go-dsp"
)

// Gonum is a Transformer backed by gonum's real FFT.
// A new plan is created per call so the value carries no mutable state.
type Gonum struct{}

// NewGonum returns the gonum backend.
func NewGonum() *Gonum {
	return &Gonum{}
}

// Forward returns bins 0..n/2 of the DFT of seq.
func (g *Gonum) Forward(seq []float64) []complex128 {
	if len(seq) == 0 {
		return []complex128{}
	}
	return fourier.NewFFT(len(seq)).Coefficients(nil, seq)
}

// Inverse reconstructs a length-n sequence from its half spectrum.
func (g *Gonum) Inverse(coeffs []complex128, n int) []float64 {
	if n == 0 {
		return []float64{}
	}
	seq := fourier.NewFFT(n).Sequence(nil, coeffs)

	// gonum does not normalize the inverse
	f64.Scale(seq, seq, 1.0/float64(n))
	return seq
}

// Name returns the backend name.
func (g *Gonum) Name() string {
	return BackendGonum
}

// GoDSP is a Transformer backed by github.com/mjibson/go-dsp, which computes
// the full complex spectrum for any length.
type GoDSP struct{}

// NewGoDSP returns the go-dsp backend.
func NewGoDSP() *GoDSP {
	return &GoDSP{}
}

// Forward returns bins 0..n/2 of the DFT of seq.
func (g *GoDSP) Forward(seq []float64) []complex128 {
	if len(seq) == 0 {
		return []complex128{}
	}
	full := fft.FFTReal(seq)
	return full[:halfLen(len(seq))]
}

// Inverse mirrors the half spectrum into a full Hermitian spectrum and
// returns the real part of go-dsp's normalized inverse.
func (g *GoDSP) Inverse(coeffs []complex128, n int) []float64 {
	if n == 0 {
		return []float64{}
	}
	full := make([]complex128, n)
	copy(full, coeffs[:halfLen(n)])
	for k := halfLen(n); k < n; k++ {
		c := coeffs[n-k]
		full[k] = complex(real(c), -imag(c))
	}

	result := fft.IFFT(full)
	seq := make([]float64, n)
	for i, v := range result {
		seq[i] = real(v)
	}
	return seq
}

// Name returns the backend name.
func (g *GoDSP) Name() string {
	return BackendGoDSP
}

// ForName returns the backend registered under name.
// The empty name selects gonum.
func ForName(name string) (Transformer, bool) {
	switch name {
	case "", BackendGonum:
		return NewGonum(), true
	case BackendGoDSP:
		return NewGoDSP(), true
	default:
		return nil, false
	}
}

// halfLen is the number of unique bins in the spectrum of n real samples.
func halfLen(n int) int {
	return n/hermitianDivisor + 1
}
