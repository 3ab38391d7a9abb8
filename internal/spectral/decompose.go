package spectral

import (
	"errors"
	"fmt"
)

// ErrTooShort is returned when a sequence has fewer than two samples.
var ErrTooShort = errors.New("sequence too short")

// Coefficients holds a truncated trigonometric series
//
//	y(u) = A0 + sum_{k=1}^{M-1} A[k-1]*cos(k*u) + B[k-1]*sin(k*u)
//
// where M = ceil(n/2) for an n-sample input.
type Coefficients struct {
	A0 float64
	A  []float64
	B  []float64
	M  int
}

// Decompose extracts harmonic coefficients from y.
//
// Only bins 1..M-1 are kept. For odd n, evaluating all of them at the
// sample phases reproduces y exactly; for even n the Nyquist bin is dropped.
func Decompose(t Transformer, y []float64) (Coefficients, error) {
	n := len(y)
	if n < minSamples {
		return Coefficients{}, fmt.Errorf("%w: got %d samples, need %d", ErrTooShort, n, minSamples)
	}

	bins := t.Forward(y)
	m := (n + 1) / hermitianDivisor
	scale := coefficientScale / float64(n)

	c := Coefficients{
		A0: real(bins[0]) / float64(n),
		A:  make([]float64, m-1),
		B:  make([]float64, m-1),
		M:  m,
	}
	for k := 1; k < m; k++ {
		c.A[k-1] = real(bins[k]) * scale
		c.B[k-1] = -imag(bins[k]) * scale
	}
	return c, nil
}
