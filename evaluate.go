package fourierseries

import (
	"fmt"
	"math"

	"github.com/jbhersch/fast-fourier-series/internal/simdops"
)

// Derivative selects what Evaluate returns.
type Derivative int

const (
	// Value evaluates the series itself.
	Value Derivative = iota

	// First evaluates the first derivative with respect to x.
	First

	// Second evaluates the second derivative with respect to x.
	Second
)

// Valid reports whether d is a supported derivative order.
func (d Derivative) Valid() bool {
	return d >= Value && d <= Second
}

// Evaluate is the package-level form of (*Model).Evaluate.
func Evaluate(model *Model, xs []float64, order int, deriv Derivative) ([]float64, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model is nil", ErrInvalidArgument)
	}
	return model.Evaluate(xs, order, deriv)
}

// Evaluate returns the truncated series, or its first or second
// derivative, at each abscissa in xs.
//
// order counts terms from the caller's side, DC included: order 1 is the
// DC term alone and order k sums harmonics 1..k-1. Orders above the
// available harmonics are clipped. OrderAll uses every retained harmonic.
// Abscissas outside the fitted domain follow the periodic extension.
//
// Evaluate allocates its own scratch space and never modifies the model.
func (m *Model) Evaluate(xs []float64, order int, deriv Derivative) ([]float64, error) {
	if !deriv.Valid() {
		return nil, fmt.Errorf("%w: derivative must be 0, 1 or 2, got %d", ErrInvalidArgument, deriv)
	}

	count, err := m.truncation(order)
	if err != nil {
		return nil, err
	}

	omega := 2 * math.Pi / m.period
	wc, ws := m.weights(deriv)

	ops := simdops.Float64Ops()
	cos := make([]float64, count)
	sin := make([]float64, count)
	out := make([]float64, len(xs))
	for i, x := range xs {
		simdops.Basis(cos, sin, omega*(x-m.xa))
		out[i] = ops.HarmonicSum(wc, ws, cos, sin)
	}

	// Chain rule through u = omega*(x - xa).
	switch deriv {
	case Value:
		for i := range out {
			out[i] += m.a0
		}
	case First:
		ops.Scale(out, out, omega)
	case Second:
		ops.Scale(out, out, omega*omega)
	}

	return out, nil
}

// EvaluateAt evaluates a single abscissa.
func (m *Model) EvaluateAt(x float64, order int, deriv Derivative) (float64, error) {
	out, err := m.Evaluate([]float64{x}, order, deriv)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// truncation resolves the caller's order into a harmonic count N.
func (m *Model) truncation(order int) (int, error) {
	if order < 0 {
		return 0, fmt.Errorf("%w: order must be positive or OrderAll, got %d", ErrInvalidArgument, order)
	}

	available := m.m - 1
	if order == OrderAll {
		return available, nil
	}
	return min(order-1, available), nil
}

// weights returns the cosine and sine weight vectors for deriv.
func (m *Model) weights(deriv Derivative) (wc, ws []float64) {
	switch deriv {
	case First:
		return m.d1c, m.d1s
	case Second:
		return m.d2c, m.d2s
	default:
		return m.a, m.b
	}
}
