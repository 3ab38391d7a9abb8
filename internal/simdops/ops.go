// Package simdops provides the SIMD kernels used to sum harmonic series.
//
// Series evaluation reduces to dot products between coefficient vectors and
// per-point cosine/sine vectors, so the hot path is two SIMD dot products
// per evaluated abscissa.
package simdops

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// Ops bundles the kernels behind function pointers so tests and benchmarks
// can swap in the scalar reference.
type Ops struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)
}

var (
	ops64 = Ops{
		DotProductUnsafe: f64.DotProductUnsafe,
		Scale:            f64.Scale,
	}
	scalar = Ops{
		DotProductUnsafe: scalarDot,
		Scale:            scalarScale,
	}
)

// Float64Ops returns the SIMD-accelerated kernels.
func Float64Ops() *Ops {
	return &ops64
}

// ScalarOps returns plain Go reference kernels.
func ScalarOps() *Ops {
	return &scalar
}

// Basis fills cos[k-1] = cos(k*u) and sin[k-1] = sin(k*u) for k = 1..len(cos).
// Both slices must have the same length.
func Basis(cos, sin []float64, u float64) {
	for k := range cos {
		sin[k], cos[k] = math.Sincos(float64(k+1) * u)
	}
}

// HarmonicSum returns sum_k wc[k]*cos[k] + ws[k]*sin[k] over the first
// len(cos) harmonics. wc and ws may be longer than cos; they are truncated.
func (o *Ops) HarmonicSum(wc, ws, cos, sin []float64) float64 {
	n := len(cos)
	if n == 0 {
		return 0
	}
	return o.DotProductUnsafe(wc[:n], cos) + o.DotProductUnsafe(ws[:n], sin)
}

func scalarDot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func scalarScale(dst, a []float64, s float64) {
	for i := range a {
		dst[i] = a[i] * s
	}
}
