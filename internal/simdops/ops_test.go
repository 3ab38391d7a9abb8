package simdops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasis(t *testing.T) {
	cos := make([]float64, 5)
	sin := make([]float64, 5)
	Basis(cos, sin, 0.7)
	for k := range cos {
		assert.InDelta(t, math.Cos(float64(k+1)*0.7), cos[k], 1e-15)
		assert.InDelta(t, math.Sin(float64(k+1)*0.7), sin[k], 1e-15)
	}
}

func TestHarmonicSum_MatchesScalar(t *testing.T) {
	wc := []float64{1, -2, 0.5, 3, 0.25, 9}
	ws := []float64{0, 1, -1, 2, 0.5, 9}
	cos := make([]float64, 5)
	sin := make([]float64, 5)
	Basis(cos, sin, 1.3)

	var want float64
	for k := range cos {
		want += wc[k]*cos[k] + ws[k]*sin[k]
	}

	assert.InDelta(t, want, Float64Ops().HarmonicSum(wc, ws, cos, sin), 1e-12)
	assert.InDelta(t, want, ScalarOps().HarmonicSum(wc, ws, cos, sin), 1e-12)
}

func TestHarmonicSum_Empty(t *testing.T) {
	assert.Zero(t, Float64Ops().HarmonicSum(nil, nil, nil, nil))
}

func TestScale(t *testing.T) {
	for _, ops := range []*Ops{Float64Ops(), ScalarOps()} {
		v := []float64{1, 2, 3, 4, 5}
		ops.Scale(v, v, 2)
		assert.InDeltaSlice(t, []float64{2, 4, 6, 8, 10}, v, 0)
	}
}
