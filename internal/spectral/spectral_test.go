package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func backends() []Transformer {
	return []Transformer{NewGonum(), NewGoDSP()}
}

// twoTone returns a large sine at bin 4 plus a small cosine at bin 9.
func twoTone(n int) []float64 {
	y := make([]float64, n)
	for i := range y {
		phase := 2 * math.Pi * float64(i) / float64(n)
		y[i] = 3*math.Sin(4*phase) + 0.2*math.Cos(9*phase)
	}
	return y
}

// nonZero counts the harmonics in c whose amplitude exceeds tol.
func nonZero(c Coefficients, tol float64) int {
	count := 0
	for k := range c.A {
		if cmplx.Abs(complex(c.A[k], c.B[k])) > tol {
			count++
		}
	}
	return count
}

// countingTransformer records how often each direction is used.
type countingTransformer struct {
	Transformer
	forward, inverse int
}

func (c *countingTransformer) Forward(seq []float64) []complex128 {
	c.forward++
	return c.Transformer.Forward(seq)
}

func (c *countingTransformer) Inverse(coeffs []complex128, n int) []float64 {
	c.inverse++
	return c.Transformer.Inverse(coeffs, n)
}

func TestTransformer_RoundTrip(t *testing.T) {
	for _, tr := range backends() {
		for _, n := range []int{2, 3, 8, 49, 50} {
			y := make([]float64, n)
			for i := range y {
				y[i] = math.Exp(-float64(i)/7) + 0.1*float64(i%3)
			}

			bins := tr.Forward(y)
			require.Len(t, bins, n/2+1, "%s n=%d", tr.Name(), n)

			back := tr.Inverse(bins, n)
			require.Len(t, back, n)
			assert.InDeltaSlice(t, y, back, tolerance, "%s n=%d", tr.Name(), n)
		}
	}
}

func TestTransformer_BackendsAgree(t *testing.T) {
	y := twoTone(37)
	a := NewGonum().Forward(y)
	b := NewGoDSP().Forward(y)
	require.Len(t, b, len(a))
	for k := range a {
		assert.InDelta(t, real(a[k]), real(b[k]), tolerance, "bin %d real", k)
		assert.InDelta(t, imag(a[k]), imag(b[k]), tolerance, "bin %d imag", k)
	}
}

func TestForName(t *testing.T) {
	tr, ok := ForName("")
	require.True(t, ok)
	assert.Equal(t, BackendGonum, tr.Name())

	tr, ok = ForName(BackendGoDSP)
	require.True(t, ok)
	assert.Equal(t, BackendGoDSP, tr.Name())

	_, ok = ForName("fftw")
	assert.False(t, ok)
}

func TestDecompose_TooShort(t *testing.T) {
	_, err := Decompose(NewGonum(), []float64{1})
	require.ErrorIs(t, err, ErrTooShort)
}

func TestDecompose_KnownHarmonics(t *testing.T) {
	for _, tr := range backends() {
		const n = 64
		y := make([]float64, n)
		for i := range y {
			phase := 2 * math.Pi * float64(i) / n
			y[i] = 1.5 + 2*math.Cos(3*phase) - 0.5*math.Sin(5*phase)
		}

		c, err := Decompose(tr, y)
		require.NoError(t, err)
		assert.Equal(t, 32, c.M)
		assert.Len(t, c.A, 31)
		assert.Len(t, c.B, 31)
		assert.InDelta(t, 1.5, c.A0, tolerance)
		assert.InDelta(t, 2.0, c.A[2], tolerance)
		assert.InDelta(t, -0.5, c.B[4], tolerance)
		assert.Equal(t, 2, nonZero(c, 1e-9), tr.Name())
	}
}

func TestDecompose_HarmonicCount(t *testing.T) {
	tests := []struct {
		n     int
		wantM int
	}{
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{50, 25},
		{51, 26},
	}
	for _, tt := range tests {
		c, err := Decompose(NewGonum(), make([]float64, tt.n))
		require.NoError(t, err)
		assert.Equal(t, tt.wantM, c.M, "n=%d", tt.n)
		assert.Len(t, c.A, tt.wantM-1, "n=%d", tt.n)
	}
}

func TestDenoise_Inactive(t *testing.T) {
	y := twoTone(64)
	for _, threshold := range []float64{-0.5, 0, 1, 1.5} {
		out, kept := Denoise(NewGonum(), y, threshold)
		assert.Equal(t, y, out, "threshold %v", threshold)
		assert.Equal(t, 32, kept, "threshold %v", threshold)
	}
	assert.False(t, Active(0))
	assert.True(t, Active(0.3))
}

func TestDenoise_InactiveSkipsTransform(t *testing.T) {
	for _, n := range []int{63, 64} {
		tr := &countingTransformer{Transformer: NewGonum()}
		out, kept := Denoise(tr, twoTone(n), 0)
		assert.Len(t, out, n)
		assert.Equal(t, n/2, kept, "n=%d", n)
		assert.Zero(t, tr.forward, "n=%d", n)
		assert.Zero(t, tr.inverse, "n=%d", n)
	}

	tr := &countingTransformer{Transformer: NewGonum()}
	_, _ = Denoise(tr, twoTone(64), 0.5)
	assert.Equal(t, 1, tr.forward)
	assert.Equal(t, 1, tr.inverse)
}

func TestDenoise_RemovesSmallTone(t *testing.T) {
	for _, tr := range backends() {
		y := twoTone(64)
		out, kept := Denoise(tr, y, 0.5)
		assert.Equal(t, 1, kept, tr.Name())

		c, err := Decompose(tr, out)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, c.B[3], tolerance, "large tone unchanged")
		assert.InDelta(t, 0.0, c.A[8], tolerance, "small tone removed")
		assert.Equal(t, 1, nonZero(c, 1e-9))
	}
}

func TestDenoise_KeepsDC(t *testing.T) {
	y := twoTone(64)
	for i := range y {
		y[i] += 10
	}
	out, _ := Denoise(NewGonum(), y, 0.9)
	c, err := Decompose(NewGonum(), out)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, c.A0, tolerance)
}

func TestDenoise_FlatSpectrum(t *testing.T) {
	y := make([]float64, 5)
	out, kept := Denoise(NewGonum(), y, 0.5)
	assert.Equal(t, y, out)
	assert.Zero(t, kept)
}

func TestDenoise_Monotonic(t *testing.T) {
	n := 101
	y := make([]float64, n)
	for i := range y {
		x := float64(i) / float64(n)
		y[i] = math.Sin(2*math.Pi*x) + 0.3*math.Sin(14*math.Pi*x) + 0.05*math.Cos(40*math.Pi*x) + x*x
	}

	prev := math.MaxInt
	for _, threshold := range []float64{0.001, 0.01, 0.05, 0.1, 0.2, 0.4, 0.6, 0.8, 0.99} {
		_, kept := Denoise(NewGonum(), y, threshold)
		assert.LessOrEqual(t, kept, prev, "threshold %v", threshold)
		prev = kept
	}
}
