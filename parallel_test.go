package fourierseries

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbhersch/fast-fourier-series/internal/testutil"
)

// stereoSignals returns two signals on a shared grid with different phases.
func stereoSignals(n int) (x []float64, ys [][]float64) {
	x = testutil.Linspace(0, 1, n)
	ys = make([][]float64, 2)
	for ch := range ys {
		phase := float64(ch) * math.Pi / 4
		ys[ch] = testutil.Apply(x, func(v float64) float64 {
			return math.Sin(2*math.Pi*3*v+phase) + v
		})
	}
	return x, ys
}

// TestFitMultiParallel tests that parallel fitting produces correct results.
func TestFitMultiParallel(t *testing.T) {
	x, ys := stereoSignals(257)

	seq, err := FitMulti(x, ys, &Config{Pad: 32, Threshold: 0.01})
	require.NoError(t, err)
	par, err := FitMulti(x, ys, &Config{Pad: 32, Threshold: 0.01, EnableParallel: true})
	require.NoError(t, err)

	require.Len(t, seq, len(ys))
	require.Len(t, par, len(ys))

	for ch := range ys {
		seqA, seqB := seq[ch].Coefficients()
		parA, parB := par[ch].Coefficients()

		// Bit-exact: both paths run the same deterministic construction.
		assert.Equal(t, seqA, parA, "channel %d", ch)
		assert.Equal(t, seqB, parB, "channel %d", ch)
		assert.InDelta(t, seq[ch].DC(), par[ch].DC(), 0)
	}
}

// TestFitMultiChannelIndependence verifies signals are fitted independently.
func TestFitMultiChannelIndependence(t *testing.T) {
	x, ys := stereoSignals(101)

	models, err := FitMulti(x, ys, &Config{EnableParallel: true})
	require.NoError(t, err)

	for ch, y := range ys {
		single, err := New(x, y, nil)
		require.NoError(t, err)

		want, err := single.Evaluate(x, OrderAll, Value)
		require.NoError(t, err)
		got, err := models[ch].Evaluate(x, OrderAll, Value)
		require.NoError(t, err)
		assert.Equal(t, want, got, "channel %d", ch)
	}
}

func TestFitMulti_Errors(t *testing.T) {
	x := testutil.Linspace(0, 1, 10)

	_, err := FitMulti(x, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	tooMany := make([][]float64, maxSignals+1)
	_, err = FitMulti(x, tooMany, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	for _, parallel := range []bool{false, true} {
		bad := [][]float64{make([]float64, 10), make([]float64, 3)}
		_, err = FitMulti(x, bad, &Config{EnableParallel: parallel})
		require.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "signal 1")
	}
}

// TestEvaluateConcurrent checks that one model serves many goroutines.
func TestEvaluateConcurrent(t *testing.T) {
	const workers = 8

	x := testutil.Linspace(-2, 2, 99)
	model, err := Fit(x, testutil.Apply(x, testutil.Gaussian), 20, 0.001)
	require.NoError(t, err)

	probe := testutil.Linspace(-2.5, 2.5, 200)
	want := make([][]float64, 3)
	for d := range want {
		want[d], err = model.Evaluate(probe, OrderAll, Derivative(d))
		require.NoError(t, err)
	}

	results := make([][][]float64, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			results[worker] = make([][]float64, 3)
			for d := range 3 {
				out, err := model.Evaluate(probe, OrderAll, Derivative(d))
				if err != nil {
					return
				}
				results[worker][d] = out
			}
		}(w)
	}
	wg.Wait()

	for w := range workers {
		for d := range 3 {
			assert.Equal(t, want[d], results[w][d], "worker %d derivative %d", w, d)
		}
	}
}
