package fourierseries

import (
	"testing"

	"github.com/jbhersch/fast-fourier-series/internal/testutil"
)

// BenchmarkFitMultiSequential benchmarks sequential multi-signal fitting.
func BenchmarkFitMultiSequential(b *testing.B) {
	benchmarkFitMulti(b, false)
}

// BenchmarkFitMultiParallel benchmarks parallel multi-signal fitting.
func BenchmarkFitMultiParallel(b *testing.B) {
	benchmarkFitMulti(b, true)
}

func benchmarkFitMulti(b *testing.B, parallel bool) {
	b.Helper()

	const (
		channels   = 8
		numSamples = 4096
	)

	x := testutil.Linspace(0, 1, numSamples)
	ys := make([][]float64, channels)
	for ch := range channels {
		ys[ch] = make([]float64, numSamples)
		for i := range numSamples {
			ys[ch][i] = float64(i*(ch+1)) / float64(numSamples) // Simple ramp
		}
	}

	config := &Config{Pad: 256, Threshold: 0.01, EnableParallel: parallel}

	b.ResetTimer()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := FitMulti(x, ys, config); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEvaluate measures series summation for each derivative order.
func BenchmarkEvaluate(b *testing.B) {
	x := testutil.Linspace(-2, 2, 1025)
	model, err := Fit(x, testutil.Apply(x, testutil.Gaussian), 0, 0)
	if err != nil {
		b.Fatal(err)
	}

	for _, deriv := range []Derivative{Value, First, Second} {
		b.Run([]string{"value", "first", "second"}[deriv], func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := model.Evaluate(x, OrderAll, deriv); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
