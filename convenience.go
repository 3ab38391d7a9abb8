package fourierseries

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Linspace returns n evenly spaced values from start to stop inclusive,
// the grid shape New expects. n = 1 yields {start}; n <= 0 yields an
// empty slice.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n < minSamples {
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}

// Smooth fits (x, y) with the noise filter at threshold and pad synthetic
// samples, and returns the series evaluated at x.
func Smooth(x, y []float64, pad int, threshold float64) ([]float64, error) {
	model, err := Fit(x, y, pad, threshold)
	if err != nil {
		return nil, err
	}
	return model.Evaluate(x, OrderAll, Value)
}

// Differentiate estimates dy/dx (First) or d2y/dx2 (Second) at x from a
// padded fit of (x, y).
func Differentiate(x, y []float64, pad int, deriv Derivative) ([]float64, error) {
	if deriv != First && deriv != Second {
		return nil, fmt.Errorf("%w: derivative must be 1 or 2, got %d", ErrInvalidArgument, deriv)
	}

	model, err := Fit(x, y, pad, 0)
	if err != nil {
		return nil, err
	}
	return model.Evaluate(x, OrderAll, deriv)
}

// RMSError returns the root-mean-square difference between the series and
// the reference samples (x[i], y[i]).
func (m *Model) RMSError(x, y []float64) (float64, error) {
	if len(x) != len(y) || len(x) == 0 {
		return 0, fmt.Errorf("%w: need equal, non-empty x and y, got %d and %d", ErrInvalidArgument, len(x), len(y))
	}

	fitted, err := m.Evaluate(x, OrderAll, Value)
	if err != nil {
		return 0, err
	}

	floats.Sub(fitted, y)
	floats.Mul(fitted, fitted)
	return math.Sqrt(stat.Mean(fitted, nil)), nil
}

// FitMulti fits several signals that share the abscissas x.
// When config.EnableParallel is set and there is more than one signal,
// each signal is fitted in its own goroutine. The first error wins.
func FitMulti(x []float64, ys [][]float64, config *Config) ([]*Model, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if len(ys) == 0 {
		return nil, fmt.Errorf("%w: no signals", ErrInvalidInput)
	}

	if len(ys) > maxSignals {
		return nil, fmt.Errorf("%w: too many signals (max %d)", ErrInvalidInput, maxSignals)
	}

	if config.EnableParallel && len(ys) > 1 {
		return fitParallel(x, ys, config)
	}
	return fitSequential(x, ys, config)
}

// fitParallel fits each signal concurrently.
func fitParallel(x []float64, ys [][]float64, config *Config) ([]*Model, error) {
	models := make([]*Model, len(ys))
	var wg sync.WaitGroup
	var fitErr error
	var errMu sync.Mutex

	for ch := range ys {
		wg.Add(1)
		go func(signal int) {
			defer wg.Done()
			model, err := New(x, ys[signal], config)
			if err != nil {
				errMu.Lock()
				if fitErr == nil {
					fitErr = fmt.Errorf("fit failed on signal %d: %w", signal, err)
				}
				errMu.Unlock()
				return
			}
			models[signal] = model
		}(ch)
	}
	wg.Wait()

	if fitErr != nil {
		return nil, fitErr
	}

	return models, nil
}

// fitSequential fits signals one by one.
func fitSequential(x []float64, ys [][]float64, config *Config) ([]*Model, error) {
	models := make([]*Model, len(ys))
	for ch := range ys {
		model, err := New(x, ys[ch], config)
		if err != nil {
			return nil, fmt.Errorf("fit failed on signal %d: %w", ch, err)
		}
		models[ch] = model
	}
	return models, nil
}
