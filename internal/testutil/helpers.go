// Package testutil provides reusable test helper functions for series tests.
package testutil

import (
	"fmt"
	"math"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance       = 1e-10
	InterpolationTolerance = 1e-9
)

// TestingT is the subset of *testing.T the assertions need.
type TestingT interface {
	assert.TestingT
	Helper()
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	return floats.Span(make([]float64, n), start, stop)
}

// Apply returns f evaluated at each element of x.
func Apply(x []float64, f func(float64) float64) []float64 {
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = f(v)
	}
	return y
}

// Gaussian is exp(-x^2).
func Gaussian(x float64) float64 {
	return math.Exp(-x * x)
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t TestingT, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, fmt.Sprintf("s[%d] is NaN", i), msgAndArgs...)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, fmt.Sprintf("s[%d] is Inf", i), msgAndArgs...)
		}
	}
	return true
}

// AssertSlicesInDelta verifies element-wise closeness and reports the worst
// index instead of every mismatch.
func AssertSlicesInDelta(t TestingT, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}

	worst, worstIdx := 0.0, -1
	for i := range expected {
		if d := math.Abs(expected[i] - actual[i]); d > worst || math.IsNaN(d) {
			worst, worstIdx = d, i
		}
	}
	if worstIdx >= 0 && !(worst <= tolerance) {
		return assert.Fail(t, fmt.Sprintf("max |diff| %e at index %d exceeds %e (expected=%f, actual=%f)",
			worst, worstIdx, tolerance, expected[worstIdx], actual[worstIdx]), msgAndArgs...)
	}
	return true
}

// AssertConstant verifies every element equals want within tolerance.
func AssertConstant(t TestingT, s []float64, want, tolerance float64) bool {
	t.Helper()
	for i, v := range s {
		if !assert.InDelta(t, want, v, tolerance, "s[%d]", i) {
			return false
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t TestingT, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	if !(relError <= tolerance) {
		return assert.Fail(t, fmt.Sprintf("relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
			relError, tolerance, expected, actual), msgAndArgs...)
	}
	return true
}
