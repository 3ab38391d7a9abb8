// Package padding synthesizes samples past the end of a uniformly spaced
// series so that it closes smoothly onto its own head, letting a
// non-periodic signal be represented by a periodic series.
package padding

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects the interpolation formula used for the padded tail.
type Strategy int

const (
	// Neville builds one cubic through all four anchors from a
	// linear -> quadratic -> cubic Neville tableau.
	Neville Strategy = iota

	// Blend blends a tail line and a head line with the bridging line
	// between the boundaries, weighting each by relative distance.
	Blend
)

// Common errors returned by the padder.
var (
	ErrTooShort        = errors.New("series too short to pad")
	ErrUnknownStrategy = errors.New("unknown padding strategy")
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Neville:
		return "neville"
	case Blend:
		return "blend"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == Neville || s == Blend
}

// ParseStrategy maps a name to a Strategy. The empty name selects Neville.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "neville":
		return Neville, nil
	case "blend":
		return Blend, nil
	default:
		return Neville, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Anchors are the four interpolation nodes, in increasing abscissa order:
// the last two samples, then the wrapped head (x[0], x[1]) moved to the
// wrap point xc and xc+h.
type Anchors struct {
	X [anchorCount]float64
	Y [anchorCount]float64
}

// Geometry describes where the padded tail goes.
type Geometry struct {
	Spacing float64 // h
	Wrap    float64 // xc = x[0] + (n+p)*h
	Pad     []float64
}

// Layout computes the padding geometry for p extra samples after x.
// The padded abscissas are x[n-1] + h*i for i = 1..p, so the last one sits
// one step before the wrap point.
func Layout(x []float64, p int) (Geometry, error) {
	n := len(x)
	if n < minSamples {
		return Geometry{}, fmt.Errorf("%w: got %d samples, need %d", ErrTooShort, n, minSamples)
	}

	h := (x[n-1] - x[0]) / float64(n-1)
	g := Geometry{
		Spacing: h,
		Wrap:    x[0] + float64(n+p)*h,
		Pad:     make([]float64, p),
	}
	for i := range g.Pad {
		g.Pad[i] = x[n-1] + h*float64(i+1)
	}
	return g, nil
}

// AnchorsFor returns the four anchors for a series padded with geometry g.
func AnchorsFor(x, y []float64, g Geometry) Anchors {
	n := len(x)
	return Anchors{
		X: [anchorCount]float64{x[n-2], x[n-1], g.Wrap, g.Wrap + g.Spacing},
		Y: [anchorCount]float64{y[n-2], y[n-1], y[0], y[1]},
	}
}

// Interpolate evaluates the strategy's interpolant at xq.
func (s Strategy) Interpolate(a Anchors, xq []float64) ([]float64, error) {
	switch s {
	case Neville:
		return Neville4(a, xq), nil
	case Blend:
		return Blend4(a, xq), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}

// Extend appends p synthesized samples to (x, y) using strategy s.
// The inputs are not modified. p <= 0 returns copies of the inputs.
func Extend(x, y []float64, p int, s Strategy) (xx, yy []float64, err error) {
	if p <= 0 {
		return append([]float64(nil), x...), append([]float64(nil), y...), nil
	}

	g, err := Layout(x, p)
	if err != nil {
		return nil, nil, err
	}

	tail, err := s.Interpolate(AnchorsFor(x, y, g), g.Pad)
	if err != nil {
		return nil, nil, err
	}

	xx = make([]float64, 0, len(x)+p)
	xx = append(xx, x...)
	xx = append(xx, g.Pad...)

	yy = make([]float64, 0, len(y)+p)
	yy = append(yy, y...)
	yy = append(yy, tail...)
	return xx, yy, nil
}
