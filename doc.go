// Package fourierseries fits truncated Fourier series to uniformly sampled
// signals in pure Go.
//
// A fitted [Model] approximates a discrete signal y(x) with
//
//	y(x) ≈ a0 + Σ_{k=1}^{N} a_k·cos(kωu) + b_k·sin(kωu),  u = x - xa, ω = 2π/L
//
// where L is the sample span plus one spacing. The model can then be
// evaluated anywhere, truncated to fewer harmonics for smoothing, or
// differentiated once or twice analytically.
//
// # Features
//
//   - Harmonic decomposition via FFT (gonum by default, go-dsp optional)
//   - Exact trigonometric interpolation of the input samples (odd n)
//   - Frequency-domain noise suppression by relative magnitude threshold
//   - Boundary padding for non-periodic signals, with two padding formulas
//   - Analytic first and second derivatives
//   - SIMD-accelerated series summation via github.com/tphakala/simd
//
// # Quick Start
//
//	x := fourierseries.Linspace(-2, 2, 50)
//	y := make([]float64, len(x))
//	for i, v := range x {
//	    y[i] = math.Exp(-v * v)
//	}
//
//	model, err := fourierseries.Fit(x, y, 0, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	values, _ := model.Evaluate(x, fourierseries.OrderAll, fourierseries.Value)
//	slopes, _ := model.Evaluate(x, fourierseries.OrderAll, fourierseries.First)
//
// # Construction Pipeline
//
// [New] runs three stages, each optional except the last:
//
//	samples -> [Noise filter] -> [Boundary padding] -> [Decomposition] -> Model
//	           (0<Threshold<1)      (Pad > 0)
//
// The noise filter zeroes every non-DC spectral bin whose magnitude is below
// Threshold times the largest non-DC magnitude, then transforms back. Raising
// the threshold never keeps more bins.
//
// # Padding
//
// A Fourier series is periodic, so a signal whose end does not meet its
// start rings near the boundaries. Padding appends Pad samples past the last
// abscissa that bend the tail back toward the head:
//
//   - [PadNeville] (default): one cubic through the last two samples and
//     the first two samples moved to the wrap point, built from a
//     linear/quadratic/cubic Neville tableau. The padded signal meets the
//     head value exactly at the wrap point.
//   - [PadBlend]: a tail line and a head line blended with the bridging line
//     by relative distance. The padded curve leaves the last sample with the
//     tail slope and reaches the head value with the head slope.
//
// [Model.OriginalLen] separates the original samples from padded ones in
// [Model.X] and [Model.Y], for callers that plot the two regions.
//
// # Truncation
//
// The order argument of [Model.Evaluate] counts terms including DC: order 1
// returns the constant a0, order k sums harmonics 1..k-1, and orders beyond
// the available harmonics are clipped. [OrderAll] uses every harmonic.
//
// # Thread Safety
//
// A [Model] is immutable after construction. Evaluate allocates its own
// scratch buffers, so any number of goroutines may evaluate the same model
// concurrently. [FitMulti] fits independent signals concurrently when
// [Config.EnableParallel] is set.
package fourierseries
