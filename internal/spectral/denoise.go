package spectral

import (
	"math/cmplx"

	"github.com/tphakala/simd/c128"
	"gonum.org/v1/gonum/floats"
)

// Active reports whether threshold enables the noise filter.
// Values outside the open interval (0, 1) disable it.
func Active(threshold float64) bool {
	return threshold > 0 && threshold < 1
}

// Denoise zeroes every non-DC harmonic whose magnitude is strictly below
// threshold times the largest non-DC magnitude, and returns the
// reconstructed sequence together with the number of non-DC bins kept.
//
// The DC bin is never modified. Because magnitudes are symmetric about the
// Nyquist bin for real input, the decision made on the half spectrum is the
// same one a full-spectrum filter would make and the output stays real.
// An inactive threshold or a flat spectrum returns a copy of y.
func Denoise(t Transformer, y []float64, threshold float64) ([]float64, int) {
	n := len(y)
	out := make([]float64, n)
	copy(out, y)
	if n < minSamples {
		return out, 0
	}

	if !Active(threshold) {
		return out, n / hermitianDivisor
	}

	bins := t.Forward(y)

	mags := make([]float64, len(bins)-1)
	for k := 1; k < len(bins); k++ {
		mags[k-1] = cmplx.Abs(bins[k])
	}
	peak := floats.Max(mags)
	if peak == 0 {
		return out, 0
	}

	cut := threshold * peak
	mask := make([]complex128, len(bins))
	mask[0] = 1
	kept := 0
	for k, mag := range mags {
		if mag < cut {
			continue
		}
		mask[k+1] = 1
		kept++
	}

	filtered := make([]complex128, len(bins))
	c128.Mul(filtered, bins, mask)
	return t.Inverse(filtered, n), kept
}
