package spectral

const (
	// hermitianDivisor gives the unique bin count of a real FFT: n/2 + 1.
	hermitianDivisor = 2

	// coefficientScale converts a one-sided DFT bin into a harmonic amplitude.
	coefficientScale = 2.0

	// minSamples is the smallest sequence that defines a spacing.
	minSamples = 2
)
