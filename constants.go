package fourierseries

// Input limits
const (
	minSamples = 2 // Two samples are needed to define a spacing

	// spacingTolerance is the relative deviation from the mean spacing
	// accepted before x is rejected as non-uniform. It absorbs the rounding
	// of linspace-style grids.
	spacingTolerance = 1e-6

	// roundingSlack scales the machine epsilon at the magnitude of x. A
	// step between two large abscissas carries roughly one ulp of that
	// magnitude regardless of h.
	roundingSlack = 8
	epsilon       = 0x1p-52 // float64 machine epsilon
)

// Series constants
const (
	// OrderAll evaluates every retained harmonic.
	OrderAll = 0
)

// Multi-signal fitting
const (
	maxSignals = 256 // Maximum number of signals fitted by one FitMulti call
)
