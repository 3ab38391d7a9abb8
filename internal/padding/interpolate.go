package padding

const (
	anchorCount = 4
	minSamples  = 2
)

// lerp evaluates at x the line through (x0, y0) and (x1, y1).
// It is the Neville step p = ((x1-x)*p0 + (x-x0)*p1) / (x1-x0).
func lerp(x, x0, x1, y0, y1 float64) float64 {
	return ((x1-x)*y0 + (x-x0)*y1) / (x1 - x0)
}

// Neville4 evaluates the cubic through the four anchors at each xq.
//
// The tableau is built without forming polynomial coefficients:
// three linear interpolants on adjacent anchor pairs, two quadratics from
// adjacent linears, and one cubic from the two quadratics. The result
// passes exactly through every anchor.
func Neville4(a Anchors, xq []float64) []float64 {
	x1, x2, x3, x4 := a.X[0], a.X[1], a.X[2], a.X[3]
	y1, y2, y3, y4 := a.Y[0], a.Y[1], a.Y[2], a.Y[3]

	out := make([]float64, len(xq))
	for i, x := range xq {
		// linear
		s12 := lerp(x, x1, x2, y1, y2)
		s23 := lerp(x, x2, x3, y2, y3)
		s34 := lerp(x, x3, x4, y3, y4)

		// quadratic
		s13 := lerp(x, x1, x3, s12, s23)
		s24 := lerp(x, x2, x4, s23, s34)

		// cubic
		out[i] = lerp(x, x1, x4, s13, s24)
	}
	return out
}

// Blend4 evaluates the one-sided blend at each xq.
//
// Over the gap between the tail boundary xb = X[1] and the wrap point
// xc = X[2], the tail line (X[0], X[1]) and the head line (X[2], X[3]) are
// each blended with the bridging line (xb, xc), then the two results are
// blended with each other. All three blends weight by relative distance to
// xb and xc, so the curve starts at Y[1] with the tail slope and ends at
// Y[2] with the head slope.
func Blend4(a Anchors, xq []float64) []float64 {
	xa, xb, xc, xd := a.X[0], a.X[1], a.X[2], a.X[3]
	ya, yb, yc, yd := a.Y[0], a.Y[1], a.Y[2], a.Y[3]

	out := make([]float64, len(xq))
	for i, x := range xq {
		bridge := lerp(x, xb, xc, yb, yc)
		tail := lerp(x, xb, xc, lerp(x, xa, xb, ya, yb), bridge)
		head := lerp(x, xb, xc, bridge, lerp(x, xc, xd, yc, yd))
		out[i] = lerp(x, xb, xc, tail, head)
	}
	return out
}
