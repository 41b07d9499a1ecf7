package common

// Curve is an ease-in-out curve from From at t=0 to To at t=1 with flat
// tangents at both ends.
type Curve struct {
	From float64
	To   float64
}

// EaseInOut builds a curve from `from` to `to`.
func EaseInOut(from, to float64) Curve {
	return Curve{From: from, To: to}
}

// Evaluate samples the curve. t is clamped to [0,1].
func (c Curve) Evaluate(t float64) float64 {
	t = Clamp01(t)
	s := t * t * (3 - 2*t)
	return Lerp(c.From, c.To, s)
}
