package common

import "github.com/jakecoffman/cp"

// Epsilon absorbs float accumulation error when comparing timers and meters
// against their bounds.
const Epsilon = 1e-9

// Vec2 is a two-axis input value (move stick, look delta). X is strafe/yaw,
// Y is forward/pitch.
type Vec2 = cp.Vector

func Lerp(a, b, t float64) float64 {
	return cp.Lerp(a, b, t)
}

func Clamp(v, lo, hi float64) float64 {
	return cp.Clamp(v, lo, hi)
}

func Clamp01(v float64) float64 {
	return cp.Clamp01(v)
}

// NearlyZero reports whether v is within Epsilon of zero.
func NearlyZero(v float64) bool {
	return v > -Epsilon && v < Epsilon
}
