package common

import "math"

// Vec3 is a world-space vector. Y is up; yaw rotates about Y, with yaw 0
// facing +Z.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

var (
	Zero3    = Vec3{}
	Up       = Vec3{Y: 1}
	Forward3 = Vec3{Z: 1}
)

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in v's direction, or the zero vector when
// v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < Epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(v.X, o.X, t),
		Y: Lerp(v.Y, o.Y, t),
		Z: Lerp(v.Z, o.Z, t),
	}
}

// Horizontal drops the vertical component.
func (v Vec3) Horizontal() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// YawBasis returns the forward and right unit vectors for a body yaw given in
// degrees.
func YawBasis(yawDeg float64) (forward, right Vec3) {
	rad := yawDeg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	forward = Vec3{X: sin, Z: cos}
	right = Vec3{X: cos, Z: -sin}
	return forward, right
}
