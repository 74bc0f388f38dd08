package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is applied along +Y; world Y grows downward like screen space.
	Gravity = 19.6

	// PixelsPerUnit scales world units to screen pixels for debug drawing.
	PixelsPerUnit = 48.0
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Vec3 is a world-space vector. X is horizontal, Y is vertical (down is
// positive) and Z is depth.
type Vec3 struct {
	X, Y, Z float64
}

var (
	Up   = Vec3{Y: -1}
	Down = Vec3{Y: 1}
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

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Basis returns the horizontal forward and right vectors for a yaw angle in
// radians. Yaw 0 faces +X; right is then +Z.
func Basis(yaw float64) (forward, right Vec3) {
	sin, cos := math.Sincos(yaw)
	forward = Vec3{X: cos, Z: sin}
	right = Vec3{X: -sin, Z: cos}
	return forward, right
}

// Direction returns the look direction for yaw and pitch; positive pitch
// looks up.
func Direction(yaw, pitch float64) Vec3 {
	fwd, _ := Basis(yaw)
	cp := math.Cos(pitch)
	return Vec3{X: fwd.X * cp, Y: -math.Sin(pitch), Z: fwd.Z * cp}
}
