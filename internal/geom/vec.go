// Package geom holds the small amount of 3D maths the game needs: vectors,
// circle helpers, Euler rotation, 4x4 transforms and animation easing.
package geom

import "math"

// Vec3 is a point or direction in scene space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

var (
	Zero  = Vec3{}
	One   = Vec3{X: 1, Y: 1, Z: 1}
	UnitX = Vec3{X: 1}
	UnitY = Vec3{Y: 1}
	UnitZ = Vec3{Z: 1}
)

func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector in the direction of v. The zero vector
// is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Distance2D is the planar (X/Z) distance between two scene points.
func Distance2D(x1, z1, x2, z2 float64) float64 {
	dx := x1 - x2
	dz := z1 - z2
	return math.Sqrt(dx*dx + dz*dz)
}

// Distance3D is the full distance between two scene points.
func Distance3D(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// Lerp is linear interpolation from a to b at t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates each component linearly.
func LerpVec(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Clamp01 limits t to [0,1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Deg converts radians to degrees.
func Deg(rad float64) float64 { return rad * 180 / math.Pi }
