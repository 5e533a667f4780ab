package geom

import "math"

// AngleOnCircle returns the bearing, in degrees, of point (x,y) as seen from
// the centre (cx,cy). The result lies in [0,360).
func AngleOnCircle(cx, cy, x, y float64) float64 {
	return 180 - Deg(math.Atan2(cy-y, x-cx))
}

// RotateOnCircle rotates (x,y) about (cx,cy). The angle uses the same
// convention as AngleOnCircle, so a = 180 leaves the point in place.
func RotateOnCircle(cx, cy, x, y, a float64) (float64, float64) {
	r := Rad(a - 180)
	sin, cos := math.Sincos(r)
	dx := x - cx
	dy := y - cy
	return cx + cos*dx - sin*dy, cy + sin*dx + cos*dy
}

// NormalizeAngle wraps an integer angle into [0,360).
func NormalizeAngle(a int) int {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}

// NormalizeAngleF wraps a float angle into [0,360).
func NormalizeAngleF(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// RotateX rotates v about the X axis by deg degrees.
func (v Vec3) RotateX(deg float64) Vec3 {
	sin, cos := math.Sincos(Rad(deg))
	return Vec3{
		X: v.X,
		Y: v.Y*cos - v.Z*sin,
		Z: v.Y*sin + v.Z*cos,
	}
}

// RotateY rotates v about the Y axis by deg degrees.
func (v Vec3) RotateY(deg float64) Vec3 {
	sin, cos := math.Sincos(Rad(deg))
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// RotateZ rotates v about the Z axis by deg degrees.
func (v Vec3) RotateZ(deg float64) Vec3 {
	sin, cos := math.Sincos(Rad(deg))
	return Vec3{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

// RotateVector applies the Euler rotation (x pitch, y yaw, z roll, degrees)
// to v and returns the normalised result. X is applied first, then Z, then Y,
// which is the order the scene transforms use as well.
//
//	RotateVector(UnitZ, 0, 90, 0) == UnitX
func RotateVector(v Vec3, x, y, z float64) Vec3 {
	return v.RotateX(x).RotateZ(z).RotateY(y).Normalize()
}

// RotateVectorBy is RotateVector with the angles packed in a vector.
func RotateVectorBy(v, angles Vec3) Vec3 {
	return RotateVector(v, angles.X, angles.Y, angles.Z)
}
