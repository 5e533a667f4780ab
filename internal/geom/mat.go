package geom

// Mat4 is a row-major 4x4 matrix acting on column vectors (p' = M·p).
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translation(v Vec3) Mat4 {
	m := Identity()
	m[3], m[7], m[11] = v.X, v.Y, v.Z
	return m
}

func Scaling(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// Rotation builds the matrix equivalent of RotateVector for Euler angles in
// degrees (X first, then Z, then Y).
func Rotation(angles Vec3) Mat4 {
	x := UnitX.RotateX(angles.X).RotateZ(angles.Z).RotateY(angles.Y)
	y := UnitY.RotateX(angles.X).RotateZ(angles.Z).RotateY(angles.Y)
	z := UnitZ.RotateX(angles.X).RotateZ(angles.Z).RotateY(angles.Y)
	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m·o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[row*4+k] * o[k*4+col]
			}
			r[row*4+col] = s
		}
	}
	return r
}

// MulPoint transforms a point (w = 1).
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// LookAt builds a right-handed view matrix. Points in front of the eye end
// up with negative Z in view space.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	if s.Len() == 0 {
		// Looking straight up or down; any horizontal side axis will do.
		s = UnitX
	}
	u := s.Cross(f)
	return Mat4{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	}
}
