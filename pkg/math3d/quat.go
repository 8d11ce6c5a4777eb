package math3d

import "math"

// Quat represents a rotation as a unit quaternion.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a quaternion rotating angle radians around axis.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	s := math.Sin(angle / 2)
	return Quat{
		W: math.Cos(angle / 2),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// QuatFromMat4 extracts the rotation of a transform matrix. The upper-left
// 3x3 block must be a pure rotation (orthonormal, no scale/shear).
// Shepperd's method: branch on the largest diagonal term for stability.
func QuatFromMat4(m Mat4) Quat {
	m00, m11, m22 := m[0], m[5], m[10]
	trace := m00 + m11 + m22

	var q Quat
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q.W = s / 4
		q.X = (m[6] - m[9]) / s
		q.Y = (m[8] - m[2]) / s
		q.Z = (m[1] - m[4]) / s
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q.W = (m[6] - m[9]) / s
		q.X = s / 4
		q.Y = (m[4] + m[1]) / s
		q.Z = (m[8] + m[2]) / s
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q.W = (m[8] - m[2]) / s
		q.X = (m[4] + m[1]) / s
		q.Y = s / 4
		q.Z = (m[9] + m[6]) / s
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q.W = (m[1] - m[4]) / s
		q.X = (m[8] + m[2]) / s
		q.Y = (m[9] + m[6]) / s
		q.Z = s / 4
	}
	return q.Normalize()
}

// Mul returns the composed rotation a then b applied as b*a convention:
// (a.Mul(b)).Rotate(v) == a.Rotate(b.Rotate(v)).
//
//nolint:st1016 // a*b naming convention is clearer for quaternion products
func (a Quat) Mul(b Quat) Quat {
	return Quat{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

// Conjugate returns the reverse rotation (inverse, for unit quaternions).
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Normalize returns the unit quaternion in the same orientation.
func (q Quat) Normalize() Quat {
	l := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q.W / l, q.X / l, q.Y / l, q.Z / l}
}

// Rotate applies the rotation to a vector: q * v * q⁻¹.
func (q Quat) Rotate(v Vec3) Vec3 {
	// t = 2 * (q.xyz × v); v' = v + w*t + q.xyz × t
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Mat4 returns the rotation as a transform matrix.
func (q Quat) Mat4() Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}

// ApproxEqual reports whether two quaternions describe the same rotation
// within tolerance (q and -q are the same rotation).
func (q Quat) ApproxEqual(other Quat, tol float64) bool {
	same := math.Abs(q.W-other.W) < tol && math.Abs(q.X-other.X) < tol &&
		math.Abs(q.Y-other.Y) < tol && math.Abs(q.Z-other.Z) < tol
	flipped := math.Abs(q.W+other.W) < tol && math.Abs(q.X+other.X) < tol &&
		math.Abs(q.Y+other.Y) < tol && math.Abs(q.Z+other.Z) < tol
	return same || flipped
}
