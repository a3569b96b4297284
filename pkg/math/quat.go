package math

import "github.com/chewxy/math32"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := math32.Sin(halfAngle)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(halfAngle),
	}
}

// RotationBetween returns the shortest-arc rotation carrying the unit vector
// from onto the unit vector to. Nearly aligned inputs yield the identity, and
// nearly opposite inputs yield a half turn about an axis perpendicular to
// from, so the result is always well defined.
func RotationBetween(from, to Vec3) Quat {
	d := from.Dot(to)
	if d > 0.9999 {
		return QuatIdentity()
	}
	if d < -0.9999 {
		var axis Vec3
		if math32.Abs(from.X) < 0.8 {
			axis = Vec3{X: 1}.Cross(from)
		} else {
			axis = Vec3{Y: 1}.Cross(from)
		}
		return QuatFromAxisAngle(axis.Normalize(), math32.Pi)
	}
	c := from.Cross(to)
	return Quat{X: c.X, Y: c.Y, Z: c.Z, W: 1 + d}.Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// RotateVec3 rotates a vector by the quaternion. The quaternion must be
// normalized.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// IsFinite reports whether all components are finite numbers.
func (q Quat) IsFinite() bool {
	return !math32.IsNaN(q.X) && !math32.IsInf(q.X, 0) &&
		!math32.IsNaN(q.Y) && !math32.IsInf(q.Y, 0) &&
		!math32.IsNaN(q.Z) && !math32.IsInf(q.Z, 0) &&
		!math32.IsNaN(q.W) && !math32.IsInf(q.W, 0)
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
