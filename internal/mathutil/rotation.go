package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians,
// counter-clockwise by the right-hand rule.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// The FromEuler constructors multiply the elementary rotations in the order the
// letters appear. Arguments are always named by axis: FromEulerZXY(x, y, z) is
// RotZ(z) · RotX(x) · RotY(y).

func FromEulerXYZ(x, y, z float64) Mat3 {
	return Mat3Mul(Mat3Mul(RotX(x), RotY(y)), RotZ(z))
}

func FromEulerXZY(x, y, z float64) Mat3 {
	return Mat3Mul(Mat3Mul(RotX(x), RotZ(z)), RotY(y))
}

func FromEulerZXY(x, y, z float64) Mat3 {
	return Mat3Mul(Mat3Mul(RotZ(z), RotX(x)), RotY(y))
}

func FromEulerYXZ(x, y, z float64) Mat3 {
	return Mat3Mul(Mat3Mul(RotY(y), RotX(x)), RotZ(z))
}

func FromEulerYZX(x, y, z float64) Mat3 {
	return Mat3Mul(Mat3Mul(RotY(y), RotZ(z)), RotX(x))
}

func FromEulerZYX(x, y, z float64) Mat3 {
	return Mat3Mul(Mat3Mul(RotZ(z), RotY(y)), RotX(x))
}

func FromEulerXYZVec(v Vec3) Mat3 { return FromEulerXYZ(v[0], v[1], v[2]) }
func FromEulerXZYVec(v Vec3) Mat3 { return FromEulerXZY(v[0], v[1], v[2]) }
func FromEulerZXYVec(v Vec3) Mat3 { return FromEulerZXY(v[0], v[1], v[2]) }
func FromEulerYXZVec(v Vec3) Mat3 { return FromEulerYXZ(v[0], v[1], v[2]) }
func FromEulerYZXVec(v Vec3) Mat3 { return FromEulerYZX(v[0], v[1], v[2]) }
func FromEulerZYXVec(v Vec3) Mat3 { return FromEulerZYX(v[0], v[1], v[2]) }

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// RadVec converts a degree triple to radians.
func RadVec(deg Vec3) Vec3 {
	return Vec3{Deg2Rad(deg[0]), Deg2Rad(deg[1]), Deg2Rad(deg[2])}
}

// DegVec converts a radian triple to degrees.
func DegVec(rad Vec3) Vec3 {
	return Vec3{Rad2Deg(rad[0]), Rad2Deg(rad[1]), Rad2Deg(rad[2])}
}
