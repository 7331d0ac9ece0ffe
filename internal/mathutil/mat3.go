package mathutil

import (
	"math"
	"strconv"
)

// Mat3 is a 3×3 matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
// Value type for zero heap allocation.
//
// Matrices built by the rotation constructors are orthonormal with determinant +1
// (within rounding). Matrices built element by element carry no such guarantee.
type Mat3 [9]float64

func NewMat3(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) Mat3 {
	return Mat3{m00, m01, m02, m10, m11, m12, m20, m21, m22}
}

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func Mat3Diag(x, y, z float64) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float64 {
	return m[r*3+c]
}

// Set writes one element in place.
func (m *Mat3) Set(r, c int, v float64) {
	m[r*3+c] = v
}

// Swap exchanges the elements at (r0, c0) and (r1, c1) in place.
func (m *Mat3) Swap(r0, c0, r1, c1 int) {
	i, j := r0*3+c0, r1*3+c1
	m[i], m[j] = m[j], m[i]
}

// ScaleInPlace multiplies every element by f.
func (m *Mat3) ScaleInPlace(f float64) {
	for i := range m {
		m[i] *= f
	}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for k := 0; k < 3; k++ {
				m[r*3+c] += a[r*3+k] * b[k*3+c]
			}
		}
	}
	return m
}

// Mul returns m × b.
func (m Mat3) Mul(b Mat3) Mat3 {
	return Mat3Mul(m, b)
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// det expands the determinant with the six-term rule of Sarrus.
func (m Mat3) det() float64 {
	return m[0]*m[4]*m[8] +
		m[1]*m[5]*m[6] +
		m[2]*m[3]*m[7] -
		m[2]*m[4]*m[6] -
		m[0]*m[5]*m[7] -
		m[1]*m[3]*m[8]
}

// IsRotation reports whether m is orthonormal with determinant +1, within eps.
func (m Mat3) IsRotation(eps float64) bool {
	if math.Abs(m.det()-1) > eps {
		return false
	}
	return Mat3Mul(m.Transpose(), m).ApproxEqual(Mat3Identity(), eps)
}

// ApproxEqual reports whether no element differs by more than eps.
func (m Mat3) ApproxEqual(b Mat3, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// MaxDiff returns the largest element-wise absolute difference.
func (m Mat3) MaxDiff(b Mat3) float64 {
	var d float64
	for i := range m {
		d = math.Max(d, math.Abs(m[i]-b[i]))
	}
	return d
}

func (m Mat3) String() string {
	return m.Format(func(f float64) string {
		return strconv.FormatFloat(f, 'g', -1, 64)
	})
}

// Format renders the nine elements in row-major order using f.
func (m Mat3) Format(f func(float64) string) string {
	return formatList(m[:], f)
}
