package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat3Accessors(t *testing.T) {
	m := NewMat3(
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	)
	assert.Equal(t, 6.0, m.At(1, 2))
	assert.Equal(t, 7.0, m.At(2, 0))

	m.Set(0, 0, -1)
	assert.Equal(t, -1.0, m[0])

	m.Swap(0, 1, 2, 2)
	assert.Equal(t, 9.0, m.At(0, 1))
	assert.Equal(t, 2.0, m.At(2, 2))

	m.ScaleInPlace(2)
	assert.Equal(t, Mat3{-2, 18, 6, 8, 10, 12, 14, 16, 4}, m)
}

func TestMat3CopiesDoNotShareStorage(t *testing.T) {
	a := Mat3Identity()
	b := a
	b.Set(1, 1, 5)
	assert.Equal(t, 1.0, a.At(1, 1))
}

func TestMat3Mul(t *testing.T) {
	a := NewMat3(1, 2, 3, 4, 5, 6, 7, 8, 9)
	b := NewMat3(9, 8, 7, 6, 5, 4, 3, 2, 1)
	assert.Equal(t, Mat3{30, 24, 18, 84, 69, 54, 138, 114, 90}, Mat3Mul(a, b))
	assert.Equal(t, a, a.Mul(Mat3Identity()))
	assert.Equal(t, Vec3{14, 32, 50}, a.MulVec3(Vec3{1, 2, 3}))
	assert.Equal(t, Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}, a.Transpose())
}

func TestMat3Determinant(t *testing.T) {
	assert.Equal(t, 0.0, NewMat3(1, 2, 3, 4, 5, 6, 7, 8, 9).det())
	assert.Equal(t, -1.0, Mat3Diag(-1, 1, 1).det())
	assert.InDelta(t, 1.0, FromEulerYXZ(0.4, 1.3, -2.2).det(), 1e-12)
}

func TestMat3IsRotation(t *testing.T) {
	assert.True(t, Mat3Identity().IsRotation(Epsilon))
	assert.False(t, Mat3Diag(-1, 1, 1).IsRotation(Epsilon), "mirror has det -1")
	assert.False(t, Mat3Diag(2, 1, 0.5).IsRotation(Epsilon), "det 1 but not orthonormal")
}

func TestMat3ApproxEqualIsInclusive(t *testing.T) {
	a := Mat3{}
	b := Mat3{0.5}
	assert.True(t, a.ApproxEqual(b, 0.5))
	assert.False(t, a.ApproxEqual(b, 0.25))
	assert.Equal(t, 0.5, a.MaxDiff(b))
}

func TestMat3Format(t *testing.T) {
	assert.Equal(t, "[1, 0, 0, 0, 1, 0, 0, 0, 1]", Mat3Identity().String())

	m := RotZ(Deg2Rad(90))
	require.Equal(t, "[0, -1, 0, 1, 0, 0, 0, 0, 1]", m.Format(FixedFormat(4)))
}

func TestMat4RotateAbout(t *testing.T) {
	pivot := Vec3{1, 2, 3}
	m := RotateAbout(RotZ(Deg2Rad(90)), pivot)

	assert.True(t, m.MulPoint(pivot).ApproxEqual(pivot, 1e-12))
	assert.True(t, m.MulPoint(Vec3{2, 2, 3}).ApproxEqual(Vec3{1, 3, 3}, 1e-12))
	assert.True(t, Mat4Mul(Mat4Identity(), Mat4Identity()).IsIdentity())
	assert.False(t, m.IsIdentity())
}
