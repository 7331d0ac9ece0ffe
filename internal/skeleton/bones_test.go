package skeleton

import (
	"testing"

	"cs2bedrock/internal/convert"
	"cs2bedrock/internal/mathutil"
	"cs2bedrock/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorldMatricesChainsParents(t *testing.T) {
	quarter := mathutil.Vec3{0, 90, 0}
	bones := []model.Bone{
		// child first: order in the file must not matter
		{Name: "hand", Parent: "arm", Pivot: mathutil.Vec3{4, 0, 0}},
		{Name: "arm", Pivot: mathutil.Vec3{0, 0, 0}, Rotation: &quarter},
	}

	worlds, err := BuildWorldMatrices(bones)
	require.NoError(t, err)
	require.Len(t, worlds, 2)

	// 90° about +Y takes +X to -Z.
	got := worlds[0].MulPoint(mathutil.Vec3{4, 0, 0})
	assert.True(t, got.ApproxEqual(mathutil.Vec3{0, 0, -4}, 1e-12), "%s", got)
	assert.True(t, worlds[1].MulPoint(mathutil.Vec3{}).ApproxEqual(mathutil.Vec3{}, 1e-12))
}

func TestLocalMatrixKeepsPivotFixed(t *testing.T) {
	rot := mathutil.Vec3{30, 40, 50}
	b := model.Bone{Name: "b", Pivot: mathutil.Vec3{3, -2, 7}, Rotation: &rot}
	assert.True(t, LocalMatrix(b).MulPoint(b.Pivot).ApproxEqual(b.Pivot, 1e-12))
	assert.True(t, LocalMatrix(model.Bone{}).IsIdentity())
}

func TestBuildWorldMatricesErrors(t *testing.T) {
	_, err := BuildWorldMatrices([]model.Bone{{Name: "a", Parent: "nope"}})
	require.ErrorIs(t, err, convert.ErrUnknownParent)

	_, err = BuildWorldMatrices([]model.Bone{{Name: "a", Parent: "b"}, {Name: "b", Parent: "a"}})
	require.ErrorIs(t, err, convert.ErrCycle)
}

func TestCubeCorners(t *testing.T) {
	c := model.Cube{Origin: mathutil.Vec3{-1, 0, 2}, Size: mathutil.Vec3i{2, 3, 4}}
	corners := CubeCorners(c, mathutil.Mat4Identity())
	assert.Equal(t, mathutil.Vec3{-1, 0, 2}, corners[0])
	assert.Equal(t, mathutil.Vec3{1, 0, 2}, corners[1])
	assert.Equal(t, mathutil.Vec3{-1, 3, 2}, corners[2])
	assert.Equal(t, mathutil.Vec3{1, 3, 6}, corners[7])
}
