package convert

import (
	"testing"

	"cs2bedrock/internal/mathutil"
	"cs2bedrock/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func humanoid() *model.CraftStudioModel {
	body := &model.Block{
		Name:            "body",
		Position:        mathutil.Vec3{0, 24, 0},
		OffsetFromPivot: mathutil.Vec3{0, -6, 0},
		Size:            mathutil.Vec3i{8, 12, 4},
		TexOffset:       mathutil.Vec2i{16, 16},
	}
	head := &model.Block{
		Name:            "head",
		OffsetFromPivot: mathutil.Vec3{0, 4, 0},
		Size:            mathutil.Vec3i{8, 8, 8},
		Rotation:        mathutil.Vec3{35, 15, 75},
	}
	arm := &model.Block{
		Name:            "right_arm",
		Position:        mathutil.Vec3{-5, -2, 0},
		OffsetFromPivot: mathutil.Vec3{-1, -4, 0},
		Size:            mathutil.Vec3i{4, 12, 4},
		Rotation:        mathutil.Vec3{360, -720, 0},
		TexOffset:       mathutil.Vec2i{40, 16},
	}
	body.AddChild(head)
	body.AddChild(arm)
	return &model.CraftStudioModel{
		Title:       "Zombie",
		TextureSize: mathutil.Vec2i{64, 64},
		Tree:        []*model.Block{body},
	}
}

func TestToBedrock(t *testing.T) {
	g, err := ToBedrock(humanoid(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "geometry.zombie", g.Identifier)
	assert.Equal(t, 64, g.TextureWidth)
	assert.Equal(t, 64, g.TextureHeight)
	require.Len(t, g.Bones, 3)
	assert.Equal(t, []string{"body", "head", "right_arm"},
		[]string{g.Bones[0].Name, g.Bones[1].Name, g.Bones[2].Name})

	body := g.Bones[0]
	assert.False(t, body.HasParent())
	assert.False(t, body.HasRotation())
	assert.Equal(t, mathutil.Vec3{0, 24, 0}, body.Pivot)
	assert.Equal(t, []model.Cube{{
		Origin: mathutil.Vec3{-4, 12, -2},
		Size:   mathutil.Vec3i{8, 12, 4},
		UV:     mathutil.Vec2i{16, 16},
	}}, body.Cubes)

	head := g.Bones[1]
	assert.Equal(t, "body", head.Parent)
	assert.Equal(t, mathutil.Vec3{0, 24, 0}, head.Pivot)
	assert.Equal(t, mathutil.Vec3{-4, 24, -4}, head.Cubes[0].Origin)
	require.True(t, head.HasRotation())

	want := mathutil.FromEulerYXZVec(mathutil.RadVec(mathutil.Vec3{35, 15, 75}))
	got := mathutil.Compose(BedrockOrder, mathutil.RadVec(*head.Rotation))
	assert.True(t, want.ApproxEqual(got, mathutil.Epsilon), "max diff %g", want.MaxDiff(got))

	arm := g.Bones[2]
	assert.False(t, arm.HasRotation(), "whole turns are dropped")
	assert.Equal(t, mathutil.Vec3{-5, 22, 0}, arm.Pivot)
	assert.Equal(t, mathutil.Vec3{-8, 12, -2}, arm.Cubes[0].Origin)
}

func TestToBedrockOptionsOverride(t *testing.T) {
	g, err := ToBedrock(humanoid(), Options{
		Identifier:    "geometry.custom",
		TextureWidth:  128,
		TextureHeight: 32,
	})
	require.NoError(t, err)
	assert.Equal(t, "geometry.custom", g.Identifier)
	assert.Equal(t, 128, g.TextureWidth)
	assert.Equal(t, 32, g.TextureHeight)
}

func TestToBedrockPivotOnlyBlock(t *testing.T) {
	m := &model.CraftStudioModel{Tree: []*model.Block{{Name: "root", Position: mathutil.Vec3{1, 2, 3}}}}
	g, err := ToBedrock(m, Options{})
	require.NoError(t, err)
	assert.Empty(t, g.Bones[0].Cubes)
	assert.Equal(t, "geometry.unknown", g.Identifier)
}

func TestToBedrockRejectsBadNames(t *testing.T) {
	m := humanoid()
	m.Tree[0].Children[1].Name = "head"
	_, err := ToBedrock(m, Options{})
	require.ErrorIs(t, err, ErrDuplicateName)

	m = humanoid()
	m.Tree[0].Children[0].Name = ""
	_, err = ToBedrock(m, Options{})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestRoundTripThroughCraftStudio(t *testing.T) {
	src := humanoid()
	g, err := ToBedrock(src, Options{})
	require.NoError(t, err)

	back, err := ToCraftStudio(g)
	require.NoError(t, err)
	assert.Equal(t, "zombie", back.Title)
	assert.Equal(t, src.TextureSize, back.TextureSize)
	require.Equal(t, src.Count(), back.Count())

	var want, got []*model.Block
	src.Walk(func(b, _ *model.Block) error { want = append(want, b); return nil })
	back.Walk(func(b, _ *model.Block) error { got = append(got, b); return nil })

	for i := range want {
		w, g := want[i], got[i]
		assert.Equal(t, w.Name, g.Name)
		assert.True(t, w.Position.ApproxEqual(g.Position, 1e-9), "%s position %s", w.Name, g.Position)
		assert.True(t, w.OffsetFromPivot.ApproxEqual(g.OffsetFromPivot, 1e-9), "%s offset %s", w.Name, g.OffsetFromPivot)
		assert.Equal(t, w.Size, g.Size)
		assert.Equal(t, w.TexOffset, g.TexOffset)

		wr := mathutil.Compose(CraftStudioOrder, mathutil.RadVec(w.Rotation))
		gr := mathutil.Compose(CraftStudioOrder, mathutil.RadVec(g.Rotation))
		assert.True(t, wr.ApproxEqual(gr, mathutil.Epsilon), "%s rotation %s", w.Name, g.Rotation)
	}
}

func TestToCraftStudioSplitsExtraCubes(t *testing.T) {
	g := &model.Geometry{
		Identifier: "geometry.box",
		Bones: []model.Bone{
			{Name: "root", Pivot: mathutil.Vec3{0, 0, 0}, Cubes: []model.Cube{
				{Origin: mathutil.Vec3{-1, 0, -1}, Size: mathutil.Vec3i{2, 2, 2}},
				{Origin: mathutil.Vec3{0, 2, 0}, Size: mathutil.Vec3i{1, 1, 1}, UV: mathutil.Vec2i{8, 0}},
			}},
			{Name: "root_cube1", Parent: "root", Pivot: mathutil.Vec3{0, 4, 0}},
		},
	}

	m, err := ToCraftStudio(g)
	require.NoError(t, err)
	require.Len(t, m.Tree, 1)

	root := m.Tree[0]
	assert.Equal(t, mathutil.Vec3{0, 1, 0}, root.OffsetFromPivot)
	require.Len(t, root.Children, 2)

	extra := root.Children[0]
	assert.Equal(t, "root_cube1_2", extra.Name)
	assert.Equal(t, mathutil.Vec3{0.5, 2.5, 0.5}, extra.OffsetFromPivot)
	assert.Equal(t, mathutil.Vec2i{8, 0}, extra.TexOffset)
	assert.Equal(t, mathutil.Vec3{0, 4, 0}, root.Children[1].Position)
}

func TestToCraftStudioRejectsBrokenHierarchy(t *testing.T) {
	_, err := ToCraftStudio(&model.Geometry{Bones: []model.Bone{{Name: "a", Parent: "ghost"}}})
	require.ErrorIs(t, err, ErrUnknownParent)

	_, err = ToCraftStudio(&model.Geometry{Bones: []model.Bone{
		{Name: "a", Parent: "b"},
		{Name: "b", Parent: "a"},
	}})
	require.ErrorIs(t, err, ErrCycle)

	_, err = ToCraftStudio(&model.Geometry{Bones: []model.Bone{{Name: "a"}, {Name: "a"}}})
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = ToCraftStudio(&model.Geometry{Bones: []model.Bone{{}}})
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestBridgeRotation(t *testing.T) {
	deg := mathutil.Vec3{12, -80, 170}
	for _, from := range mathutil.Orders() {
		for _, to := range mathutil.Orders() {
			got := BridgeRotation(deg, from, to)
			want := mathutil.Compose(from, mathutil.RadVec(deg))
			have := mathutil.Compose(to, mathutil.RadVec(got))
			require.True(t, want.ApproxEqual(have, mathutil.Epsilon), "%v -> %v", from, to)
		}
	}
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "geometry.my_zombie_", Identifier("My Zombie!"))
	assert.Equal(t, "geometry.zombie.v2", Identifier("geometry.zombie.v2"))
	assert.Equal(t, "geometry.unknown", Identifier("  "))
}
