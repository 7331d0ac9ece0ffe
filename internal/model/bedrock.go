package model

import "cs2bedrock/internal/mathutil"

// Cube is an axis-aligned box in model space. Origin is the minimum corner.
type Cube struct {
	Origin mathutil.Vec3
	Size   mathutil.Vec3i
	UV     mathutil.Vec2i
}

// Bone holds one Bedrock bone. Pivot is in model space; Rotation holds Euler
// degrees applied in Z, Y, X order with a left-handed Z, and is nil when the
// bone is not rotated.
type Bone struct {
	Name     string
	Parent   string // empty for root bones
	Pivot    mathutil.Vec3
	Rotation *mathutil.Vec3
	Cubes    []Cube
}

func (b *Bone) HasParent() bool   { return b.Parent != "" }
func (b *Bone) HasRotation() bool { return b.Rotation != nil }

// Geometry is a flat Bedrock entity model.
type Geometry struct {
	Identifier    string
	TextureWidth  int
	TextureHeight int
	Bones         []Bone
}

// Bone returns the bone with the given name.
func (g *Geometry) Bone(name string) (*Bone, bool) {
	for i := range g.Bones {
		if g.Bones[i].Name == name {
			return &g.Bones[i], true
		}
	}
	return nil, false
}

// CubeCount returns the total number of cubes across all bones.
func (g *Geometry) CubeCount() int {
	n := 0
	for _, b := range g.Bones {
		n += len(b.Cubes)
	}
	return n
}
