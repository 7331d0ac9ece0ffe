package mathutil

// Vec3i holds integer box dimensions.
type Vec3i [3]int

func (v Vec3i) X() int { return v[0] }
func (v Vec3i) Y() int { return v[1] }
func (v Vec3i) Z() int { return v[2] }

// IsZero reports whether all three dimensions are zero.
func (v Vec3i) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

func (v Vec3i) ToVec3() Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Vec2i holds a texture-atlas offset in pixels.
type Vec2i [2]int

func (v Vec2i) X() int { return v[0] }
func (v Vec2i) Y() int { return v[1] }
