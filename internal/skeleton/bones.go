package skeleton

import (
	"fmt"

	"cs2bedrock/internal/convert"
	"cs2bedrock/internal/mathutil"
	"cs2bedrock/internal/model"
)

// LocalMatrix returns the bone's rest transform: a rotation about its pivot.
func LocalMatrix(b model.Bone) mathutil.Mat4 {
	if b.Rotation == nil {
		return mathutil.Mat4Identity()
	}
	rot := mathutil.Compose(convert.BedrockOrder, mathutil.RadVec(*b.Rotation))
	return mathutil.RotateAbout(rot, b.Pivot)
}

// BuildWorldMatrices computes the model-space transform of each bone in rest pose.
// Parents are looked up by name and may appear after their children.
// Returns a slice of 4×4 matrices indexed like bones.
func BuildWorldMatrices(bones []model.Bone) ([]mathutil.Mat4, error) {
	index := make(map[string]int, len(bones))
	for i, b := range bones {
		index[b.Name] = i
	}

	worlds := make([]mathutil.Mat4, len(bones))
	state := make([]uint8, len(bones)) // 0 = todo, 1 = in progress, 2 = done

	var resolve func(i int) error
	resolve = func(i int) error {
		switch state[i] {
		case 2:
			return nil
		case 1:
			return fmt.Errorf("skeleton: bone %q: %w", bones[i].Name, convert.ErrCycle)
		}
		state[i] = 1

		local := LocalMatrix(bones[i])
		if bones[i].HasParent() {
			p, ok := index[bones[i].Parent]
			if !ok {
				return fmt.Errorf("skeleton: bone %q parent %q: %w", bones[i].Name, bones[i].Parent, convert.ErrUnknownParent)
			}
			if err := resolve(p); err != nil {
				return err
			}
			// Chain with parent
			worlds[i] = mathutil.Mat4Mul(worlds[p], local)
		} else {
			worlds[i] = local
		}

		state[i] = 2
		return nil
	}

	for i := range bones {
		if err := resolve(i); err != nil {
			return nil, err
		}
	}
	return worlds, nil
}

// CubeCorners returns the eight corners of c, transformed by world.
// Corner i has bit 0 set for max X, bit 1 for max Y and bit 2 for max Z.
func CubeCorners(c model.Cube, world mathutil.Mat4) [8]mathutil.Vec3 {
	lo := c.Origin
	hi := c.Origin.Add(c.Size.ToVec3())

	var out [8]mathutil.Vec3
	for i := range out {
		p := lo
		if i&1 != 0 {
			p[0] = hi[0]
		}
		if i&2 != 0 {
			p[1] = hi[1]
		}
		if i&4 != 0 {
			p[2] = hi[2]
		}
		out[i] = world.MulPoint(p)
	}
	return out
}
