// Package convert maps CraftStudio block hierarchies to Bedrock entity geometry
// and back. Positions, sizes and UV offsets are copied; rotations are bridged
// between the two tools' Euler conventions through a rotation matrix.
package convert

import (
	"errors"
	"fmt"
	"strings"

	"cs2bedrock/internal/mathutil"
	"cs2bedrock/internal/model"
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrDuplicateName = errors.New("duplicate name")
	ErrUnknownParent = errors.New("unknown parent bone")
	ErrCycle         = errors.New("bone hierarchy has a cycle")
)

// CraftStudio rotates Y, then X, then Z. Bedrock rotates Z, then Y, then X,
// with Z measured left-handed.
const (
	CraftStudioOrder = mathutil.OrderYXZ
	BedrockOrder     = mathutil.OrderLZYX
)

// Options tune the generated geometry. Zero values keep the model's own settings.
type Options struct {
	Identifier    string
	TextureWidth  int
	TextureHeight int
}

// BridgeRotation re-expresses an Euler triple in degrees from one axis order in another.
func BridgeRotation(deg mathutil.Vec3, from, to mathutil.Order) mathutil.Vec3 {
	m := mathutil.Compose(from, mathutil.RadVec(deg))
	return mathutil.DegVec(m.Euler(to))
}

// ToBedrock flattens the block forest into bones, parents first.
func ToBedrock(m *model.CraftStudioModel, opts Options) (*model.Geometry, error) {
	g := &model.Geometry{
		Identifier:    opts.Identifier,
		TextureWidth:  m.TextureSize.X(),
		TextureHeight: m.TextureSize.Y(),
	}
	if g.Identifier == "" {
		g.Identifier = Identifier(m.Title)
	}
	if opts.TextureWidth > 0 {
		g.TextureWidth = opts.TextureWidth
	}
	if opts.TextureHeight > 0 {
		g.TextureHeight = opts.TextureHeight
	}

	pivots := make(map[*model.Block]mathutil.Vec3)
	seen := make(map[string]bool)

	err := m.Walk(func(b, parent *model.Block) error {
		if b.Name == "" {
			return fmt.Errorf("convert: block under %q: %w", parentName(parent), ErrEmptyName)
		}
		if seen[b.Name] {
			return fmt.Errorf("convert: block %q: %w", b.Name, ErrDuplicateName)
		}
		seen[b.Name] = true

		bone := model.Bone{Name: b.Name}
		var parentPivot mathutil.Vec3
		if parent != nil {
			bone.Parent = parent.Name
			parentPivot = pivots[parent]
		}
		bone.Pivot = parentPivot.Add(b.Position)
		pivots[b] = bone.Pivot

		if !mathutil.IsZeroRotation(b.Rotation) {
			r := BridgeRotation(b.Rotation, CraftStudioOrder, BedrockOrder)
			bone.Rotation = &r
		}

		if !b.Size.IsZero() {
			half := b.Size.ToVec3().Scale(0.5)
			bone.Cubes = []model.Cube{{
				Origin: bone.Pivot.Add(b.OffsetFromPivot).Sub(half),
				Size:   b.Size,
				UV:     b.TexOffset,
			}}
		}

		g.Bones = append(g.Bones, bone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ToCraftStudio rebuilds a block forest from flat bones. A bone's first cube
// becomes the block's box; further cubes become unrotated child blocks named
// "<bone>_cube<n>".
func ToCraftStudio(g *model.Geometry) (*model.CraftStudioModel, error) {
	index := make(map[string]int, len(g.Bones))
	for i, b := range g.Bones {
		if b.Name == "" {
			return nil, fmt.Errorf("convert: bone #%d: %w", i, ErrEmptyName)
		}
		if _, ok := index[b.Name]; ok {
			return nil, fmt.Errorf("convert: bone %q: %w", b.Name, ErrDuplicateName)
		}
		index[b.Name] = i
	}
	if err := checkHierarchy(g.Bones, index); err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(index))
	for name := range index {
		taken[name] = true
	}

	blocks := make([]*model.Block, len(g.Bones))
	for i, b := range g.Bones {
		var parentPivot mathutil.Vec3
		if b.HasParent() {
			parentPivot = g.Bones[index[b.Parent]].Pivot
		}
		blocks[i] = blockFromBone(b, parentPivot, taken)
	}

	m := &model.CraftStudioModel{
		Title:       strings.TrimPrefix(g.Identifier, "geometry."),
		TextureSize: mathutil.Vec2i{g.TextureWidth, g.TextureHeight},
	}
	for i, b := range g.Bones {
		if b.HasParent() {
			blocks[index[b.Parent]].AddChild(blocks[i])
		} else {
			m.Tree = append(m.Tree, blocks[i])
		}
	}
	return m, nil
}

func checkHierarchy(bones []model.Bone, index map[string]int) error {
	for _, b := range bones {
		if b.HasParent() {
			if _, ok := index[b.Parent]; !ok {
				return fmt.Errorf("convert: bone %q parent %q: %w", b.Name, b.Parent, ErrUnknownParent)
			}
		}
	}
	for _, b := range bones {
		cur := b
		for steps := 0; cur.HasParent(); steps++ {
			if steps >= len(bones) {
				return fmt.Errorf("convert: bone %q: %w", b.Name, ErrCycle)
			}
			cur = bones[index[cur.Parent]]
		}
	}
	return nil
}

func blockFromBone(b model.Bone, parentPivot mathutil.Vec3, taken map[string]bool) *model.Block {
	blk := &model.Block{
		Name:     b.Name,
		Position: b.Pivot.Sub(parentPivot),
	}
	if b.Rotation != nil {
		blk.Rotation = BridgeRotation(*b.Rotation, BedrockOrder, CraftStudioOrder)
	}

	for i, c := range b.Cubes {
		center := c.Origin.Add(c.Size.ToVec3().Scale(0.5))
		if i == 0 {
			blk.Size = c.Size
			blk.OffsetFromPivot = center.Sub(b.Pivot)
			blk.TexOffset = c.UV
			continue
		}
		blk.AddChild(&model.Block{
			Name:            uniqueName(fmt.Sprintf("%s_cube%d", b.Name, i), taken),
			OffsetFromPivot: center.Sub(b.Pivot),
			Size:            c.Size,
			TexOffset:       c.UV,
		})
	}
	return blk
}

func uniqueName(name string, taken map[string]bool) string {
	candidate := name
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", name, n)
	}
	taken[candidate] = true
	return candidate
}

func parentName(b *model.Block) string {
	if b == nil {
		return ""
	}
	return b.Name
}

// Identifier derives a Bedrock geometry identifier from a model title.
func Identifier(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return "geometry.unknown"
	}
	title = strings.TrimPrefix(title, "geometry.")
	var sb strings.Builder
	sb.WriteString("geometry.")
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
