package model

import "cs2bedrock/internal/mathutil"

// Block is one node of a CraftStudio block hierarchy. Position is relative to the
// parent's pivot, OffsetFromPivot places the box center relative to the block's own
// pivot, and Rotation holds Euler degrees applied in Y, X, Z order.
type Block struct {
	Name            string
	Position        mathutil.Vec3
	OffsetFromPivot mathutil.Vec3
	Size            mathutil.Vec3i
	Rotation        mathutil.Vec3
	TexOffset       mathutil.Vec2i
	Children        []*Block
}

func (b *Block) AddChild(child *Block) {
	b.Children = append(b.Children, child)
}

// CraftStudioModel is a block forest plus its texture atlas size.
type CraftStudioModel struct {
	Title       string
	TextureSize mathutil.Vec2i
	Tree        []*Block
}

// Walk visits every block depth-first, parents before children.
// parent is nil for root blocks. Returning an error stops the walk.
func (m *CraftStudioModel) Walk(fn func(b, parent *Block) error) error {
	var visit func(b, parent *Block) error
	visit = func(b, parent *Block) error {
		if err := fn(b, parent); err != nil {
			return err
		}
		for _, c := range b.Children {
			if err := visit(c, b); err != nil {
				return err
			}
		}
		return nil
	}
	for _, b := range m.Tree {
		if err := visit(b, nil); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of blocks in the forest.
func (m *CraftStudioModel) Count() int {
	n := 0
	m.Walk(func(*Block, *Block) error {
		n++
		return nil
	})
	return n
}
