package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cs2bedrock/internal/convert"
	"cs2bedrock/internal/mathutil"
	"cs2bedrock/internal/model"

	"gopkg.in/yaml.v3"
)

// csFile matches the on-disk block tree, in either JSON or YAML.
type csFile struct {
	Title       string         `json:"title" yaml:"title"`
	TextureSize mathutil.Vec2i `json:"textureSize" yaml:"textureSize"`
	Tree        []csNode       `json:"tree" yaml:"tree"`
}

type csNode struct {
	Name            string         `json:"name" yaml:"name"`
	Position        mathutil.Vec3  `json:"position" yaml:"position"`
	OffsetFromPivot mathutil.Vec3  `json:"offsetFromPivot" yaml:"offsetFromPivot"`
	Size            mathutil.Vec3i `json:"size" yaml:"size"`
	Rotation        mathutil.Vec3  `json:"rotation" yaml:"rotation"`
	// Orientation is an optional unit quaternion (x, y, z, w). It wins over Rotation.
	Orientation *mathutil.Quat `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	TexOffset   mathutil.Vec2i `json:"texOffset" yaml:"texOffset"`
	Children    []csNode       `json:"children,omitempty" yaml:"children,omitempty"`
}

// DecodeCraftStudio parses a block tree.
func DecodeCraftStudio(r io.Reader, kind Kind) (*model.CraftStudioModel, error) {
	var f csFile
	var err error
	switch kind {
	case KindYAML:
		err = yaml.NewDecoder(r).Decode(&f)
	default:
		err = json.NewDecoder(r).Decode(&f)
	}
	if err != nil {
		return nil, fmt.Errorf("format: decode craftstudio %s: %w", kind, err)
	}

	m := &model.CraftStudioModel{Title: f.Title, TextureSize: f.TextureSize}
	for _, n := range f.Tree {
		m.Tree = append(m.Tree, n.toBlock())
	}
	return m, nil
}

func (n csNode) toBlock() *model.Block {
	b := &model.Block{
		Name:            n.Name,
		Position:        n.Position,
		OffsetFromPivot: n.OffsetFromPivot,
		Size:            n.Size,
		Rotation:        n.Rotation,
		TexOffset:       n.TexOffset,
	}
	if n.Orientation != nil {
		rot := mathutil.QuatToMat3(n.Orientation.Normalize())
		b.Rotation = snap(mathutil.DegVec(rot.Euler(convert.CraftStudioOrder)))
	}
	for _, c := range n.Children {
		b.AddChild(c.toBlock())
	}
	return b
}

func fromBlock(b *model.Block) csNode {
	n := csNode{
		Name:            b.Name,
		Position:        snap(b.Position),
		OffsetFromPivot: snap(b.OffsetFromPivot),
		Size:            b.Size,
		Rotation:        snap(b.Rotation),
		TexOffset:       b.TexOffset,
	}
	for _, c := range b.Children {
		n.Children = append(n.Children, fromBlock(c))
	}
	return n
}

// EncodeCraftStudio writes a block tree. Orientation quaternions are never written.
func EncodeCraftStudio(w io.Writer, m *model.CraftStudioModel, kind Kind) error {
	f := csFile{Title: m.Title, TextureSize: m.TextureSize}
	for _, b := range m.Tree {
		f.Tree = append(f.Tree, fromBlock(b))
	}

	switch kind {
	case KindYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("format: encode craftstudio yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("format: encode craftstudio json: %w", err)
		}
		return nil
	}
}

// ReadCraftStudio loads a block tree, picking JSON or YAML by extension.
func ReadCraftStudio(path string) (*model.CraftStudioModel, error) {
	kind, err := KindFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("format: read %s: %w", path, err)
	}
	m, err := DecodeCraftStudio(bytes.NewReader(data), kind)
	if err != nil {
		return nil, fmt.Errorf("format: %s: %w", path, err)
	}
	return m, nil
}

// WriteCraftStudio saves a block tree, picking JSON or YAML by extension.
func WriteCraftStudio(path string, m *model.CraftStudioModel) error {
	kind, err := KindFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeCraftStudio(&buf, m, kind); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
