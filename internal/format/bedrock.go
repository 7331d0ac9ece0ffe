package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"cs2bedrock/internal/mathutil"
	"cs2bedrock/internal/model"
)

// DefaultFormatVersion is written when the caller does not pick one.
const DefaultFormatVersion = "1.12.0"

var errNoGeometry = errors.New("no minecraft:geometry entry")

type bedrockFile struct {
	FormatVersion string            `json:"format_version"`
	Geometry      []bedrockGeometry `json:"minecraft:geometry"`
}

type bedrockGeometry struct {
	Description bedrockDescription `json:"description"`
	Bones       []bedrockBone      `json:"bones,omitempty"`
}

type bedrockDescription struct {
	Identifier    string `json:"identifier"`
	TextureWidth  int    `json:"texture_width"`
	TextureHeight int    `json:"texture_height"`
}

type bedrockBone struct {
	Name     string         `json:"name"`
	Parent   string         `json:"parent,omitempty"`
	Pivot    mathutil.Vec3  `json:"pivot"`
	Rotation *mathutil.Vec3 `json:"rotation,omitempty"`
	Cubes    []bedrockCube  `json:"cubes,omitempty"`
}

// Sizes are floats on disk; other tools emit fractional sizes for inflated cubes.
type bedrockCube struct {
	Origin mathutil.Vec3  `json:"origin"`
	Size   mathutil.Vec3  `json:"size"`
	UV     mathutil.Vec2i `json:"uv"`
}

// EncodeBedrock writes g as an indented geometry file.
func EncodeBedrock(w io.Writer, g *model.Geometry, version string) error {
	if version == "" {
		version = DefaultFormatVersion
	}
	geo := bedrockGeometry{
		Description: bedrockDescription{
			Identifier:    g.Identifier,
			TextureWidth:  g.TextureWidth,
			TextureHeight: g.TextureHeight,
		},
	}
	for _, b := range g.Bones {
		bb := bedrockBone{
			Name:   b.Name,
			Parent: b.Parent,
			Pivot:  snap(b.Pivot),
		}
		if b.Rotation != nil {
			r := snap(*b.Rotation)
			bb.Rotation = &r
		}
		for _, c := range b.Cubes {
			bb.Cubes = append(bb.Cubes, bedrockCube{
				Origin: snap(c.Origin),
				Size:   c.Size.ToVec3(),
				UV:     c.UV,
			})
		}
		geo.Bones = append(geo.Bones, bb)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bedrockFile{FormatVersion: version, Geometry: []bedrockGeometry{geo}}); err != nil {
		return fmt.Errorf("format: encode bedrock: %w", err)
	}
	return nil
}

// DecodeBedrock reads the first geometry of a geometry file.
func DecodeBedrock(r io.Reader) (*model.Geometry, error) {
	var f bedrockFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("format: decode bedrock: %w", err)
	}
	if len(f.Geometry) == 0 {
		return nil, fmt.Errorf("format: decode bedrock: %w", errNoGeometry)
	}

	src := f.Geometry[0]
	g := &model.Geometry{
		Identifier:    src.Description.Identifier,
		TextureWidth:  src.Description.TextureWidth,
		TextureHeight: src.Description.TextureHeight,
	}
	for _, bb := range src.Bones {
		b := model.Bone{
			Name:     bb.Name,
			Parent:   bb.Parent,
			Pivot:    bb.Pivot,
			Rotation: bb.Rotation,
		}
		for _, c := range bb.Cubes {
			b.Cubes = append(b.Cubes, model.Cube{
				Origin: c.Origin,
				Size:   mathutil.Vec3i{roundInt(c.Size[0]), roundInt(c.Size[1]), roundInt(c.Size[2])},
				UV:     c.UV,
			})
		}
		g.Bones = append(g.Bones, b)
	}
	return g, nil
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

// ReadBedrock loads a geometry file.
func ReadBedrock(path string) (*model.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("format: read %s: %w", path, err)
	}
	g, err := DecodeBedrock(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("format: %s: %w", path, err)
	}
	return g, nil
}

// WriteBedrock saves g to path.
func WriteBedrock(path string, g *model.Geometry, version string) error {
	var buf bytes.Buffer
	if err := EncodeBedrock(&buf, g, version); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
