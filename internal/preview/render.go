// Package preview draws a quick flat-shaded picture of a Bedrock geometry so
// conversions can be checked by eye without launching the game.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"cs2bedrock/internal/mathutil"
	"cs2bedrock/internal/model"
	"cs2bedrock/internal/postprocess"
	"cs2bedrock/internal/raster"
	"cs2bedrock/internal/skeleton"
	"cs2bedrock/internal/texture"
	"cs2bedrock/internal/viewmatrix"

	"github.com/cespare/xxhash/v2"
)

var ErrNoCubes = errors.New("geometry has no cubes")

// Options controls the preview camera and output size.
type Options struct {
	Size        int     // output width and height in pixels
	Supersample int     // render at Size*Supersample, then downsample
	Yaw, Pitch  float64 // camera orbit in degrees
	Fill        float64 // if > 0, crop and rescale content to this fraction of Size
	Atlas       *image.NRGBA
}

// DefaultOptions returns a three-quarter view from slightly above.
func DefaultOptions() Options {
	return Options{Size: 256, Supersample: 2, Yaw: 35, Pitch: 20, Fill: 0.9}
}

// boxFaces lists the two triangles of each cube face by corner index
// (bit 0 = max X, bit 1 = max Y, bit 2 = max Z).
var boxFaces = [12][3]int{
	{0, 2, 6}, {0, 6, 4}, // -X
	{1, 5, 7}, {1, 7, 3}, // +X
	{0, 4, 5}, {0, 5, 1}, // -Y
	{2, 3, 7}, {2, 7, 6}, // +Y
	{0, 1, 3}, {0, 3, 2}, // -Z
	{4, 6, 7}, {4, 7, 5}, // +Z
}

var palette = []color.NRGBA{
	{0x6f, 0xa8, 0xdc, 0xff},
	{0x93, 0xc4, 0x7d, 0xff},
	{0xf6, 0xb2, 0x6b, 0xff},
	{0xe0, 0x66, 0x66, 0xff},
	{0xb4, 0xa7, 0xd6, 0xff},
	{0xff, 0xd9, 0x66, 0xff},
	{0x76, 0xa5, 0xaf, 0xff},
	{0xc2, 0x7b, 0xa0, 0xff},
}

// BoneColor picks a stable palette color from the bone name.
func BoneColor(name string) color.NRGBA {
	return palette[xxhash.Sum64String(name)%uint64(len(palette))]
}

type cubeDraw struct {
	corners [8]mathutil.Vec3
	color   color.NRGBA
}

// Render rasterizes every cube of g in its rest pose. Cubes take the average
// color of their UV footprint in opts.Atlas, or a per-bone palette color.
func Render(g *model.Geometry, opts Options) (*image.NRGBA, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}

	worlds, err := skeleton.BuildWorldMatrices(g.Bones)
	if err != nil {
		return nil, fmt.Errorf("preview: %s: %w", g.Identifier, err)
	}

	atlas := opts.Atlas
	if atlas != nil {
		atlas = texture.FitAtlas(atlas, g.TextureWidth, g.TextureHeight)
	}

	var cubes []cubeDraw
	var verts []mathutil.Vec3
	for i, b := range g.Bones {
		for _, c := range b.Cubes {
			if c.Size.IsZero() {
				continue
			}
			d := cubeDraw{corners: skeleton.CubeCorners(c, worlds[i]), color: BoneColor(b.Name)}
			if atlas != nil {
				if col, ok := texture.RegionColor(atlas, c.UV, c.Size); ok {
					d.color = col
				}
			}
			cubes = append(cubes, d)
			verts = append(verts, d.corners[:]...)
		}
	}
	if len(cubes) == 0 {
		return nil, fmt.Errorf("preview: %s: %w", g.Identifier, ErrNoCubes)
	}

	renderSize := opts.Size * opts.Supersample
	R := viewmatrix.Camera(opts.Yaw, opts.Pitch)
	center, scale := viewmatrix.Fit(verts, R, renderSize, 8*opts.Supersample)
	px, py, pz := viewmatrix.ProjectVertices(verts, R, center, scale, renderSize)

	fb := raster.NewFrameBuffer(renderSize, renderSize)
	lc := raster.DefaultLightConfig()
	for ci, d := range cubes {
		base := ci * 8
		for _, f := range boxFaces {
			vi := [3]int{base + f[0], base + f[1], base + f[2]}
			raster.RasterizeTriangle(fb, px, py, pz, vi, d.color, &lc)
		}
	}

	img := postprocess.Downsample(fb.Image(), opts.Supersample)
	if opts.Fill > 0 {
		img = postprocess.CropAndCenter(img, opts.Size, opts.Fill)
	}
	return img, nil
}
