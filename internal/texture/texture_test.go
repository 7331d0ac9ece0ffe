package texture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"cs2bedrock/internal/mathutil"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetNRGBA(x, y, color.NRGBA{200, 100, 0, 255})
			}
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadAtlasPNGAndTGA(t *testing.T) {
	dir := t.TempDir()
	src := checker(8, 4)

	pngPath := filepath.Join(dir, "a.png")
	writePNG(t, pngPath, src)
	got, err := LoadAtlas(pngPath)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, got.Pix)

	tgaPath := filepath.Join(dir, "a.tga")
	f, err := os.Create(tgaPath)
	require.NoError(t, err)
	require.NoError(t, tga.Encode(f, src))
	require.NoError(t, f.Close())

	got, err = LoadAtlas(tgaPath)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{200, 100, 0, 255}, got.NRGBAAt(1, 1))
	assert.Equal(t, uint8(0), got.NRGBAAt(6, 1).A)
}

func TestLoadAtlasJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Atlas.JPG")
	f, err := os.Create(path)
	require.NoError(t, err)
	solid := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(solid.Pix); i += 4 {
		copy(solid.Pix[i:i+4], []uint8{40, 160, 90, 255})
	}
	require.NoError(t, jpeg.Encode(f, solid, &jpeg.Options{Quality: 100}))
	require.NoError(t, f.Close())

	got, err := LoadAtlas(path)
	require.NoError(t, err)
	c := got.NRGBAAt(4, 4)
	assert.Equal(t, uint8(255), c.A)
	assert.InDelta(t, 160, int(c.G), 6)
}

func TestLoadAtlasErrors(t *testing.T) {
	_, err := LoadAtlas(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = LoadAtlas(bad)
	require.Error(t, err)

	gif := filepath.Join(t.TempDir(), "atlas.gif")
	require.NoError(t, os.WriteFile(gif, []byte("GIF89a"), 0o644))
	_, err = LoadAtlas(gif)
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRegionColor(t *testing.T) {
	atlas := checker(16, 16)

	// 2x2x2 cube at uv (0,0): footprint 8x4, left half opaque.
	c, ok := RegionColor(atlas, mathutil.Vec2i{0, 0}, mathutil.Vec3i{2, 2, 2})
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{200, 100, 0, 255}, c)

	_, ok = RegionColor(atlas, mathutil.Vec2i{8, 0}, mathutil.Vec3i{1, 1, 1})
	assert.False(t, ok, "right half is transparent")

	_, ok = RegionColor(atlas, mathutil.Vec2i{64, 64}, mathutil.Vec3i{1, 1, 1})
	assert.False(t, ok, "footprint outside the atlas")
}

func TestFitAtlas(t *testing.T) {
	atlas := checker(8, 8)
	assert.Same(t, atlas, FitAtlas(atlas, 8, 8))

	big := FitAtlas(atlas, 16, 16)
	require.Equal(t, image.Rect(0, 0, 16, 16), big.Bounds())
	assert.Equal(t, atlas.NRGBAAt(3, 0), big.NRGBAAt(7, 0))
	assert.Equal(t, atlas.NRGBAAt(4, 0), big.NRGBAAt(8, 0))
}

func TestIndexPrefersPNG(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "textures")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	for _, name := range []string{"Zombie.jpg", "Zombie.png", "skeleton.tga", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(sub, name), nil, 0o644))
	}

	idx := BuildIndex(dir)
	assert.Equal(t, 2, idx.Len())

	p, ok := idx.ResolvePath("models/zombie.csmodel.json")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(sub, "Zombie.png"), p)

	p, ok = idx.ResolvePath(`C:\art\Skeleton.yaml`)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(sub, "skeleton.tga"), p)

	_, ok = idx.ResolvePath("creeper.json")
	assert.False(t, ok)

	assert.Equal(t, 0, BuildIndex(dir, sub).Len())
}

func TestCacheRemembersResults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.png")
	writePNG(t, path, checker(4, 4))

	c := NewCache()
	a, err := c.Load(path)
	require.NoError(t, err)
	b, err := c.Load(path)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = c.Load(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.Equal(t, 2, c.Len())
}
