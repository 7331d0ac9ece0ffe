package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cs2bedrock/internal/mathutil"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

var (
	ErrEmptyAtlas    = errors.New("empty texture atlas")
	ErrUnknownFormat = errors.New("unknown atlas format")
)

// decoders by lowercase extension. TGA has no magic number, so the
// decoder is chosen by extension rather than sniffed.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tga":  tga.Decode,
}

// LoadAtlas reads a PNG, JPEG or TGA texture atlas and returns it as NRGBA.
func LoadAtlas(path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: %s: %w", path, ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("texture: %s: %w", path, ErrEmptyAtlas)
	}
	return toNRGBA(img), nil
}

// FitAtlas rescales atlas to w×h texture units with nearest-neighbour
// sampling, so pixel art keeps hard edges. Returns atlas unchanged if it
// already matches.
func FitAtlas(atlas *image.NRGBA, w, h int) *image.NRGBA {
	b := atlas.Bounds()
	if w <= 0 || h <= 0 || (b.Dx() == w && b.Dy() == h) {
		return atlas
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), atlas, b, draw.Src, nil)
	return dst
}

// RegionColor averages the opaque texels of a cube's box-UV footprint:
// a 2(sx+sz) × (sz+sy) rectangle at uv. Texels with alpha below 8 are skipped.
// ok is false if the footprint holds no opaque texel.
func RegionColor(atlas *image.NRGBA, uv mathutil.Vec2i, size mathutil.Vec3i) (c color.NRGBA, ok bool) {
	sx, sy, sz := abs(size.X()), abs(size.Y()), abs(size.Z())
	r := image.Rect(uv.X(), uv.Y(), uv.X()+2*(sx+sz), uv.Y()+sz+sy).Intersect(atlas.Bounds())
	if r.Empty() {
		return color.NRGBA{}, false
	}

	var sumR, sumG, sumB, sumA, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := atlas.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, off = x+1, off+4 {
			a := int(atlas.Pix[off+3])
			if a < 8 {
				continue
			}
			sumR += int(atlas.Pix[off])
			sumG += int(atlas.Pix[off+1])
			sumB += int(atlas.Pix[off+2])
			sumA += a
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{}, false
	}
	return color.NRGBA{
		R: uint8((sumR + n/2) / n),
		G: uint8((sumG + n/2) / n),
		B: uint8((sumB + n/2) / n),
		A: uint8((sumA + n/2) / n),
	}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha
		stddraw.Draw(dst, dst.Bounds(), src, b.Min, stddraw.Src)
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
			}
		}
	}
	return dst
}
