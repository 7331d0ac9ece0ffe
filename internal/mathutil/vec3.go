package mathutil

import (
	"math"
	"strconv"
	"strings"
)

// Vec3 is a 3-component vector (value type, stack-allocated).
// It doubles as an Euler triple; the caller tracks whether it holds radians or degrees.
type Vec3 [3]float64

// Vec3Zero is the origin / the identity rotation.
var Vec3Zero = Vec3{}

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

func (v Vec3) WithX(x float64) Vec3 { return Vec3{x, v[1], v[2]} }
func (v Vec3) WithY(y float64) Vec3 { return Vec3{v[0], y, v[2]} }
func (v Vec3) WithZ(z float64) Vec3 { return Vec3{v[0], v[1], z} }

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Mod returns the component-wise remainder. The sign follows the dividend.
func (a Vec3) Mod(b Vec3) Vec3 {
	return Vec3{math.Mod(a[0], b[0]), math.Mod(a[1], b[1]), math.Mod(a[2], b[2])}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// ApproxEqual reports whether every component differs by strictly less than eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a[0]-b[0]) < eps &&
		math.Abs(a[1]-b[1]) < eps &&
		math.Abs(a[2]-b[2]) < eps
}

func (v Vec3) String() string {
	return v.Format(func(f float64) string {
		return strconv.FormatFloat(f, 'g', -1, 64)
	})
}

// Format renders the vector as "[x, y, z]" using f for each component.
func (v Vec3) Format(f func(float64) string) string {
	return formatList(v[:], f)
}

func formatList(vals []float64, f func(float64) string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f(x))
	}
	sb.WriteByte(']')
	return sb.String()
}

// FixedFormat returns a formatter printing at most prec decimals with trailing zeros trimmed.
func FixedFormat(prec int) func(float64) string {
	return func(f float64) string {
		s := strconv.FormatFloat(f, 'f', prec, 64)
		if strings.ContainsRune(s, '.') {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		if s == "-0" {
			s = "0"
		}
		return s
	}
}
