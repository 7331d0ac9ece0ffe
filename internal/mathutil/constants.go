package mathutil

import "math"

// Epsilon is the element-wise tolerance for comparing recomposed rotation matrices.
const Epsilon = 1e-10

// zeroTurnEps absorbs rounding in degree values read from model files.
const zeroTurnEps = 1e-9

// IsZeroRotation reports whether every component of a degree triple is a whole
// number of turns (0, ±360, ±720, ...).
func IsZeroRotation(deg Vec3) bool {
	for _, a := range deg {
		r := math.Abs(math.Mod(a, 360))
		if math.IsNaN(r) {
			return false
		}
		if r > zeroTurnEps && 360-r > zeroTurnEps {
			return false
		}
	}
	return true
}

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}

// AngleDistVec applies AngleDist per axis.
func AngleDistVec(a, b Vec3) Vec3 {
	return Vec3{AngleDist(a[0], b[0]), AngleDist(a[1], b[1]), AngleDist(a[2], b[2])}
}
