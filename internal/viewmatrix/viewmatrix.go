package viewmatrix

import (
	"math"

	"cs2bedrock/internal/mathutil"
)

// Camera builds the 3×3 view rotation for an orbit camera: yaw about +Y,
// then pitch about +X. The view looks down -Z with +Y up.
func Camera(yawDeg, pitchDeg float64) mathutil.Mat3 {
	yaw := mathutil.RotY(mathutil.Deg2Rad(yawDeg))
	pitch := mathutil.RotX(mathutil.Deg2Rad(pitchDeg))
	return mathutil.Mat3Mul(pitch, yaw)
}

// Fit computes the screen center and scale that frame all verts, after
// rotation by R, inside a renderSize square with margin pixels on every side.
func Fit(verts []mathutil.Vec3, R mathutil.Mat3, renderSize, margin int) (center mathutil.Vec3, scale float64) {
	if len(verts) == 0 {
		return mathutil.Vec3{}, 1
	}
	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range verts {
		t := R.MulVec3(v)
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], t[k])
			hi[k] = math.Max(hi[k], t[k])
		}
	}
	center = lo.Add(hi).Scale(0.5)

	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	avail := renderSize - 2*margin
	if avail < 1 {
		avail = 1
	}
	return center, float64(avail) / span
}

// ProjectVertices transforms 3D vertices to 2D screen coordinates with an
// orthographic projection. Returns px, py, pz slices (screen X, screen Y, depth);
// larger depth is closer to the viewer.
func ProjectVertices(verts []mathutil.Vec3, R mathutil.Mat3, center mathutil.Vec3, scale float64, renderSize int) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(renderSize) / 2
	for i, v := range verts {
		t := R.MulVec3(v)
		px[i] = (t[0]-center[0])*scale + half
		py[i] = -(t[1]-center[1])*scale + half
		pz[i] = t[2]
	}
	return px, py, pz
}
