package skeleton

import "github.com/Faultbox/strandmesh/pkg/math"

// foldbackSq is the squared length below which the sum of the incoming and
// outgoing directions is considered a fold-back, where the miter tangent is
// undefined.
const foldbackSq = 0.001

// forward is the local axis a frame carries along the strand. Cross-section
// rings are built in the plane perpendicular to it.
var forward = math.Vec3{Y: 1}

// Frames computes one orthonormal frame per point by parallel transport:
// the first frame aligns point 0's orientation with the initial direction,
// and each subsequent frame applies only the minimal rotation carrying the
// previous tangent onto the next, so the ring seam does not twist around
// the strand. Interior tangents are mitered between the incoming and
// outgoing directions; a fold-back falls back to the incoming direction,
// and the last point uses the incoming direction alone.
//
// Points are expected to be filtered first. Returns nil for strands with
// fewer than two points.
func Frames(points []Point) []math.Quat {
	if len(points) < 2 {
		return nil
	}
	frames := make([]math.Quat, len(points))

	rot := points[0].Orientation
	dir := points[1].Position.Sub(points[0].Position).Normalize()
	frames[0] = math.RotationBetween(rot.RotateVec3(forward), dir).Mul(rot)

	for i := 1; i < len(points); i++ {
		dirIn := points[i].Position.Sub(points[i-1].Position).Normalize()
		tangent := dirIn
		if i+1 < len(points) {
			dirOut := points[i+1].Position.Sub(points[i].Position).Normalize()
			if sum := dirIn.Add(dirOut); sum.LengthSquared() >= foldbackSq {
				tangent = sum.Normalize()
			}
		}
		prev := frames[i-1]
		frames[i] = math.RotationBetween(prev.RotateVec3(forward), tangent).Mul(prev)
	}
	return frames
}
