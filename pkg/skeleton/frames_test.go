package skeleton

import (
	"testing"

	"github.com/Faultbox/strandmesh/pkg/math"
	"github.com/chewxy/math32"
)

// strandAt builds identity-oriented test points at the given positions.
func strandAt(positions ...math.Vec3) []Point {
	pts := make([]Point, len(positions))
	for i, p := range positions {
		pts[i] = Point{
			Position:    p,
			Orientation: math.QuatIdentity(),
			Radius:      0.1,
			Color:       math.Vec4{1, 1, 1, 1},
			UVScale:     1,
		}
	}
	return pts
}

func TestFramesTooShort(t *testing.T) {
	if got := Frames(nil); got != nil {
		t.Errorf("Frames(nil) = %v, want nil", got)
	}
	if got := Frames(strandAt(math.Vec3{})); got != nil {
		t.Errorf("Frames(single point) = %v, want nil", got)
	}
}

func TestFramesCount(t *testing.T) {
	pts := strandAt(
		math.Vec3{},
		math.Vec3{Y: 1},
		math.Vec3{Y: 2},
		math.Vec3{Y: 3},
	)
	frames := Frames(pts)
	if len(frames) != len(pts) {
		t.Fatalf("Frames() returned %d frames for %d points", len(frames), len(pts))
	}
}

func TestFramesStraightStrand(t *testing.T) {
	pts := strandAt(math.Vec3{}, math.Vec3{Y: 1}, math.Vec3{Y: 2})
	frames := Frames(pts)

	// A strand already pointing along the forward axis needs no rotation.
	for i, f := range frames {
		d := f.RotateVec3(math.Vec3{Y: 1})
		if d.Distance(math.Vec3{Y: 1}) > 0.0001 {
			t.Errorf("frame %d forward = %v, want +Y", i, d)
		}
	}
}

func TestFramesRightAngleBend(t *testing.T) {
	pts := strandAt(math.Vec3{}, math.Vec3{Y: 1}, math.Vec3{X: 1, Y: 1})
	frames := Frames(pts)
	if len(frames) != 3 {
		t.Fatalf("Frames() returned %d frames, want 3", len(frames))
	}

	inv := 1 / math32.Sqrt(2)
	wantForward := []math.Vec3{
		{Y: 1},
		{X: inv, Y: inv}, // mitered between +Y and +X
		{X: 1},           // last point uses the incoming direction
	}
	for i, want := range wantForward {
		got := frames[i].RotateVec3(math.Vec3{Y: 1})
		if got.Distance(want) > 0.001 {
			t.Errorf("frame %d forward = %v, want %v", i, got, want)
		}
	}

	// Parallel transport about the bend normal leaves the normal fixed, so
	// the seam does not spin around the strand.
	for i, f := range frames {
		z := f.RotateVec3(math.Vec3{Z: 1})
		if z.Distance(math.Vec3{Z: 1}) > 0.001 {
			t.Errorf("frame %d twisted the bend normal to %v", i, z)
		}
	}
}

func TestFramesFoldBack(t *testing.T) {
	// Out and straight back. The miter tangent at the middle point is
	// degenerate and must fall back to the incoming direction.
	pts := strandAt(math.Vec3{}, math.Vec3{Y: 1}, math.Vec3{})
	frames := Frames(pts)
	if len(frames) != 3 {
		t.Fatalf("Frames() returned %d frames, want 3", len(frames))
	}
	for i, f := range frames {
		if !f.IsFinite() {
			t.Fatalf("frame %d is not finite: %v", i, f)
		}
	}

	mid := frames[1].RotateVec3(math.Vec3{Y: 1})
	if mid.Distance(math.Vec3{Y: 1}) > 0.001 {
		t.Errorf("fold-back frame forward = %v, want incoming +Y", mid)
	}
	last := frames[2].RotateVec3(math.Vec3{Y: 1})
	if last.Distance(math.Vec3{Y: -1}) > 0.001 {
		t.Errorf("final frame forward = %v, want -Y", last)
	}
}

func TestFramesSeedOrientation(t *testing.T) {
	// Point 0 already rotates forward onto +Z; a strand along +Z should
	// keep that orientation untouched.
	rot := math.QuatFromAxisAngle(math.Vec3{X: 1}, math32.Pi/2)
	pts := strandAt(math.Vec3{}, math.Vec3{Z: 1})
	pts[0].Orientation = rot

	frames := Frames(pts)
	if d := math32.Abs(frames[0].Dot(rot)); d < 0.999 {
		t.Errorf("seed frame %v diverged from orientation %v (|dot|=%v)", frames[0], rot, d)
	}
}

func TestFramesOppositeSeed(t *testing.T) {
	// Orientation points forward at -X while the strand leaves along +X,
	// forcing the half-turn branch of the rotation arc.
	rot := math.QuatFromAxisAngle(math.Vec3{Z: 1}, math32.Pi/2)
	pts := strandAt(math.Vec3{}, math.Vec3{X: 1})
	pts[0].Orientation = rot

	frames := Frames(pts)
	if !frames[0].IsFinite() {
		t.Fatalf("seed frame is not finite: %v", frames[0])
	}
	got := frames[0].RotateVec3(math.Vec3{Y: 1})
	if got.Distance(math.Vec3{X: 1}) > 0.001 {
		t.Errorf("seed frame forward = %v, want +X", got)
	}
}
