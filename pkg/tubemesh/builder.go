package tubemesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/strandmesh/pkg/math"
	"github.com/Faultbox/strandmesh/pkg/skeleton"
)

const (
	// DefaultResolution is the ring vertex count used when Resolution is 0.
	DefaultResolution = 8
	// MinResolution is the smallest ring that still encloses volume.
	MinResolution = 3
	// MaxResolution caps the per-ring vertex count.
	MaxResolution = 128

	// minCircumference is the ring circumference below which V stops being
	// normalized by it, keeping texture coordinates finite on hair-thin
	// strands.
	minCircumference = 1e-4
)

// Builder generates tube surfaces from skeleton strands.
type Builder struct {
	// Resolution is the number of vertices around each ring. Zero selects
	// DefaultResolution; other values are silently clamped to
	// [MinResolution, MaxResolution].
	Resolution int
}

func (b *Builder) resolution() int {
	r := b.Resolution
	if r == 0 {
		r = DefaultResolution
	}
	if r < MinResolution {
		r = MinResolution
	}
	if r > MaxResolution {
		r = MaxResolution
	}
	return r
}

// Build converts every strand of the skeleton into tube geometry, bucketed
// by the material id of the point starting each segment. Strands shorter
// than two points after filtering contribute nothing. The returned map is
// never nil but may be empty.
func (b *Builder) Build(skel *skeleton.Skeleton) map[uint8]*MeshBucket {
	buckets := make(map[uint8]*MeshBucket)
	if skel == nil {
		return buckets
	}
	res := b.resolution()
	for _, strand := range skel.Strands {
		b.buildStrand(buckets, strand.Points, res)
	}
	return buckets
}

func (b *Builder) buildStrand(buckets map[uint8]*MeshBucket, points []skeleton.Point, res int) {
	pts := skeleton.FilterStrand(points)
	if len(pts) < 2 {
		return
	}
	frames := skeleton.Frames(pts)
	vs := vCoordinates(pts)

	// Consecutive segments in the same bucket share the boundary ring.
	var prevTop uint32
	prevMat := -1

	for i := 0; i+1 < len(pts); i++ {
		mat := pts[i].MaterialID
		bucket := buckets[mat]
		if bucket == nil {
			bucket = &MeshBucket{}
			buckets[mat] = bucket
		}

		var bottom uint32
		if int(mat) == prevMat {
			bottom = prevTop
		} else {
			bottom = appendRing(bucket, pts[i], frames[i], vs[i], res)
		}
		top := appendRing(bucket, pts[i+1], frames[i+1], vs[i+1], res)
		connectRings(bucket, bottom, top, res)

		prevTop = top
		prevMat = int(mat)
	}
}

// appendRing emits res+1 vertices around the point's cross section, the
// last duplicating the first so U can reach 1.0, and returns the index of
// the first vertex.
func appendRing(bucket *MeshBucket, p skeleton.Point, frame math.Quat, v float32, res int) uint32 {
	base := uint32(len(bucket.Positions))
	for j := 0; j <= res; j++ {
		u := float32(j) / float32(res)
		theta := u * 2 * math32.Pi
		c := math32.Cos(theta)
		s := math32.Sin(theta)

		pos := frame.RotateVec3(math.Vec3{X: c * p.Radius, Z: s * p.Radius}).Add(p.Position)
		normal := frame.RotateVec3(math.Vec3{X: c, Z: s})

		bucket.Positions = append(bucket.Positions, pos)
		bucket.Normals = append(bucket.Normals, normal)
		bucket.Colors = append(bucket.Colors, p.Color)
		bucket.UVs = append(bucket.UVs, math.Vec2{X: u, Y: v})
	}
	return base
}

// connectRings bridges two rings with res quads, two triangles each.
func connectRings(bucket *MeshBucket, bottom, top uint32, res int) {
	for j := uint32(0); j < uint32(res); j++ {
		b0 := bottom + j
		b1 := bottom + j + 1
		t0 := top + j
		t1 := top + j + 1
		bucket.Indices = append(bucket.Indices, b0, t0, b1, b1, t0, t1)
	}
}

// vCoordinates accumulates the V texture coordinate per point. Each segment
// advances V by its length normalized by the segment's circumference, scaled
// by the starting point's UVScale, so V is continuous across tapering and
// across material splits at shared positions.
func vCoordinates(pts []skeleton.Point) []float32 {
	vs := make([]float32, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		segLen := pts[i+1].Position.Distance(pts[i].Position)
		avgRadius := (pts[i].Radius + pts[i+1].Radius) / 2
		circumference := 2 * math32.Pi * avgRadius

		vScale := float32(1)
		if circumference > minCircumference {
			vScale = 1 / circumference
		}
		vs[i+1] = vs[i] + segLen*vScale*pts[i].UVScale
	}
	return vs
}
