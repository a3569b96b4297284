// Package tubemesh turns skeleton strands into renderable tube surfaces,
// bucketed per material.
package tubemesh

import "github.com/Faultbox/strandmesh/pkg/math"

// MeshBucket accumulates the tube surface for one material. Slices are
// parallel per vertex; Indices is a triangle list referencing only vertices
// of this bucket.
type MeshBucket struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Colors    []math.Vec4
	UVs       []math.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices in the bucket.
func (m *MeshBucket) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles in the bucket.
func (m *MeshBucket) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the bucket holds no geometry.
func (m *MeshBucket) IsEmpty() bool {
	return len(m.Positions) == 0
}

// Bounds returns the axis-aligned bounding box of the bucket's positions.
// ok is false when the bucket has no vertices.
func (m *MeshBucket) Bounds() (min, max math.Vec3, ok bool) {
	if len(m.Positions) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}
	min = m.Positions[0]
	max = m.Positions[0]
	for _, p := range m.Positions[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max, true
}
