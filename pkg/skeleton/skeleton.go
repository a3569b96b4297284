// Package skeleton defines the strand data model shared by the mesh and
// collider builders, the point filter, and the parallel-transport frames
// that orient tube cross sections.
package skeleton

import "github.com/Faultbox/strandmesh/pkg/math"

// Point is one sample along a strand centerline.
type Point struct {
	Position    math.Vec3
	Orientation math.Quat
	Radius      float32
	Color       math.Vec4
	MaterialID  uint8
	UVScale     float32
}

// Strand is an ordered run of points forming one branch centerline.
type Strand struct {
	Points []Point
}

// Length returns the polyline length of the strand.
func (s Strand) Length() float32 {
	var total float32
	for i := 1; i < len(s.Points); i++ {
		total += s.Points[i].Position.Distance(s.Points[i-1].Position)
	}
	return total
}

// Skeleton is a set of independent strands. Branching is expressed by
// strands sharing start positions; the skeleton itself stores no topology.
type Skeleton struct {
	Strands []Strand
}

// PointCount returns the total number of points across all strands.
func (s *Skeleton) PointCount() int {
	n := 0
	for _, st := range s.Strands {
		n += len(st.Points)
	}
	return n
}
