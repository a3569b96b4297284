// Package collider approximates skeleton strands with capsule and sphere
// collision proxies for physics engines.
package collider

import "github.com/Faultbox/strandmesh/pkg/math"

// Kind selects the primitive a Shape describes.
type Kind uint8

const (
	KindCapsule Kind = iota
	KindSphere
)

// String returns the lowercase primitive name.
func (k Kind) String() string {
	switch k {
	case KindCapsule:
		return "capsule"
	case KindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Shape is one collision primitive. Capsules are aligned with the local +Y
// axis; Length is the cylindrical section between the cap centers and is
// zero for spheres.
type Shape struct {
	Kind   Kind
	Radius float32
	Length float32
}

// PositionedCollider is a shape placed in world space, along with the
// source segment measurements it was derived from.
type PositionedCollider struct {
	Translation math.Vec3
	Rotation    math.Quat
	Shape       Shape

	// AvgRadius and SegmentLength describe the skeleton segment the shape
	// approximates, before the sphere/capsule decision.
	AvgRadius     float32
	SegmentLength float32
}

// Transform returns the world matrix placing the shape.
func (p PositionedCollider) Transform() math.Mat4 {
	t := math.Translate(p.Translation.X, p.Translation.Y, p.Translation.Z)
	return t.Mul(p.Rotation.ToMat4())
}

// Child is one shape inside a compound, with its local transform.
type Child struct {
	Translation math.Vec3
	Rotation    math.Quat
	Shape       Shape
}

// Compound groups every strand shape into a single collider a physics
// engine can attach to one body.
type Compound struct {
	Children []Child
}
