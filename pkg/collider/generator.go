package collider

import (
	"github.com/Faultbox/strandmesh/pkg/math"
	"github.com/Faultbox/strandmesh/pkg/skeleton"
)

// epsilon is the float32 machine epsilon. Shorter segments have no stable
// direction.
const epsilon = 0x1p-23

// forward is the capsule axis in local space.
var forward = math.Vec3{Y: 1}

// Generator derives collision proxies from skeleton strands.
type Generator struct {
	// MinRadius excludes segments whose average endpoint radius falls below
	// it. Negative values are treated as zero.
	MinRadius float32
}

func (g *Generator) minRadius() float32 {
	if g.MinRadius < 0 {
		return 0
	}
	return g.MinRadius
}

// BuildParts returns one positioned shape per qualifying segment. Each
// segment uses the mean of its endpoint radii; segments thinner than
// MinRadius or shorter than machine epsilon are skipped. A segment shorter
// than its own diameter becomes a sphere at the midpoint, anything longer a
// capsule whose cylindrical section spans the length minus both caps.
func (g *Generator) BuildParts(skel *skeleton.Skeleton) []PositionedCollider {
	if skel == nil {
		return nil
	}
	minRadius := g.minRadius()

	var parts []PositionedCollider
	for _, strand := range skel.Strands {
		pts := skeleton.FilterStrand(strand.Points)
		for i := 0; i+1 < len(pts); i++ {
			a, b := pts[i], pts[i+1]

			avgRadius := (a.Radius + b.Radius) / 2
			if avgRadius < minRadius {
				continue
			}
			delta := b.Position.Sub(a.Position)
			length := delta.Length()
			if length < epsilon {
				continue
			}

			shape := Shape{Kind: KindCapsule, Radius: avgRadius, Length: length - 2*avgRadius}
			if length < 2*avgRadius {
				shape = Shape{Kind: KindSphere, Radius: avgRadius}
			}

			parts = append(parts, PositionedCollider{
				Translation:   a.Position.Add(b.Position).Scale(0.5),
				Rotation:      math.RotationBetween(forward, delta.Scale(1/length)),
				Shape:         shape,
				AvgRadius:     avgRadius,
				SegmentLength: length,
			})
		}
	}
	return parts
}

// Build returns all qualifying segments as one compound collider, or nil
// when no segment qualifies.
func (g *Generator) Build(skel *skeleton.Skeleton) *Compound {
	parts := g.BuildParts(skel)
	if len(parts) == 0 {
		return nil
	}
	children := make([]Child, len(parts))
	for i, p := range parts {
		children[i] = Child{
			Translation: p.Translation,
			Rotation:    p.Rotation,
			Shape:       p.Shape,
		}
	}
	return &Compound{Children: children}
}
