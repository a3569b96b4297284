package skeleton

// minDistSq is the squared distance below which a point collapses into the
// previously kept point. Segments shorter than this produce degenerate
// tangents downstream.
const minDistSq = 1e-6

// FilterStrand removes points that sit on top of the previously kept point.
// The first point is always kept and order is preserved. Each point is
// compared against the last kept point, not its raw predecessor, so a run
// of near-coincident points collapses to its first member.
func FilterStrand(points []Point) []Point {
	if len(points) == 0 {
		return nil
	}
	kept := make([]Point, 0, len(points))
	kept = append(kept, points[0])
	last := points[0].Position
	for _, p := range points[1:] {
		if p.Position.DistanceSquared(last) > minDistSq {
			kept = append(kept, p)
			last = p.Position
		}
	}
	return kept
}
