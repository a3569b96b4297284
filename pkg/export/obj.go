package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/strandmesh/pkg/tubemesh"
)

// WriteOBJ writes every bucket as a separate OBJ object named
// "<baseName>_mat<id>", in ascending material id order. Face indices are
// 1-based and a running vertex offset keeps all objects in one index space.
// Faces carry normal indices when the bucket has normals. Empty buckets are
// skipped.
func WriteOBJ(w io.Writer, buckets map[uint8]*tubemesh.MeshBucket, baseName string) error {
	bw := bufio.NewWriter(w)
	var offset uint32

	for _, id := range sortedIDs(buckets) {
		mesh := buckets[id]
		if mesh.IsEmpty() {
			continue
		}
		fmt.Fprintf(bw, "o %s_mat%d\n", baseName, id)

		for _, p := range mesh.Positions {
			fmt.Fprintf(bw, "v %s %s %s\n", ftoa(p.X), ftoa(p.Y), ftoa(p.Z))
		}
		for _, n := range mesh.Normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(n.X), ftoa(n.Y), ftoa(n.Z))
		}

		hasNormals := len(mesh.Normals) > 0
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			a := mesh.Indices[i] + 1 + offset
			b := mesh.Indices[i+1] + 1 + offset
			c := mesh.Indices[i+2] + 1 + offset
			if hasNormals {
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
		}

		offset += uint32(mesh.VertexCount())
	}
	return bw.Flush()
}

// ftoa formats a float32 with the fewest digits that round-trip.
func ftoa(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
