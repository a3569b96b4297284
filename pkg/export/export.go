// Package export serializes mesh buckets to portable 3D file formats:
// OBJ text and GLB, the binary glTF 2.0 container.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/strandmesh/pkg/tubemesh"
)

// Format selects an output file format.
type Format uint8

const (
	FormatOBJ Format = iota
	FormatGLB
)

// Formats lists every supported output format.
var Formats = []Format{FormatOBJ, FormatGLB}

// String returns the lowercase format name, which doubles as the file
// extension.
func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	case FormatGLB:
		return "glb"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name to its Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "obj":
		return FormatOBJ, nil
	case "glb":
		return FormatGLB, nil
	default:
		return FormatOBJ, fmt.Errorf("unknown export format %q", s)
	}
}

// sortedIDs returns the bucket keys in ascending order so output is
// deterministic regardless of map iteration.
func sortedIDs(buckets map[uint8]*tubemesh.MeshBucket) []uint8 {
	ids := make([]uint8, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
