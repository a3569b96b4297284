package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/strandmesh/internal/skelfile"
)

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: strandtool info <skeleton.yaml>")
		os.Exit(1)
	}

	skel, err := skelfile.ParseFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var totalLength, minRadius, maxRadius float32
	materialPoints := make(map[uint8]int)
	first := true

	for _, strand := range skel.Strands {
		totalLength += strand.Length()
		for _, p := range strand.Points {
			materialPoints[p.MaterialID]++
			if first || p.Radius < minRadius {
				minRadius = p.Radius
			}
			if first || p.Radius > maxRadius {
				maxRadius = p.Radius
			}
			first = false
		}
	}

	fmt.Printf("Skeleton: %s\n", args[0])
	fmt.Printf("Strands:  %d\n", len(skel.Strands))
	fmt.Printf("Points:   %d\n", skel.PointCount())
	fmt.Printf("Length:   %.3f\n", totalLength)
	fmt.Printf("Radius:   %.3f - %.3f\n", minRadius, maxRadius)
	fmt.Println()
	fmt.Println("Points by material:")

	ids := make([]int, 0, len(materialPoints))
	for id := range materialPoints {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	for _, id := range ids {
		fmt.Printf("  material %-3d %d\n", id, materialPoints[uint8(id)])
	}
}
