package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/strandmesh/internal/config"
	"github.com/Faultbox/strandmesh/internal/skelfile"
	"github.com/Faultbox/strandmesh/pkg/math"
	"github.com/Faultbox/strandmesh/pkg/skeleton"
)

func cmdSample(args []string) {
	out := "sample.yaml"
	if len(args) > 0 {
		out = args[0]
	}

	if err := skelfile.WriteFile(out, sampleSkeleton()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample skeleton: %s\n", out)
}

func cmdInit(args []string) {
	cfg := config.Default()

	path := filepath.Join(config.ConfigDir(), "config.yaml")
	if len(args) > 0 {
		path = args[0]
	}

	if err := cfg.SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Config written: %s\n", path)
}

// sampleSkeleton builds a small plant: a tapering trunk, one side branch
// and an emissive tip drawn with the glowing preset material.
func sampleSkeleton() *skeleton.Skeleton {
	point := func(x, y, z, radius float32, mat uint8) skeleton.Point {
		return skeleton.Point{
			Position:    math.Vec3{X: x, Y: y, Z: z},
			Orientation: math.QuatIdentity(),
			Radius:      radius,
			Color:       math.Vec4{1, 1, 1, 1},
			MaterialID:  mat,
			UVScale:     1,
		}
	}

	trunk := skeleton.Strand{Points: []skeleton.Point{
		point(0, 0, 0, 0.25, 0),
		point(0, 0.5, 0.05, 0.2, 0),
		point(0.05, 1, 0.1, 0.15, 0),
		point(0.1, 1.5, 0.1, 0.1, 0),
	}}

	branch := skeleton.Strand{Points: []skeleton.Point{
		point(0, 0.75, 0.05, 0.08, 0),
		point(0.3, 0.95, 0.1, 0.05, 0),
		point(0.55, 1.05, 0.15, 0.03, 0),
	}}
	for i := range branch.Points {
		branch.Points[i].UVScale = 1.5
	}

	tip := skeleton.Strand{Points: []skeleton.Point{
		point(0.1, 1.5, 0.1, 0.06, 1),
		point(0.12, 1.7, 0.12, 0.02, 1),
	}}
	for i := range tip.Points {
		tip.Points[i].Color = math.Vec4{1, 1, 0.8, 1}
	}

	return &skeleton.Skeleton{Strands: []skeleton.Strand{trunk, branch, tip}}
}
