package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/strandmesh/internal/config"
	"github.com/Faultbox/strandmesh/internal/logger"
	"github.com/Faultbox/strandmesh/internal/skelfile"
	"github.com/Faultbox/strandmesh/pkg/collider"
)

// colliderDoc is the YAML shape of an exported compound collider.
type colliderDoc struct {
	Children []colliderChildDoc `yaml:"children"`
}

type colliderChildDoc struct {
	Kind        string     `yaml:"kind"`
	Radius      float32    `yaml:"radius"`
	Length      float32    `yaml:"length,omitempty"`
	Translation [3]float32 `yaml:"translation,flow"`
	Rotation    [4]float32 `yaml:"rotation,flow"` // x y z w
}

// colliderPartsDoc is the YAML shape of the individual-parts output, keeping
// the source segment measurements for inspection.
type colliderPartsDoc struct {
	Parts []colliderPartDoc `yaml:"parts"`
}

type colliderPartDoc struct {
	Kind          string     `yaml:"kind"`
	Radius        float32    `yaml:"radius"`
	Length        float32    `yaml:"length,omitempty"`
	Translation   [3]float32 `yaml:"translation,flow"`
	Rotation      [4]float32 `yaml:"rotation,flow"` // x y z w
	AvgRadius     float32    `yaml:"avg_radius"`
	SegmentLength float32    `yaml:"segment_length"`
}

func cmdColliders(args []string) {
	fs := flag.NewFlagSet("colliders", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	minRadius := fs.Float64("min-radius", -1, "Skip segments with an average radius below this")
	outDir := fs.String("o", "", "Output directory")
	name := fs.String("name", "", "Output base name")
	parts := fs.Bool("parts", false, "Write individual world-space parts instead of one compound")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: strandtool colliders [options] <skeleton.yaml>")
		os.Exit(1)
	}

	cfg := setup(*configPath, config.Overrides{
		MinRadius: *minRadius,
		OutDir:    *outDir,
		BaseName:  *name,
	})
	defer logger.Sync()

	if *parts {
		cfg.Collider.Compound = false
	}

	skel, err := skelfile.ParseFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gen := collider.Generator{MinRadius: cfg.Collider.MinRadius}

	var (
		doc               interface{}
		capsules, spheres int
	)
	if cfg.Collider.Compound {
		compound := gen.Build(skel)
		if compound == nil {
			fmt.Println("No colliders generated")
			return
		}
		d := colliderDoc{Children: make([]colliderChildDoc, 0, len(compound.Children))}
		for _, child := range compound.Children {
			if child.Shape.Kind == collider.KindSphere {
				spheres++
			} else {
				capsules++
			}
			d.Children = append(d.Children, colliderChildDoc{
				Kind:        child.Shape.Kind.String(),
				Radius:      child.Shape.Radius,
				Length:      child.Shape.Length,
				Translation: [3]float32{child.Translation.X, child.Translation.Y, child.Translation.Z},
				Rotation:    [4]float32{child.Rotation.X, child.Rotation.Y, child.Rotation.Z, child.Rotation.W},
			})
		}
		doc = d
	} else {
		built := gen.BuildParts(skel)
		if len(built) == 0 {
			fmt.Println("No colliders generated")
			return
		}
		d := colliderPartsDoc{Parts: make([]colliderPartDoc, 0, len(built))}
		for _, p := range built {
			if p.Shape.Kind == collider.KindSphere {
				spheres++
			} else {
				capsules++
			}
			d.Parts = append(d.Parts, colliderPartDoc{
				Kind:          p.Shape.Kind.String(),
				Radius:        p.Shape.Radius,
				Length:        p.Shape.Length,
				Translation:   [3]float32{p.Translation.X, p.Translation.Y, p.Translation.Z},
				Rotation:      [4]float32{p.Rotation.X, p.Rotation.Y, p.Rotation.Z, p.Rotation.W},
				AvgRadius:     p.AvgRadius,
				SegmentLength: p.SegmentLength,
			})
		}
		doc = d
	}

	logger.Info("colliders built",
		zap.Int("capsules", capsules),
		zap.Int("spheres", spheres),
		zap.Bool("compound", cfg.Collider.Compound),
		zap.Float32("min_radius", cfg.Collider.MinRadius))

	if err := os.MkdirAll(cfg.Export.OutDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(cfg.Export.OutDir, cfg.Export.BaseName+"_colliders.yaml")
	data, err := yaml.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding colliders: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing colliders: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Colliders: %s (%d capsules, %d spheres)\n", outPath, capsules, spheres)
}
