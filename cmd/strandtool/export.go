package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/strandmesh/internal/config"
	"github.com/Faultbox/strandmesh/internal/logger"
	"github.com/Faultbox/strandmesh/internal/skelfile"
	"github.com/Faultbox/strandmesh/pkg/export"
	"github.com/Faultbox/strandmesh/pkg/tubemesh"
)

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	format := fs.String("format", "", "Output format: obj or glb")
	outDir := fs.String("o", "", "Output directory")
	name := fs.String("name", "", "Output base name")
	resolution := fs.Int("res", 0, "Ring vertices per cross section")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: strandtool export [options] <skeleton.yaml>")
		os.Exit(1)
	}

	cfg := setup(*configPath, config.Overrides{
		Resolution: *resolution,
		MinRadius:  -1,
		Format:     *format,
		OutDir:     *outDir,
		BaseName:   *name,
	})
	defer logger.Sync()

	outFormat, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	skel, err := skelfile.ParseFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	builder := tubemesh.Builder{Resolution: cfg.Mesh.Resolution}
	buckets := builder.Build(skel)

	var vertices, triangles int
	for _, bucket := range buckets {
		vertices += bucket.VertexCount()
		triangles += bucket.TriangleCount()
	}
	logger.Info("mesh built",
		zap.Int("strands", len(skel.Strands)),
		zap.Int("buckets", len(buckets)),
		zap.Int("vertices", vertices),
		zap.Int("triangles", triangles))

	if err := os.MkdirAll(cfg.Export.OutDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(cfg.Export.OutDir, cfg.Export.BaseName+"."+outFormat.String())
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
		os.Exit(1)
	}

	switch outFormat {
	case export.FormatOBJ:
		err = export.WriteOBJ(f, buckets, cfg.Export.BaseName)
	case export.FormatGLB:
		err = export.WriteGLB(f, buckets, cfg.Materials)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing mesh: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported: %s (%d vertices, %d triangles)\n", outPath, vertices, triangles)
}
