package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/strandmesh/internal/batch"
	"github.com/Faultbox/strandmesh/internal/config"
	"github.com/Faultbox/strandmesh/internal/logger"
	"github.com/Faultbox/strandmesh/pkg/export"
)

func cmdBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	format := fs.String("format", "", "Output format: obj or glb")
	outDir := fs.String("o", "", "Output directory")
	workers := fs.Int("workers", 0, "Worker goroutines (0 = one per CPU)")
	resolution := fs.Int("res", 0, "Ring vertices per cross section")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: strandtool batch [options] <dir>")
		os.Exit(1)
	}

	cfg := setup(*configPath, config.Overrides{
		Resolution: *resolution,
		MinRadius:  -1,
		Format:     *format,
		OutDir:     *outDir,
		Workers:    *workers,
	})
	defer logger.Sync()

	outFormat, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	inputs, err := filepath.Glob(filepath.Join(fs.Arg(0), "*.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "No skeleton documents found in %s\n", fs.Arg(0))
		os.Exit(1)
	}
	sort.Strings(inputs)

	logger.Info("batch started",
		zap.Int("documents", len(inputs)),
		zap.Int("workers", cfg.Batch.Workers),
		zap.String("format", outFormat.String()))

	results, runErr := batch.Run(batch.Config{
		OutDir:     cfg.Export.OutDir,
		Format:     outFormat,
		Resolution: cfg.Mesh.Resolution,
		Materials:  cfg.Materials,
		Workers:    cfg.Batch.Workers,
		Progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "  [%d/%d]\n", done, total)
		},
	}, inputs)
	if runErr != nil && results == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}

	converted := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "Failed: %s: %v\n", res.Input, res.Err)
			continue
		}
		fmt.Printf("Converted: %s (%d vertices, %d triangles)\n", res.Output, res.Vertices, res.Triangles)
		converted++
	}

	fmt.Fprintf(os.Stderr, "\nConverted %d/%d documents\n", converted, len(results))
	if converted < len(results) {
		os.Exit(1)
	}
}
