// Package batch converts skeleton documents into mesh files using a
// bounded worker pool.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/strandmesh/internal/skelfile"
	"github.com/Faultbox/strandmesh/pkg/export"
	"github.com/Faultbox/strandmesh/pkg/material"
	"github.com/Faultbox/strandmesh/pkg/tubemesh"
)

// Config holds shared settings for a batch run.
type Config struct {
	OutDir     string
	Format     export.Format
	Resolution int
	Materials  material.Library
	Workers    int // 0 means one worker per CPU

	// Progress, when set, is called periodically with the number of
	// converted documents.
	Progress func(done, total int)
}

// Result holds the outcome of converting one skeleton document.
type Result struct {
	Input     string
	Output    string
	Vertices  int
	Triangles int
	Err       error
}

// Run converts every input document. All inputs are attempted even when
// some fail; the returned error is the first conversion failure.
func Run(cfg Config, inputs []string) ([]Result, error) {
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(inputs))
	var processed atomic.Int64

	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					cfg.Progress(int(processed.Load()), len(inputs))
				}
			}
		}()
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i, input := range inputs {
		g.Go(func() error {
			results[i] = convert(cfg, input)
			processed.Add(1)
			return results[i].Err
		})
	}

	err := g.Wait()
	close(done)

	return results, err
}

// convert runs one document through the full pipeline: parse, build, export.
func convert(cfg Config, input string) Result {
	res := Result{Input: input}

	skel, err := skelfile.ParseFile(input)
	if err != nil {
		res.Err = err
		return res
	}

	builder := tubemesh.Builder{Resolution: cfg.Resolution}
	buckets := builder.Build(skel)

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	outPath := filepath.Join(cfg.OutDir, base+"."+cfg.Format.String())

	f, err := os.Create(outPath)
	if err != nil {
		res.Err = err
		return res
	}

	switch cfg.Format {
	case export.FormatOBJ:
		err = export.WriteOBJ(f, buckets, base)
	default:
		err = export.WriteGLB(f, buckets, cfg.Materials)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		res.Err = fmt.Errorf("writing %s: %w", outPath, err)
		return res
	}

	res.Output = outPath
	for _, bucket := range buckets {
		res.Vertices += bucket.VertexCount()
		res.Triangles += bucket.TriangleCount()
	}
	return res
}
