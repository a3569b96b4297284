package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"github.com/Faultbox/strandmesh/internal/config"
	"github.com/Faultbox/strandmesh/internal/logger"
	"github.com/Faultbox/strandmesh/pkg/material"
)

func cmdTextures(args []string) {
	fs := flag.NewFlagSet("textures", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	size := fs.Int("size", 0, "Texture edge length in pixels")
	outDir := fs.String("o", "", "Output directory")
	texType := fs.String("type", "", "Bake one texture type (grid, noise, checker) instead of the library")
	fs.Parse(args)

	cfg := setup(*configPath, config.Overrides{
		MinRadius: -1,
		OutDir:    *outDir,
	})
	defer logger.Sync()

	if *size > 0 {
		cfg.Texture.Size = *size
	}

	if err := os.MkdirAll(cfg.Export.OutDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	if *texType != "" {
		bakeOne(cfg, *texType)
		return
	}

	ids := make([]int, 0, len(cfg.Materials))
	for id := range cfg.Materials {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	baked := 0
	for _, id := range ids {
		settings := cfg.Materials.Get(uint8(id))
		if settings.Texture == material.TextureNone {
			continue
		}

		img := settings.Texture.Generate(cfg.Texture.Size)
		name := fmt.Sprintf("material_%d_%s.webp", id, settings.Texture)
		outPath := filepath.Join(cfg.Export.OutDir, name)
		if err := writeWebP(outPath, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
			os.Exit(1)
		}

		fmt.Printf("Baked: %s (%dx%d)\n", outPath, cfg.Texture.Size, cfg.Texture.Size)
		baked++
	}

	if baked == 0 {
		fmt.Fprintln(os.Stderr, "No textured materials in library (set texture: grid|noise|checker, or use -type)")
		return
	}

	logger.Info("textures baked", zap.Int("count", baked), zap.Int("size", cfg.Texture.Size))
}

// bakeOne writes a single texture of the named type, ignoring the library.
func bakeOne(cfg *config.Config, typeName string) {
	texType, err := material.ParseTextureType(typeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if texType == material.TextureNone {
		fmt.Fprintln(os.Stderr, "Nothing to bake for texture type 'none'")
		os.Exit(1)
	}

	img := texType.Generate(cfg.Texture.Size)
	outPath := filepath.Join(cfg.Export.OutDir, fmt.Sprintf("%s_%d.webp", texType, cfg.Texture.Size))
	if err := writeWebP(outPath, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Baked: %s (%dx%d)\n", outPath, cfg.Texture.Size, cfg.Texture.Size)
}

func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = nativewebp.Encode(f, img, nil)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
