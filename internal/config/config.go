// Package config handles strandtool configuration loading and management.
package config

import "github.com/Faultbox/strandmesh/pkg/material"

// Config holds all strandtool settings.
type Config struct {
	Mesh      MeshConfig       `yaml:"mesh"`
	Collider  ColliderConfig   `yaml:"collider"`
	Export    ExportConfig     `yaml:"export"`
	Texture   TextureConfig    `yaml:"texture"`
	Batch     BatchConfig      `yaml:"batch"`
	Materials material.Library `yaml:"materials"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// MeshConfig holds tube mesh generation settings.
type MeshConfig struct {
	Resolution int `yaml:"resolution"` // Ring vertices per cross section
}

// ColliderConfig holds collision proxy generation settings.
type ColliderConfig struct {
	MinRadius float32 `yaml:"min_radius"` // Segments thinner than this are skipped
	Compound  bool    `yaml:"compound"`   // Merge all shapes into one compound collider
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Format   string `yaml:"format"` // "obj" or "glb"
	OutDir   string `yaml:"out_dir"`
	BaseName string `yaml:"base_name"`
}

// TextureConfig holds procedural texture baking settings.
type TextureConfig struct {
	Size int `yaml:"size"` // Texture edge length in pixels
}

// BatchConfig holds batch conversion settings.
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 means one worker per CPU
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Resolution: 8,
		},
		Collider: ColliderConfig{
			MinRadius: 0.01,
			Compound:  true,
		},
		Export: ExportConfig{
			Format:   "glb",
			OutDir:   ".",
			BaseName: "strands",
		},
		Texture: TextureConfig{
			Size: 256,
		},
		Batch: BatchConfig{
			Workers: 0,
		},
		Materials: material.DefaultLibrary(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
