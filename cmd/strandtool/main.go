// strandtool is a CLI utility for turning strand skeletons into tube
// meshes, collision proxies and baked material textures.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/strandmesh/internal/config"
	"github.com/Faultbox/strandmesh/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "export", "x":
		cmdExport(args)
	case "colliders", "col":
		cmdColliders(args)
	case "batch":
		cmdBatch(args)
	case "textures", "tex":
		cmdTextures(args)
	case "sample":
		cmdSample(args)
	case "init":
		cmdInit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`strandtool - strand skeleton mesh utility

Usage:
  strandtool <command> [options]

Commands:
  info <skeleton.yaml>                 Show skeleton statistics
  export [options] <skeleton.yaml>     Export a tube mesh as OBJ or GLB
  colliders [options] <skeleton.yaml>  Generate capsule and sphere colliders
  batch [options] <dir>                Convert every skeleton document in a directory
  textures [options]                   Bake procedural material textures to WebP
  sample [output.yaml]                 Write a demo skeleton document
  init [config.yaml]                   Write a default configuration file

Examples:
  strandtool info plant.yaml
  strandtool export -format glb -o dist -name plant plant.yaml
  strandtool colliders -min-radius 0.05 plant.yaml
  strandtool batch -workers 8 -format obj ./skeletons
  strandtool textures -type noise -size 512`)
}

// setup loads configuration, applies command-line overrides and starts the
// logger. Commands that do real work call it right after flag parsing.
func setup(configPath string, o config.Overrides) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	o.Apply(cfg)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	return cfg
}
