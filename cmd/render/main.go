package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"obj-cache-renderer/internal/batch"
	"obj-cache-renderer/internal/config"
	"obj-cache-renderer/internal/mesh"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	modelFile := flag.String("model", "", "Render a single OBJ file instead of a directory")
	modelDir := flag.String("dir", "", "Directory to scan for OBJ files (default: cwd)")
	outputDir := flag.String("output", "", "Output directory (default: <dir>/renders)")
	indexMode := flag.Int("mode", 0, "Index ordering: 1 original, 2 optimized, 3 shuffled (default: 1)")
	stress := flag.Int("expand", -1, "Stress replication max offset (default: 0, disabled)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		ModelDir:  *modelDir,
		OutputDir: *outputDir,
		IndexMode: *indexMode,
		Workers:   *workers,
	})
	if *stress >= 0 {
		cfg.StressScale = *stress
	}

	// Collect models
	var models []string
	if *modelFile != "" {
		models = []string{*modelFile}
	} else {
		var err error
		models, err = batch.FindModels(cfg.ModelDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning models: %v\n", err)
			os.Exit(1)
		}
	}

	if len(models) == 0 {
		fmt.Println("No models to render.")
		os.Exit(0)
	}

	mode := mesh.Mode(cfg.IndexMode)
	fmt.Printf("OBJ → WebP renderer (%s ordering)\n", mode)
	fmt.Printf("Models: %d, Workers: %d, Stress offset: %d\n", len(models), cfg.Workers, cfg.StressScale)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Mode:        mode,
		StressScale: cfg.StressScale,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Yaw:         cfg.Yaw,
		Pitch:       cfg.Pitch,
	}, models)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(models))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Model, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
