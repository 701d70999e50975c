// Package batch renders a directory of OBJ models to WebP through a worker
// pool.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"obj-cache-renderer/internal/mesh"
	"obj-cache-renderer/internal/obj"
	"obj-cache-renderer/internal/postprocess"
	"obj-cache-renderer/internal/raster"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir   string
	Mode        mesh.Mode
	StressScale int
	RenderSize  int
	Supersample int
	Workers     int
	Yaw         float64
	Pitch       float64
}

// Result holds the outcome of processing one model.
type Result struct {
	Model     string `json:"model"`
	Image     string `json:"image"`
	Triangles int    `json:"triangles"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// FindModels returns the OBJ files under dir, sorted by WalkDir order.
func FindModels(dir string) ([]string, error) {
	var models []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".obj") {
			models = append(models, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	return models, nil
}

// Run processes all models using a worker pool.
func Run(cfg Config, models []string) []Result {
	total := len(models)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	modelChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range modelChan {
				results[idx] = processModel(cfg, models[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range models {
		modelChan <- i
	}
	close(modelChan)

	wg.Wait()
	close(done)

	return results
}

func processModel(cfg Config, path string) Result {
	name := filepath.Base(path)

	m, err := mesh.Load(path, obj.Options{MaxOffset: cfg.StressScale})
	if err != nil {
		return Result{Model: name, Error: err.Error()}
	}
	m.SetMode(cfg.Mode)

	if m.TriangleCount() == 0 {
		return Result{Model: name, Error: "no triangles"}
	}

	img := raster.RenderMesh(m, cfg.RenderSize, cfg.Supersample, cfg.Yaw, cfg.Pitch)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	outName := fmt.Sprintf("%s.%s.webp", stem, cfg.Mode)
	outPath := filepath.Join(cfg.OutputDir, outName)
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return Result{Model: name, Error: err.Error()}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return Result{Model: name, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Model: name, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{
		Model:     name,
		Image:     outName,
		Triangles: m.TriangleCount(),
		Success:   true,
	}
}
