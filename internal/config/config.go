package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"obj-cache-renderer/internal/vcache"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	ModelDir  string `json:"model_dir"`
	OutputDir string `json:"output_dir"`

	// Geometry settings
	IndexMode   int `json:"index_mode"`   // 1 original, 2 optimized, 3 shuffled
	StressScale int `json:"stress_scale"` // max offset for stress replication
	CacheSize   int `json:"cache_size"`   // simulated FIFO cache size

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Yaw         float64 `json:"yaw_degrees"`
	Pitch       float64 `json:"pitch_degrees"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ModelDir  string
	OutputDir string
	IndexMode int
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.ModelDir != "" {
		c.ModelDir = flags.ModelDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.IndexMode > 0 {
		c.IndexMode = flags.IndexMode
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.ModelDir == "" {
		c.ModelDir, _ = os.Getwd()
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.ModelDir, "renders")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.ModelDir, c.OutputDir)
	}

	// Defaults
	if c.IndexMode < 1 || c.IndexMode > 3 {
		c.IndexMode = 1
	}
	if c.StressScale < 0 {
		c.StressScale = 0
	}
	if c.CacheSize <= 0 {
		c.CacheSize = vcache.CacheSize
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Yaw == 0 && c.Pitch == 0 {
		c.Yaw, c.Pitch = 30, -20
	}
}
