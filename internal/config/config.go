package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the world generation configuration.
type Config struct {
	Seed string `yaml:"seed"`

	ChunkWidth    int     `yaml:"chunk_width"`
	ChunkHeight   int     `yaml:"chunk_height"`
	MinBiomeWidth int     `yaml:"min_biome_width"`
	BlendBand     int     `yaml:"blend_band"`
	BaseHeight    float64 `yaml:"base_height"`

	CaveProbeStride      int `yaml:"cave_probe_stride"`
	OreProbeStride       int `yaml:"ore_probe_stride"`
	StructureProbeStride int `yaml:"structure_probe_stride"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:                 "default",
		ChunkWidth:           16,
		ChunkHeight:          16,
		MinBiomeWidth:        3,
		BlendBand:            6,
		BaseHeight:           0,
		CaveProbeStride:      8,
		OreProbeStride:       4,
		StructureProbeStride: 6,
	}
}

// Load reads a YAML config file. A missing file is not an error; the
// returned Config then carries only defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the generator cannot run with.
func (c *Config) Validate() error {
	if c.Seed == "" {
		return fmt.Errorf("config: seed must not be empty")
	}
	if c.ChunkWidth <= 0 {
		return fmt.Errorf("config: chunk_width must be positive, got %d", c.ChunkWidth)
	}
	if c.ChunkHeight <= 0 {
		return fmt.Errorf("config: chunk_height must be positive, got %d", c.ChunkHeight)
	}
	if c.MinBiomeWidth <= 0 {
		return fmt.Errorf("config: min_biome_width must be positive, got %d", c.MinBiomeWidth)
	}
	if c.BlendBand < 0 || c.BlendBand > c.ChunkWidth/2 {
		return fmt.Errorf("config: blend_band must be in [0, %d], got %d", c.ChunkWidth/2, c.BlendBand)
	}
	if c.CaveProbeStride <= 0 || c.OreProbeStride <= 0 || c.StructureProbeStride <= 0 {
		return fmt.Errorf("config: probe strides must be positive")
	}
	return nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["chunk-width"] {
		cfg.ChunkWidth = fromFile.ChunkWidth
	}
	if !explicitFlags["chunk-height"] {
		cfg.ChunkHeight = fromFile.ChunkHeight
	}
	if !explicitFlags["min-biome-width"] {
		cfg.MinBiomeWidth = fromFile.MinBiomeWidth
	}
	if !explicitFlags["blend-band"] {
		cfg.BlendBand = fromFile.BlendBand
	}
	if !explicitFlags["base-height"] {
		cfg.BaseHeight = fromFile.BaseHeight
	}
	if !explicitFlags["cave-stride"] {
		cfg.CaveProbeStride = fromFile.CaveProbeStride
	}
	if !explicitFlags["ore-stride"] {
		cfg.OreProbeStride = fromFile.OreProbeStride
	}
	if !explicitFlags["structure-stride"] {
		cfg.StructureProbeStride = fromFile.StructureProbeStride
	}
}
