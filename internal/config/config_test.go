package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	data := "seed: mountain-pass\nchunk_width: 32\nblend_band: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mountain-pass", cfg.Seed)
	assert.Equal(t, 32, cfg.ChunkWidth)
	assert.Equal(t, 10, cfg.BlendBand)
	// Unset fields keep defaults.
	assert.Equal(t, 16, cfg.ChunkHeight)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"empty seed", func(c *Config) { c.Seed = "" }, false},
		{"zero chunk width", func(c *Config) { c.ChunkWidth = 0 }, false},
		{"negative chunk height", func(c *Config) { c.ChunkHeight = -1 }, false},
		{"zero biome width", func(c *Config) { c.MinBiomeWidth = 0 }, false},
		{"blend band too wide", func(c *Config) { c.BlendBand = 9 }, false},
		{"blend band at half chunk", func(c *Config) { c.BlendBand = 8 }, true},
		{"zero stride", func(c *Config) { c.OreProbeStride = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = "from-flag"
	cfg.ChunkWidth = 64

	fromFile := DefaultConfig()
	fromFile.Seed = "from-file"
	fromFile.ChunkWidth = 32
	fromFile.BlendBand = 4

	Merge(cfg, fromFile, map[string]bool{"seed": true})

	assert.Equal(t, "from-flag", cfg.Seed)
	assert.Equal(t, 32, cfg.ChunkWidth)
	assert.Equal(t, 4, cfg.BlendBand)
}
