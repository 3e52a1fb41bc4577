package world

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan-garden/2dcraft-sub001/pkg/world/gen"
)

func testWorld(seed string) *World {
	g := gen.NewGenerator(seed, gen.DefaultOptions())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(g, 16, 16, log)
}

func TestGetOrGenerateChunkCaches(t *testing.T) {
	w := testWorld("cache")

	c1 := w.GetOrGenerateChunk(0, 0)
	c2 := w.GetOrGenerateChunk(0, 0)
	assert.Same(t, c1, c2)
	assert.Equal(t, 1, w.ChunkCount())
}

func TestGetBlockGeneratesOnDemand(t *testing.T) {
	w := testWorld("demand")

	// Deep below the surface: must be terrain, not air.
	b := w.GetBlock(5, -100)
	assert.NotEqual(t, gen.BlockAir, b)
	assert.Equal(t, 1, w.ChunkCount())
}

func TestSetBlockOverride(t *testing.T) {
	w := testWorld("override")

	w.SetBlock(3, -20, gen.BlockGoldOre)
	assert.Equal(t, gen.BlockGoldOre, w.GetBlock(3, -20))

	// The override never touches the generated chunk itself. Gold cannot
	// generate at this depth, so the chunk cell must still differ.
	c := w.GetOrGenerateChunk(0, -2)
	assert.NotEqual(t, gen.BlockGoldOre, c.BlockAt(3, -20))
}

func TestRegenerateChunkDropsOverrides(t *testing.T) {
	w := testWorld("regen")

	before := w.GetOrGenerateChunk(0, -2)
	w.SetBlock(3, -20, gen.BlockGoldOre)
	require.Equal(t, gen.BlockGoldOre, w.GetBlock(3, -20))

	after := w.RegenerateChunk(0, -2)
	assert.NotSame(t, before, after)
	// The override is gone; the cell reads from the fresh chunk. Gold
	// cannot generate at this depth.
	assert.Equal(t, after.BlockAt(3, -20), w.GetBlock(3, -20))
	assert.NotEqual(t, gen.BlockGoldOre, w.GetBlock(3, -20))
}

func TestNegativeCoordinatesMapToChunks(t *testing.T) {
	w := testWorld("negative")

	w.GetBlock(-1, -1)
	assert.Equal(t, 1, w.ChunkCount())
	w.GetBlock(-16, -16)
	assert.Equal(t, 1, w.ChunkCount())
	w.GetBlock(-17, -1)
	assert.Equal(t, 2, w.ChunkCount())
}

func TestSurfaceQueries(t *testing.T) {
	w := testWorld("surface")

	h := w.SurfaceHeight(0)
	assert.False(t, h != h, "surface height is NaN")
	assert.NotEmpty(t, w.BiomeName(0))
}
