package world

import (
	"log/slog"
	"sync"

	"github.com/dan-garden/2dcraft-sub001/pkg/world/gen"
)

// BlockPos represents a block position in the world.
type BlockPos struct {
	X, Y int
}

// ChunkPos addresses a chunk in chunk coordinates.
type ChunkPos struct {
	X, Y int
}

// World tracks block state with a generator for base terrain and overrides
// for caller modifications. The generator's caches are not safe for
// concurrent use, so every generating path runs under the write lock; reads
// of already-cached chunks share the read lock.
type World struct {
	mu        sync.RWMutex
	log       *slog.Logger
	generator *gen.Generator
	width     int
	height    int
	overrides map[BlockPos]gen.Block
	chunks    map[ChunkPos]*gen.ChunkGrid
}

// New creates a World over the given generator with the given chunk
// dimensions in tiles.
func New(generator *gen.Generator, chunkWidth, chunkHeight int, log *slog.Logger) *World {
	return &World{
		log:       log,
		generator: generator,
		width:     chunkWidth,
		height:    chunkHeight,
		overrides: make(map[BlockPos]gen.Block),
		chunks:    make(map[ChunkPos]*gen.ChunkGrid),
	}
}

// GetOrGenerateChunk returns the chunk at the given chunk coordinates,
// generating and caching it if needed.
func (w *World) GetOrGenerateChunk(cx, cy int) *gen.ChunkGrid {
	pos := ChunkPos{cx, cy}

	w.mu.RLock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.RUnlock()
		return c
	}
	w.mu.RUnlock()

	w.mu.Lock()
	defer w.mu.Unlock()
	// Double-check after acquiring write lock.
	if c, ok := w.chunks[pos]; ok {
		return c
	}

	c := w.generator.AssembleChunk(cx, cy, w.width, w.height)
	w.chunks[pos] = c
	w.log.Debug("chunk generated", "cx", cx, "cy", cy)
	return c
}

// GetBlock returns the block at the given position. Overrides win over
// generated terrain.
func (w *World) GetBlock(x, y int) gen.Block {
	w.mu.RLock()
	if b, ok := w.overrides[BlockPos{x, y}]; ok {
		w.mu.RUnlock()
		return b
	}
	pos := ChunkPos{floorDiv(x, w.width), floorDiv(y, w.height)}
	c, ok := w.chunks[pos]
	w.mu.RUnlock()

	if !ok {
		c = w.GetOrGenerateChunk(pos.X, pos.Y)
	}
	return c.BlockAt(x, y)
}

// SetBlock records a block override at the given position.
func (w *World) SetBlock(x, y int, b gen.Block) {
	w.mu.Lock()
	w.overrides[BlockPos{x, y}] = b
	w.mu.Unlock()
}

// SurfaceHeight returns the terrain surface height at world x.
func (w *World) SurfaceHeight(x int) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generator.HeightAt(x)
}

// BiomeName returns the biome assigned to the column containing x.
func (w *World) BiomeName(x int) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generator.BiomeAt(x).Name
}

// RegenerateChunk drops the cached chunk, its overrides, and the
// generator's memory for its columns, then reassembles it. Neighboring
// cached chunks are left alone.
func (w *World) RegenerateChunk(cx, cy int) *gen.ChunkGrid {
	w.mu.Lock()
	defer w.mu.Unlock()

	minX := cx * w.width
	maxX := minX + w.width - 1
	w.generator.InvalidateRange(minX, maxX)
	for pos := range w.overrides {
		if pos.X >= minX && pos.X <= maxX &&
			floorDiv(pos.Y, w.height) == cy {
			delete(w.overrides, pos)
		}
	}
	delete(w.chunks, ChunkPos{cx, cy})

	c := w.generator.AssembleChunk(cx, cy, w.width, w.height)
	w.chunks[ChunkPos{cx, cy}] = c
	w.log.Info("chunk regenerated", "cx", cx, "cy", cy)
	return c
}

// ChunkCount returns how many chunks are currently cached.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
