package gen

import "math"

// ChunkGrid is a transient 2D block grid for one chunk, addressed in world
// coordinates. Created fresh per generation request and handed to the
// caller once the passes complete.
type ChunkGrid struct {
	MinX, MinY    int
	Width, Height int
	Blocks        []Block
}

// NewChunkGrid allocates an all-air grid covering
// [minX, minX+width) x [minY, minY+height).
func NewChunkGrid(minX, minY, width, height int) *ChunkGrid {
	return &ChunkGrid{
		MinX:   minX,
		MinY:   minY,
		Width:  width,
		Height: height,
		Blocks: make([]Block, width*height),
	}
}

// InBounds reports whether the world position falls inside the grid.
func (g *ChunkGrid) InBounds(x, y int) bool {
	return x >= g.MinX && x < g.MinX+g.Width && y >= g.MinY && y < g.MinY+g.Height
}

// BlockAt returns the block at a world position, or air when out of bounds.
func (g *ChunkGrid) BlockAt(x, y int) Block {
	if !g.InBounds(x, y) {
		return BlockAir
	}
	return g.Blocks[(y-g.MinY)*g.Width+(x-g.MinX)]
}

// SetBlock writes a block at a world position; out-of-bounds writes are
// dropped.
func (g *ChunkGrid) SetBlock(x, y int, b Block) {
	if !g.InBounds(x, y) {
		return
	}
	g.Blocks[(y-g.MinY)*g.Width+(x-g.MinX)] = b
}

// Generator orchestrates the ordered generation passes that fill one chunk:
// terrain, then caves, then ore veins, then surface structures. It owns the
// shared spacing registries and the biome selector cache; generation is
// synchronous and single-threaded, so callers running chunks in parallel
// must serialize calls.
type Generator struct {
	noise    *NoiseFactory
	catalog  *Catalog
	selector *Selector
	carver   *CaveCarver
	grower   *VeinGrower
	placer   *StructurePlacer
	registry *PlacementRegistry

	rngSeed int64

	opts Options
}

// Options tunes a Generator. Zero values fall back to defaults.
type Options struct {
	ChunkWidth    int
	ChunkHeight   int
	MinBiomeWidth int // minimum contiguous biome run, in chunks
	BlendBand     int // half-width of the boundary height blend, in tiles
	BaseHeight    float64

	CaveProbeStride      int
	OreProbeStride       int
	StructureProbeStride int

	CaveTypes  []CaveType
	OreTypes   []OreType
	Structures []StructureType
}

// DefaultOptions returns the standard world tuning.
func DefaultOptions() Options {
	return Options{
		ChunkWidth:           16,
		ChunkHeight:          16,
		MinBiomeWidth:        3,
		BlendBand:            6,
		BaseHeight:           0,
		CaveProbeStride:      8,
		OreProbeStride:       4,
		StructureProbeStride: 6,
		CaveTypes:            DefaultCaveTypes(),
		OreTypes:             DefaultOreTypes(),
		Structures:           DefaultStructureTypes(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ChunkWidth <= 0 {
		o.ChunkWidth = d.ChunkWidth
	}
	if o.ChunkHeight <= 0 {
		o.ChunkHeight = d.ChunkHeight
	}
	if o.MinBiomeWidth <= 0 {
		o.MinBiomeWidth = d.MinBiomeWidth
	}
	if o.BlendBand <= 0 {
		o.BlendBand = d.BlendBand
	}
	if o.CaveProbeStride <= 0 {
		o.CaveProbeStride = d.CaveProbeStride
	}
	if o.OreProbeStride <= 0 {
		o.OreProbeStride = d.OreProbeStride
	}
	if o.StructureProbeStride <= 0 {
		o.StructureProbeStride = d.StructureProbeStride
	}
	if o.CaveTypes == nil {
		o.CaveTypes = d.CaveTypes
	}
	if o.OreTypes == nil {
		o.OreTypes = d.OreTypes
	}
	if o.Structures == nil {
		o.Structures = d.Structures
	}
	return o
}

// NewGenerator creates a Generator for the given world seed string.
func NewGenerator(seed string, opts Options) *Generator {
	opts = opts.withDefaults()

	noise := NewNoiseFactory(seed)
	catalog := NewCatalog(noise)
	registry := NewPlacementRegistry(64)
	selector := NewSelector(catalog, noise, opts.ChunkWidth, opts.MinBiomeWidth, opts.BlendBand, opts.BaseHeight)

	return &Generator{
		noise:    noise,
		catalog:  catalog,
		selector: selector,
		carver:   NewCaveCarver(noise, registry),
		grower:   NewVeinGrower(noise, registry),
		placer:   NewStructurePlacer(noise, registry, opts.Structures),
		registry: registry,
		rngSeed:  fieldSeed(seed, "probe-rng"),
		opts:     opts,
	}
}

// Catalog returns the generator's biome catalog.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// BiomeAt returns the biome assigned to the chunk column containing x.
func (g *Generator) BiomeAt(x int) *Biome {
	return g.selector.BiomeAt(x)
}

// HeightAt returns the blended terrain surface height at world x.
func (g *Generator) HeightAt(x int) float64 {
	return g.selector.HeightAt(x)
}

// BlockAt returns the terrain block at (x, y) given the column's known
// surface height.
func (g *Generator) BlockAt(x, y int, surfaceHeight float64) Block {
	return g.selector.BlockAt(x, y, surfaceHeight)
}

// gridAccess adapts a ChunkGrid to BlockAccess. Reads outside the grid
// fall back to computed terrain so cave and vein shapes stay coherent
// across the chunk edge; writes outside the grid are dropped.
type gridAccess struct {
	grid *ChunkGrid
	gen  *Generator
}

func (a gridAccess) BlockAt(x, y int) Block {
	if a.grid.InBounds(x, y) {
		return a.grid.BlockAt(x, y)
	}
	return a.gen.selector.BlockAt(x, y, a.gen.selector.HeightAt(x))
}

func (a gridAccess) SetBlock(x, y int, b Block) {
	a.grid.SetBlock(x, y, b)
}

// AssembleChunk fills a fresh (width x height) grid for chunk
// (chunkX, chunkY) by running the four ordered passes. Caves run before
// ores so veins can punch into carved walls; structures run last, once the
// surface is final.
func (g *Generator) AssembleChunk(chunkX, chunkY, width, height int) *ChunkGrid {
	grid := NewChunkGrid(chunkX*width, chunkY*height, width, height)
	access := gridAccess{grid: grid, gen: g}

	heights := make([]float64, width)
	for i := 0; i < width; i++ {
		heights[i] = g.selector.HeightAt(grid.MinX + i)
	}

	g.fillTerrain(grid, heights)
	g.carveCaves(access, grid, chunkX, chunkY, heights)
	g.growVeins(access, grid, chunkX, chunkY, heights)
	g.placeStructures(access, grid, chunkX, chunkY, heights)

	return grid
}

// fillTerrain is pass 1: every cell from the per-column surface heights.
func (g *Generator) fillTerrain(grid *ChunkGrid, heights []float64) {
	for i := 0; i < grid.Width; i++ {
		x := grid.MinX + i
		for j := 0; j < grid.Height; j++ {
			y := grid.MinY + j
			grid.SetBlock(x, y, g.selector.BlockAt(x, y, heights[i]))
		}
	}
}

// carveCaves is pass 2: sparse probes with per-axis jitter and a random
// skip to keep cavities sparse.
func (g *Generator) carveCaves(access BlockAccess, grid *ChunkGrid, chunkX, chunkY int, heights []float64) {
	stride := g.opts.CaveProbeStride
	for ti, ct := range g.opts.CaveTypes {
		rng := newWorldRNG(g.rngSeed, chunkX, chunkY, 100+int64(ti))

		for px := 0; px < grid.Width; px += stride {
			for py := 0; py < grid.Height; py += stride {
				if rng.nextN(3) == 0 {
					continue
				}
				x := grid.MinX + px + rng.nextN(stride)
				y := grid.MinY + py + rng.nextN(stride)
				if !grid.InBounds(x, y) {
					continue
				}
				g.carver.TryCarve(access, ct, x, y, heights[x-grid.MinX])
			}
		}
	}
}

// growVeins is pass 3: denser probes than the cave pass.
func (g *Generator) growVeins(access BlockAccess, grid *ChunkGrid, chunkX, chunkY int, heights []float64) {
	stride := g.opts.OreProbeStride
	for ti, ot := range g.opts.OreTypes {
		rng := newWorldRNG(g.rngSeed, chunkX, chunkY, 300+int64(ti))

		for px := 0; px < grid.Width; px += stride {
			for py := 0; py < grid.Height; py += stride {
				x := grid.MinX + px + rng.nextN(stride)
				y := grid.MinY + py + rng.nextN(stride)
				if !grid.InBounds(x, y) || y < ot.MinY || y > ot.MaxY {
					continue
				}
				g.grower.TryGrow(access, ot, x, y, g.selector.BiomeAt(x))
			}
		}
	}
}

// placeStructures is pass 4: coarse horizontal probes validated against the
// biome's structure-foundation blocks.
func (g *Generator) placeStructures(access BlockAccess, grid *ChunkGrid, chunkX, chunkY int, heights []float64) {
	stride := g.opts.StructureProbeStride
	rng := newWorldRNG(g.rngSeed, chunkX, chunkY, 500)

	maxX := grid.MinX + grid.Width - 1
	for px := 0; px < grid.Width; px += stride {
		x := grid.MinX + px + rng.nextN(stride)
		if x > maxX {
			continue
		}

		surfaceY := int(math.Floor(heights[x-grid.MinX]))
		if surfaceY < grid.MinY || surfaceY >= grid.MinY+grid.Height {
			continue
		}

		biome := g.selector.BiomeAt(x)
		if !biome.IsFoundation(access.BlockAt(x, surfaceY)) {
			continue
		}

		for _, st := range g.placer.Types() {
			if g.placer.TryPlace(access, st, x, surfaceY, biome, grid.MinX, maxX) {
				break
			}
		}
	}
}

// InvalidateRange evicts biome assignments and spacing records for world x
// in [minX, maxX]. Must be called before regenerating an already-generated
// chunk so stale exclusion zones do not suppress its contents; eviction is
// scoped, never global, to preserve neighbors' spacing memory.
func (g *Generator) InvalidateRange(minX, maxX int) {
	g.selector.InvalidateRange(minX, maxX)
	g.registry.EvictRange(minX, maxX)
}

// InvalidateChunk is InvalidateRange scoped to one chunk of the given
// width.
func (g *Generator) InvalidateChunk(chunkX, width int) {
	g.InvalidateRange(chunkX*width, chunkX*width+width-1)
}
