package gen

import "math"

// StructureType is a fixed-footprint decorative structure stamped onto the
// surface. Pattern rows are stored bottom-up; air cells in the pattern are
// skipped during stamping so the underlying terrain shows through.
type StructureType struct {
	Name         string
	Pattern      [][]Block
	AnchorOffset int // vertical offset of the pattern base above the surface block
	Rarity       float64
	MinDistance  float64
	Biomes       []string
	EdgeMargin   int // reject placements this close to the chunk's x edges
}

func (st StructureType) width() int {
	if len(st.Pattern) == 0 {
		return 0
	}
	return len(st.Pattern[0])
}

func (st StructureType) height() int {
	return len(st.Pattern)
}

func (st StructureType) inBiome(b *Biome) bool {
	if len(st.Biomes) == 0 {
		return true
	}
	for _, name := range st.Biomes {
		if name == b.Name {
			return true
		}
	}
	return false
}

// parsePattern converts top-down rows of glyphs into a bottom-up block
// grid. Every row must have equal width.
func parsePattern(rows []string, glyphs map[byte]Block) [][]Block {
	h := len(rows)
	out := make([][]Block, h)
	for i, row := range rows {
		line := make([]Block, len(row))
		for j := 0; j < len(row); j++ {
			if b, ok := glyphs[row[j]]; ok {
				line[j] = b
			}
		}
		// Row 0 of the source is the pattern top.
		out[h-1-i] = line
	}
	return out
}

var treeGlyphs = map[byte]Block{
	'W': BlockWood,
	'L': BlockLeaves,
	'C': BlockCactus,
	'S': BlockMushroomStem,
	'M': BlockMushroomCap,
	'R': BlockStone,
	'G': BlockGravel,
	'D': BlockDeadBush,
	'I': BlockIce,
}

// DefaultStructureTypes returns the built-in decorative structures.
func DefaultStructureTypes() []StructureType {
	return []StructureType{
		{
			Name: "oak",
			Pattern: parsePattern([]string{
				".LLL.",
				"LLLLL",
				"LLWLL",
				"..W..",
				"..W..",
				"..W..",
			}, treeGlyphs),
			Rarity: 0.55, MinDistance: 7, EdgeMargin: 3,
			Biomes: []string{"forest", "plains", "swamp"},
		},
		{
			Name: "pine",
			Pattern: parsePattern([]string{
				"..L..",
				".LLL.",
				".LLL.",
				"LLLLL",
				"..W..",
				"..W..",
				"..W..",
			}, treeGlyphs),
			Rarity: 0.5, MinDistance: 6, EdgeMargin: 3,
			Biomes: []string{"taiga", "snowfield"},
		},
		{
			Name: "cactus",
			Pattern: parsePattern([]string{
				"C.C",
				"CCC",
				".C.",
				".C.",
			}, treeGlyphs),
			Rarity: 0.4, MinDistance: 9, EdgeMargin: 2,
			Biomes: []string{"desert"},
		},
		{
			Name: "deadbush",
			Pattern: parsePattern([]string{
				"D",
			}, treeGlyphs),
			Rarity: 0.35, MinDistance: 5, EdgeMargin: 1,
			Biomes: []string{"desert", "rocklands"},
		},
		{
			Name: "mushrooms",
			Pattern: parsePattern([]string{
				"MMM",
				".S.",
			}, treeGlyphs),
			Rarity: 0.3, MinDistance: 11, EdgeMargin: 2,
			Biomes: []string{"swamp", "forest"},
		},
		{
			Name: "boulder",
			Pattern: parsePattern([]string{
				".RR",
				"RRG",
			}, treeGlyphs),
			Rarity: 0.25, MinDistance: 14, EdgeMargin: 2,
			Biomes: []string{"rocklands", "taiga", "plains"},
		},
	}
}

// StructurePlacer gates and stamps decorative structures with spacing and
// collision rules.
type StructurePlacer struct {
	noise    *NoiseFactory
	registry *PlacementRegistry
	types    []StructureType
}

// NewStructurePlacer creates a placer over the given structure set.
func NewStructurePlacer(noise *NoiseFactory, registry *PlacementRegistry, types []StructureType) *StructurePlacer {
	return &StructurePlacer{noise: noise, registry: registry, types: types}
}

// Types returns the placer's structure set.
func (sp *StructurePlacer) Types() []StructureType {
	return sp.types
}

// TryPlace attempts to stamp st with its trunk column at world x, standing
// on the surface block at surfaceY. chunkMinX/chunkMaxX bound the enclosing
// chunk for the edge-margin rejection. Returns false for any gating miss.
func (sp *StructurePlacer) TryPlace(access BlockAccess, st StructureType, x, surfaceY int, biome *Biome, chunkMinX, chunkMaxX int) bool {
	if !st.inBiome(biome) {
		return false
	}

	fx := float64(x)
	if Unit(sp.noise.Field(st.Name+":gate", 0.37)(fx, float64(surfaceY))) > st.Rarity {
		return false
	}

	// Keep the footprint plus margin inside the chunk.
	half := st.width() / 2
	if x-half-st.EdgeMargin < chunkMinX || x+half+st.EdgeMargin > chunkMaxX {
		return false
	}

	// Vertical headroom above the surface.
	base := surfaceY + 1 + st.AnchorOffset
	for dy := 0; dy < st.height(); dy++ {
		if !access.BlockAt(x, base+dy).Empty() {
			return false
		}
	}

	if !sp.spaced(st, x, surfaceY) {
		return false
	}

	sp.stamp(access, st, x, base)
	sp.registry.Add("structure:"+st.Name, Placement{X: x, Y: surfaceY})
	return true
}

// spaced enforces the same-type minimum distance (jittered up to 50%) and
// the softer 75% cross-type exclusion, so mixed decorations repel loosely
// without being forbidden.
func (sp *StructurePlacer) spaced(st StructureType, x, y int) bool {
	jitter := Unit(sp.noise.Field(st.Name+":spacing", 0.11)(float64(x), float64(y)))
	limit := st.MinDistance * (1 + 0.5*jitter)
	for _, p := range sp.registry.Nearby("structure:"+st.Name, x, limit) {
		if math.Hypot(float64(x-p.X), float64(y-p.Y)) < limit {
			return false
		}
	}

	cross := st.MinDistance * 0.75
	for _, other := range sp.types {
		if other.Name == st.Name {
			continue
		}
		for _, p := range sp.registry.Nearby("structure:"+other.Name, x, cross) {
			if math.Hypot(float64(x-p.X), float64(y-p.Y)) < cross {
				return false
			}
		}
	}
	return true
}

// stamp writes the pattern grid, horizontally centered on x, growing
// upward from base. Air cells leave the terrain untouched.
func (sp *StructurePlacer) stamp(access BlockAccess, st StructureType, x, base int) {
	half := st.width() / 2
	for dy, row := range st.Pattern {
		for dx, b := range row {
			if b.Empty() {
				continue
			}
			access.SetBlock(x-half+dx, base+dy, b)
		}
	}
}
