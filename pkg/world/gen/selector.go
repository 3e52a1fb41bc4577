package gen

import "math"

// Selector assigns biomes to chunk columns and produces the blended
// terrain surface. Assignments are cached per chunk-column index and only
// cleared by explicit invalidation.
type Selector struct {
	catalog *Catalog
	noise   *NoiseFactory

	chunkWidth    int
	minBiomeWidth int
	blendBand     int
	baseHeight    float64

	assignments map[int]*columnClimate
}

// columnClimate is the cached biome assignment for one chunk column.
type columnClimate struct {
	biome *Biome
	// remaining counts how many further chunks must reuse this biome to
	// satisfy the minimum contiguous width.
	remaining int
}

const (
	tempScale     = 0.0008
	humidityScale = 0.0011
	boundaryScale = 0.02
	pickScale     = 0.73

	// boundaryJitter perturbs the climate sample so biome edges do not
	// land exactly on chunk-grid lines.
	boundaryJitter = 0.2
)

// NewSelector creates a Selector over the catalog. chunkWidth is the width
// of one chunk column in tiles, minBiomeWidth the minimum contiguous biome
// run in chunks, blendBand the half-width in tiles of the height transition
// band centered on each chunk boundary.
func NewSelector(catalog *Catalog, noise *NoiseFactory, chunkWidth, minBiomeWidth, blendBand int, baseHeight float64) *Selector {
	return &Selector{
		catalog:       catalog,
		noise:         noise,
		chunkWidth:    chunkWidth,
		minBiomeWidth: minBiomeWidth,
		blendBand:     blendBand,
		baseHeight:    baseHeight,
		assignments:   make(map[int]*columnClimate),
	}
}

// BiomeAt returns the biome for the chunk column containing world x.
func (s *Selector) BiomeAt(x int) *Biome {
	return s.biomeForChunk(floorDiv(x, s.chunkWidth))
}

func (s *Selector) biomeForChunk(ci int) *Biome {
	if cc, ok := s.assignments[ci]; ok {
		return cc.biome
	}

	// Force reuse while the previous chunk's biome has not yet reached the
	// minimum contiguous width. Prevents single-chunk biome flicker.
	if prev, ok := s.assignments[ci-1]; ok && prev.remaining > 0 {
		cc := &columnClimate{biome: prev.biome, remaining: prev.remaining - 1}
		s.assignments[ci] = cc
		return cc.biome
	}

	biome := s.selectBiome(ci)
	s.assignments[ci] = &columnClimate{biome: biome, remaining: s.minBiomeWidth - 1}
	return biome
}

// selectBiome runs the climate -> window -> rarity -> pick pipeline for one
// chunk column.
func (s *Selector) selectBiome(ci int) *Biome {
	mid := float64(ci*s.chunkWidth + s.chunkWidth/2)

	temp := s.noise.Climate("temperature", tempScale)(mid, 0)
	humidity := s.noise.Climate("humidity", humidityScale)(mid, 0)

	// Shared boundary perturbation keeps biome edges off the chunk grid.
	b := s.noise.Field("biome-boundary", boundaryScale)(mid, 0) * boundaryJitter
	temp += b
	humidity += b

	var matches []*Biome
	for _, biome := range s.catalog.All() {
		if biome.Matches(temp, humidity) {
			matches = append(matches, biome)
		}
	}
	if len(matches) == 0 {
		matches = s.catalog.All()
	}

	// Rarity thinning: a biome survives when its rarity is under the
	// noise-shifted threshold. The +0.5 offset is load-bearing for the
	// area distribution and is kept as-is.
	rarityNoise := s.noise.Field("biome-rarity", boundaryScale)(mid, 0)
	var survivors []*Biome
	for _, biome := range matches {
		if biome.Rarity <= rarityNoise+0.5 {
			survivors = append(survivors, biome)
		}
	}
	if len(survivors) == 0 {
		survivors = matches
	}

	// Deterministic pick keyed by the chunk index.
	pick := Unit(s.noise.Field("biome-pick", pickScale)(float64(ci), 0))
	idx := int(pick * float64(len(survivors)))
	if idx >= len(survivors) {
		idx = len(survivors) - 1
	}
	return survivors[idx]
}

// HeightAt returns the terrain surface height at world x, cosine-blended
// across chunk boundaries so adjacent biomes never produce a seam.
func (s *Selector) HeightAt(x int) float64 {
	fx := float64(x)
	ci := floorDiv(x, s.chunkWidth)

	primary := s.biomeHeight(s.biomeForChunk(ci), fx)

	// Nearest chunk boundary and the chunk on its far side.
	leftEdge := ci * s.chunkWidth
	rightEdge := (ci + 1) * s.chunkWidth
	var boundary, neighborCi int
	if x-leftEdge <= rightEdge-1-x {
		boundary, neighborCi = leftEdge, ci-1
	} else {
		boundary, neighborCi = rightEdge, ci+1
	}

	d := fx - float64(boundary)
	band := float64(s.blendBand)
	if math.Abs(d) >= band {
		return primary
	}

	neighbor := s.biomeForChunk(neighborCi)
	if neighbor == s.biomeForChunk(ci) {
		return primary
	}

	other := s.biomeHeight(neighbor, fx)

	// Cosine-smoothed neighbor weight: 0.5 exactly on the boundary,
	// tapering to 0 at the band's inner edge, so the primary factor runs
	// 0 at the outer edge of the band to 1 at its inner edge. Both sides
	// of the boundary compute the same blend at the same x.
	u := d / band
	if neighborCi > ci {
		u = -u
	}
	// u is now in [0, 1): 0 on the boundary, 1 deepest into this chunk.
	w := 0.5 * math.Cos(math.Pi*u/2)

	blended := primary*(1-w) + other*w
	if math.IsNaN(blended) {
		return primary
	}
	return blended
}

// biomeHeight applies the biome's shaping function with NaN fallback to the
// unshaped base height.
func (s *Selector) biomeHeight(b *Biome, x float64) float64 {
	h := b.ShapeHeight(x, s.baseHeight)
	if math.IsNaN(h) {
		return s.baseHeight
	}
	return h
}

// BlockAt returns the terrain block at (x, y) given the column's known
// surface height. Cells above the surface are air.
func (s *Selector) BlockAt(x, y int, surfaceHeight float64) Block {
	depth := int(math.Floor(surfaceHeight)) - y
	if depth < 0 {
		return BlockAir
	}
	return s.BiomeAt(x).BlockAtDepth(x, y, depth)
}

// InvalidateRange drops cached biome assignments for every chunk column
// intersecting world x range [minX, maxX]. Required before regenerating a
// chunk; a global reset would also work but destroys neighbors' memory.
func (s *Selector) InvalidateRange(minX, maxX int) {
	lo := floorDiv(minX, s.chunkWidth)
	hi := floorDiv(maxX, s.chunkWidth)
	for ci := lo; ci <= hi; ci++ {
		delete(s.assignments, ci)
	}
}

// Reset clears every cached biome assignment.
func (s *Selector) Reset() {
	s.assignments = make(map[int]*columnClimate)
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
