package gen

// Catalog is the fixed biome set for a world, built once at startup and
// wired to a single noise source.
type Catalog struct {
	biomes []*Biome
}

// NewCatalog builds the default biome catalog, attaches every biome to src,
// and validates layer coverage.
func NewCatalog(src NoiseSource) *Catalog {
	c := &Catalog{biomes: defaultBiomes()}
	for _, b := range c.biomes {
		b.AttachNoise(src)
		b.validateLayers()
	}
	return c
}

// All returns the catalog's biomes in definition order.
func (c *Catalog) All() []*Biome {
	return c.biomes
}

// ByName returns the named biome, or nil.
func (c *Catalog) ByName(name string) *Biome {
	for _, b := range c.biomes {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// defaultBiomes covers the climate plane: cold/dry snowfield through hot/wet
// swamp, plus rare rocklands in the dry mid-temperature band. The selector
// falls back to the full catalog for any climate point no window claims.
func defaultBiomes() []*Biome {
	return []*Biome{
		{
			Name:    "snowfield",
			MinTemp: -1, MaxTemp: -0.25,
			MinHumidity: -1, MaxHumidity: 0.15,
			HeightMult: 1.0, HeightAdd: 2, Variability: 6, PeakFreq: 0.012,
			Rarity: 0.55,
			Layers: []DepthLayer{
				{MinDepth: 0, MaxDepth: 0, Default: BlockSnow},
				{MinDepth: 1, MaxDepth: 4, Default: BlockSnow, Rules: []LayerRule{
					{Channel: "ice", Scale: 0.11, Min: 0.78, Max: 1.01, Block: BlockIce},
				}},
				{MinDepth: 5, MaxDepth: 9, Default: BlockDirt, Rules: []LayerRule{
					{Channel: "ice", Scale: 0.11, Min: 0.85, Max: 1.01, Block: BlockIce},
				}},
				{MinDepth: 10, MaxDepth: 70, Default: BlockStone, Rules: []LayerRule{
					{Channel: "gravel", Scale: 0.09, Min: 0.82, Max: 0.9, Block: BlockGravel},
					{Channel: "fossil", Scale: 0.05, Min: 0.985, Max: 1.01, Block: BlockFossil},
				}},
				{MinDepth: 71, MaxDepth: -1, Default: BlockDeepstone},
			},
			Foundation: []Block{BlockSnow, BlockIce},
		},
		{
			Name:    "taiga",
			MinTemp: -1, MaxTemp: -0.1,
			MinHumidity: 0.0, MaxHumidity: 1,
			HeightMult: 1.1, HeightAdd: 3, Variability: 9, PeakFreq: 0.016,
			Rarity: 0.5,
			Layers: []DepthLayer{
				{MinDepth: 0, MaxDepth: 0, Default: BlockGrass, Rules: []LayerRule{
					{Channel: "snowcap", Scale: 0.07, Min: 0.6, Max: 1.01, Block: BlockSnow},
				}},
				{MinDepth: 1, MaxDepth: 5, Default: BlockDirt},
				{MinDepth: 6, MaxDepth: 72, Default: BlockStone, Rules: []LayerRule{
					{Channel: "gravel", Scale: 0.09, Min: 0.84, Max: 0.92, Block: BlockGravel},
					{Channel: "fossil", Scale: 0.05, Min: 0.985, Max: 1.01, Block: BlockFossil},
				}},
				{MinDepth: 73, MaxDepth: -1, Default: BlockDeepstone},
			},
			Foundation: []Block{BlockGrass, BlockSnow},
		},
		{
			Name:    "plains",
			MinTemp: -0.35, MaxTemp: 0.45,
			MinHumidity: -0.45, MaxHumidity: 0.35,
			HeightMult: 1.0, HeightAdd: 0, Variability: 5, PeakFreq: 0.01,
			Rarity: 0.7,
			Layers: []DepthLayer{
				{MinDepth: 0, MaxDepth: 0, Default: BlockGrass},
				{MinDepth: 1, MaxDepth: 4, Default: BlockDirt, Rules: []LayerRule{
					{Channel: "clay", Scale: 0.1, Min: 0.86, Max: 0.94, Block: BlockClay},
				}},
				{MinDepth: 5, MaxDepth: 68, Default: BlockStone, Rules: []LayerRule{
					{Channel: "gravel", Scale: 0.09, Min: 0.84, Max: 0.92, Block: BlockGravel},
					{Channel: "dirtpocket", Scale: 0.12, Min: 0.9, Max: 0.97, Block: BlockDirt},
					{Channel: "fossil", Scale: 0.05, Min: 0.985, Max: 1.01, Block: BlockFossil},
				}},
				{MinDepth: 69, MaxDepth: -1, Default: BlockDeepstone},
			},
			Foundation: []Block{BlockGrass},
		},
		{
			Name:    "forest",
			MinTemp: -0.2, MaxTemp: 0.55,
			MinHumidity: 0.2, MaxHumidity: 1,
			HeightMult: 1.05, HeightAdd: 1, Variability: 7, PeakFreq: 0.014,
			Rarity: 0.65,
			Layers: []DepthLayer{
				{MinDepth: 0, MaxDepth: 0, Default: BlockGrass},
				{MinDepth: 1, MaxDepth: 5, Default: BlockDirt, Rules: []LayerRule{
					{Channel: "clay", Scale: 0.1, Min: 0.84, Max: 0.93, Block: BlockClay},
				}},
				{MinDepth: 6, MaxDepth: 70, Default: BlockStone, Rules: []LayerRule{
					{Channel: "mosspocket", Scale: 0.1, Min: 0.9, Max: 0.96, Block: BlockMoss},
					{Channel: "gravel", Scale: 0.09, Min: 0.84, Max: 0.92, Block: BlockGravel},
					{Channel: "fossil", Scale: 0.05, Min: 0.98, Max: 1.01, Block: BlockFossil},
				}},
				{MinDepth: 71, MaxDepth: -1, Default: BlockDeepstone},
			},
			Foundation: []Block{BlockGrass, BlockDirt},
		},
		{
			Name:    "desert",
			MinTemp: 0.3, MaxTemp: 1,
			MinHumidity: -1, MaxHumidity: 0.1,
			HeightMult: 0.95, HeightAdd: -1, Variability: 4, PeakFreq: 0.009,
			Rarity: 0.6,
			Layers: []DepthLayer{
				{MinDepth: 0, MaxDepth: 3, Default: BlockSand},
				{MinDepth: 4, MaxDepth: 11, Default: BlockSandstone, Rules: []LayerRule{
					{Channel: "drift", Scale: 0.1, Min: 0.8, Max: 0.9, Block: BlockSand},
				}},
				{MinDepth: 12, MaxDepth: 66, Default: BlockStone, Rules: []LayerRule{
					{Channel: "sandseam", Scale: 0.08, Min: 0.86, Max: 0.93, Block: BlockSandstone},
					{Channel: "fossil", Scale: 0.05, Min: 0.975, Max: 1.01, Block: BlockFossil},
				}},
				{MinDepth: 67, MaxDepth: -1, Default: BlockDeepstone},
			},
			Foundation: []Block{BlockSand},
		},
		{
			Name:    "swamp",
			MinTemp: 0.35, MaxTemp: 1,
			MinHumidity: 0.0, MaxHumidity: 1,
			HeightMult: 0.9, HeightAdd: -2, Variability: 3, PeakFreq: 0.011,
			Rarity: 0.45,
			Layers: []DepthLayer{
				{MinDepth: 0, MaxDepth: 0, Default: BlockGrass, Rules: []LayerRule{
					{Channel: "bog", Scale: 0.09, Min: 0.55, Max: 1.01, Block: BlockMud},
				}},
				{MinDepth: 1, MaxDepth: 6, Default: BlockMud, Rules: []LayerRule{
					{Channel: "clay", Scale: 0.1, Min: 0.75, Max: 0.9, Block: BlockClay},
				}},
				{MinDepth: 7, MaxDepth: 64, Default: BlockStone, Rules: []LayerRule{
					{Channel: "mudseam", Scale: 0.08, Min: 0.87, Max: 0.94, Block: BlockMud},
					{Channel: "fossil", Scale: 0.05, Min: 0.98, Max: 1.01, Block: BlockFossil},
				}},
				{MinDepth: 65, MaxDepth: -1, Default: BlockDeepstone},
			},
			Foundation: []Block{BlockGrass, BlockMud},
		},
		{
			Name:    "rocklands",
			MinTemp: -0.5, MaxTemp: 0.5,
			MinHumidity: -1, MaxHumidity: -0.3,
			HeightMult: 1.6, HeightAdd: 8, Variability: 14, PeakFreq: 0.02,
			Rarity: 0.25,
			Layers: []DepthLayer{
				{MinDepth: 0, MaxDepth: 1, Default: BlockStone, Rules: []LayerRule{
					{Channel: "scree", Scale: 0.1, Min: 0.7, Max: 0.85, Block: BlockGravel},
				}},
				{MinDepth: 2, MaxDepth: 74, Default: BlockStone, Rules: []LayerRule{
					{Channel: "gravel", Scale: 0.09, Min: 0.85, Max: 0.93, Block: BlockGravel},
					{Channel: "fossil", Scale: 0.05, Min: 0.985, Max: 1.01, Block: BlockFossil},
				}},
				{MinDepth: 75, MaxDepth: -1, Default: BlockDeepstone},
			},
			Foundation: []Block{BlockStone, BlockGravel},
		},
	}
}
