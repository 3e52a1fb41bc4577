package gen

// Block identifies a tile type in the 2D world grid.
type Block uint8

const (
	BlockAir Block = iota
	BlockDirt
	BlockGrass
	BlockStone
	BlockDeepstone
	BlockSand
	BlockSandstone
	BlockSnow
	BlockIce
	BlockMud
	BlockClay
	BlockGravel
	BlockWater
	BlockLava

	BlockCoalOre
	BlockIronOre
	BlockCopperOre
	BlockGoldOre
	BlockCrystalOre

	BlockWood
	BlockLeaves
	BlockCactus
	BlockMushroomStem
	BlockMushroomCap
	BlockDeadBush

	BlockStalactite
	BlockMoss
	BlockVines
	BlockGlowshroom
	BlockCrystalShard
	BlockFossil
)

var blockNames = map[Block]string{
	BlockAir:          "air",
	BlockDirt:         "dirt",
	BlockGrass:        "grass",
	BlockStone:        "stone",
	BlockDeepstone:    "deepstone",
	BlockSand:         "sand",
	BlockSandstone:    "sandstone",
	BlockSnow:         "snow",
	BlockIce:          "ice",
	BlockMud:          "mud",
	BlockClay:         "clay",
	BlockGravel:       "gravel",
	BlockWater:        "water",
	BlockLava:         "lava",
	BlockCoalOre:      "coal_ore",
	BlockIronOre:      "iron_ore",
	BlockCopperOre:    "copper_ore",
	BlockGoldOre:      "gold_ore",
	BlockCrystalOre:   "crystal_ore",
	BlockWood:         "wood",
	BlockLeaves:       "leaves",
	BlockCactus:       "cactus",
	BlockMushroomStem: "mushroom_stem",
	BlockMushroomCap:  "mushroom_cap",
	BlockDeadBush:     "dead_bush",
	BlockStalactite:   "stalactite",
	BlockMoss:         "moss",
	BlockVines:        "vines",
	BlockGlowshroom:   "glowshroom",
	BlockCrystalShard: "crystal_shard",
	BlockFossil:       "fossil",
}

func (b Block) String() string {
	if n, ok := blockNames[b]; ok {
		return n
	}
	return "unknown"
}

// Empty reports whether the block is open air.
func (b Block) Empty() bool {
	return b == BlockAir
}

// Liquid reports whether the block is a fluid.
func (b Block) Liquid() bool {
	return b == BlockWater || b == BlockLava
}

// Solid reports whether the block occupies its cell (not air, not liquid).
func (b Block) Solid() bool {
	return !b.Empty() && !b.Liquid()
}
