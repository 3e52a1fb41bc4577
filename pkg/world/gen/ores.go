package gen

import (
	"math"
	"sort"
)

// OreType configures one ore family.
type OreType struct {
	Name  string
	Block Block
	Host  []Block

	MinY   int
	MaxY   int
	Biomes []string // empty = any biome

	Rarity  float64
	SizeExp float64 // ~2.0 for common ores up to ~4.0 for rare ones

	MinVeinSize int
	MaxVeinSize int
	MinSpace    float64

	// SpreadChance is the frontier acceptance probability at the vein
	// center, before distance decay and class multipliers.
	SpreadChance float64
}

func (ot OreType) hosts(b Block) bool {
	for _, h := range ot.Host {
		if h == b {
			return true
		}
	}
	return false
}

func (ot OreType) inBiome(b *Biome) bool {
	if len(ot.Biomes) == 0 {
		return true
	}
	for _, name := range ot.Biomes {
		if name == b.Name {
			return true
		}
	}
	return false
}

// DefaultOreTypes returns the built-in ore families, common to rare.
func DefaultOreTypes() []OreType {
	stone := []Block{BlockStone, BlockDeepstone}
	return []OreType{
		{
			Name: "coal", Block: BlockCoalOre, Host: stone,
			MinY: -120, MaxY: 0,
			Rarity: 0.4, SizeExp: 2.0,
			MinVeinSize: 6, MaxVeinSize: 24, MinSpace: 9,
			SpreadChance: 0.85,
		},
		{
			Name: "copper", Block: BlockCopperOre, Host: stone,
			MinY: -110, MaxY: -8,
			Rarity: 0.34, SizeExp: 2.4,
			MinVeinSize: 5, MaxVeinSize: 18, MinSpace: 11,
			SpreadChance: 0.8,
		},
		{
			Name: "iron", Block: BlockIronOre, Host: stone,
			MinY: -140, MaxY: -20,
			Rarity: 0.3, SizeExp: 2.8,
			MinVeinSize: 5, MaxVeinSize: 16, MinSpace: 12,
			SpreadChance: 0.78,
		},
		{
			Name: "gold", Block: BlockGoldOre, Host: stone,
			MinY: -170, MaxY: -60,
			Rarity: 0.22, SizeExp: 3.4,
			MinVeinSize: 4, MaxVeinSize: 12, MinSpace: 15,
			SpreadChance: 0.72,
		},
		{
			Name: "crystal", Block: BlockCrystalOre, Host: []Block{BlockDeepstone},
			MinY: -200, MaxY: -90,
			Rarity: 0.16, SizeExp: 4.0,
			MinVeinSize: 3, MaxVeinSize: 9, MinSpace: 20,
			SpreadChance: 0.66,
		},
	}
}

// VeinGrower synthesizes ore vein shapes by stochastic breadth-first
// growth. Best effort: a vein that cannot reach its minimum size is simply
// smaller, never an error.
type VeinGrower struct {
	noise    *NoiseFactory
	registry *PlacementRegistry
}

// NewVeinGrower creates a grower sharing the generator's noise factory and
// spacing registry.
func NewVeinGrower(noise *NoiseFactory, registry *PlacementRegistry) *VeinGrower {
	return &VeinGrower{noise: noise, registry: registry}
}

// TryGrow attempts one vein of type ot seeded at (x, y) inside biome.
// Returns the number of cells claimed; zero means the candidate failed
// gating or the seed cell held no host material.
func (vg *VeinGrower) TryGrow(access BlockAccess, ot OreType, x, y int, biome *Biome) int {
	if !vg.gated(ot, x, y, biome) {
		return 0
	}
	if !ot.hosts(access.BlockAt(x, y)) {
		return 0
	}

	target := vg.sized(ot, x, y)
	claimed := vg.grow(access, ot, x, y, target)
	if len(claimed) == 0 {
		return 0
	}

	if len(claimed) < ot.MinVeinSize {
		vg.fill(access, ot, x, y, claimed)
	}

	radius := math.Sqrt(float64(len(claimed)) / math.Pi)
	vg.registry.Add("ore:"+ot.Name, Placement{X: x, Y: y, Radius: radius})
	return len(claimed)
}

// gated checks the vertical band, biome membership, jittered spacing, and
// the positionally adjusted rarity test.
func (vg *VeinGrower) gated(ot OreType, x, y int, biome *Biome) bool {
	if y < ot.MinY || y > ot.MaxY {
		return false
	}
	if !ot.inBiome(biome) {
		return false
	}

	fx, fy := float64(x), float64(y)

	// Spacing and radius are both noise-jittered so vein sites never
	// settle into a lattice.
	jitter := vg.noise.Field(ot.Name+":space", 0.07)(fx, fy)
	reach := ot.MinSpace * 2
	for _, p := range vg.registry.Nearby("ore:"+ot.Name, x, reach) {
		limit := ot.MinSpace*(1+0.3*jitter) + p.Radius*(1+0.2*jitter)
		dx, dy := float64(x-p.X), float64(y-p.Y)
		if dx*dx+dy*dy < limit*limit {
			return false
		}
	}

	adjust := Unit(vg.noise.Field(ot.Name+":pos", 0.017)(fx, fy))
	effective := ot.Rarity * (0.8 + 0.4*adjust)
	n := Unit(vg.noise.Field(ot.Name+":gate", 0.23)(fx, fy))
	return n <= effective
}

// sized maps a noise sample through the rarity exponent into
// [MinVeinSize, MaxVeinSize]. Large veins of rare ore are sharply rarer
// than large veins of common ore.
func (vg *VeinGrower) sized(ot OreType, x, y int) int {
	u := Unit(vg.noise.Field(ot.Name+":size", 0.041)(float64(x), float64(y)))
	return ot.MinVeinSize + int(math.Pow(u, ot.SizeExp)*float64(ot.MaxVeinSize-ot.MinVeinSize))
}

// Frontier neighbor offsets: 8 cardinal/diagonal plus 8 knight-move
// extended neighbors, with per-class acceptance multipliers.
var veinNeighbors = []struct {
	dx, dy int
	mult   float64
}{
	{1, 0, 1.0}, {-1, 0, 1.0}, {0, 1, 1.0}, {0, -1, 1.0},
	{1, 1, 0.9}, {1, -1, 0.9}, {-1, 1, 0.9}, {-1, -1, 0.9},
	{2, 1, 0.5}, {2, -1, 0.5}, {-2, 1, 0.5}, {-2, -1, 0.5},
	{1, 2, 0.5}, {1, -2, 0.5}, {-1, 2, 0.5}, {-1, -2, 0.5},
}

// grow claims host-material cells breadth-first until the target size is
// reached or the frontier empties.
func (vg *VeinGrower) grow(access BlockAccess, ot OreType, sx, sy, target int) map[cell]bool {
	n1 := vg.noise.Field(ot.Name+":spread-a", 0.13)
	n2 := vg.noise.Field(ot.Name+":spread-b", 0.29)

	// Growth range derived from the target footprint.
	maxDist := math.Sqrt(float64(target))*1.6 + 1

	claimed := make(map[cell]bool)
	queued := map[cell]bool{{sx, sy}: true}
	frontier := []cell{{sx, sy}}

	for len(frontier) > 0 && len(claimed) < target {
		c := frontier[0]
		frontier = frontier[1:]

		if !ot.hosts(access.BlockAt(c.x, c.y)) {
			continue
		}
		access.SetBlock(c.x, c.y, ot.Block)
		claimed[c] = true

		for _, nb := range veinNeighbors {
			next := cell{c.x + nb.dx, c.y + nb.dy}
			if queued[next] {
				continue
			}

			dist := math.Hypot(float64(next.x-sx), float64(next.y-sy))
			spread := ot.SpreadChance * (1 - dist/maxDist) * nb.mult
			if spread <= 0 {
				continue
			}

			fx, fy := float64(next.x), float64(next.y)
			combined := 0.5*Unit(n1(fx, fy)) + 0.5*Unit(n2(fx, fy))
			if combined >= spread {
				continue
			}

			queued[next] = true
			frontier = append(frontier, next)
		}
	}
	return claimed
}

// fill is the size-guarantee repair pass: scan a wider square around the
// seed in distance order, admitting host cells adjacent to the vein whose
// distance/noise score clears a fixed threshold, until the minimum size is
// met or the square is exhausted.
func (vg *VeinGrower) fill(access BlockAccess, ot OreType, sx, sy int, claimed map[cell]bool) {
	const scoreThreshold = 0.3

	reach := int(math.Ceil(math.Sqrt(float64(ot.MinVeinSize))))*3 + 2
	score := vg.noise.Field(ot.Name+":fill", 0.19)

	type scored struct {
		c cell
		d float64
	}
	var candidates []scored
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			c := cell{sx + dx, sy + dy}
			if claimed[c] || !ot.hosts(access.BlockAt(c.x, c.y)) {
				continue
			}
			candidates = append(candidates, scored{c, math.Hypot(float64(dx), float64(dy))})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].d != candidates[j].d {
			return candidates[i].d < candidates[j].d
		}
		if candidates[i].c.y != candidates[j].c.y {
			return candidates[i].c.y < candidates[j].c.y
		}
		return candidates[i].c.x < candidates[j].c.x
	})

	maxD := float64(reach) + 1
	progress := true
	for progress && len(claimed) < ot.MinVeinSize {
		progress = false
		for _, cand := range candidates {
			if len(claimed) >= ot.MinVeinSize {
				return
			}
			c := cand.c
			if claimed[c] || !adjacentToClaimed(claimed, c) {
				continue
			}
			s := (1-cand.d/maxD)*0.5 + 0.5*Unit(score(float64(c.x), float64(c.y)))
			if s <= scoreThreshold {
				continue
			}
			access.SetBlock(c.x, c.y, ot.Block)
			claimed[c] = true
			progress = true
		}
	}
}

func adjacentToClaimed(claimed map[cell]bool, c cell) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if claimed[cell{c.x + dx, c.y + dy}] {
				return true
			}
		}
	}
	return false
}
