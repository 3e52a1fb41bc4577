package gen

import (
	"math"
	"sort"
)

// BlockAccess reads and writes blocks addressed in world coordinates.
// The chunk assembler backs it with the grid under construction; reads
// outside the grid fall back to computed terrain so carving stays seamless
// across chunk boundaries.
type BlockAccess interface {
	BlockAt(x, y int) Block
	SetBlock(x, y int, b Block)
}

// CaveType configures one family of cavities.
type CaveType struct {
	Name        string
	MinY        int // vertical band, world coordinates
	MaxY        int
	Rarity      float64 // base gate rarity in [0, 1]
	SizeExp     float64 // rarer types use a larger exponent
	MinSize     int     // target cavity size bounds, in cells
	MaxSize     int
	MinSpace    float64 // base exclusion distance between cavities
	SurfaceBand int     // center within this many tiles of the surface may vent
	VentChance  float64
	Replaceable []Block
	Features    bool
}

func (ct CaveType) replaceable(b Block) bool {
	for _, r := range ct.Replaceable {
		if r == b {
			return true
		}
	}
	return false
}

// DefaultCaveTypes returns the built-in cave families: large deep caverns
// and smaller near-surface pockets.
func DefaultCaveTypes() []CaveType {
	stony := []Block{BlockStone, BlockDeepstone, BlockDirt, BlockGravel, BlockMoss, BlockMud, BlockClay, BlockSandstone}
	return []CaveType{
		{
			Name: "cavern",
			MinY: -160, MaxY: -12,
			Rarity: 0.34, SizeExp: 2.6,
			MinSize: 60, MaxSize: 420,
			MinSpace: 26, SurfaceBand: 40, VentChance: 0.35,
			Replaceable: stony,
			Features:    true,
		},
		{
			Name: "pocket",
			MinY: -60, MaxY: 4,
			Rarity: 0.42, SizeExp: 1.8,
			MinSize: 14, MaxSize: 90,
			MinSpace: 14, SurfaceBand: 24, VentChance: 0.5,
			Replaceable: append([]Block{BlockSand, BlockSnow}, stony...),
			Features:    false,
		},
	}
}

// CaveCarver synthesizes cave cavities. Each candidate runs the phase
// sequence gated -> sized -> carved -> repaired -> vented; any phase may
// drop the candidate silently.
type CaveCarver struct {
	noise    *NoiseFactory
	registry *PlacementRegistry
}

// NewCaveCarver creates a carver sharing the generator's noise factory and
// spacing registry.
func NewCaveCarver(noise *NoiseFactory, registry *PlacementRegistry) *CaveCarver {
	return &CaveCarver{noise: noise, registry: registry}
}

type cell struct{ x, y int }

// TryCarve attempts one cavity of type ct centered near (x, y). surface is
// the column's terrain height. Returns the number of cells carved; zero
// means the candidate failed gating, which is a normal outcome.
func (cc *CaveCarver) TryCarve(access BlockAccess, ct CaveType, x, y int, surface float64) int {
	if !cc.gated(ct, x, y, surface) {
		return 0
	}

	radius := cc.sized(ct, x, y)
	carved := cc.carve(access, ct, x, y, radius)
	if len(carved) == 0 {
		return 0
	}

	carvedSet := make(map[cell]bool, len(carved))
	for _, c := range carved {
		carvedSet[c] = true
	}
	cc.repair(access, ct, carvedSet)

	cc.registry.Add(ct.Name, Placement{X: x, Y: y, Radius: radius})

	if cc.shouldVent(ct, x, y, surface) {
		cc.vent(access, ct, carvedSet, surface)
	}

	if ct.Features {
		cc.placeFeatures(access, ct, carvedSet, surface)
	}

	return len(carvedSet)
}

// gated runs the candidate checks: vertical band, near-surface damping,
// spacing against registered cavities, and the depth-modulated rarity test.
func (cc *CaveCarver) gated(ct CaveType, x, y int, surface float64) bool {
	if y < ct.MinY || y > ct.MaxY {
		return false
	}

	depth := int(math.Floor(surface)) - y
	if depth < 0 {
		return false
	}

	// Damping probability suppresses caves hugging the surface.
	const dampDepth = 24.0
	damp := math.Min(float64(depth)/dampDepth, 1)
	if Unit(cc.noise.Field(ct.Name+":damp", 0.21)(float64(x), float64(y))) > damp {
		return false
	}

	// Exclusion against previously registered cavities of this type. The
	// effective radius is jittered by shape noise so spacing never reads
	// as a lattice.
	shape := cc.noise.Field(ct.Name+":space", 0.05)(float64(x), float64(y))
	reach := ct.MinSpace + float64(ct.MaxSize)
	for _, p := range cc.registry.Nearby(ct.Name, x, reach) {
		limit := ct.MinSpace + p.Radius*(1+0.35*shape)
		dx, dy := float64(x-p.X), float64(y-p.Y)
		if dx*dx+dy*dy < limit*limit {
			return false
		}
	}

	// Rarity gate, relatively more permissive at depth.
	depthFrac := math.Min(float64(depth)/120.0, 1)
	posNoise := Unit(cc.noise.Field(ct.Name+":pos", 0.013)(float64(x), float64(y)))
	effective := ct.Rarity*(0.6+0.8*depthFrac) + 0.08*posNoise
	n := Unit(cc.noise.Field(ct.Name+":gate", 0.17)(float64(x), float64(y)))
	return n <= effective
}

// sized derives the working radius from a target cell count treated as a
// disc area. Raising the unit sample to SizeExp compresses the size
// distribution toward small cavities; rarer types use larger exponents so
// big cavities of rare types are exponentially rarer.
func (cc *CaveCarver) sized(ct CaveType, x, y int) float64 {
	u := Unit(cc.noise.Field(ct.Name+":size", 0.031)(float64(x), float64(y)))
	size := ct.MinSize + int(math.Pow(u, ct.SizeExp)*float64(ct.MaxSize-ct.MinSize))
	return math.Sqrt(float64(size) / math.Pi)
}

// Octave weights for the carve pass, coarse to fine.
const (
	carveWeightCavity  = 0.5
	carveWeightShape   = 0.3
	carveWeightDetail  = 0.15
	carveWeightFeature = 0.05

	featureSeedThreshold = 0.92
)

// carve scans the cavity's bounding box and converts qualifying cells to
// air. Returns the carved cells in scan order.
func (cc *CaveCarver) carve(access BlockAccess, ct CaveType, cx, cy int, radius float64) []cell {
	cavity := cc.noise.Field(ct.Name+":cavity", 0.025)
	shape := cc.noise.Field(ct.Name+":shape", 0.06)
	detail := cc.noise.Field(ct.Name+":detail", 0.14)
	feature := cc.noise.Field(ct.Name+":feature", 0.31)

	box := int(math.Ceil(radius * 1.4))
	cutoff := radius * 1.2

	var carved []cell
	for dy := -box; dy <= box; dy++ {
		for dx := -box; dx <= box; dx++ {
			dist := math.Hypot(float64(dx), float64(dy))
			if dist > cutoff {
				continue
			}

			x, y := cx+dx, cy+dy
			fx, fy := float64(x), float64(y)
			combined := carveWeightCavity*Unit(cavity(fx, fy)) +
				carveWeightShape*Unit(shape(fx, fy)) +
				carveWeightDetail*Unit(detail(fx, fy)) +
				carveWeightFeature*Unit(feature(fx, fy))

			// Threshold drops toward the center: cells carve more easily
			// the closer they sit to the cavity core.
			threshold := 0.35 + 0.45*(dist/math.Max(radius, 1))
			if combined <= threshold {
				continue
			}
			if !ct.replaceable(access.BlockAt(x, y)) {
				continue
			}
			access.SetBlock(x, y, BlockAir)
			carved = append(carved, cell{x, y})
		}
	}
	return carved
}

// repair groups the carved cells into 8-connected components and tunnels
// every smaller component into the largest until the cavity is one region.
func (cc *CaveCarver) repair(access BlockAccess, ct CaveType, carved map[cell]bool) {
	components := connectedComponents(carved)
	if len(components) <= 1 {
		return
	}

	// Largest component is the anchor.
	sort.Slice(components, func(i, j int) bool {
		return len(components[i]) > len(components[j])
	})
	anchor := components[0]

	for _, comp := range components[1:] {
		from, to := closestPair(comp, anchor)
		for _, c := range cc.tunnel(access, ct, from, to) {
			carved[c] = true
			anchor = append(anchor, c)
		}
		anchor = append(anchor, comp...)
	}
}

// sampleLimit bounds how many points of a component are considered when
// searching for the closest cross-component pair.
const sampleLimit = 24

// closestPair finds the nearest (a, b) cell pair across two components,
// sampling each side when it is large.
func closestPair(a, b []cell) (cell, cell) {
	sa := sampleCells(a, sampleLimit)
	sb := sampleCells(b, sampleLimit)

	best := math.MaxFloat64
	var bestA, bestB cell
	for _, ca := range sa {
		for _, cb := range sb {
			dx, dy := float64(ca.x-cb.x), float64(ca.y-cb.y)
			d := dx*dx + dy*dy
			if d < best {
				best = d
				bestA, bestB = ca, cb
			}
		}
	}
	return bestA, bestB
}

func sampleCells(cs []cell, limit int) []cell {
	if len(cs) <= limit {
		return cs
	}
	step := len(cs) / limit
	out := make([]cell, 0, limit)
	for i := 0; i < len(cs) && len(out) < limit; i += step {
		out = append(out, cs[i])
	}
	return out
}

// tunnel carves a biased random walk from start toward end. The walk is
// perturbed by noise per step and its width tapers from the deep end of
// the pair toward the shallow end. Returns the carved cells.
func (cc *CaveCarver) tunnel(access BlockAccess, ct CaveType, start, end cell) []cell {
	perturb := cc.noise.Field(ct.Name+":tunnel", 0.09)

	deepY := math.Min(float64(start.y), float64(end.y))
	span := math.Abs(float64(start.y-end.y)) + 1

	px, py := float64(start.x), float64(start.y)
	var out []cell

	maxSteps := 4 * (int(math.Hypot(float64(end.x-start.x), float64(end.y-start.y))) + 1)
	for step := 0; step < maxSteps; step++ {
		dx := float64(end.x) - px
		dy := float64(end.y) - py
		dist := math.Hypot(dx, dy)
		if dist < 1 {
			break
		}
		dx, dy = dx/dist, dy/dist

		j := perturb(px, py)
		dx += j * 0.6
		dy += perturb(py, px) * 0.6
		norm := math.Hypot(dx, dy)
		px += dx / norm
		py += dy / norm

		// Wider near the deep end, narrower toward the shallow end.
		taper := 1 - math.Min((py-deepY)/span, 1)
		width := 1 + 1.5*taper

		out = append(out, cc.carveDisc(access, int(math.Round(px)), int(math.Round(py)), width)...)
	}
	return out
}

// carveDisc empties every non-empty, non-liquid cell within the radius.
func (cc *CaveCarver) carveDisc(access BlockAccess, cx, cy int, radius float64) []cell {
	r := int(math.Ceil(radius))
	var out []cell
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) > radius*radius {
				continue
			}
			x, y := cx+dx, cy+dy
			b := access.BlockAt(x, y)
			if b.Empty() || b.Liquid() {
				continue
			}
			access.SetBlock(x, y, BlockAir)
			out = append(out, cell{x, y})
		}
	}
	return out
}

// shouldVent gates the surface-exit walk: only cavities centered within the
// near-surface band, and only a noise-decided fraction of those.
func (cc *CaveCarver) shouldVent(ct CaveType, x, y int, surface float64) bool {
	depth := int(math.Floor(surface)) - y
	if depth > ct.SurfaceBand {
		return false
	}
	return Unit(cc.noise.Field(ct.Name+":vent", 0.19)(float64(x), float64(y))) <= ct.VentChance
}

// vent carves an upward-biased walk from the cavity's highest edge cell to
// the surface. Direction is momentum-smoothed against fresh noise with a
// floor on the vertical component so the walk always makes upward
// progress; width shrinks with distance traveled.
func (cc *CaveCarver) vent(access BlockAccess, ct CaveType, carved map[cell]bool, surface float64) {
	start, ok := highestEdgeCell(access, carved)
	if !ok {
		return
	}

	perturb := cc.noise.Field(ct.Name+":ventwalk", 0.11)

	px, py := float64(start.x), float64(start.y)
	dirX, dirY := 0.0, 1.0
	startWidth := 2.2
	maxLen := math.Max(surface-py+float64(ct.SurfaceBand), 1)

	for traveled := 0.0; traveled < maxLen; traveled++ {
		freshX := perturb(px, py)
		dirX = dirX*0.7 + freshX*0.3
		dirY = dirY*0.7 + 0.3
		if dirY < 0.4 {
			dirY = 0.4
		}
		norm := math.Hypot(dirX, dirY)
		px += dirX / norm
		py += dirY / norm

		width := math.Max(1, startWidth*(1-traveled/maxLen))
		for _, c := range cc.carveDisc(access, int(math.Round(px)), int(math.Round(py)), width) {
			carved[c] = true
		}

		// Reached genuinely open air above the terrain: stop early.
		if py > surface && access.BlockAt(int(math.Round(px)), int(math.Round(py))+1).Empty() {
			return
		}
	}
}

// highestEdgeCell returns the highest carved cell that touches solid
// material, preferring cells nearer the surface as vent starts.
func highestEdgeCell(access BlockAccess, carved map[cell]bool) (cell, bool) {
	var best cell
	found := false
	for c := range carved {
		solidNeighbor := false
		for _, d := range [4]cell{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
			if access.BlockAt(c.x+d.x, c.y+d.y).Solid() {
				solidNeighbor = true
				break
			}
		}
		if !solidNeighbor {
			continue
		}
		if !found || c.y > best.y || (c.y == best.y && c.x < best.x) {
			best = c
			found = true
		}
	}
	return best, found
}

// placeFeatures decorates qualifying cells with hanging, pooled, and
// wall-adjacent features, each behind an increasingly strict noise gate.
func (cc *CaveCarver) placeFeatures(access BlockAccess, ct CaveType, carved map[cell]bool, surface float64) {
	gate := cc.noise.Field(ct.Name+":featgate", 0.27)

	cells := sortedCells(carved)
	for _, c := range cells {
		if access.BlockAt(c.x, c.y) != BlockAir {
			continue
		}
		fx, fy := float64(c.x), float64(c.y)
		g := Unit(gate(fx, fy))
		depth := int(math.Floor(surface)) - c.y

		switch {
		// Hanging feature under solid ceiling.
		case g > 0.82 && g <= 0.88 && access.BlockAt(c.x, c.y+1).Solid():
			access.SetBlock(c.x, c.y, BlockStalactite)

		// Pooled liquid on solid floor, deep cells only.
		case g > 0.88 && g <= 0.93 && depth > 50 && access.BlockAt(c.x, c.y-1).Solid():
			if depth > 110 {
				access.SetBlock(c.x, c.y, BlockLava)
			} else {
				access.SetBlock(c.x, c.y, BlockWater)
			}

		// Wall decoration, variant by depth band.
		case g > 0.93 && hasSolidSideNeighbor(access, c):
			switch {
			case depth < 35:
				access.SetBlock(c.x, c.y, BlockVines)
			case depth < 80:
				access.SetBlock(c.x, c.y, BlockGlowshroom)
			default:
				access.SetBlock(c.x, c.y, BlockCrystalShard)
			}
		}
	}
}

func hasSolidSideNeighbor(access BlockAccess, c cell) bool {
	return access.BlockAt(c.x-1, c.y).Solid() || access.BlockAt(c.x+1, c.y).Solid()
}

// connectedComponents groups cells into 8-connected regions.
func connectedComponents(set map[cell]bool) [][]cell {
	seen := make(map[cell]bool, len(set))
	var components [][]cell

	for _, start := range sortedCells(set) {
		if seen[start] {
			continue
		}
		var comp []cell
		stack := []cell{start}
		seen[start] = true
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, c)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					n := cell{c.x + dx, c.y + dy}
					if set[n] && !seen[n] {
						seen[n] = true
						stack = append(stack, n)
					}
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// sortedCells returns the set's cells in deterministic scan order. Map
// iteration order must never leak into generation output.
func sortedCells(set map[cell]bool) []cell {
	out := make([]cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].y != out[j].y {
			return out[i].y < out[j].y
		}
		return out[i].x < out[j].x
	})
	return out
}
