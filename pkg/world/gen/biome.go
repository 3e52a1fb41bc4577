package gen

import "fmt"

// LayerRule picks a block when a unit-noise sample from its channel falls
// inside [Min, Max). Rules are evaluated in order; first match wins.
type LayerRule struct {
	Channel string
	Scale   float64
	Min     float64
	Max     float64
	Block   Block
}

// DepthLayer covers a depth range below the surface. MaxDepth < 0 means
// unbounded; only the last layer of a biome may be unbounded. Depth 0 is
// the surface block itself.
type DepthLayer struct {
	MinDepth int
	MaxDepth int
	Rules    []LayerRule
	Default  Block
}

func (l DepthLayer) contains(depth int) bool {
	if depth < l.MinDepth {
		return false
	}
	return l.MaxDepth < 0 || depth <= l.MaxDepth
}

// Biome is a climate-bounded terrain profile. Created once at catalog
// construction and immutable afterwards.
type Biome struct {
	Name string

	// Climate window.
	MinTemp     float64
	MaxTemp     float64
	MinHumidity float64
	MaxHumidity float64

	// Terrain shaping.
	HeightMult  float64
	HeightAdd   float64
	Variability float64
	PeakFreq    float64

	// Rarity weight for the selector's thinning filter.
	Rarity float64

	Layers     []DepthLayer
	Foundation []Block

	noise NoiseSource
}

// AttachNoise wires the biome to its noise source. Must be called before
// any block selection; the catalog does this for every biome it builds.
func (b *Biome) AttachNoise(src NoiseSource) {
	b.noise = src
}

// channel resolves a noise channel, failing fast if the biome was never
// wired to a noise source. That is a configuration error, not a runtime
// condition, so it panics.
func (b *Biome) channel(label string, scale float64) NoiseField {
	if b.noise == nil {
		panic(fmt.Sprintf("gen: biome %q used before AttachNoise", b.Name))
	}
	return b.noise.Field(b.Name+":"+label, scale)
}

// Matches reports whether the perturbed climate point falls inside the
// biome's climate window.
func (b *Biome) Matches(temp, humidity float64) bool {
	return temp >= b.MinTemp && temp <= b.MaxTemp &&
		humidity >= b.MinHumidity && humidity <= b.MaxHumidity
}

// IsFoundation reports whether block is a valid structure foundation here.
func (b *Biome) IsFoundation(block Block) bool {
	for _, f := range b.Foundation {
		if f == block {
			return true
		}
	}
	return false
}

// ShapeHeight runs the base height through the biome's shaping function.
func (b *Biome) ShapeHeight(x, base float64) float64 {
	detail := b.channel("height", b.PeakFreq)(x, 0)
	h := base + detail*b.Variability
	return h*b.HeightMult + b.HeightAdd
}

// BlockAtDepth selects the block for a cell depth tiles below the surface.
// Negative depth is the caller's responsibility (air above ground).
func (b *Biome) BlockAtDepth(x, y, depth int) Block {
	layer, ok := b.layerFor(depth)
	if !ok {
		return BlockAir
	}
	fx, fy := float64(x), float64(y)
	for _, r := range layer.Rules {
		v := Unit(b.channel(r.Channel, r.Scale)(fx, fy))
		if v >= r.Min && v < r.Max {
			return r.Block
		}
	}
	return layer.Default
}

func (b *Biome) layerFor(depth int) (DepthLayer, bool) {
	for _, l := range b.Layers {
		if l.contains(depth) {
			return l, true
		}
	}
	return DepthLayer{}, false
}

// validateLayers panics if the biome's layers leave a gap or fail to cover
// depth to infinity. Run at catalog construction so miswired definitions
// die at startup, not mid-generation.
func (b *Biome) validateLayers() {
	if len(b.Layers) == 0 {
		panic(fmt.Sprintf("gen: biome %q has no depth layers", b.Name))
	}
	next := 0
	for i, l := range b.Layers {
		if l.MinDepth != next {
			panic(fmt.Sprintf("gen: biome %q layer %d starts at depth %d, want %d", b.Name, i, l.MinDepth, next))
		}
		if l.MaxDepth < 0 {
			if i != len(b.Layers)-1 {
				panic(fmt.Sprintf("gen: biome %q layer %d is unbounded but not last", b.Name, i))
			}
			return
		}
		next = l.MaxDepth + 1
	}
	panic(fmt.Sprintf("gen: biome %q layers do not cover unbounded depth", b.Name))
}
