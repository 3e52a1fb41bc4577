package gen

import (
	"hash/fnv"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseField is a deterministic scalar field over 2D world space.
// Output is in the range [-1, 1].
type NoiseField func(x, y float64) float64

// NoiseSource resolves deterministic noise fields by label and scale.
// The same (label, scale) must always yield a behaviorally identical field.
type NoiseSource interface {
	Field(label string, scale float64) NoiseField
}

type fieldKey struct {
	label string
	scale float64
}

// NoiseFactory memoizes noise fields per (seed, label, scale) identity.
// Fields derived from the same seed string regenerate bit-identically
// across calls and across processes.
type NoiseFactory struct {
	seed    string
	fields  map[fieldKey]NoiseField
	climate map[fieldKey]NoiseField
}

// NewNoiseFactory creates a factory for the given world seed.
func NewNoiseFactory(seed string) *NoiseFactory {
	return &NoiseFactory{
		seed:    seed,
		fields:  make(map[fieldKey]NoiseField),
		climate: make(map[fieldKey]NoiseField),
	}
}

// Seed returns the world seed string the factory was created with.
func (f *NoiseFactory) Seed() string {
	return f.seed
}

// Field returns the simplex-backed noise field for (label, scale),
// creating and memoizing it on first use.
func (f *NoiseFactory) Field(label string, scale float64) NoiseField {
	key := fieldKey{label, scale}
	if field, ok := f.fields[key]; ok {
		return field
	}

	noise := opensimplex.New(fieldSeed(f.seed, label))
	field := NoiseField(func(x, y float64) float64 {
		return noise.Eval2(x*scale, y*scale)
	})
	f.fields[key] = field
	return field
}

// Climate returns a Perlin-backed field for the large-scale climate
// channels (temperature, humidity). Perlin's smoother gradients read
// better than simplex at continent scale.
func (f *NoiseFactory) Climate(label string, scale float64) NoiseField {
	key := fieldKey{label, scale}
	if field, ok := f.climate[key]; ok {
		return field
	}

	p := perlin.NewPerlin(2, 2, 3, fieldSeed(f.seed, label))
	field := NoiseField(func(x, y float64) float64 {
		return clampSigned(p.Noise2D(x*scale+0.5, y*scale+0.5))
	})
	f.climate[key] = field
	return field
}

// fieldSeed derives a per-label int64 seed from the world seed string.
func fieldSeed(seed, label string) int64 {
	h := fnv.New64a()
	h.Write([]byte(seed))
	h.Write([]byte{0})
	h.Write([]byte(label))
	return int64(h.Sum64())
}

// Unit remaps a noise value from [-1, 1] to [0, 1] for threshold tests.
func Unit(v float64) float64 {
	u := (v + 1) / 2
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

func clampSigned(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
