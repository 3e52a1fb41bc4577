package gen

// Placement is a registered generation site with an exclusion radius.
// Structure placements use radius 0 and carry only the point.
type Placement struct {
	X, Y   int
	Radius float64
}

// PlacementRegistry is a grid-bucketed spatial index of placements keyed by
// a kind id (cave type, ore type, or structure type name). It replaces the
// hidden global caches of older generators: the chunk assembler owns one
// and passes it into every generator pass. Buckets are keyed by x only:
// the world is a horizontal strip and eviction is by x-range.
type PlacementRegistry struct {
	bucketSize int
	kinds      map[string]map[int][]Placement
}

// NewPlacementRegistry creates a registry with the given bucket width in
// tiles.
func NewPlacementRegistry(bucketSize int) *PlacementRegistry {
	if bucketSize <= 0 {
		bucketSize = 64
	}
	return &PlacementRegistry{
		bucketSize: bucketSize,
		kinds:      make(map[string]map[int][]Placement),
	}
}

// Add registers a placement under kind.
func (r *PlacementRegistry) Add(kind string, p Placement) {
	buckets, ok := r.kinds[kind]
	if !ok {
		buckets = make(map[int][]Placement)
		r.kinds[kind] = buckets
	}
	b := floorDiv(p.X, r.bucketSize)
	buckets[b] = append(buckets[b], p)
}

// Nearby returns every placement of kind within reach tiles of x along the
// horizontal axis. Callers do their own exact distance math; this only
// narrows by bucket.
func (r *PlacementRegistry) Nearby(kind string, x int, reach float64) []Placement {
	buckets, ok := r.kinds[kind]
	if !ok {
		return nil
	}
	lo := floorDiv(x-int(reach)-1, r.bucketSize)
	hi := floorDiv(x+int(reach)+1, r.bucketSize)
	var out []Placement
	for b := lo; b <= hi; b++ {
		out = append(out, buckets[b]...)
	}
	return out
}

// EvictRange removes every placement with X in [minX, maxX] across all
// kinds. Scoped eviction preserves spacing memory outside the range; a
// global clear would reintroduce seams at already-generated boundaries.
func (r *PlacementRegistry) EvictRange(minX, maxX int) {
	for _, buckets := range r.kinds {
		lo := floorDiv(minX, r.bucketSize)
		hi := floorDiv(maxX, r.bucketSize)
		for b := lo; b <= hi; b++ {
			entries, ok := buckets[b]
			if !ok {
				continue
			}
			kept := entries[:0]
			for _, p := range entries {
				if p.X < minX || p.X > maxX {
					kept = append(kept, p)
				}
			}
			if len(kept) == 0 {
				delete(buckets, b)
			} else {
				buckets[b] = kept
			}
		}
	}
}
