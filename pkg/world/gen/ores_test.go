package gen

import "testing"

func TestTryGrowRespectsBand(t *testing.T) {
	w := newTestWorld(BlockStone)
	vg := NewVeinGrower(NewNoiseFactory("band"), NewPlacementRegistry(64))
	catalog := NewCatalog(NewNoiseFactory("band"))
	biome := catalog.ByName("plains")

	for _, ot := range DefaultOreTypes() {
		if n := vg.TryGrow(w, ot, 0, ot.MaxY+5, biome); n != 0 {
			t.Errorf("%s: grew %d cells above band, want 0", ot.Name, n)
		}
		if n := vg.TryGrow(w, ot, 0, ot.MinY-5, biome); n != 0 {
			t.Errorf("%s: grew %d cells below band, want 0", ot.Name, n)
		}
	}
}

func TestTryGrowNeedsHostMaterial(t *testing.T) {
	w := newTestWorld(BlockAir)
	vg := NewVeinGrower(NewNoiseFactory("host"), NewPlacementRegistry(64))
	catalog := NewCatalog(NewNoiseFactory("host"))
	biome := catalog.ByName("plains")
	ot := DefaultOreTypes()[0]

	for x := 0; x < 512; x += 4 {
		if n := vg.TryGrow(w, ot, x, -40, biome); n != 0 {
			t.Fatalf("grew %d cells with no host material at x=%d", n, x)
		}
	}
}

func TestTryGrowSizeBounds(t *testing.T) {
	catalog := NewCatalog(NewNoiseFactory("size"))
	biome := catalog.ByName("plains")

	for _, ot := range DefaultOreTypes() {
		y := (ot.MinY + ot.MaxY) / 2
		host := ot.Host[0]

		grown := 0
		for x := 0; x < 4096 && grown < 8; x += 7 {
			// Fresh world and registry per candidate so spacing from
			// earlier veins never interferes with the size check.
			w := newTestWorld(host)
			vg := NewVeinGrower(NewNoiseFactory("size"), NewPlacementRegistry(64))
			n := vg.TryGrow(w, ot, x, y, biome)
			if n == 0 {
				continue
			}
			grown++
			if n < ot.MinVeinSize || n > ot.MaxVeinSize {
				t.Errorf("%s: vein size %d outside [%d, %d]", ot.Name, n, ot.MinVeinSize, ot.MaxVeinSize)
			}
			if got := w.count(ot.Block); got != n {
				t.Errorf("%s: TryGrow reported %d cells but placed %d", ot.Name, n, got)
			}
		}
		if grown == 0 {
			t.Errorf("%s: no vein grew across the probe sweep", ot.Name)
		}
	}
}

func TestTryGrowConstrainedHost(t *testing.T) {
	catalog := NewCatalog(NewNoiseFactory("island"))
	biome := catalog.ByName("plains")
	ot := DefaultOreTypes()[0]
	y := -40

	grown := 0
	for x := 0; x < 4096 && grown < 8; x += 7 {
		// A 5x5 stone island surrounded by air. The vein can never exceed
		// the island even when that leaves it under the minimum size.
		w := newTestWorld(BlockAir)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				w.SetBlock(x+dx, y+dy, BlockStone)
			}
		}
		vg := NewVeinGrower(NewNoiseFactory("island"), NewPlacementRegistry(64))
		n := vg.TryGrow(w, ot, x, y, biome)
		if n == 0 {
			continue
		}
		grown++
		if n > 25 {
			t.Fatalf("vein size %d exceeds the 25-cell host island", n)
		}
		for c, b := range w.blocks {
			if b != ot.Block {
				continue
			}
			if c.x < x-2 || c.x > x+2 || c.y < y-2 || c.y > y+2 {
				t.Fatalf("ore placed at %v outside the host island", c)
			}
		}
	}
	if grown == 0 {
		t.Error("no vein grew across the probe sweep")
	}
}

func TestTryGrowBiomeRestriction(t *testing.T) {
	w := newTestWorld(BlockStone)
	vg := NewVeinGrower(NewNoiseFactory("biome"), NewPlacementRegistry(64))
	catalog := NewCatalog(NewNoiseFactory("biome"))
	desert := catalog.ByName("desert")

	ot := DefaultOreTypes()[0]
	ot.Biomes = []string{"plains"}

	for x := 0; x < 512; x += 4 {
		if n := vg.TryGrow(w, ot, x, -40, desert); n != 0 {
			t.Fatalf("grew %d cells in an excluded biome", n)
		}
	}
}

func TestTryGrowSpacing(t *testing.T) {
	w := newTestWorld(BlockStone)
	registry := NewPlacementRegistry(64)
	vg := NewVeinGrower(NewNoiseFactory("spacing"), registry)
	catalog := NewCatalog(NewNoiseFactory("spacing"))
	biome := catalog.ByName("plains")
	ot := DefaultOreTypes()[0]

	// Find one successful vein, then retry at the exact same spot.
	for x := 0; x < 4096; x += 7 {
		if vg.TryGrow(w, ot, x, -40, biome) == 0 {
			continue
		}
		if n := vg.TryGrow(w, ot, x, -40, biome); n != 0 {
			t.Errorf("second vein of %d cells grew on top of the first", n)
		}
		return
	}
	t.Error("no vein grew across the probe sweep")
}

func TestTryGrowDeterministic(t *testing.T) {
	catalog := NewCatalog(NewNoiseFactory("determinism"))
	biome := catalog.ByName("plains")
	ot := DefaultOreTypes()[1]

	run := func() map[cell]Block {
		w := newTestWorld(BlockStone)
		vg := NewVeinGrower(NewNoiseFactory("determinism"), NewPlacementRegistry(64))
		for x := 0; x < 512; x += 7 {
			vg.TryGrow(w, ot, x, -60, biome)
		}
		return w.blocks
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("grow runs wrote %d vs %d cells", len(a), len(b))
	}
	for c, blk := range a {
		if b[c] != blk {
			t.Fatalf("grow runs differ at %v", c)
		}
	}
}
