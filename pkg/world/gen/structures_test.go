package gen

import "testing"

func testStructure() StructureType {
	return StructureType{
		Name: "test-tree",
		Pattern: parsePattern([]string{
			"LLL",
			".W.",
			".W.",
		}, treeGlyphs),
		Rarity:      1.0,
		MinDistance: 8,
		EdgeMargin:  2,
	}
}

// flatWorld builds a world of solid ground at and below surfaceY and air
// above it.
func flatWorld(surfaceY int) *testWorld {
	w := newTestWorld(BlockAir)
	for x := -64; x <= 64; x++ {
		for y := surfaceY - 4; y <= surfaceY; y++ {
			w.SetBlock(x, y, BlockDirt)
		}
	}
	return w
}

func TestParsePattern(t *testing.T) {
	p := parsePattern([]string{
		"LLL",
		".W.",
	}, treeGlyphs)

	if len(p) != 2 || len(p[0]) != 3 {
		t.Fatalf("pattern shape %dx%d, want 2x3", len(p), len(p[0]))
	}
	// Row 0 is the pattern bottom.
	if p[0][1] != BlockWood {
		t.Errorf("bottom center = %v, want wood", p[0][1])
	}
	if p[0][0] != BlockAir {
		t.Errorf("bottom left = %v, want air", p[0][0])
	}
	if p[1][0] != BlockLeaves {
		t.Errorf("top left = %v, want leaves", p[1][0])
	}
}

func TestDefaultStructurePatterns(t *testing.T) {
	for _, st := range DefaultStructureTypes() {
		if st.height() == 0 || st.width() == 0 {
			t.Errorf("%s: empty pattern", st.Name)
		}
		for i, row := range st.Pattern {
			if len(row) != st.width() {
				t.Errorf("%s: row %d width %d, want %d", st.Name, i, len(row), st.width())
			}
		}
	}
}

func TestTryPlaceStamps(t *testing.T) {
	w := flatWorld(0)
	sp := NewStructurePlacer(NewNoiseFactory("stamp"), NewPlacementRegistry(64), nil)
	st := testStructure()
	catalog := NewCatalog(NewNoiseFactory("stamp"))
	biome := catalog.ByName("forest")

	if !sp.TryPlace(w, st, 0, 0, biome, -32, 32) {
		t.Fatal("TryPlace failed on open flat ground")
	}

	// Trunk column and canopy row.
	if w.BlockAt(0, 1) != BlockWood || w.BlockAt(0, 2) != BlockWood {
		t.Error("trunk not stamped")
	}
	for dx := -1; dx <= 1; dx++ {
		if w.BlockAt(dx, 3) != BlockLeaves {
			t.Errorf("canopy at dx=%d = %v, want leaves", dx, w.BlockAt(dx, 3))
		}
	}

	// Air cells in the pattern leave the world untouched.
	if w.BlockAt(-1, 1) != BlockAir || w.BlockAt(1, 1) != BlockAir {
		t.Error("pattern air cells overwrote the world")
	}
}

func TestTryPlaceNeedsHeadroom(t *testing.T) {
	w := flatWorld(0)
	// Overhang directly above the trunk column.
	w.SetBlock(0, 2, BlockStone)

	sp := NewStructurePlacer(NewNoiseFactory("headroom"), NewPlacementRegistry(64), nil)
	catalog := NewCatalog(NewNoiseFactory("headroom"))
	biome := catalog.ByName("forest")

	if sp.TryPlace(w, testStructure(), 0, 0, biome, -32, 32) {
		t.Error("TryPlace succeeded under an overhang")
	}
}

func TestTryPlaceEdgeMargin(t *testing.T) {
	w := flatWorld(0)
	sp := NewStructurePlacer(NewNoiseFactory("edge"), NewPlacementRegistry(64), nil)
	st := testStructure()
	catalog := NewCatalog(NewNoiseFactory("edge"))
	biome := catalog.ByName("forest")

	// width 3, half 1, margin 2: x=2 pokes past chunkMinX=0.
	if sp.TryPlace(w, st, 2, 0, biome, 0, 15) {
		t.Error("TryPlace succeeded inside the edge margin")
	}
	if !sp.TryPlace(w, st, 7, 0, biome, 0, 15) {
		t.Error("TryPlace failed at the chunk center")
	}
}

func TestTryPlaceBiomeRestriction(t *testing.T) {
	w := flatWorld(0)
	sp := NewStructurePlacer(NewNoiseFactory("biome"), NewPlacementRegistry(64), nil)
	st := testStructure()
	st.Biomes = []string{"forest"}
	catalog := NewCatalog(NewNoiseFactory("biome"))

	if sp.TryPlace(w, st, 0, 0, catalog.ByName("desert"), -32, 32) {
		t.Error("TryPlace succeeded in an excluded biome")
	}
	if !sp.TryPlace(w, st, 0, 0, catalog.ByName("forest"), -32, 32) {
		t.Error("TryPlace failed in an allowed biome")
	}
}

func TestTryPlaceSameTypeSpacing(t *testing.T) {
	w := flatWorld(0)
	registry := NewPlacementRegistry(64)
	sp := NewStructurePlacer(NewNoiseFactory("spacing"), registry, nil)
	st := testStructure()
	catalog := NewCatalog(NewNoiseFactory("spacing"))
	biome := catalog.ByName("forest")

	if !sp.TryPlace(w, st, 0, 0, biome, -64, 64) {
		t.Fatal("first placement failed")
	}
	// Well inside MinDistance of the first.
	if sp.TryPlace(w, st, 4, 0, biome, -64, 64) {
		t.Error("second placement landed inside the exclusion distance")
	}
	// Beyond the jittered maximum 1.5 * MinDistance.
	if !sp.TryPlace(w, st, 20, 0, biome, -64, 64) {
		t.Error("placement failed well outside the exclusion distance")
	}
}

func TestTryPlaceCrossTypeSpacing(t *testing.T) {
	w := flatWorld(0)
	registry := NewPlacementRegistry(64)
	other := testStructure()
	other.Name = "test-boulder"
	sp := NewStructurePlacer(NewNoiseFactory("cross"), registry, []StructureType{testStructure(), other})
	catalog := NewCatalog(NewNoiseFactory("cross"))
	biome := catalog.ByName("forest")

	if !sp.TryPlace(w, testStructure(), 0, 0, biome, -64, 64) {
		t.Fatal("first placement failed")
	}
	// Cross-type exclusion is 0.75 * MinDistance = 6.
	if sp.TryPlace(w, other, 3, 0, biome, -64, 64) {
		t.Error("different type placed inside the cross-type exclusion")
	}
}
