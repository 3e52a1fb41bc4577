package gen

import (
	"math"
	"testing"
)

func TestFieldDeterministicAcrossFactories(t *testing.T) {
	f1 := NewNoiseFactory("alpha").Field("height", 0.01)
	f2 := NewNoiseFactory("alpha").Field("height", 0.01)

	for x := -200.0; x <= 200.0; x += 13.7 {
		if f1(x, 0) != f2(x, 0) {
			t.Fatalf("same seed diverged at x=%v", x)
		}
	}
}

func TestFieldMemoized(t *testing.T) {
	nf := NewNoiseFactory("alpha")
	a := nf.Field("height", 0.01)
	b := nf.Field("height", 0.01)

	for x := 0.0; x < 50; x += 3.3 {
		if a(x, x) != b(x, x) {
			t.Fatalf("memoized field diverged at %v", x)
		}
	}
	if len(nf.fields) != 1 {
		t.Errorf("factory holds %d fields, want 1", len(nf.fields))
	}
}

func TestFieldLabelsIndependent(t *testing.T) {
	nf := NewNoiseFactory("alpha")
	a := nf.Field("height", 0.01)
	b := nf.Field("density", 0.01)

	same := true
	for x := 1.0; x < 100; x += 7.1 {
		if a(x, 0) != b(x, 0) {
			same = false
			break
		}
	}
	if same {
		t.Error("fields with different labels produced identical values")
	}
}

func TestFieldSeedsIndependent(t *testing.T) {
	a := NewNoiseFactory("alpha").Field("height", 0.01)
	b := NewNoiseFactory("beta").Field("height", 0.01)

	same := true
	for x := 1.0; x < 100; x += 7.1 {
		if a(x, 0) != b(x, 0) {
			same = false
			break
		}
	}
	if same {
		t.Error("fields from different seeds produced identical values")
	}
}

func TestFieldRange(t *testing.T) {
	nf := NewNoiseFactory("range")
	fields := []NoiseField{
		nf.Field("a", 0.003),
		nf.Field("b", 0.5),
		nf.Climate("temperature", 0.0008),
	}
	for _, f := range fields {
		for x := -500.0; x <= 500.0; x += 31.7 {
			v := f(x, x/3)
			if math.IsNaN(v) || v < -1 || v > 1 {
				t.Fatalf("noise value %v at x=%v outside [-1, 1]", v, x)
			}
		}
	}
}

func TestClimateDeterministic(t *testing.T) {
	c1 := NewNoiseFactory("alpha").Climate("temperature", 0.0008)
	c2 := NewNoiseFactory("alpha").Climate("temperature", 0.0008)

	for x := -1000.0; x <= 1000.0; x += 97.3 {
		if c1(x, 0) != c2(x, 0) {
			t.Fatalf("climate diverged at x=%v", x)
		}
	}
}

func TestUnit(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0.5},
		{1, 1},
		{-2, 0},
		{2, 1},
	}
	for _, tt := range tests {
		if got := Unit(tt.in); got != tt.want {
			t.Errorf("Unit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFieldSeedStable(t *testing.T) {
	a := fieldSeed("world", "height")
	b := fieldSeed("world", "height")
	if a != b {
		t.Error("fieldSeed not stable")
	}
	if fieldSeed("world", "height") == fieldSeed("world", "density") {
		t.Error("fieldSeed collision across labels")
	}
	// The separator byte keeps (seed, label) pairs unambiguous.
	if fieldSeed("ab", "c") == fieldSeed("a", "bc") {
		t.Error("fieldSeed collision across seed/label split")
	}
}
