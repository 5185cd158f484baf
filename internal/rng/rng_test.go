package rng

import "testing"

func TestRandReproducible(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		if x, y := a.Range(-2, 2), b.Range(-2, 2); x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
	}
}

func TestRandRangeBounds(t *testing.T) {
	s := New(7)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := s.Range(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("Range(-2, 2) = %d, out of bounds", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("Range(-2, 2) produced %d distinct values, want 5", len(seen))
	}
}

func TestRandZeroSeedIsReproducible(t *testing.T) {
	a, b := New(0), New(0)
	if a.Seed() != 0 {
		t.Errorf("Seed() = %d, want 0", a.Seed())
	}
	for i := 0; i < 100; i++ {
		if x, y := a.Int63(), b.Int63(); x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
	}
}

func TestFixed(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		lo, hi int
		want   int
	}{
		{"zero offset is midpoint", 0, -2, 2, 0},
		{"positive offset", 1, -2, 2, 1},
		{"clamped high", 10, -2, 2, 2},
		{"clamped low", -10, -2, 2, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fixed{Offset: tt.offset}.Range(tt.lo, tt.hi)
			if got != tt.want {
				t.Errorf("Fixed{%d}.Range(%d, %d) = %d, want %d", tt.offset, tt.lo, tt.hi, got, tt.want)
			}
		})
	}

	if got := (Fixed{Offset: 5}).Intn(3); got != 2 {
		t.Errorf("Fixed{5}.Intn(3) = %d, want 2", got)
	}
}
