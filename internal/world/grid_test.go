package world

import (
	"testing"

	"github.com/samdwyer/rogue1980/internal/rng"
)

func newTestSource(seed int64) rng.Source {
	return rng.New(seed)
}

func TestGridOutOfBoundsIsWall(t *testing.T) {
	g := NewGrid(5, 5)
	for _, p := range []Position{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if g.At(p).Kind != TileWall {
			t.Errorf("At(%v) = %v, want wall", p, g.At(p).Kind)
		}
		if g.IsPassable(p) {
			t.Errorf("IsPassable(%v) = true, want false", p)
		}
	}
}

func TestGridReachable(t *testing.T) {
	g := NewGrid(7, 3)
	// Two floor islands separated by a wall at x=3
	for _, x := range []int{1, 2, 4, 5} {
		g.Set(Position{X: x, Y: 1}, floorTile)
	}

	stray := g.Unreachable(Position{X: 1, Y: 1})
	if len(stray) != 2 {
		t.Fatalf("Unreachable() = %v, want the two tiles of the right island", stray)
	}

	// A closed door joins them
	g.Set(Position{X: 3, Y: 1}, doorTile)
	if stray := g.Unreachable(Position{X: 1, Y: 1}); len(stray) != 0 {
		t.Errorf("Unreachable() with door = %v, want none", stray)
	}
}

func TestGridOpenDoor(t *testing.T) {
	g := NewGrid(3, 3)
	door := Position{X: 1, Y: 1}
	g.Set(door, doorTile)

	if !g.BlocksSight(door) {
		t.Error("closed door should block sight")
	}
	if !g.OpenDoor(door) {
		t.Fatal("OpenDoor() on closed door = false")
	}
	if g.BlocksSight(door) {
		t.Error("open door should not block sight")
	}
	if g.OpenDoor(door) {
		t.Error("OpenDoor() on open door = true")
	}
	if g.At(door).Rune() != '\'' {
		t.Errorf("open door rune = %q", g.At(door).Rune())
	}
}

func TestTileKindString(t *testing.T) {
	tests := []struct {
		kind     TileKind
		expected string
	}{
		{TileWall, "wall"},
		{TileFloor, "floor"},
		{TileDoor, "door"},
		{TileStairs, "stairs"},
		{TileKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("TileKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestPositionDistances(t *testing.T) {
	a := Position{X: 1, Y: 1}
	b := Position{X: 4, Y: 5}

	if got := a.Manhattan(b); got != 7 {
		t.Errorf("Manhattan = %d, want 7", got)
	}
	if got := a.Chebyshev(b); got != 4 {
		t.Errorf("Chebyshev = %d, want 4", got)
	}
	if got := a.DistSq(b); got != 25 {
		t.Errorf("DistSq = %d, want 25", got)
	}
	if !a.IsAdjacent(a.Add(East)) || a.IsAdjacent(a.Add(SouthEast)) {
		t.Error("IsAdjacent should accept orthogonal steps only")
	}
}
