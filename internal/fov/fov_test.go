package fov

import (
	"context"
	"testing"

	"github.com/samdwyer/rogue1980/internal/world"
)

// openGrid creates a walled grid with an all-floor interior.
func openGrid(width, height int) *world.Grid {
	g := world.NewGrid(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			g.Set(world.Position{X: x, Y: y}, world.Tile{Kind: world.TileFloor})
		}
	}
	return g
}

func TestOriginAlwaysVisible(t *testing.T) {
	g := openGrid(20, 20)
	origin := world.Position{X: 5, Y: 5}

	for _, radius := range []int{0, 1, 8} {
		if !Compute(g, origin, radius).Contains(origin) {
			t.Errorf("radius %d: origin not visible", radius)
		}
	}
}

func TestOpenRoomRadius(t *testing.T) {
	g := openGrid(30, 30)
	origin := world.Position{X: 15, Y: 15}
	radius := 5

	visible := Compute(g, origin, radius)

	for y := 1; y < 29; y++ {
		for x := 1; x < 29; x++ {
			p := world.Position{X: x, Y: y}
			inRange := p.DistSq(origin) <= radius*radius+radius
			if visible.Contains(p) != inRange {
				t.Fatalf("%v visible = %v, want %v", p, visible.Contains(p), inRange)
			}
		}
	}
}

func TestWallBlocksTilesBehind(t *testing.T) {
	g := openGrid(20, 5)
	origin := world.Position{X: 2, Y: 2}
	wall := world.Position{X: 5, Y: 2}
	g.Set(wall, world.Tile{Kind: world.TileWall})

	visible := Compute(g, origin, 10)

	if !visible.Contains(wall) {
		t.Error("the blocking wall itself should be visible")
	}
	if visible.Contains(world.Position{X: 6, Y: 2}) {
		t.Error("tile directly behind the wall should be hidden")
	}
	if !visible.Contains(world.Position{X: 4, Y: 2}) {
		t.Error("tile in front of the wall should be visible")
	}
}

func TestClosedDoorBlocksUntilOpened(t *testing.T) {
	g := openGrid(12, 3)
	origin := world.Position{X: 1, Y: 1}
	door := world.Position{X: 4, Y: 1}
	behind := world.Position{X: 6, Y: 1}
	g.Set(door, world.Tile{Kind: world.TileDoor})

	if Compute(g, origin, 8).Contains(behind) {
		t.Error("closed door should hide the corridor behind it")
	}

	g.OpenDoor(door)
	if !Compute(g, origin, 8).Contains(behind) {
		t.Error("open door should reveal the corridor behind it")
	}
}

func TestOutOfBoundsOrigin(t *testing.T) {
	g := openGrid(5, 5)
	if got := Compute(g, world.Position{X: -1, Y: 0}, 3).Len(); got != 0 {
		t.Errorf("out of bounds origin saw %d tiles, want 0", got)
	}
}

func TestSymmetry(t *testing.T) {
	const radius = 8

	for _, seed := range []int64{3, 42, 2024} {
		layout, err := world.Generate(context.Background(), seed, world.DefaultParams(world.DefaultWidth, world.DefaultHeight))
		if err != nil {
			t.Fatalf("seed %d: Generate() error = %v", seed, err)
		}
		g := layout.Grid

		var floors []world.Position
		for i, tile := range g.Tiles {
			if !tile.BlocksSight() {
				floors = append(floors, world.Position{X: i % g.Width, Y: i / g.Width})
			}
		}

		views := make(map[world.Position]Set, len(floors))
		for _, p := range floors {
			views[p] = Compute(g, p, radius)
		}

		for _, a := range floors {
			for _, b := range floors {
				if a == b || a.Chebyshev(b) > radius {
					continue
				}
				if views[a].Contains(b) != views[b].Contains(a) {
					t.Fatalf("seed %d: asymmetric pair %v sees %v = %v, reverse = %v",
						seed, a, b, views[a].Contains(b), views[b].Contains(a))
				}
			}
		}
	}
}

func TestPositionsSorted(t *testing.T) {
	s := Set{
		{X: 3, Y: 1}: {},
		{X: 1, Y: 2}: {},
		{X: 0, Y: 1}: {},
	}
	got := s.Positions()
	want := []world.Position{{X: 0, Y: 1}, {X: 3, Y: 1}, {X: 1, Y: 2}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Positions() = %v, want %v", got, want)
		}
	}
}
