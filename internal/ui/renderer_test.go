package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/rogue1980/internal/engine"
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/world"
)

func newTestRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	t.Cleanup(screen.Close)
	sim.SetSize(20, 10)
	return NewRenderer(screen, gamedata.MustLoadTables()), sim
}

func cellAt(sim tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := sim.GetContent(x, y)
	return r
}

func TestRenderDrawsExploredTilesAndGlyphs(t *testing.T) {
	r, sim := newTestRenderer(t)

	// 4x3 room: walls around two floor tiles, one of them unexplored.
	tiles := make([]world.Tile, 12)
	explored := make([]bool, 12)
	visible := make([]bool, 12)
	for i := range tiles {
		tiles[i] = world.Tile{Kind: world.TileWall}
		explored[i] = true
		visible[i] = true
	}
	tiles[5] = world.Tile{Kind: world.TileFloor}
	tiles[6] = world.Tile{Kind: world.TileFloor}
	explored[6] = false

	snap := engine.Snapshot{
		Width:    4,
		Height:   3,
		Tiles:    tiles,
		Visible:  visible,
		Explored: explored,
		Glyphs:   []engine.Glyph{{Pos: world.Position{X: 1, Y: 1}, Kind: "player"}},
		Status:   engine.Status{Depth: 2, Health: 10, MaxHealth: 30},
		Messages: []string{"old", "Hello"},
	}
	r.Render(snap)

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"latest message", 0, 0, 'H'},
		{"wall", 0, 1, '#'},
		{"player", 1, 2, '@'},
		{"unexplored floor", 2, 2, ' '},
		{"status line", 0, 4, 'L'},
		{"inventory line", 0, 5, 'I'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cellAt(sim, tt.x, tt.y); got != tt.want {
				t.Errorf("cell (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestStatusAndInventoryLines(t *testing.T) {
	got := statusLine(engine.Status{Depth: 3, Health: 7, MaxHealth: 30, Attack: 5, Defense: 2, Gold: 40, Turn: 12})
	want := "Level 3  HP 7/30  Atk 5  Def 2  Gold 40  Turn 12"
	if got != want {
		t.Errorf("statusLine() = %q, want %q", got, want)
	}

	inv := []engine.InventorySlot{{Name: "Ration"}, {Name: "Sword", Equipped: true}}
	if got := inventoryLine(inv); got != "Inventory: 1:Ration 2:Sword*" {
		t.Errorf("inventoryLine() = %q", got)
	}
	if got := inventoryLine(nil); got != "Inventory: empty" {
		t.Errorf("inventoryLine(nil) = %q", got)
	}
}
