package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/rogue1980/internal/engine"
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/scoreboard"
	"github.com/samdwyer/rogue1980/internal/world"
)

// mapTop is the first screen row of the map; the row above holds the latest message.
const mapTop = 1

// glyphStyle is how a data identifier is drawn.
type glyphStyle struct {
	r     rune
	style tcell.Style
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	glyphs map[string]glyphStyle
}

// NewRenderer creates a new renderer for the given screen. Glyphs and colors
// come from the data tables.
func NewRenderer(screen *Screen, tables *gamedata.Tables) *Renderer {
	glyphs := make(map[string]glyphStyle)
	p := tables.Player
	glyphs[p.ID] = glyphStyle{p.GlyphRune(), tcell.StyleDefault.Foreground(p.TCellColor()).Bold(true)}
	for _, m := range tables.Monsters.All() {
		glyphs[m.ID] = glyphStyle{m.GlyphRune(), tcell.StyleDefault.Foreground(m.TCellColor())}
	}
	for _, it := range tables.Items.All() {
		glyphs[it.ID] = glyphStyle{it.GlyphRune(), tcell.StyleDefault.Foreground(it.TCellColor())}
	}
	return &Renderer{screen: screen, glyphs: glyphs}
}

// Render draws a snapshot: latest message, map, status, and inventory.
func (r *Renderer) Render(snap engine.Snapshot) {
	r.screen.Clear()

	if n := len(snap.Messages); n > 0 {
		r.RenderMessage(snap.Messages[n-1], 0)
	}

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			i := y*snap.Width + x
			if !snap.Explored[i] {
				continue
			}
			tile := snap.Tiles[i]
			r.screen.SetContent(x, y+mapTop, tile.Rune(), tileStyle(tile, snap.Visible[i]))
		}
	}

	for _, g := range snap.Glyphs {
		gs, ok := r.glyphs[g.Kind]
		if !ok {
			gs = glyphStyle{'?', tcell.StyleDefault}
		}
		r.screen.SetContent(g.Pos.X, g.Pos.Y+mapTop, gs.r, gs.style)
	}

	row := snap.Height + mapTop
	r.RenderMessage(statusLine(snap.Status), row)
	r.RenderMessage(inventoryLine(snap.Inventory), row+1)

	r.screen.Show()
}

// RenderEnd draws the final screen with the run summary and the best runs.
func (r *Renderer) RenderEnd(stats engine.RunStats, top []scoreboard.Run) {
	r.screen.Clear()

	var title string
	switch stats.Outcome {
	case engine.OutcomeWon:
		title = "You escaped the dungeon!"
	case engine.OutcomeLost:
		title = "You died."
	default:
		title = "You left the dungeon."
	}
	r.RenderMessage(title, 0)
	r.RenderMessage(fmt.Sprintf("Depth %d  Gold %d  Kills %d  Turns %d  Seed %d",
		stats.Depth, stats.Gold, stats.Kills, stats.Turns, stats.Seed), 1)

	if len(top) > 0 {
		r.RenderMessage("Best runs:", 3)
		for i, run := range top {
			r.RenderMessage(fmt.Sprintf("%2d. %6d gold  depth %2d  %-5s  %s",
				i+1, run.Gold, run.Depth, run.Outcome, run.FinishedAt.Format("2006-01-02")), 4+i)
		}
	}
	r.RenderMessage("Press any key to exit.", 5+len(top))

	r.screen.Show()
}

// RenderMessage displays a message on screen row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
}

// tileStyle returns the style for a tile; remembered tiles are dimmed.
func tileStyle(tile world.Tile, visible bool) tcell.Style {
	if !visible {
		return tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	}
	switch tile.Kind {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case world.TileStairs:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

func statusLine(st engine.Status) string {
	return fmt.Sprintf("Level %d  HP %d/%d  Atk %d  Def %d  Gold %d  Turn %d",
		st.Depth, st.Health, st.MaxHealth, st.Attack, st.Defense, st.Gold, st.Turn)
}

func inventoryLine(inv []engine.InventorySlot) string {
	if len(inv) == 0 {
		return "Inventory: empty"
	}
	parts := make([]string, 0, len(inv))
	for i, slot := range inv {
		name := slot.Name
		if slot.Equipped {
			name += "*"
		}
		parts = append(parts, fmt.Sprintf("%d:%s", i+1, name))
	}
	return "Inventory: " + strings.Join(parts, " ")
}
