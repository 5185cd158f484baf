package engine

import (
	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/world"
)

// shownMessages is how many recent messages a snapshot carries.
const shownMessages = 3

// Glyph is something drawn on top of a tile.
type Glyph struct {
	Pos    world.Position
	Kind   string // Data identifier: monster or item ID, or "player"
	IsItem bool
}

// Status is the player's summary line.
type Status struct {
	Depth     int
	Turn      int
	Health    int
	MaxHealth int
	Attack    int
	Defense   int
	Gold      int
	Outcome   Outcome
}

// InventorySlot is one carried item, in pick-up order.
type InventorySlot struct {
	ID       entity.ItemID
	Name     string
	Kind     gamedata.ItemKind
	Equipped bool
}

// Snapshot is a read-only view of the state for rendering.
// Visible and Explored are row-major like Tiles.
type Snapshot struct {
	Width     int
	Height    int
	Tiles     []world.Tile
	Visible   []bool
	Explored  []bool
	Glyphs    []Glyph
	Status    Status
	Inventory []InventorySlot
	Messages  []string
}

// Snapshot builds the view of the current state. Only what the player can
// see is included: items and monsters outside the field of view are omitted.
func (s *State) Snapshot() Snapshot {
	player := s.player()

	snap := Snapshot{
		Width:    s.grid.Width,
		Height:   s.grid.Height,
		Tiles:    make([]world.Tile, len(s.grid.Tiles)),
		Visible:  make([]bool, len(s.grid.Tiles)),
		Explored: make([]bool, len(s.explored)),
	}
	copy(snap.Tiles, s.grid.Tiles)
	copy(snap.Explored, s.explored)
	for p := range s.visible {
		snap.Visible[s.grid.Index(p)] = true
	}

	for _, id := range s.store.Items() {
		it, _ := s.store.Item(id)
		if it.OnGround() && s.visible.Contains(*it.Pos) {
			snap.Glyphs = append(snap.Glyphs, Glyph{Pos: *it.Pos, Kind: it.DefID, IsItem: true})
		}
	}
	for _, id := range s.store.AllLiving() {
		e := s.mustGet(id)
		if e.IsPlayer() || !s.visible.Contains(e.Pos) {
			continue
		}
		snap.Glyphs = append(snap.Glyphs, Glyph{Pos: e.Pos, Kind: e.Kind.String()})
	}
	// The player is drawn last so it is never hidden.
	snap.Glyphs = append(snap.Glyphs, Glyph{Pos: player.Pos, Kind: entity.KindPlayer.String()})

	attack, _ := s.store.EffectiveAttack(player.ID)
	defense, _ := s.store.EffectiveDefense(player.ID)
	snap.Status = Status{
		Depth:     s.depth,
		Turn:      s.turn,
		Health:    player.Stats.Health,
		MaxHealth: player.Stats.MaxHealth,
		Attack:    attack,
		Defense:   defense,
		Gold:      player.Gold,
		Outcome:   s.outcome,
	}

	for _, id := range s.store.Inventory(player.ID) {
		it, _ := s.store.Item(id)
		snap.Inventory = append(snap.Inventory, InventorySlot{
			ID:       id,
			Name:     it.Name,
			Kind:     it.Kind,
			Equipped: id == player.Weapon || id == player.Armor,
		})
	}

	start := max(0, len(s.messages)-shownMessages)
	snap.Messages = append([]string(nil), s.messages[start:]...)
	return snap
}
