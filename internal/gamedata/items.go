package gamedata

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// ItemKind classifies items by how they are used.
type ItemKind string

const (
	ItemWeapon     ItemKind = "weapon"     // Equipped, adds attack
	ItemArmor      ItemKind = "armor"      // Equipped, adds defense
	ItemConsumable ItemKind = "consumable" // Used up: food, elixirs, scrolls
	ItemTreasure   ItemKind = "treasure"   // Turned into gold on pick-up
)

// Effect describes what an item does. Fields that do not apply are zero.
type Effect struct {
	Heal      int `json:"heal,omitempty"`      // Health restored
	MaxHealth int `json:"maxHealth,omitempty"` // Permanent max health gain
	Attack    int `json:"attack,omitempty"`    // Attack bonus (permanent for consumables)
	Defense   int `json:"defense,omitempty"`   // Defense bonus (permanent for consumables)
	Value     int `json:"value,omitempty"`     // Gold value
}

// Plus returns the field-wise sum of two effects.
func (e Effect) Plus(o Effect) Effect {
	return Effect{
		Heal:      e.Heal + o.Heal,
		MaxHealth: e.MaxHealth + o.MaxHealth,
		Attack:    e.Attack + o.Attack,
		Defense:   e.Defense + o.Defense,
		Value:     e.Value + o.Value,
	}
}

// Times returns the effect scaled by n.
func (e Effect) Times(n int) Effect {
	return Effect{
		Heal:      e.Heal * n,
		MaxHealth: e.MaxHealth * n,
		Attack:    e.Attack * n,
		Defense:   e.Defense * n,
		Value:     e.Value * n,
	}
}

// ItemDef defines an item template loaded from JSON.
type ItemDef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        ItemKind `json:"kind"`
	Glyph       string   `json:"glyph"`
	Color       string   `json:"color"`
	Effect      Effect   `json:"effect"`
	PerDepth    Effect   `json:"perDepth"` // Added once per level below the first
	SpawnWeight int      `json:"spawnWeight"`
	MinDepth    int      `json:"minDepth"`
}

// Key returns the item ID.
func (d ItemDef) Key() string { return d.ID }

// Weight returns the spawn weight.
func (d ItemDef) Weight() int { return d.SpawnWeight }

// AvailableAt reports whether the item may spawn at depth.
func (d ItemDef) AvailableAt(depth int) bool { return depth >= d.MinDepth }

// GlyphRune returns the glyph as a rune for rendering.
func (d ItemDef) GlyphRune() rune { return glyphRune(d.Glyph) }

// TCellColor returns the color as a tcell.Color.
func (d ItemDef) TCellColor() tcell.Color { return colorOr(d.Color, tcell.ColorYellow) }

// EffectAt returns the item's effect when generated at depth.
func (d ItemDef) EffectAt(depth int) Effect {
	return d.Effect.Plus(d.PerDepth.Times(max(depth-1, 0)))
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	for _, d := range file.Items {
		switch d.Kind {
		case ItemWeapon, ItemArmor, ItemConsumable, ItemTreasure:
		default:
			return nil, fmt.Errorf("items.json: item %q has unknown kind %q", d.ID, d.Kind)
		}
	}
	return file.Items, nil
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*Registry[ItemDef], error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return NewRegistry(items), nil
}
