package entity

import (
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/world"
)

// ItemID identifies an item. IDs are assigned in creation order starting at 1.
type ItemID uint64

// MaxPerKind is how many items of one kind the player can carry.
const MaxPerKind = 9

// Item is either lying on the ground (Pos set) or carried (Owner set).
type Item struct {
	ID     ItemID            `json:"id"`
	DefID  string            `json:"defId"`
	Name   string            `json:"name"`
	Kind   gamedata.ItemKind `json:"kind"`
	Effect gamedata.Effect   `json:"effect"`
	Pos    *world.Position   `json:"pos,omitempty"`
	Owner  ID                `json:"owner,omitempty"`
}

// OnGround returns true if the item is lying on the map.
func (it *Item) OnGround() bool {
	return it.Pos != nil
}

// IsEquipment returns true for items that are equipped rather than consumed.
func (it *Item) IsEquipment() bool {
	return it.Kind == gamedata.ItemWeapon || it.Kind == gamedata.ItemArmor
}
