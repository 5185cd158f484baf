// Package entity provides the player, monsters, and items, and the store that owns them.
package entity

import (
	"github.com/samdwyer/rogue1980/internal/world"
)

// ID identifies an entity. IDs are assigned in spawn order starting at 1.
type ID uint64

// Kind is the closed set of entity variants.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindZombie
	KindVampire
	KindGhost
	KindOgre
	KindSnakeMage
)

// kindIDs maps kinds to their data-file identifiers.
var kindIDs = [...]string{
	KindPlayer:    "player",
	KindZombie:    "zombie",
	KindVampire:   "vampire",
	KindGhost:     "ghost",
	KindOgre:      "ogre",
	KindSnakeMage: "snake_mage",
}

// String returns the kind's data identifier.
func (k Kind) String() string {
	if int(k) < len(kindIDs) {
		return kindIDs[k]
	}
	return "unknown"
}

// KindFromID returns the kind with the given data identifier.
func KindFromID(id string) (Kind, bool) {
	for k, s := range kindIDs {
		if s == id {
			return Kind(k), true
		}
	}
	return 0, false
}

// Stats holds an entity's combat numbers.
type Stats struct {
	Health     int `json:"health"`
	MaxHealth  int `json:"maxHealth"`
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Speed      int `json:"speed"`
	Perception int `json:"perception"`
}

// Entity is a living or dead actor on the level.
// Other packages hold IDs, never *Entity, across turns.
type Entity struct {
	ID    ID             `json:"id"`
	Kind  Kind           `json:"kind"`
	Name  string         `json:"name"`
	Pos   world.Position `json:"pos"`
	Stats Stats          `json:"stats"`
	Alive bool           `json:"alive"`

	// RestTurns counts turns an ogre still spends recovering.
	RestTurns int `json:"restTurns,omitempty"`

	// Player only
	Gold   int    `json:"gold,omitempty"`
	Weapon ItemID `json:"weapon,omitempty"`
	Armor  ItemID `json:"armor,omitempty"`
}

// IsPlayer returns true for the player entity.
func (e *Entity) IsPlayer() bool {
	return e.Kind == KindPlayer
}

// takeDamage reduces health and returns actual damage taken.
func (e *Entity) takeDamage(amount int) int {
	if amount <= 0 || !e.Alive {
		return 0
	}
	actual := min(amount, e.Stats.Health)
	e.Stats.Health -= actual
	if e.Stats.Health == 0 {
		e.Alive = false
	}
	return actual
}

// heal restores health and returns actual amount healed.
func (e *Entity) heal(amount int) int {
	if amount <= 0 || !e.Alive {
		return 0
	}
	actual := min(amount, e.Stats.MaxHealth-e.Stats.Health)
	e.Stats.Health += actual
	return actual
}

// normalize clamps Health into [0, MaxHealth].
func (s *Stats) normalize() {
	s.MaxHealth = max(s.MaxHealth, 0)
	s.Health = min(max(s.Health, 0), s.MaxHealth)
}
