package gamedata

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// MonsterDef defines a monster variant loaded from JSON.
// Stats are for depth 1; deeper levels scale them with StatsAt.
type MonsterDef struct {
	ID          string `json:"id"`          // Unique identifier matching an entity kind (e.g., "zombie")
	Name        string `json:"name"`        // Display name (e.g., "Zombie")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "z")
	Color       string `json:"color"`       // Hex code or tcell color name
	Health      int    `json:"health"`      // Base hit points
	Attack      int    `json:"attack"`      // Base attack power
	Defense     int    `json:"defense"`     // Base defense value
	Speed       int    `json:"speed"`       // Higher acts earlier in a round
	Perception  int    `json:"perception"`  // Chase radius in tiles
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
	MinDepth    int    `json:"minDepth"`    // Shallowest level the monster appears on
}

// MonsterStats are a monster's numbers at a particular depth.
type MonsterStats struct {
	Health, Attack, Defense, Speed, Perception int
}

// Key returns the monster ID.
func (m MonsterDef) Key() string { return m.ID }

// Weight returns the spawn weight.
func (m MonsterDef) Weight() int { return m.SpawnWeight }

// AvailableAt reports whether the monster may spawn at depth.
func (m MonsterDef) AvailableAt(depth int) bool { return depth >= m.MinDepth }

// GlyphRune returns the glyph as a rune for rendering.
func (m MonsterDef) GlyphRune() rune { return glyphRune(m.Glyph) }

// TCellColor returns the color as a tcell.Color.
func (m MonsterDef) TCellColor() tcell.Color { return colorOr(m.Color, tcell.ColorWhite) }

// StatsAt scales the base stats to a dungeon depth: +4 health and +1 attack
// per level below the first, +1 defense every fourth level.
func (m MonsterDef) StatsAt(depth int) MonsterStats {
	extra := max(depth-1, 0)
	return MonsterStats{
		Health:     m.Health + 4*extra,
		Attack:     m.Attack + extra,
		Defense:    m.Defense + extra/4,
		Speed:      m.Speed,
		Perception: m.Perception,
	}
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Player   MonsterDef   `json:"player"`
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads the player template and monster definitions.
func LoadMonsters() (MonstersFile, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return file, err
	}
	for _, m := range file.Monsters {
		if m.ID == "" || m.Health <= 0 || m.SpawnWeight < 0 {
			return file, fmt.Errorf("monsters.json: invalid monster %q", m.ID)
		}
	}
	return file, nil
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*Registry[MonsterDef], error) {
	file, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(file.Monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return NewRegistry(file.Monsters), nil
}

// PlayerDef returns the player's starting template.
func PlayerDef() (MonsterDef, error) {
	file, err := LoadMonsters()
	if err != nil {
		return MonsterDef{}, err
	}
	if file.Player.Health <= 0 {
		return MonsterDef{}, errors.New("monsters.json: player template is missing")
	}
	return file.Player, nil
}
