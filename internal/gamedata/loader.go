package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// Tables bundles every data table the game needs.
type Tables struct {
	Player   MonsterDef
	Monsters *Registry[MonsterDef]
	Items    *Registry[ItemDef]
}

// LoadTables loads and validates all embedded tables.
func LoadTables() (*Tables, error) {
	player, err := PlayerDef()
	if err != nil {
		return nil, err
	}
	monsters, err := LoadMonsterRegistry()
	if err != nil {
		return nil, err
	}
	items, err := LoadItemRegistry()
	if err != nil {
		return nil, err
	}
	return &Tables{Player: player, Monsters: monsters, Items: items}, nil
}

// MustLoadTables loads all tables, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoadTables() *Tables {
	tables, err := LoadTables()
	if err != nil {
		panic(err)
	}
	return tables
}
