package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/rogue1980/internal/engine"
	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/world"
)

// keyMapper turns key presses into intents. 'A' arms an attack that the
// next direction key aims.
type keyMapper struct {
	attackPending bool
}

// Map returns the intent for a key press. inventory resolves the 1-9 slot keys.
// ok is false for keys that do nothing (including arming an attack).
func (m *keyMapper) Map(key tcell.Key, ch rune, inventory []entity.ItemID) (engine.Intent, bool) {
	if dir, isDir := direction(key, ch); isDir {
		if m.attackPending {
			m.attackPending = false
			return engine.Attack(dir), true
		}
		return engine.Move(dir), true
	}
	m.attackPending = false

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.Quit, true
	case tcell.KeyRune:
	default:
		return engine.Intent{}, false
	}

	switch {
	case ch == 'A':
		m.attackPending = true
		return engine.Intent{}, false
	case ch == '>':
		return engine.Descend, true
	case ch == '.':
		return engine.Wait, true
	case ch == 'q' || ch == 'Q':
		return engine.Quit, true
	case ch >= '1' && ch <= '9':
		slot := int(ch - '1')
		if slot < len(inventory) {
			return engine.UseItem(inventory[slot]), true
		}
	}
	return engine.Intent{}, false
}

func direction(key tcell.Key, ch rune) (world.Direction, bool) {
	switch key {
	case tcell.KeyUp:
		return world.North, true
	case tcell.KeyDown:
		return world.South, true
	case tcell.KeyLeft:
		return world.West, true
	case tcell.KeyRight:
		return world.East, true
	case tcell.KeyRune:
		switch ch {
		case 'w', 'W':
			return world.North, true
		case 's', 'S':
			return world.South, true
		case 'a':
			return world.West, true
		case 'd', 'D':
			return world.East, true
		}
	}
	return world.Direction{}, false
}
