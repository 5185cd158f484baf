package engine

import (
	"fmt"

	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/world"
)

// IntentKind is the closed set of player actions.
type IntentKind uint8

const (
	IntentMove IntentKind = iota
	IntentAttack
	IntentUseItem
	IntentDescend
	IntentWait
	IntentQuit
)

// String returns a human-readable intent name.
func (k IntentKind) String() string {
	switch k {
	case IntentMove:
		return "move"
	case IntentAttack:
		return "attack"
	case IntentUseItem:
		return "use_item"
	case IntentDescend:
		return "descend"
	case IntentWait:
		return "wait"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent is one player action submitted to the scheduler.
type Intent struct {
	Kind IntentKind
	Dir  world.Direction // Move and Attack
	Item entity.ItemID   // UseItem
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentMove, IntentAttack:
		return fmt.Sprintf("%s(%d,%d)", i.Kind, i.Dir.DX, i.Dir.DY)
	case IntentUseItem:
		return fmt.Sprintf("%s(%d)", i.Kind, i.Item)
	default:
		return i.Kind.String()
	}
}

// Move steps one tile in dir, bump-attacking a monster standing there.
func Move(dir world.Direction) Intent { return Intent{Kind: IntentMove, Dir: dir} }

// Attack strikes the monster one tile away in dir.
func Attack(dir world.Direction) Intent { return Intent{Kind: IntentAttack, Dir: dir} }

// UseItem eats, drinks, reads, or equips a carried item.
func UseItem(id entity.ItemID) Intent { return Intent{Kind: IntentUseItem, Item: id} }

var (
	MoveNorth = Move(world.North)
	MoveSouth = Move(world.South)
	MoveEast  = Move(world.East)
	MoveWest  = Move(world.West)

	Descend = Intent{Kind: IntentDescend}
	Wait    = Intent{Kind: IntentWait}
	Quit    = Intent{Kind: IntentQuit}
)
