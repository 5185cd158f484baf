// Package world provides dungeon generation and map management.
package world

// TileKind enumerates the kinds of map tile.
type TileKind uint8

const (
	// TileWall is impassable and blocks sight.
	TileWall TileKind = iota
	// TileFloor is passable open ground, in rooms and corridors alike.
	TileFloor
	// TileDoor joins a corridor to a room. Closed doors block sight.
	TileDoor
	// TileStairs leads down to the next level. Exactly one per level.
	TileStairs
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDoor:
		return "door"
	case TileStairs:
		return "stairs"
	default:
		return "unknown"
	}
}

// Tile represents a single map tile.
// Only the Open flag of a door changes after generation.
type Tile struct {
	Kind TileKind `json:"kind"`
	Open bool     `json:"open,omitempty"`
}

var (
	wallTile   = Tile{Kind: TileWall}
	floorTile  = Tile{Kind: TileFloor}
	doorTile   = Tile{Kind: TileDoor}
	stairsTile = Tile{Kind: TileStairs}
)

// IsPassable returns true if the tile can be walked on.
// Closed doors count as passable: walking into one opens it.
func (t Tile) IsPassable() bool {
	return t.Kind != TileWall
}

// BlocksSight returns true for walls and closed doors.
func (t Tile) BlocksSight() bool {
	return t.Kind == TileWall || (t.Kind == TileDoor && !t.Open)
}

// IsClosedDoor returns true for a door that has not been opened yet.
func (t Tile) IsClosedDoor() bool {
	return t.Kind == TileDoor && !t.Open
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	switch t.Kind {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileDoor:
		if t.Open {
			return '\''
		}
		return '+'
	case TileStairs:
		return '>'
	default:
		return '?'
	}
}
