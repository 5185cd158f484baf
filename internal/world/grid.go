package world

// Grid is the fixed-size tile map of one dungeon level, stored row-major.
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []Tile `json:"tiles"`
}

// NewGrid creates a grid filled with walls.
func NewGrid(width, height int) *Grid {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = wallTile
	}
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// InBounds returns true if p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Index returns the row-major index of p. p must be in bounds.
func (g *Grid) Index(p Position) int {
	return p.Y*g.Width + p.X
}

// At returns the tile at p. Positions off the grid read as walls.
func (g *Grid) At(p Position) Tile {
	if !g.InBounds(p) {
		return wallTile
	}
	return g.Tiles[g.Index(p)]
}

// Set replaces the tile at p. Out of bounds writes are ignored.
func (g *Grid) Set(p Position, t Tile) {
	if g.InBounds(p) {
		g.Tiles[g.Index(p)] = t
	}
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(p Position) bool {
	return g.At(p).IsPassable()
}

// BlocksSight returns true if the tile at p stops line of sight.
func (g *Grid) BlocksSight(p Position) bool {
	return g.At(p).BlocksSight()
}

// OpenDoor opens a closed door at p and reports whether it did.
func (g *Grid) OpenDoor(p Position) bool {
	if !g.At(p).IsClosedDoor() {
		return false
	}
	g.Tiles[g.Index(p)].Open = true
	return true
}

// Count returns the number of tiles of the given kind.
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for _, t := range g.Tiles {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns the first position holding a tile of the given kind.
func (g *Grid) Find(kind TileKind) (Position, bool) {
	for i, t := range g.Tiles {
		if t.Kind == kind {
			return Position{X: i % g.Width, Y: i / g.Width}, true
		}
	}
	return Position{}, false
}

// Reachable flood fills orthogonally from start over passable tiles.
// The result is indexed like Tiles.
func (g *Grid) Reachable(start Position) []bool {
	seen := make([]bool, len(g.Tiles))
	if !g.IsPassable(start) {
		return seen
	}

	queue := []Position{start}
	seen[g.Index(start)] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range Cardinals {
			n := p.Add(d)
			if !g.IsPassable(n) || seen[g.Index(n)] {
				continue
			}
			seen[g.Index(n)] = true
			queue = append(queue, n)
		}
	}
	return seen
}

// Unreachable returns the passable positions not reachable from start.
func (g *Grid) Unreachable(start Position) []Position {
	seen := g.Reachable(start)
	var out []Position
	for i, t := range g.Tiles {
		if t.IsPassable() && !seen[i] {
			out = append(out, Position{X: i % g.Width, Y: i / g.Width})
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	return &Grid{Width: g.Width, Height: g.Height, Tiles: tiles}
}
