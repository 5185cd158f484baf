package world

// Position is an integer map coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a unit step on the grid.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// The eight compass directions.
var (
	North     = Direction{0, -1}
	South     = Direction{0, 1}
	East      = Direction{1, 0}
	West      = Direction{-1, 0}
	NorthEast = Direction{1, -1}
	NorthWest = Direction{-1, -1}
	SouthEast = Direction{1, 1}
	SouthWest = Direction{-1, 1}
)

// Cardinals lists the four orthogonal directions in a fixed order.
var Cardinals = []Direction{North, South, West, East}

// AllDirections lists the orthogonal then diagonal directions in a fixed order.
var AllDirections = []Direction{North, South, West, East, NorthWest, NorthEast, SouthWest, SouthEast}

// IsZero returns true for the null direction.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// Add returns the position one step in direction d.
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Manhattan returns the taxicab distance between two positions.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Chebyshev returns the king-move distance between two positions.
func (p Position) Chebyshev(o Position) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// DistSq returns the squared Euclidean distance between two positions.
func (p Position) DistSq(o Position) int {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx + dy*dy
}

// IsAdjacent returns true if o is one orthogonal step away from p.
func (p Position) IsAdjacent(o Position) bool {
	return p.Manhattan(o) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
