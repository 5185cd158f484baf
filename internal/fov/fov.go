// Package fov computes which tiles an observer can see.
//
// The algorithm is symmetric shadow casting: each of the four quadrants
// around the observer is scanned row by row, narrowing the visible sector
// with exact rational slopes whenever a blocking tile is met. A floor tile is
// only revealed when its center lies inside the sector, which makes the
// result symmetric: if A sees B then B sees A.
package fov

import (
	"sort"

	"github.com/samdwyer/rogue1980/internal/world"
)

// Map is the view of a level that visibility needs.
type Map interface {
	InBounds(p world.Position) bool
	BlocksSight(p world.Position) bool
}

// Set is a set of visible positions.
type Set map[world.Position]struct{}

// Contains returns true if p is in the set.
func (s Set) Contains(p world.Position) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of positions in the set.
func (s Set) Len() int {
	return len(s)
}

// Positions returns the set's members ordered by row then column.
func (s Set) Positions() []world.Position {
	out := make([]world.Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Compute returns the tiles visible from origin within radius.
// A tile is in range when its squared distance is at most radius²+radius,
// which rounds the view into a circle without the spikes of a plain r².
func Compute(m Map, origin world.Position, radius int) Set {
	visible := make(Set)
	if radius < 0 || !m.InBounds(origin) {
		return visible
	}
	visible[origin] = struct{}{}

	for q := north; q <= west; q++ {
		s := scanner{
			m:       m,
			origin:  origin,
			quad:    q,
			radius:  radius,
			limit:   radius*radius + radius,
			visible: visible,
		}
		s.scan(row{depth: 1, start: fraction{-1, 1}, end: fraction{1, 1}})
	}
	return visible
}

type quadrant int

const (
	north quadrant = iota
	east
	south
	west
)

type scanner struct {
	m       Map
	origin  world.Position
	quad    quadrant
	radius  int
	limit   int
	visible Set
}

type cell int

const (
	cellNone cell = iota
	cellWall
	cellFloor
)

func (s *scanner) scan(r row) {
	if r.depth > s.radius {
		return
	}

	prev := cellNone
	minCol := r.start.roundTiesUp(r.depth)
	maxCol := r.end.roundTiesDown(r.depth)
	for col := minCol; col <= maxCol; col++ {
		p := s.transform(r.depth, col)
		wall := !s.m.InBounds(p) || s.m.BlocksSight(p)

		if wall || r.isSymmetric(col) {
			s.reveal(p)
		}
		if prev == cellWall && !wall {
			r.start = slope(r.depth, col)
		}
		if prev == cellFloor && wall {
			next := r.next()
			next.end = slope(r.depth, col)
			s.scan(next)
		}

		if wall {
			prev = cellWall
		} else {
			prev = cellFloor
		}
	}
	if prev == cellFloor {
		s.scan(r.next())
	}
}

func (s *scanner) reveal(p world.Position) {
	if !s.m.InBounds(p) || p.DistSq(s.origin) > s.limit {
		return
	}
	s.visible[p] = struct{}{}
}

// transform maps a (depth, col) pair in quadrant space to the map.
func (s *scanner) transform(depth, col int) world.Position {
	o := s.origin
	switch s.quad {
	case north:
		return world.Position{X: o.X + col, Y: o.Y - depth}
	case south:
		return world.Position{X: o.X + col, Y: o.Y + depth}
	case east:
		return world.Position{X: o.X + depth, Y: o.Y + col}
	default:
		return world.Position{X: o.X - depth, Y: o.Y + col}
	}
}

type row struct {
	depth      int
	start, end fraction
}

func (r row) next() row {
	return row{depth: r.depth + 1, start: r.start, end: r.end}
}

// isSymmetric reports whether the center of column col lies within the sector.
func (r row) isSymmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num &&
		col*r.end.den <= r.depth*r.end.num
}

// slope is the slope of the left edge of a tile, (2col-1)/(2depth).
func slope(depth, col int) fraction {
	return fraction{num: 2*col - 1, den: 2 * depth}
}

// fraction is an exact rational with a positive denominator.
type fraction struct {
	num, den int
}

// roundTiesUp returns floor(depth*f + 1/2).
func (f fraction) roundTiesUp(depth int) int {
	return floorDiv(2*depth*f.num+f.den, 2*f.den)
}

// roundTiesDown returns ceil(depth*f - 1/2).
func (f fraction) roundTiesDown(depth int) int {
	return -floorDiv(-(2*depth*f.num - f.den), 2*f.den)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
