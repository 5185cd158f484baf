package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/rogue1980/internal/rng"
	"github.com/samdwyer/rogue1980/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 21

	// Default room count range per level
	DefaultMinRooms = 6
	DefaultMaxRooms = 9

	defaultMaxAttempts = 500
)

var (
	// ErrGenerationFailure means no valid level could be built from the
	// given seed and parameters. Retry with a new seed or relaxed parameters.
	ErrGenerationFailure = errors.New("dungeon generation failed")

	// ErrInvalidParams means the parameters can never produce a level.
	ErrInvalidParams = fmt.Errorf("%w: invalid parameters", ErrGenerationFailure)
)

// Params controls level generation.
type Params struct {
	Width, Height            int
	MinRooms, MaxRooms       int
	MinRoomSize, MaxRoomSize int
	MaxAttempts              int // Room placement attempts before giving up
}

// DefaultParams returns parameters sized for a width x height grid.
// Room size bounds scale with the smaller grid dimension.
func DefaultParams(width, height int) Params {
	maxRoom := min(max(min(width, height)/3, 3), 12)
	return Params{
		Width:       width,
		Height:      height,
		MinRooms:    DefaultMinRooms,
		MaxRooms:    DefaultMaxRooms,
		MinRoomSize: max(2, maxRoom/2),
		MaxRoomSize: maxRoom,
		MaxAttempts: defaultMaxAttempts,
	}
}

// WithRooms returns a copy of p with a different room count range.
func (p Params) WithRooms(minRooms, maxRooms int) Params {
	p.MinRooms = minRooms
	p.MaxRooms = maxRooms
	return p
}

// Validate reports whether p can describe a level at all.
func (p Params) Validate() error {
	switch {
	case p.Width < 5 || p.Height < 5:
		return fmt.Errorf("%w: grid %dx%d is smaller than 5x5", ErrInvalidParams, p.Width, p.Height)
	case p.MinRooms < 2:
		return fmt.Errorf("%w: at least 2 rooms are required, got %d", ErrInvalidParams, p.MinRooms)
	case p.MaxRooms < p.MinRooms:
		return fmt.Errorf("%w: room range [%d,%d] is empty", ErrInvalidParams, p.MinRooms, p.MaxRooms)
	case p.MinRoomSize < 1 || p.MaxRoomSize < p.MinRoomSize:
		return fmt.Errorf("%w: room size range [%d,%d] is empty", ErrInvalidParams, p.MinRoomSize, p.MaxRoomSize)
	case p.MaxRoomSize > p.Width-2 || p.MaxRoomSize > p.Height-2:
		return fmt.Errorf("%w: room size %d does not fit a %dx%d grid", ErrInvalidParams, p.MaxRoomSize, p.Width, p.Height)
	case p.MaxAttempts <= 0:
		return fmt.Errorf("%w: attempt budget must be positive", ErrInvalidParams)
	}
	return nil
}

// Layout is the result of generating one level.
type Layout struct {
	Grid   *Grid
	Spawn  Position
	Stairs Position
	Rooms  []Room // Kept for population, not part of the level state
}

// Generate builds a level from a seed.
func Generate(ctx context.Context, seed int64, p Params) (*Layout, error) {
	return GenerateWith(ctx, rng.New(seed), p)
}

// GenerateWith builds a level drawing randomness from src.
//
// Rooms are placed by rejection sampling and each new room is joined to the
// nearest earlier room with an L-shaped corridor. A flood fill from the
// first room then repairs any disconnected area. The spawn is the center of
// the first room and the stairs are in the room farthest from it.
func GenerateWith(ctx context.Context, src rng.Source, p Params) (*Layout, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	if err := p.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	g := &generator{
		src:    src,
		params: p,
		grid:   NewGrid(p.Width, p.Height),
	}

	target := src.Range(p.MinRooms, p.MaxRooms)
	attempts := g.placeRooms(target)
	if len(g.rooms) < p.MinRooms {
		err := fmt.Errorf("%w: placed %d of %d rooms in %d attempts",
			ErrGenerationFailure, len(g.rooms), p.MinRooms, attempts)
		span.RecordError(err)
		return nil, err
	}

	corrective, err := g.ensureConnected()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	spawn, stairs := g.placeStairs()
	doors := g.placeDoors()

	// Record telemetry
	span.SetAttributes(
		attribute.Int("dungeon.width", p.Width),
		attribute.Int("dungeon.height", p.Height),
		attribute.Int("dungeon.room_target", target),
		attribute.Int("dungeon.room_count", len(g.rooms)),
		attribute.Int("dungeon.attempts", attempts),
		attribute.Int("dungeon.corrective_corridors", corrective),
		attribute.Int("dungeon.doors", doors),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return &Layout{
		Grid:   g.grid,
		Spawn:  spawn,
		Stairs: stairs,
		Rooms:  g.rooms,
	}, nil
}

// RoomIndexAt returns the index of the room containing p, or -1 if not in a room.
func (l *Layout) RoomIndexAt(p Position) int {
	for i, room := range l.Rooms {
		if room.Contains(p) {
			return i
		}
	}
	return -1
}

// RandomPointInRoom returns a random floor point within the specified room.
func (l *Layout) RandomPointInRoom(src rng.Source, roomIndex int) (Position, bool) {
	if roomIndex < 0 || roomIndex >= len(l.Rooms) {
		return Position{}, false
	}
	room := l.Rooms[roomIndex]

	// Try random points until we find a floor tile (max 100 attempts)
	for i := 0; i < 100; i++ {
		p := Position{X: room.X + src.Intn(room.Width), Y: room.Y + src.Intn(room.Height)}
		if l.Grid.At(p).Kind == TileFloor {
			return p, true
		}
	}
	return Position{}, false
}

// generator holds the working state of a single generation run.
type generator struct {
	src    rng.Source
	params Params
	grid   *Grid
	rooms  []Room
}

// placeRooms places up to target rooms and returns the attempts used.
func (g *generator) placeRooms(target int) int {
	p := g.params
	attempts := 0
	for attempts < p.MaxAttempts && len(g.rooms) < target {
		attempts++

		w := g.src.Range(p.MinRoomSize, p.MaxRoomSize)
		h := g.src.Range(p.MinRoomSize, p.MaxRoomSize)
		room := Room{
			X:      1 + g.src.Intn(p.Width-1-w),
			Y:      1 + g.src.Intn(p.Height-1-h),
			Width:  w,
			Height: h,
		}

		// Rooms keep a wall between each other
		if g.overlaps(room) {
			continue
		}

		g.carveRoom(room)
		if len(g.rooms) > 0 {
			nearest := g.nearestRoom(room.Center(), g.rooms)
			g.carveCorridor(nearest.Center(), room.Center())
		}
		g.rooms = append(g.rooms, room)
	}
	return attempts
}

func (g *generator) overlaps(room Room) bool {
	padded := room.Expand(1)
	for _, other := range g.rooms {
		if padded.Intersects(other) {
			return true
		}
	}
	return false
}

// nearestRoom returns the room in candidates whose center is closest to p.
// Ties go to the earliest room.
func (g *generator) nearestRoom(p Position, candidates []Room) Room {
	best := candidates[0]
	bestDist := p.Manhattan(best.Center())
	for _, r := range candidates[1:] {
		if d := p.Manhattan(r.Center()); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

// ensureConnected carves corrective corridors until every passable tile is
// reachable from the first room. It returns the number of corridors added.
func (g *generator) ensureConnected() (int, error) {
	spawn := g.rooms[0].Center()
	corrective := 0

	for guard := 0; guard < len(g.grid.Tiles); guard++ {
		reached := g.grid.Reachable(spawn)

		target, ok := g.nearestUnreachedRoom(spawn, reached)
		if !ok {
			stray := g.grid.Unreachable(spawn)
			if len(stray) == 0 {
				return corrective, nil
			}
			target = stray[0]
		}

		var connected []Room
		for _, r := range g.rooms {
			if reached[g.grid.Index(r.Center())] {
				connected = append(connected, r)
			}
		}
		g.carveCorridor(g.nearestRoom(target, connected).Center(), target)
		corrective++
	}

	return corrective, fmt.Errorf("%w: level is still disconnected after %d corrective corridors",
		ErrGenerationFailure, corrective)
}

func (g *generator) nearestUnreachedRoom(from Position, reached []bool) (Position, bool) {
	var (
		best  Position
		found bool
	)
	for _, r := range g.rooms {
		c := r.Center()
		if reached[g.grid.Index(c)] {
			continue
		}
		if !found || from.Manhattan(c) < from.Manhattan(best) {
			best, found = c, true
		}
	}
	return best, found
}

// placeStairs puts the stairs in the room farthest from the spawn room.
func (g *generator) placeStairs() (spawn, stairs Position) {
	spawn = g.rooms[0].Center()
	stairs = g.rooms[1].Center()
	for _, r := range g.rooms[2:] {
		if c := r.Center(); spawn.Manhattan(c) > spawn.Manhattan(stairs) {
			stairs = c
		}
	}
	g.grid.Set(stairs, stairsTile)
	return spawn, stairs
}

// placeDoors turns corridor mouths at room edges into closed doors.
// A mouth is a floor tile just outside a room edge, outside every room, and
// flanked by walls along that edge. It returns the number of doors placed.
func (g *generator) placeDoors() int {
	doors := 0
	for _, r := range g.rooms {
		for _, c := range edgeCandidates(r) {
			if g.grid.At(c.pos).Kind != TileFloor || g.inAnyRoom(c.pos) {
				continue
			}
			if g.grid.At(c.pos.Add(c.along)).Kind != TileWall {
				continue
			}
			back := Direction{DX: -c.along.DX, DY: -c.along.DY}
			if g.grid.At(c.pos.Add(back)).Kind != TileWall {
				continue
			}
			g.grid.Set(c.pos, doorTile)
			doors++
		}
	}
	return doors
}

type edgeCandidate struct {
	pos   Position
	along Direction
}

// edgeCandidates lists the tiles bordering a room, corners excluded.
func edgeCandidates(r Room) []edgeCandidate {
	var out []edgeCandidate
	for x := r.X; x < r.X+r.Width; x++ {
		out = append(out,
			edgeCandidate{Position{X: x, Y: r.Y - 1}, East},
			edgeCandidate{Position{X: x, Y: r.Y + r.Height}, East},
		)
	}
	for y := r.Y; y < r.Y+r.Height; y++ {
		out = append(out,
			edgeCandidate{Position{X: r.X - 1, Y: y}, South},
			edgeCandidate{Position{X: r.X + r.Width, Y: y}, South},
		)
	}
	return out
}

func (g *generator) inAnyRoom(p Position) bool {
	for _, r := range g.rooms {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// carveRoom sets all tiles within the room to floor.
func (g *generator) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.carve(Position{X: x, Y: y})
		}
	}
}

// carveCorridor joins two points with an L-shaped corridor, running along
// the longer axis first.
func (g *generator) carveCorridor(from, to Position) {
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx) >= abs(dy) {
		g.carveHorizontalTunnel(from.X, to.X, from.Y)
		g.carveVerticalTunnel(from.Y, to.Y, to.X)
	} else {
		g.carveVerticalTunnel(from.Y, to.Y, from.X)
		g.carveHorizontalTunnel(from.X, to.X, to.Y)
	}
}

// carveHorizontalTunnel carves a horizontal tunnel.
func (g *generator) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.carve(Position{X: x, Y: y})
	}
}

// carveVerticalTunnel carves a vertical tunnel.
func (g *generator) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.carve(Position{X: x, Y: y})
	}
}

// carve turns a wall into floor, keeping the outer border intact.
func (g *generator) carve(p Position) {
	if p.X <= 0 || p.X >= g.params.Width-1 || p.Y <= 0 || p.Y >= g.params.Height-1 {
		return
	}
	if g.grid.At(p).Kind == TileWall {
		g.grid.Set(p, floorTile)
	}
}
