// Package engine runs the turn-based simulation: the scheduler state machine,
// monster AI, and the level lifecycle that ties the other game systems together.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/fov"
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/rng"
	"github.com/samdwyer/rogue1980/internal/telemetry"
	"github.com/samdwyer/rogue1980/internal/world"
)

var (
	// ErrInvalidMove means the intent cannot be carried out from the current state.
	// The turn is not consumed.
	ErrInvalidMove = errors.New("invalid move")
	// ErrNotAwaitingInput means an intent was submitted outside PhaseAwaitingInput.
	ErrNotAwaitingInput = errors.New("not awaiting input")
)

const (
	// DefaultMaxDepth is the deepest level; descending from it wins the game.
	DefaultMaxDepth = 21
	// DefaultVisionRadius is the player's sight radius in tiles.
	DefaultVisionRadius = 8

	maxMessages      = 50
	maxLevelAttempts = 5
)

// Config holds the parameters of a run.
type Config struct {
	Seed         int64
	Width        int
	Height       int
	MinRooms     int
	MaxRooms     int
	VisionRadius int
	MaxDepth     int
}

// DefaultConfig returns the classic 80x21 layout.
func DefaultConfig() Config {
	return Config{
		Width:        world.DefaultWidth,
		Height:       world.DefaultHeight,
		MinRooms:     world.DefaultMinRooms,
		MaxRooms:     world.DefaultMaxRooms,
		VisionRadius: DefaultVisionRadius,
		MaxDepth:     DefaultMaxDepth,
	}
}

// Params returns the dungeon generation parameters for this config.
func (c Config) Params() world.Params {
	return world.DefaultParams(c.Width, c.Height).WithRooms(c.MinRooms, c.MaxRooms)
}

// RunStats summarizes a run for the status line and the scoreboard.
type RunStats struct {
	Seed        int64
	Depth       int
	Turns       int
	Kills       int
	Attacks     int
	DamageDealt int
	DamageTaken int
	ItemsUsed   int
	Moves       int
	Gold        int
	Outcome     Outcome
}

// State is the composed root of a run. It owns the active level, the entity
// store, the random source, and the scheduler.
//
// State is not safe for concurrent use.
type State struct {
	cfg    Config
	tables *gamedata.Tables
	src    rng.Source

	grid   *world.Grid
	stairs world.Position
	store  *entity.Store

	visible  fov.Set
	explored []bool

	phase   Phase
	pending Intent
	queue   []QueueEntry
	descend bool
	turn    int
	depth   int
	outcome Outcome
	stats   RunStats

	messages []string
}

// New starts a run from cfg.Seed. The same seed always replays the same run.
func New(ctx context.Context, cfg Config, tables *gamedata.Tables) (*State, error) {
	return NewWithSource(ctx, cfg, tables, rng.New(cfg.Seed))
}

// NewWithSource starts a run drawing all randomness from src.
func NewWithSource(ctx context.Context, cfg Config, tables *gamedata.Tables, src rng.Source) (*State, error) {
	if err := cfg.Params().Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.VisionRadius <= 0 {
		cfg.VisionRadius = DefaultVisionRadius
	}

	s := &State{
		cfg:    cfg,
		tables: tables,
		src:    src,
		stats:  RunStats{Seed: cfg.Seed},
	}
	if err := s.buildLevel(ctx, 1, nil); err != nil {
		return nil, err
	}
	s.addMessage(fmt.Sprintf("Welcome to level %d.", s.depth))
	return s, nil
}

// carryover is what the player takes down the stairs.
type carryover struct {
	stats  entity.Stats
	gold   int
	items  []entity.Item
	weapon entity.ItemID
	armor  entity.ItemID
}

// buildLevel generates the level at depth and places the player on it.
// The state is only replaced once the whole level is ready.
func (s *State) buildLevel(ctx context.Context, depth int, carry *carryover) error {
	ctx, span := telemetry.Tracer("engine").Start(ctx, "level.build")
	defer span.End()

	layout, err := s.generate(ctx, depth)
	if err != nil {
		span.RecordError(err)
		return err
	}

	store := entity.NewStore(layout.Grid)
	stats := playerStats(s.tables.Player)
	if carry != nil {
		stats = carry.stats
	}
	pid, err := store.Spawn(entity.KindPlayer, s.tables.Player.Name, layout.Spawn, stats)
	if err != nil {
		return fmt.Errorf("place player: %w", err)
	}
	if carry != nil {
		if err := carry.restore(store, pid); err != nil {
			return err
		}
	}

	monsters, err := s.populateMonsters(store, layout, depth)
	if err != nil {
		return err
	}
	items := s.populateItems(store, layout, depth)

	s.grid = layout.Grid
	s.stairs = layout.Stairs
	s.store = store
	s.depth = depth
	s.explored = make([]bool, len(layout.Grid.Tiles))
	s.updateVision()

	span.SetAttributes(
		attribute.Int("level.depth", depth),
		attribute.Int("level.rooms", len(layout.Rooms)),
		attribute.Int("level.monsters", monsters),
		attribute.Int("level.items", items),
	)
	return nil
}

// restore hands the carried gold, items, and equipment to the player on a new level.
func (c *carryover) restore(store *entity.Store, pid entity.ID) error {
	player, err := store.Get(pid)
	if err != nil {
		return err
	}
	player.Gold = c.gold
	for _, it := range c.items {
		newID, err := store.Give(pid, it)
		if err != nil {
			return fmt.Errorf("carry %s: %w", it.Name, err)
		}
		if it.ID == c.weapon || it.ID == c.armor {
			if err := store.Equip(pid, newID); err != nil {
				return fmt.Errorf("carry %s: %w", it.Name, err)
			}
		}
	}
	return nil
}

// generate builds a layout, retrying with fresh draws from the run's source.
func (s *State) generate(ctx context.Context, depth int) (*world.Layout, error) {
	var err error
	for attempt := 0; attempt < maxLevelAttempts; attempt++ {
		var layout *world.Layout
		layout, err = world.GenerateWith(ctx, s.src, s.cfg.Params())
		if err == nil {
			return layout, nil
		}
		if errors.Is(err, world.ErrInvalidParams) {
			break
		}
	}
	return nil, fmt.Errorf("level %d: %w", depth, err)
}

// populateMonsters puts one monster in 40-60% of the rooms, never in the
// player's starting room. It returns the number placed.
func (s *State) populateMonsters(store *entity.Store, layout *world.Layout, depth int) (int, error) {
	spawnRoom := layout.RoomIndexAt(layout.Spawn)
	candidates := make([]int, 0, len(layout.Rooms))
	for i := range layout.Rooms {
		if i != spawnRoom {
			candidates = append(candidates, i)
		}
	}
	shuffle(s.src, candidates)

	pct := 40 + s.src.Intn(21)
	target := max(1, (len(layout.Rooms)*pct+50)/100)

	placed := 0
	for _, room := range candidates {
		if placed >= target {
			break
		}
		def, ok := s.tables.Monsters.SpawnRandom(s.src, depth)
		if !ok {
			break
		}
		kind, ok := entity.KindFromID(def.ID)
		if !ok {
			return placed, fmt.Errorf("monster %q has no behavior", def.ID)
		}
		pos, ok := layout.RandomPointInRoom(s.src, room)
		if !ok || pos == layout.Stairs {
			continue
		}
		ms := def.StatsAt(depth)
		stats := entity.Stats{
			Health:     ms.Health,
			MaxHealth:  ms.Health,
			Attack:     ms.Attack,
			Defense:    ms.Defense,
			Speed:      ms.Speed,
			Perception: ms.Perception,
		}
		if _, err := store.Spawn(kind, def.Name, pos, stats); err != nil {
			continue
		}
		placed++
	}
	return placed, nil
}

// populateItems scatters items over random rooms and returns the number placed.
func (s *State) populateItems(store *entity.Store, layout *world.Layout, depth int) int {
	count := max(1, len(layout.Rooms)/2) + s.src.Intn(3)
	placed := 0
	for i := 0; i < count; i++ {
		def, ok := s.tables.Items.SpawnRandom(s.src, depth)
		if !ok {
			break
		}
		pos, ok := layout.RandomPointInRoom(s.src, s.src.Intn(len(layout.Rooms)))
		if !ok || pos == layout.Stairs || pos == layout.Spawn {
			continue
		}
		if _, err := store.AddItem(*def, def.EffectAt(depth), pos); err == nil {
			placed++
		}
	}
	return placed
}

func playerStats(def gamedata.MonsterDef) entity.Stats {
	return entity.Stats{
		Health:     def.Health,
		MaxHealth:  def.Health,
		Attack:     def.Attack,
		Defense:    def.Defense,
		Speed:      def.Speed,
		Perception: def.Perception,
	}
}

// shuffle permutes v in place using src.
func shuffle(src rng.Source, v []int) {
	for i := len(v) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		v[i], v[j] = v[j], v[i]
	}
}

// updateVision recomputes the player's field of view and marks it explored.
func (s *State) updateVision() {
	player := s.player()
	s.visible = fov.Compute(s.grid, player.Pos, s.cfg.VisionRadius)
	for p := range s.visible {
		s.explored[s.grid.Index(p)] = true
	}
}

func (s *State) addMessage(msg string) {
	s.messages = append(s.messages, msg)
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

// mustGet returns a live store record. A missing ID on an internal path is a
// broken invariant, not a recoverable error.
func (s *State) mustGet(id entity.ID) *entity.Entity {
	e, err := s.store.Get(id)
	if err != nil {
		panic(fmt.Sprintf("engine: %v", err))
	}
	return e
}

func (s *State) player() *entity.Entity {
	return s.mustGet(s.store.PlayerID())
}

// Phase returns the scheduler phase.
func (s *State) Phase() Phase { return s.phase }

// Turn returns the number of completed rounds.
func (s *State) Turn() int { return s.turn }

// Depth returns the current dungeon level, starting at 1.
func (s *State) Depth() int { return s.depth }

// Outcome returns how the run stands.
func (s *State) Outcome() Outcome { return s.outcome }

// Seed returns the seed the run was started with.
func (s *State) Seed() int64 { return s.cfg.Seed }

// Grid returns the active level's tiles.
func (s *State) Grid() *world.Grid { return s.grid }

// Store returns the active level's entity store.
func (s *State) Store() *entity.Store { return s.store }

// Stairs returns the position of the down stairs.
func (s *State) Stairs() world.Position { return s.stairs }

// Queue returns the monster turn order for the round in progress.
func (s *State) Queue() []QueueEntry {
	out := make([]QueueEntry, len(s.queue))
	copy(out, s.queue)
	return out
}

// Messages returns the message log, oldest first.
func (s *State) Messages() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// Stats returns the run statistics so far.
func (s *State) Stats() RunStats {
	st := s.stats
	st.Depth = s.depth
	st.Turns = s.turn
	st.Outcome = s.outcome
	if e, err := s.store.Player(); err == nil {
		st.Gold = e.Gold
	}
	return st
}
