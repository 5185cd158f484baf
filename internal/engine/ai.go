package engine

import (
	"context"
	"fmt"

	"github.com/samdwyer/rogue1980/internal/combat"
	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/world"
)

const (
	// ghostTeleportDist is how far a wandering ghost can blink.
	ghostTeleportDist = 3
	// pathSlack extends the path search beyond the monster's perception radius.
	pathSlack = 4
)

// behavior describes how a monster kind acts. The table is closed: every
// kind has exactly one entry.
type behavior struct {
	diagonal bool // moves and attacks in eight directions
	steps    int  // moves per turn while chasing
	drain    int  // max health removed from the player per hit
	teleport bool // wanders by blinking instead of walking
	rest     int  // turns spent resting after an attack
	counter  bool // strikes back when hit while resting
}

var behaviors = [...]behavior{
	entity.KindPlayer:    {steps: 1},
	entity.KindZombie:    {steps: 1},
	entity.KindVampire:   {steps: 1, drain: 1},
	entity.KindGhost:     {steps: 1, teleport: true},
	entity.KindOgre:      {steps: 2, rest: 1, counter: true},
	entity.KindSnakeMage: {steps: 1, diagonal: true},
}

func behaviorFor(k entity.Kind) behavior {
	if int(k) < len(behaviors) {
		return behaviors[k]
	}
	return behavior{steps: 1}
}

// act runs one monster's turn.
func (s *State) act(ctx context.Context, id entity.ID) {
	m := s.mustGet(id)
	if !m.Alive {
		return
	}
	b := behaviorFor(m.Kind)
	player := s.player()

	if m.RestTurns > 0 {
		m.RestTurns--
		return
	}

	if m.Pos.Chebyshev(player.Pos) > m.Stats.Perception {
		s.wander(m, b)
		return
	}

	for step := 0; step < b.steps && !adjacent(b, m.Pos, player.Pos); step++ {
		next, ok := s.pathStep(m.Pos, player.Pos, b.diagonal, m.Stats.Perception+pathSlack)
		if !ok {
			// No route to the player: roam like an idle monster instead.
			if step == 0 {
				s.wander(m, b)
			}
			break
		}
		if s.stepMonster(m, next) != nil {
			break
		}
	}

	if adjacent(b, m.Pos, player.Pos) {
		s.monsterAttack(ctx, m, player)
	}
}

// monsterAttack resolves a monster hit on the player and applies its variant effects.
func (s *State) monsterAttack(ctx context.Context, m, player *entity.Entity) {
	out, err := combat.Resolve(ctx, s.store, m.ID, player.ID, s.src)
	if err != nil {
		panic(fmt.Sprintf("engine: %v", err))
	}
	if out == (combat.Outcome{}) {
		return
	}
	b := behaviorFor(m.Kind)
	s.stats.DamageTaken += out.Damage
	s.addMessage(out.Message)

	if b.drain > 0 && player.Alive {
		player.Stats.MaxHealth = max(1, player.Stats.MaxHealth-b.drain)
		player.Stats.Health = min(player.Stats.Health, player.Stats.MaxHealth)
		s.addMessage(fmt.Sprintf("%s drains your life.", m.Name))
	}
	if b.rest > 0 {
		m.RestTurns = b.rest
	}
}

// wander moves a monster that cannot perceive the player.
func (s *State) wander(m *entity.Entity, b behavior) {
	if b.teleport {
		for try := 0; try < 8; try++ {
			target := world.Position{
				X: m.Pos.X + s.src.Range(-ghostTeleportDist, ghostTeleportDist),
				Y: m.Pos.Y + s.src.Range(-ghostTeleportDist, ghostTeleportDist),
			}
			if target == m.Pos || s.grid.At(target).Kind != world.TileFloor {
				continue
			}
			if s.store.Move(m.ID, target) == nil {
				return
			}
		}
		return
	}

	dirs := moveDirections(b)
	start := s.src.Intn(len(dirs))
	for i := range dirs {
		next := m.Pos.Add(dirs[(start+i)%len(dirs)])
		if s.stepMonster(m, next) == nil {
			return
		}
	}
}

// stepMonster moves a monster one tile, opening a closed door it walks into.
// An opened door changes what the player can see.
func (s *State) stepMonster(m *entity.Entity, next world.Position) error {
	if err := s.store.Move(m.ID, next); err != nil {
		return err
	}
	if s.grid.At(next).IsClosedDoor() {
		s.grid.OpenDoor(next)
		s.updateVision()
	}
	return nil
}

// pathStep returns the first step of a shortest path from 'from' to 'to',
// searching breadth first over passable tiles not held by other living
// entities, at most limit steps deep.
func (s *State) pathStep(from, to world.Position, diagonal bool, limit int) (world.Position, bool) {
	dirs := moveDirections(behavior{diagonal: diagonal})
	parent := make(map[world.Position]world.Position)
	depth := map[world.Position]int{from: 0}
	frontier := []world.Position{from}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		if depth[cur] >= limit {
			continue
		}
		for _, d := range dirs {
			next := cur.Add(d)
			if _, seen := depth[next]; seen || !s.grid.IsPassable(next) {
				continue
			}
			if next == to {
				parent[next] = cur
				return firstStep(parent, from, next), true
			}
			if _, occupied := s.store.At(next); occupied {
				continue
			}
			depth[next] = depth[cur] + 1
			parent[next] = cur
			frontier = append(frontier, next)
		}
	}
	return world.Position{}, false
}

func firstStep(parent map[world.Position]world.Position, from, to world.Position) world.Position {
	step := to
	for parent[step] != from {
		step = parent[step]
	}
	return step
}

func moveDirections(b behavior) []world.Direction {
	if b.diagonal {
		return world.AllDirections
	}
	return world.Cardinals
}

// adjacent reports whether a monster at m can strike the player at p.
func adjacent(b behavior, m, p world.Position) bool {
	if b.diagonal {
		return m.Chebyshev(p) == 1
	}
	return m.IsAdjacent(p)
}
