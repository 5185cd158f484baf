package engine

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/rogue1980/internal/combat"
	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/gamedata"
	"github.com/samdwyer/rogue1980/internal/telemetry"
	"github.com/samdwyer/rogue1980/internal/world"
)

// Submit queues the player's intent for the current round.
func (s *State) Submit(intent Intent) error {
	if s.phase != PhaseAwaitingInput {
		return fmt.Errorf("submit %s in phase %s: %w", intent, s.phase, ErrNotAwaitingInput)
	}
	s.pending = intent
	s.phase = PhaseResolvingAction
	return nil
}

// Advance performs exactly one phase transition and returns the new phase.
//
// A rejected intent returns the scheduler to PhaseAwaitingInput together with
// the rejection error; the turn is not consumed.
func (s *State) Advance(ctx context.Context) (Phase, error) {
	switch s.phase {
	case PhaseAwaitingInput:
		return s.phase, fmt.Errorf("advance: %w", errNoIntent)

	case PhaseResolvingAction:
		next, err := s.resolvePlayer(ctx, s.pending)
		if err != nil {
			s.phase = PhaseAwaitingInput
			return s.phase, err
		}
		s.phase = next
		if next == PhaseAdvancingAI {
			s.queue = buildQueue(s.store)
		}

	case PhaseAdvancingAI:
		for _, entry := range s.queue {
			if !s.player().Alive {
				break
			}
			s.act(ctx, entry.ID)
		}
		s.queue = nil
		s.phase = PhaseRoundComplete

	case PhaseRoundComplete:
		if err := s.completeRound(ctx); err != nil {
			return s.phase, err
		}

	case PhaseTerminal:
		return s.phase, fmt.Errorf("advance: run is over (%s): %w", s.outcome, ErrNotAwaitingInput)
	}
	return s.phase, nil
}

var errNoIntent = errors.New("no intent submitted")

// Step submits intent and advances until the scheduler waits for input again
// or the run ends.
func (s *State) Step(ctx context.Context, intent Intent) (Phase, error) {
	ctx, span := telemetry.Tracer("engine").Start(ctx, "turn.step")
	defer span.End()
	span.SetAttributes(
		attribute.String("turn.intent", intent.String()),
		attribute.Int("turn.number", s.turn),
		attribute.Int("turn.depth", s.depth),
	)

	if err := s.Submit(intent); err != nil {
		return s.phase, err
	}
	for {
		phase, err := s.Advance(ctx)
		if err != nil {
			span.SetAttributes(attribute.String("turn.rejected", err.Error()))
			return phase, err
		}
		if phase == PhaseAwaitingInput || phase == PhaseTerminal {
			return phase, nil
		}
	}
}

// resolvePlayer applies the player's intent and returns the next phase.
func (s *State) resolvePlayer(ctx context.Context, intent Intent) (Phase, error) {
	player := s.player()

	switch intent.Kind {
	case IntentMove:
		if !isCardinal(intent.Dir) {
			return 0, fmt.Errorf("%w: cannot move (%d,%d)", ErrInvalidMove, intent.Dir.DX, intent.Dir.DY)
		}
		if err := s.movePlayer(ctx, player, player.Pos.Add(intent.Dir)); err != nil {
			return 0, err
		}

	case IntentAttack:
		pos := player.Pos.Add(intent.Dir)
		if player.Pos.Chebyshev(pos) != 1 {
			return 0, fmt.Errorf("%w: cannot attack (%d,%d)", ErrInvalidMove, intent.Dir.DX, intent.Dir.DY)
		}
		target, ok := s.store.At(pos)
		if !ok {
			return 0, fmt.Errorf("%w: nothing to attack there", ErrInvalidMove)
		}
		s.playerAttack(ctx, target)

	case IntentUseItem:
		if err := s.useItem(player, intent.Item); err != nil {
			return 0, err
		}

	case IntentDescend:
		if player.Pos != s.stairs {
			return 0, fmt.Errorf("%w: there are no stairs here", ErrInvalidMove)
		}
		s.descend = true
		return PhaseRoundComplete, nil

	case IntentWait:

	case IntentQuit:
		s.outcome = OutcomeQuit
		s.addMessage("You leave the dungeon.")
		return PhaseTerminal, nil

	default:
		return 0, fmt.Errorf("%w: unknown intent %d", ErrInvalidMove, intent.Kind)
	}
	return PhaseAdvancingAI, nil
}

// movePlayer walks into target: attacking a monster there, opening a closed
// door, or stepping and picking up whatever lies on the tile.
func (s *State) movePlayer(ctx context.Context, player *entity.Entity, target world.Position) error {
	if id, ok := s.store.At(target); ok {
		s.playerAttack(ctx, id)
		return nil
	}
	if s.grid.At(target).IsClosedDoor() {
		s.grid.OpenDoor(target)
		s.addMessage("You open the door.")
		s.updateVision()
		return nil
	}
	if err := s.store.Move(player.ID, target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	s.stats.Moves++
	s.pickUpAll(player)
	if target == s.stairs {
		s.addMessage("There is a staircase down here.")
	}
	s.updateVision()
	return nil
}

func (s *State) pickUpAll(player *entity.Entity) {
	for _, id := range s.store.ItemsAt(player.Pos) {
		it, _ := s.store.Item(id)
		name, kind, value := it.Name, it.Kind, it.Effect.Value
		if err := s.store.PickUp(player.ID, id); err != nil {
			if errors.Is(err, entity.ErrInventoryFull) {
				s.addMessage(fmt.Sprintf("You cannot carry more %ss.", kind))
			}
			continue
		}
		if kind == gamedata.ItemTreasure {
			s.addMessage(fmt.Sprintf("You pick up %d gold.", value))
		} else {
			s.addMessage(fmt.Sprintf("You pick up %s.", name))
		}
	}
}

// playerAttack resolves a player hit. A resting monster with a counter-attack
// strikes back at once.
func (s *State) playerAttack(ctx context.Context, target entity.ID) {
	player := s.player()
	out, err := combat.Resolve(ctx, s.store, player.ID, target, s.src)
	if err != nil {
		panic(fmt.Sprintf("engine: %v", err))
	}
	s.stats.Attacks++
	s.stats.DamageDealt += out.Damage
	s.addMessage(out.Message)
	if out.DefenderDied {
		s.stats.Kills++
		if out.Gold > 0 {
			s.addMessage(fmt.Sprintf("You find %d gold.", out.Gold))
		}
		s.store.Remove(target)
		return
	}

	m := s.mustGet(target)
	if m.RestTurns > 0 && behaviorFor(m.Kind).counter {
		s.monsterAttack(ctx, m, player)
	}
}

// useItem applies a carried item. Equipment is equipped; anything else is consumed.
func (s *State) useItem(player *entity.Entity, id entity.ItemID) error {
	it, err := s.store.Item(id)
	if err != nil || it.Owner != player.ID || it.OnGround() {
		return fmt.Errorf("%w: you do not carry item %d", ErrInvalidMove, id)
	}

	if it.IsEquipment() {
		if err := s.store.Equip(player.ID, id); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMove, err)
		}
		s.stats.ItemsUsed++
		s.addMessage(fmt.Sprintf("You equip %s.", it.Name))
		return nil
	}

	used, err := s.store.ConsumeItem(player.ID, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	fx := used.Effect
	player.Stats.MaxHealth += fx.MaxHealth
	player.Stats.Attack += fx.Attack
	player.Stats.Defense += fx.Defense
	s.store.Heal(player.ID, fx.Heal)
	s.stats.ItemsUsed++
	s.addMessage(fmt.Sprintf("You use %s.", used.Name))
	return nil
}

// completeRound finishes the round: death, level change, or back to input.
// A failed level build leaves the round pending so Advance can retry it.
func (s *State) completeRound(ctx context.Context) error {
	switch {
	case !s.player().Alive:
		s.outcome = OutcomeLost
		s.phase = PhaseTerminal
		s.addMessage("You die...")

	case s.descend && s.depth >= s.cfg.MaxDepth:
		s.outcome = OutcomeWon
		s.phase = PhaseTerminal
		s.addMessage("You escape the dungeon with your treasure!")

	case s.descend:
		if err := s.buildLevel(ctx, s.depth+1, s.carryover()); err != nil {
			return err
		}
		s.phase = PhaseAwaitingInput
		s.addMessage(fmt.Sprintf("You descend to level %d.", s.depth))

	default:
		s.phase = PhaseAwaitingInput
	}

	s.descend = false
	s.turn++
	return nil
}

func (s *State) carryover() *carryover {
	player := s.player()
	c := &carryover{
		stats:  player.Stats,
		gold:   player.Gold,
		weapon: player.Weapon,
		armor:  player.Armor,
	}
	for _, id := range s.store.Inventory(player.ID) {
		it, _ := s.store.Item(id)
		c.items = append(c.items, *it)
	}
	return c
}

func isCardinal(d world.Direction) bool {
	for _, c := range world.Cardinals {
		if d == c {
			return true
		}
	}
	return false
}
