// Package combat resolves melee attacks between entities.
package combat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/rogue1980/internal/entity"
	"github.com/samdwyer/rogue1980/internal/rng"
	"github.com/samdwyer/rogue1980/internal/telemetry"
)

// Damage roll variance: each attack adds a value in [VarianceLow, VarianceHigh].
const (
	VarianceLow  = -2
	VarianceHigh = 2
)

// Outcome is the result of one attack.
type Outcome struct {
	Damage       int    // Damage rolled; health loss is clamped at zero
	DefenderDied bool   // True if this attack killed the defender
	Gold         int    // Gold awarded to the attacker for the kill
	Message      string // Human-readable description
}

// Resolve performs one attack from attacker on defender.
//
// Damage is max(1, attack - defense + roll) where roll is drawn from src in
// [VarianceLow, VarianceHigh]; effective stats include equipment. If either
// side is already dead the zero Outcome is returned and src is not touched.
func Resolve(ctx context.Context, store *entity.Store, attacker, defender entity.ID, src rng.Source) (Outcome, error) {
	a, err := store.Get(attacker)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve attack: %w", err)
	}
	d, err := store.Get(defender)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve attack: %w", err)
	}
	if !a.Alive || !d.Alive {
		return Outcome{}, nil
	}

	_, span := telemetry.Tracer("combat").Start(ctx, "combat.resolve")
	defer span.End()

	attack, _ := store.EffectiveAttack(attacker)
	defense, _ := store.EffectiveDefense(defender)
	damage := CalculateDamage(attack, defense, src.Range(VarianceLow, VarianceHigh))

	if _, err := store.ApplyDamage(defender, damage); err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Damage:       damage,
		DefenderDied: !d.Alive,
		Message:      fmt.Sprintf("%s %s %s for %d.", a.Name, verb(a, "hit"), d.Name, damage),
	}
	if out.DefenderDied {
		out.Message = fmt.Sprintf("%s %s %s.", a.Name, verb(a, "kill"), d.Name)
		if a.IsPlayer() {
			out.Gold = KillGold(d.Stats)
			a.Gold += out.Gold
		}
	}

	span.SetAttributes(
		attribute.Int64("combat.attacker", int64(attacker)),
		attribute.Int64("combat.defender", int64(defender)),
		attribute.Int("combat.damage", damage),
		attribute.Bool("combat.killed", out.DefenderDied),
	)
	return out, nil
}

// CalculateDamage returns the damage an attack deals with a given roll.
// Every hit does at least 1.
func CalculateDamage(attack, defense, roll int) int {
	return max(1, attack-defense+roll)
}

// KillGold is the gold a monster is worth when killed.
func KillGold(s entity.Stats) int {
	return 10 + 2*s.Perception + s.Attack + s.Defense
}

// verb conjugates for the second-person player name.
func verb(e *entity.Entity, v string) string {
	if e.IsPlayer() {
		return v
	}
	return v + "s"
}
