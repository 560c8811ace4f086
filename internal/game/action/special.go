package action

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/arena/internal/game/effect"
	"github.com/udisondev/arena/internal/game/event"
	"github.com/udisondev/arena/internal/model"
)

// EffectSpec describes a status effect attached by a special move.
type EffectSpec struct {
	Effect    string // registered effect name
	Magnitude float64
	Turns     int
}

// Special is the data-driven definition of a special move.
// Damage = max(Floor, attack×Multiplier − defense×DefenseFactor).
type Special struct {
	Multiplier    float64
	DefenseFactor float64
	Floor         float64
	Cooldown      int
	Damaging      bool
	TargetEffect  *EffectSpec
	SelfEffect    *EffectSpec
}

// genericSpecial applies to any combatant without an archetype entry.
var genericSpecial = Special{Multiplier: 1.5, Floor: 10, Cooldown: 3, Damaging: true}

// specials maps archetype → special move.
var specials = map[model.Archetype]Special{
	model.ArchetypeGladiator: {
		Multiplier: 2.0, DefenseFactor: 1.0, Floor: 10, Cooldown: 3, Damaging: true,
	},
	model.ArchetypeVoidcaster: {
		Multiplier: 1.5, Floor: 12, Cooldown: 4, Damaging: true,
		TargetEffect: &EffectSpec{Effect: "stun", Turns: 2},
	},
	model.ArchetypeStormstriker: {
		Multiplier: 1.5, Floor: 12, Cooldown: 2, Damaging: true,
	},
	model.ArchetypeNightstalker: {
		Multiplier: 1.5, Floor: 10, Cooldown: 3, Damaging: true,
		TargetEffect: &EffectSpec{Effect: "poison", Magnitude: 3, Turns: 3},
	},
	model.ArchetypeStoneguard: {
		Cooldown:   3,
		SelfEffect: &EffectSpec{Effect: "extra_defense", Magnitude: 10, Turns: 3},
	},
}

// SpecialFor returns the special move of an archetype, or the generic one.
func SpecialFor(a model.Archetype) Special {
	if s, ok := specials[a]; ok {
		return s
	}
	return genericSpecial
}

// NeedsTarget reports whether the move hits another combatant.
func (s Special) NeedsTarget() bool {
	return s.Damaging || s.TargetEffect != nil
}

// Damage computes the move's damage against target.
func (s Special) Damage(attacker, target *model.Combatant) float64 {
	if !s.Damaging {
		return 0
	}
	return max(s.Floor, attacker.AttackPower()*s.Multiplier-target.Defense()*s.DefenseFactor)
}

// Use performs the special move. A move on cooldown is refused and
// changes nothing. An effect name missing from the registry is an error,
// reported before anyone is touched.
func (s Special) Use(attacker, target *model.Combatant) (Outcome, error) {
	if !attacker.SpecialReady() {
		return Outcome{Events: []event.Event{{
			Kind: event.SpecialRefused, Actor: attacker.Name(),
			Move: attacker.SpecialMove(), Turns: attacker.Cooldown(),
		}}}, nil
	}

	onTarget, err := s.TargetEffect.create()
	if err != nil {
		return Outcome{}, fmt.Errorf("%s by %s: %w", attacker.SpecialMove(), attacker.Name(), err)
	}
	onSelf, err := s.SelfEffect.create()
	if err != nil {
		return Outcome{}, fmt.Errorf("%s by %s: %w", attacker.SpecialMove(), attacker.Name(), err)
	}

	used := event.Event{Kind: event.SpecialUsed, Actor: attacker.Name(), Move: attacker.SpecialMove()}
	var events []event.Event

	if s.Damaging {
		used.Target = target.Name()
		used.Amount = target.ApplyDamage(s.Damage(attacker, target))
	}
	events = append(events, used)

	if onTarget != nil && target.IsAlive() {
		_, applied := target.ApplyStatusEffect(onTarget, s.TargetEffect.Turns)
		events = append(events, applied...)
	}
	if onSelf != nil {
		_, applied := attacker.ApplyStatusEffect(onSelf, s.SelfEffect.Turns)
		events = append(events, applied...)
	}

	attacker.SetCooldown(s.Cooldown)
	slog.Debug("special move used",
		"attacker", attacker.Name(),
		"move", attacker.SpecialMove(),
		"damage", used.Amount,
		"cooldown", s.Cooldown)

	if s.Damaging {
		events = appendElimination(events, target)
	}
	return Outcome{Resolved: true, Events: events}, nil
}

// create builds the effect, or returns nil for a nil spec.
func (es *EffectSpec) create() (effect.Effect, error) {
	if es == nil {
		return nil, nil
	}
	return effect.Create(es.Effect, es.Magnitude)
}
