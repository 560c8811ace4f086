// Package action resolves a chosen action against an attacker and an
// optional target.
package action

import (
	"fmt"
	"strings"

	"github.com/udisondev/arena/internal/game/event"
	"github.com/udisondev/arena/internal/model"
)

// Kind is the action chosen for a turn.
type Kind int8

const (
	KindAttack Kind = iota + 1
	KindDefend
	KindSpecial
)

func (k Kind) String() string {
	switch k {
	case KindAttack:
		return "attack"
	case KindDefend:
		return "defend"
	case KindSpecial:
		return "special"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Valid returns true for the three known actions.
func (k Kind) Valid() bool {
	return k >= KindAttack && k <= KindSpecial
}

// ParseKind parses "attack", "defend" or "special".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack":
		return KindAttack, nil
	case "defend":
		return KindDefend, nil
	case "special":
		return KindSpecial, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Outcome is the result of resolving one action.
// Resolved is false when the action was refused and nothing changed.
type Outcome struct {
	Resolved bool
	Events   []event.Event
}

// NeedsTarget reports whether the action requires a target for this attacker.
func NeedsTarget(k Kind, attacker *model.Combatant) bool {
	switch k {
	case KindAttack:
		return true
	case KindSpecial:
		return SpecialFor(attacker.Archetype()).NeedsTarget()
	default:
		return false
	}
}

// Resolve applies action k. target may be nil only for actions that do not
// need one.
func Resolve(k Kind, attacker, target *model.Combatant) (Outcome, error) {
	if NeedsTarget(k, attacker) && target == nil {
		return Outcome{}, fmt.Errorf("%s by %s: target required", k, attacker.Name())
	}
	switch k {
	case KindAttack:
		return Attack(attacker, target), nil
	case KindDefend:
		return Defend(attacker), nil
	case KindSpecial:
		return SpecialFor(attacker.Archetype()).Use(attacker, target)
	default:
		return Outcome{}, fmt.Errorf("unknown action %d", k)
	}
}

// AttackDamage is attack power minus half the target's defense, floored at 0.
func AttackDamage(attacker, target *model.Combatant) float64 {
	return max(0, attacker.AttackPower()*1.0-target.Defense()*0.5)
}

// Attack performs a basic attack.
func Attack(attacker, target *model.Combatant) Outcome {
	dealt := target.ApplyDamage(AttackDamage(attacker, target))
	events := []event.Event{{Kind: event.Attacked, Actor: attacker.Name(), Target: target.Name(), Amount: dealt}}
	return Outcome{Resolved: true, Events: appendElimination(events, target)}
}

// Defend doubles the attacker's defense until its next turn.
func Defend(attacker *model.Combatant) Outcome {
	attacker.Defend()
	return Outcome{
		Resolved: true,
		Events:   []event.Event{{Kind: event.Defended, Actor: attacker.Name(), Amount: attacker.Defense()}},
	}
}

func appendElimination(events []event.Event, target *model.Combatant) []event.Event {
	if target.IsAlive() {
		return events
	}
	return append(events, event.Event{Kind: event.Eliminated, Actor: target.Name()})
}
