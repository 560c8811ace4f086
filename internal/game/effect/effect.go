// Package effect implements timed status effects that tick once per owner turn.
package effect

import "github.com/udisondev/arena/internal/game/event"

// Kind is the closed set of status effect kinds.
// A combatant carries at most one active effect per kind.
type Kind int8

const (
	KindPoison Kind = iota + 1
	KindStun
	KindExtraDefense
)

func (k Kind) String() string {
	switch k {
	case KindPoison:
		return "Poison"
	case KindStun:
		return "Stun"
	case KindExtraDefense:
		return "Extra Defense"
	default:
		return "Unknown"
	}
}

// Owner is the combatant an effect acts on.
type Owner interface {
	Name() string
	ApplyDamage(amount float64) float64
	AdjustDefense(delta float64)
	MarkStunned()
}

// Effect is the kind-specific behaviour of a status effect.
// OnStart runs once when the effect is attached, OnTick once per processed
// turn, OnExit once when the remaining duration reaches zero.
type Effect interface {
	Kind() Kind
	Magnitude() float64
	OnStart(o Owner) []event.Event
	OnTick(o Owner) []event.Event
	OnExit(o Owner) []event.Event
}

// Active tracks a running effect on one owner.
type Active struct {
	Effect    Effect
	Remaining int
}

// Kind returns the kind of the wrapped effect.
func (a *Active) Kind() Kind { return a.Effect.Kind() }

// Process runs one turn of the effect: tick, decrement, and exit when the
// duration is used up. Returns false once the effect has expired.
func (a *Active) Process(o Owner) (bool, []event.Event) {
	events := a.Effect.OnTick(o)
	a.Remaining--
	if a.Remaining > 0 {
		return true, events
	}
	return false, append(events, a.Effect.OnExit(o)...)
}
