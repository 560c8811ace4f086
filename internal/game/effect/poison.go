package effect

import (
	"log/slog"

	"github.com/udisondev/arena/internal/game/event"
)

// PoisonEffect deals fixed damage to its owner every turn it is processed.
type PoisonEffect struct {
	damage float64
}

// NewPoison creates a poison dealing damage per turn.
func NewPoison(damage float64) *PoisonEffect {
	return &PoisonEffect{damage: damage}
}

func (e *PoisonEffect) Kind() Kind         { return KindPoison }
func (e *PoisonEffect) Magnitude() float64 { return e.damage }

func (e *PoisonEffect) OnStart(o Owner) []event.Event {
	slog.Debug("poison applied", "target", o.Name(), "damage", e.damage)
	return nil
}

func (e *PoisonEffect) OnTick(o Owner) []event.Event {
	dealt := o.ApplyDamage(e.damage)
	slog.Debug("poison tick", "target", o.Name(), "damage", dealt)
	return []event.Event{{Kind: event.PoisonTick, Actor: o.Name(), Effect: KindPoison.String(), Amount: dealt}}
}

// OnExit announces the end of the poison. Only one poison can be active per
// owner, so removal always means the owner is clean.
func (e *PoisonEffect) OnExit(o Owner) []event.Event {
	slog.Debug("poison removed", "target", o.Name())
	return []event.Event{{Kind: event.EffectExpired, Actor: o.Name(), Effect: KindPoison.String()}}
}
