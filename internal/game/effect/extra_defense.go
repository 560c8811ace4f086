package effect

import (
	"log/slog"

	"github.com/udisondev/arena/internal/game/event"
)

// ExtraDefenseEffect raises its owner's defense while active.
// The bonus is added once on start and taken back once on exit.
type ExtraDefenseEffect struct {
	bonus   float64
	applied bool
}

// NewExtraDefense creates a defense bonus of the given size.
func NewExtraDefense(bonus float64) *ExtraDefenseEffect {
	return &ExtraDefenseEffect{bonus: bonus}
}

func (e *ExtraDefenseEffect) Kind() Kind         { return KindExtraDefense }
func (e *ExtraDefenseEffect) Magnitude() float64 { return e.bonus }

func (e *ExtraDefenseEffect) OnStart(o Owner) []event.Event {
	if e.applied {
		return nil
	}
	e.applied = true
	o.AdjustDefense(e.bonus)
	slog.Debug("extra defense applied", "target", o.Name(), "bonus", e.bonus)
	return nil
}

func (e *ExtraDefenseEffect) OnTick(Owner) []event.Event {
	return nil
}

func (e *ExtraDefenseEffect) OnExit(o Owner) []event.Event {
	if !e.applied {
		return nil
	}
	e.applied = false
	o.AdjustDefense(-e.bonus)
	slog.Debug("extra defense removed", "target", o.Name(), "bonus", e.bonus)
	return []event.Event{{Kind: event.EffectExpired, Actor: o.Name(), Effect: KindExtraDefense.String(), Amount: e.bonus}}
}
