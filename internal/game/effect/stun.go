package effect

import (
	"log/slog"

	"github.com/udisondev/arena/internal/game/event"
)

// StunEffect makes its owner skip every turn on which it ticks.
// Expiry is silent.
type StunEffect struct{}

// NewStun creates a stun.
func NewStun() *StunEffect {
	return &StunEffect{}
}

func (e *StunEffect) Kind() Kind         { return KindStun }
func (e *StunEffect) Magnitude() float64 { return 0 }

func (e *StunEffect) OnStart(o Owner) []event.Event {
	slog.Debug("stun applied", "target", o.Name())
	return nil
}

func (e *StunEffect) OnTick(o Owner) []event.Event {
	o.MarkStunned()
	return []event.Event{{Kind: event.StunTick, Actor: o.Name(), Effect: KindStun.String()}}
}

func (e *StunEffect) OnExit(o Owner) []event.Event {
	slog.Debug("stun removed", "target", o.Name())
	return nil
}
