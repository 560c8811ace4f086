// Package narrate renders combat events as text for players.
package narrate

import (
	"fmt"
	"io"

	"github.com/udisondev/arena/internal/game/event"
)

// Line renders a single event. Returns "" for events with no narration.
func Line(e event.Event) string {
	switch e.Kind {
	case event.BattleStarted:
		return "LET THE BATTLE COMMENCE!"
	case event.TurnStarted:
		return fmt.Sprintf("\n%s's turn!", e.Actor)
	case event.DefenseRestored:
		return fmt.Sprintf("%s lowers their guard. Defense back to %s.", e.Actor, num(e.Amount))
	case event.EffectApplied:
		return fmt.Sprintf("%s is now affected by %s!", e.Actor, e.Effect)
	case event.EffectRejected:
		return fmt.Sprintf("%s is already affected by %s.", e.Actor, e.Effect)
	case event.EffectRefreshed:
		return fmt.Sprintf("%s's %s is renewed for %d turns.", e.Actor, e.Effect, e.Turns)
	case event.PoisonTick:
		return fmt.Sprintf("%s is poisoned! Losing %s HP this turn.", e.Actor, num(e.Amount))
	case event.StunTick:
		return fmt.Sprintf("%s is stunned and cannot act!", e.Actor)
	case event.EffectExpired:
		if e.Effect == "Extra Defense" {
			return fmt.Sprintf("%s's extra defense has worn off.", e.Actor)
		}
		return fmt.Sprintf("%s is no longer affected by %s.", e.Actor, e.Effect)
	case event.Incapacitated:
		return fmt.Sprintf("%s loses the turn.", e.Actor)
	case event.Attacked:
		return fmt.Sprintf("%s attacks %s for %.1f damage!", e.Actor, e.Target, e.Amount)
	case event.Defended:
		return fmt.Sprintf("%s is defending! Defense increased to %s.", e.Actor, num(e.Amount))
	case event.SpecialUsed:
		if e.Target == "" {
			return fmt.Sprintf("%s uses %s!", e.Actor, e.Move)
		}
		return fmt.Sprintf("%s uses %s on %s for %.1f damage!", e.Actor, e.Move, e.Target, e.Amount)
	case event.SpecialRefused:
		return fmt.Sprintf("%s is on cooldown for %d more turns!", e.Move, e.Turns)
	case event.ActionSkipped:
		return fmt.Sprintf("%s has no one left to target.", e.Actor)
	case event.Eliminated:
		return fmt.Sprintf("%s has been eliminated!", e.Actor)
	case event.BattleOver:
		if e.Actor == "" {
			return "\nGame Over! Nobody is left standing."
		}
		return fmt.Sprintf("\nGame Over! %s is the winner!", e.Actor)
	default:
		return ""
	}
}

// Lines renders events, skipping silent ones.
func Lines(events []event.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if l := Line(e); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// num prints whole numbers without a fraction.
func num(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// Writer is an event.Sink that prints narration lines to w.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter creates a narrating sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Publish writes one line per narrated event. The first write error is kept
// and later writes are dropped.
func (nw *Writer) Publish(events ...event.Event) {
	for _, e := range events {
		if nw.err != nil {
			return
		}
		if l := Line(e); l != "" {
			_, nw.err = fmt.Fprintln(nw.w, l)
		}
	}
}

// Err returns the first write error.
func (nw *Writer) Err() error { return nw.err }
