package effect

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/arena/internal/game/event"
)

// StackPolicy decides what happens when an effect of an already active kind
// is applied again.
type StackPolicy int8

const (
	// StackIgnore leaves the active effect untouched and drops the new one.
	StackIgnore StackPolicy = iota
	// StackRefresh keeps the active effect and resets its remaining duration
	// to the longer of the two. Magnitude is never applied twice.
	StackRefresh
)

func (p StackPolicy) String() string {
	if p == StackRefresh {
		return "refresh"
	}
	return "ignore"
}

// ParseStackPolicy parses "ignore" or "refresh". Empty means ignore.
func ParseStackPolicy(s string) (StackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return StackIgnore, nil
	case "refresh":
		return StackRefresh, nil
	default:
		return StackIgnore, fmt.Errorf("unknown stack policy %q", s)
	}
}

// List holds the active effects of one owner in application order.
// Not safe for concurrent use: a battle owns its combatants exclusively.
type List struct {
	policy  StackPolicy
	effects []*Active
}

// NewList creates an empty List with the given stacking policy.
func NewList(policy StackPolicy) *List {
	return &List{policy: policy, effects: make([]*Active, 0, 3)}
}

// Policy returns the stacking policy.
func (l *List) Policy() StackPolicy { return l.policy }

// Add attaches e to o for the given number of turns (at least one).
// Returns true if a new effect was attached.
func (l *List) Add(o Owner, e Effect, turns int) (bool, []event.Event) {
	if turns < 1 {
		turns = 1
	}

	if existing := l.Get(e.Kind()); existing != nil {
		if l.policy == StackRefresh {
			existing.Remaining = max(existing.Remaining, turns)
			return false, []event.Event{{
				Kind: event.EffectRefreshed, Actor: o.Name(),
				Effect: e.Kind().String(), Turns: existing.Remaining,
			}}
		}
		slog.Debug("effect rejected, kind already active", "target", o.Name(), "effect", e.Kind())
		return false, []event.Event{{Kind: event.EffectRejected, Actor: o.Name(), Effect: e.Kind().String()}}
	}

	l.effects = append(l.effects, &Active{Effect: e, Remaining: turns})
	events := []event.Event{{
		Kind: event.EffectApplied, Actor: o.Name(),
		Effect: e.Kind().String(), Amount: e.Magnitude(), Turns: turns,
	}}
	return true, append(events, e.OnStart(o)...)
}

// Process runs one turn of every active effect in application order and
// drops the expired ones.
func (l *List) Process(o Owner) []event.Event {
	var events []event.Event
	n := 0
	for _, ae := range l.effects {
		alive, evs := ae.Process(o)
		events = append(events, evs...)
		if alive {
			l.effects[n] = ae
			n++
		}
	}
	clear(l.effects[n:])
	l.effects = l.effects[:n]
	return events
}

// Has returns true if an effect of kind k is active.
func (l *List) Has(k Kind) bool {
	return l.Get(k) != nil
}

// Get returns the active effect of kind k, or nil.
func (l *List) Get(k Kind) *Active {
	for _, ae := range l.effects {
		if ae.Kind() == k {
			return ae
		}
	}
	return nil
}

// Len returns the number of active effects.
func (l *List) Len() int { return len(l.effects) }

// Active returns a copy of the active effects in application order.
func (l *List) Active() []*Active {
	out := make([]*Active, len(l.effects))
	copy(out, l.effects)
	return out
}
