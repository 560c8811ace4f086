// Package battle drives a battle from the first turn to a single survivor.
//
// Each turn runs PhaseAwaitingTurn, PhaseEffects, PhaseAction and PhaseCleanup,
// then moves to the next living combatant or ends the battle.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/arena/internal/game/action"
	"github.com/udisondev/arena/internal/game/event"
	"github.com/udisondev/arena/internal/model"
)

// ErrNoController is returned by New when no controller is given.
var ErrNoController = errors.New("battle: controller is required")

// Controller is the external actor that picks actions and targets.
// Both calls block until a choice is made.
type Controller interface {
	// ChooseAction picks the action for actor's turn.
	ChooseAction(ctx context.Context, actor *model.Combatant, roster []*model.Combatant) (action.Kind, error)
	// ChooseTarget picks one of candidates, none of which is actor.
	ChooseTarget(ctx context.Context, actor *model.Combatant, candidates []*model.Combatant) (*model.Combatant, error)
}

// Phase is the battle loop state.
type Phase int8

const (
	PhaseAwaitingTurn Phase = iota
	PhaseEffects
	PhaseAction
	PhaseCleanup
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingTurn:
		return "awaiting_turn"
	case PhaseEffects:
		return "effects"
	case PhaseAction:
		return "action"
	case PhaseCleanup:
		return "cleanup"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Options configures a battle.
type Options struct {
	Sink      event.Sink    // receives narration events; nil discards
	TurnDelay time.Duration // pause after every turn
}

// Result is the outcome of a finished battle.
type Result struct {
	Winner *model.Combatant // nil when nobody survived
	Turns  int
	Rounds int
}

// Battle runs one battle over an exclusively owned roster.
type Battle struct {
	roster []*model.Combatant // selection order, never reordered
	order  []*model.Combatant // living combatants still taking turns
	ctrl   Controller
	sink   event.Sink
	delay  time.Duration

	phase  Phase
	turns  int
	rounds int
}

// New creates a battle. Turn order is the roster order.
func New(roster []*model.Combatant, ctrl Controller, opts Options) (*Battle, error) {
	if ctrl == nil {
		return nil, ErrNoController
	}
	sink := opts.Sink
	if sink == nil {
		sink = event.Discard
	}
	b := &Battle{
		roster: slices.Clone(roster),
		ctrl:   ctrl,
		sink:   sink,
		delay:  opts.TurnDelay,
	}
	b.order = b.Alive()
	return b, nil
}

// Phase returns the current loop state.
func (b *Battle) Phase() Phase { return b.phase }

// Roster returns every combatant in selection order, eliminated ones included.
func (b *Battle) Roster() []*model.Combatant { return slices.Clone(b.roster) }

// Alive returns the living combatants in turn order.
func (b *Battle) Alive() []*model.Combatant {
	alive := make([]*model.Combatant, 0, len(b.roster))
	for _, c := range b.roster {
		if c.IsAlive() {
			alive = append(alive, c)
		}
	}
	return alive
}

// Targets returns the living combatants actor may target. Never includes actor.
func (b *Battle) Targets(actor *model.Combatant) []*model.Combatant {
	targets := make([]*model.Combatant, 0, len(b.roster))
	for _, c := range b.roster {
		if c != actor && c.IsAlive() {
			targets = append(targets, c)
		}
	}
	return targets
}

// Run plays turns until at most one combatant is alive.
// Cancellation is honoured between turns, never in the middle of one.
func (b *Battle) Run(ctx context.Context) (Result, error) {
	b.sink.Publish(event.Event{Kind: event.BattleStarted})
	slog.Debug("battle started", "combatants", len(b.order))

	for len(b.order) > 1 {
		b.rounds++
		for _, c := range slices.Clone(b.order) {
			if !c.IsAlive() {
				continue
			}
			if err := ctx.Err(); err != nil {
				return b.result(), fmt.Errorf("battle interrupted: %w", err)
			}
			if err := b.takeTurn(ctx, c); err != nil {
				return b.result(), fmt.Errorf("turn %d of %s: %w", b.turns, c.Name(), err)
			}
			b.cleanup()
			if len(b.order) <= 1 {
				break
			}
			if err := b.pause(ctx); err != nil {
				return b.result(), fmt.Errorf("battle interrupted: %w", err)
			}
		}
	}

	b.phase = PhaseOver
	res := b.result()
	over := event.Event{Kind: event.BattleOver}
	if res.Winner != nil {
		over.Actor = res.Winner.Name()
	}
	b.sink.Publish(over)
	slog.Debug("battle over", "winner", over.Actor, "turns", res.Turns, "rounds", res.Rounds)
	return res, nil
}

func (b *Battle) result() Result {
	res := Result{Turns: b.turns, Rounds: b.rounds}
	if alive := b.Alive(); len(alive) == 1 {
		res.Winner = alive[0]
	}
	return res
}

// takeTurn runs the effects and action phases for c.
func (b *Battle) takeTurn(ctx context.Context, c *model.Combatant) error {
	b.turns++
	b.phase = PhaseAwaitingTurn
	b.sink.Publish(event.Event{Kind: event.TurnStarted, Actor: c.Name(), Turns: b.turns})

	b.phase = PhaseEffects
	b.sink.Publish(c.BeginTurn()...)
	b.sink.Publish(c.ProcessStatusEffects()...)

	if !c.IsAlive() {
		b.sink.Publish(event.Event{Kind: event.Eliminated, Actor: c.Name()})
		return nil
	}
	if c.IsIncapacitated() {
		b.sink.Publish(event.Event{Kind: event.Incapacitated, Actor: c.Name()})
		return nil
	}

	b.phase = PhaseAction
	return b.actionPhase(ctx, c)
}

// actionPhase asks the controller until an action resolves. Invalid choices
// and refusals are re-asked; only controller errors abort.
func (b *Battle) actionPhase(ctx context.Context, c *model.Combatant) error {
	for {
		kind, err := b.ctrl.ChooseAction(ctx, c, b.Roster())
		if err != nil {
			return fmt.Errorf("choosing action: %w", err)
		}
		if !kind.Valid() {
			slog.Debug("invalid action choice", "combatant", c.Name(), "action", kind)
			continue
		}
		if kind == action.KindSpecial && !c.SpecialReady() {
			b.sink.Publish(event.Event{
				Kind: event.SpecialRefused, Actor: c.Name(),
				Move: c.SpecialMove(), Turns: c.Cooldown(),
			})
			continue
		}

		var target *model.Combatant
		if action.NeedsTarget(kind, c) {
			candidates := b.Targets(c)
			if len(candidates) == 0 {
				b.sink.Publish(event.Event{Kind: event.ActionSkipped, Actor: c.Name()})
				return nil
			}
			target, err = b.chooseTarget(ctx, c, candidates)
			if err != nil {
				return err
			}
		}

		out, err := action.Resolve(kind, c, target)
		if err != nil {
			return err
		}
		b.sink.Publish(out.Events...)
		if out.Resolved {
			return nil
		}
	}
}

func (b *Battle) chooseTarget(ctx context.Context, c *model.Combatant, candidates []*model.Combatant) (*model.Combatant, error) {
	for {
		target, err := b.ctrl.ChooseTarget(ctx, c, candidates)
		if err != nil {
			return nil, fmt.Errorf("choosing target: %w", err)
		}
		if target != nil && slices.Contains(candidates, target) {
			return target, nil
		}
		slog.Debug("invalid target choice", "combatant", c.Name())
	}
}

// cleanup drops eliminated combatants from the turn order.
func (b *Battle) cleanup() {
	b.phase = PhaseCleanup
	b.order = slices.DeleteFunc(b.order, func(c *model.Combatant) bool {
		return !c.IsAlive()
	})
}

func (b *Battle) pause(ctx context.Context) error {
	if b.delay <= 0 {
		return nil
	}
	t := time.NewTimer(b.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
