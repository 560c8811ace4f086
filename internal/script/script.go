// Package script replays a battle from a YAML file: a roster and the ordered
// choices each acting combatant makes.
//
//	name: opening
//	roster: [Voidcaster, Stormstriker, Nightstalker]
//	turns:
//	  - {actor: Voidcaster, action: special, target: Nightstalker}
//	  - {actor: Stormstriker, action: attack, target: Voidcaster}
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arena/internal/game/action"
	"github.com/udisondev/arena/internal/model"
)

var (
	// ErrExhausted is returned when the battle asks for more choices than
	// the script has.
	ErrExhausted = errors.New("script: no more turns")
	// ErrActorMismatch is returned when a step names a different actor
	// than the one whose turn it is.
	ErrActorMismatch = errors.New("script: actor mismatch")
)

// Step is one scripted choice. Actor is optional and checked when set.
type Step struct {
	Actor  string      `yaml:"actor"`
	Action action.Kind `yaml:"action"`
	Target string      `yaml:"target"`
}

// Script is a parsed battle script.
type Script struct {
	Name   string   `yaml:"name"`
	Roster []string `yaml:"roster"`
	Turns  []Step   `yaml:"turns"`
}

// Parse decodes a script.
func Parse(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if len(s.Roster) == 0 {
		return nil, fmt.Errorf("parsing script %q: empty roster", s.Name)
	}
	return &s, nil
}

// Load reads and parses a script file. A script without a name is named
// after its path.
func Load(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %s: %w", path, err)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Player replays a script as a battle.Controller.
type Player struct {
	script *Script
	next   int
	cur    *Step
}

// NewPlayer creates a Player positioned at the first step.
func NewPlayer(s *Script) *Player {
	return &Player{script: s}
}

// Remaining returns the number of unplayed steps.
func (p *Player) Remaining() int {
	return len(p.script.Turns) - p.next
}

// ChooseAction returns the action of the next step.
func (p *Player) ChooseAction(_ context.Context, actor *model.Combatant, _ []*model.Combatant) (action.Kind, error) {
	if p.next >= len(p.script.Turns) {
		return 0, fmt.Errorf("%w: %s at step %d", ErrExhausted, actor.Name(), p.next+1)
	}
	step := &p.script.Turns[p.next]
	p.next++

	if step.Actor != "" && !strings.EqualFold(step.Actor, actor.Name()) {
		return 0, fmt.Errorf("%w: step %d is for %s, turn belongs to %s", ErrActorMismatch, p.next, step.Actor, actor.Name())
	}
	p.cur = step
	return step.Action, nil
}

// ChooseTarget returns the candidate named by the current step. A step with
// no target picks the first candidate. Naming anyone else is an error.
func (p *Player) ChooseTarget(_ context.Context, actor *model.Combatant, candidates []*model.Combatant) (*model.Combatant, error) {
	if p.cur == nil {
		return nil, fmt.Errorf("%w: target requested before action for %s", ErrExhausted, actor.Name())
	}
	step := p.cur
	p.cur = nil

	if step.Target == "" {
		return candidates[0], nil
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Name(), step.Target) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("script: step %d targets %q, not a living opponent of %s", p.next, step.Target, actor.Name())
}
