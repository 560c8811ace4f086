package model

import (
	"log/slog"

	"github.com/udisondev/arena/internal/game/effect"
	"github.com/udisondev/arena/internal/game/event"
)

// Stats holds the fixed base stats of a combatant.
type Stats struct {
	MaxHealth   float64
	AttackPower float64
	Defense     float64
}

// Combatant: участник боя.
// Holds combat stats, active status effects and the special move cooldown.
// A battle owns its combatants exclusively, so no locking is done here.
type Combatant struct {
	name        string
	archetype   Archetype
	specialMove string

	maxHealth   float64
	health      float64
	attackPower float64
	defense     float64

	cooldown  int
	defending bool
	stunned   bool // set by a stun tick, cleared when the next turn begins

	effects *effect.List
}

// NewCombatant creates a combatant at full health.
func NewCombatant(name string, archetype Archetype, specialMove string, stats Stats, policy effect.StackPolicy) *Combatant {
	return &Combatant{
		name:        name,
		archetype:   archetype,
		specialMove: specialMove,
		maxHealth:   stats.MaxHealth,
		health:      stats.MaxHealth,
		attackPower: stats.AttackPower,
		defense:     stats.Defense,
		effects:     effect.NewList(policy),
	}
}

// Name returns the display label.
func (c *Combatant) Name() string { return c.name }

// SetName changes the display label. It carries no combat state.
func (c *Combatant) SetName(name string) { c.name = name }

// Archetype returns the archetype tag.
func (c *Combatant) Archetype() Archetype { return c.archetype }

// SpecialMove returns the special move display name.
func (c *Combatant) SpecialMove() string { return c.specialMove }

// Health returns current health, never below zero.
func (c *Combatant) Health() float64 { return c.health }

// MaxHealth returns the starting health.
func (c *Combatant) MaxHealth() float64 { return c.maxHealth }

// AttackPower returns attack power.
func (c *Combatant) AttackPower() float64 { return c.attackPower }

// Defense returns current defense including temporary modifiers.
func (c *Combatant) Defense() float64 { return c.defense }

// Cooldown returns remaining special move cooldown in turns.
func (c *Combatant) Cooldown() int { return c.cooldown }

// SpecialReady returns true if the special move can be used.
func (c *Combatant) SpecialReady() bool { return c.cooldown == 0 }

// SetCooldown sets the special move cooldown, clamped at zero.
func (c *Combatant) SetCooldown(turns int) { c.cooldown = max(0, turns) }

// IsDefending returns true between a Defend action and the owner's next turn.
func (c *Combatant) IsDefending() bool { return c.defending }

// IsAlive returns true while health is above zero.
func (c *Combatant) IsAlive() bool { return c.health > 0 }

// ApplyDamage reduces health by amount (negative amounts count as zero).
// Returns the damage actually taken into account.
func (c *Combatant) ApplyDamage(amount float64) float64 {
	amount = max(0, amount)
	c.health = max(0, c.health-amount)
	return amount
}

// AdjustDefense adds delta to defense.
func (c *Combatant) AdjustDefense(delta float64) {
	c.defense += delta
}

// Defend doubles defense until the owner's next turn begins.
// Returns false if already defending.
func (c *Combatant) Defend() bool {
	if c.defending {
		return false
	}
	c.defending = true
	c.AdjustDefense(c.defense)
	return true
}

// TickCooldown decrements the special move cooldown, never below zero.
func (c *Combatant) TickCooldown() {
	if c.cooldown > 0 {
		c.cooldown--
	}
}

// MarkStunned flags the combatant as unable to act this turn.
func (c *Combatant) MarkStunned() { c.stunned = true }

// BeginTurn opens the combatant's turn: a pending Defend is halved back,
// the stun flag from the previous turn is cleared and the cooldown ticks.
func (c *Combatant) BeginTurn() []event.Event {
	var events []event.Event
	c.stunned = false
	if c.defending {
		c.defending = false
		c.defense /= 2
		events = append(events, event.Event{Kind: event.DefenseRestored, Actor: c.name, Amount: c.defense})
	}
	c.TickCooldown()
	return events
}

// ApplyStatusEffect attaches e for the given number of turns.
// An effect of an already active kind is handled by the stack policy.
func (c *Combatant) ApplyStatusEffect(e effect.Effect, turns int) (bool, []event.Event) {
	return c.effects.Add(c, e, turns)
}

// ProcessStatusEffects runs one turn of every active effect in application
// order and removes the expired ones. Must run before the combatant acts,
// every turn, stunned or not.
func (c *Combatant) ProcessStatusEffects() []event.Event {
	if c.effects.Len() == 0 {
		return nil
	}
	events := c.effects.Process(c)
	slog.Debug("status effects processed", "combatant", c.name, "remaining", c.effects.Len(), "health", c.health)
	return events
}

// IsIncapacitated returns true if a stun ticked this turn or is still active.
func (c *Combatant) IsIncapacitated() bool {
	return c.stunned || c.effects.Has(effect.KindStun)
}

// HasEffect returns true if an effect of kind k is active.
func (c *Combatant) HasEffect(k effect.Kind) bool {
	return c.effects.Has(k)
}

// Effects returns the active effects in application order.
func (c *Combatant) Effects() []*effect.Active {
	return c.effects.Active()
}
