// Package event defines the structured outcomes produced by the combat core.
// The core never prints; a presentation layer renders these records.
package event

// Kind identifies what happened.
type Kind int8

const (
	BattleStarted   Kind = iota // Turn order fixed, battle begins
	TurnStarted                 // Actor's turn begins
	DefenseRestored             // Defend bonus halved back at turn start
	EffectApplied               // Status effect attached (Effect, Turns, Amount)
	EffectRejected              // Same kind already active, nothing attached
	EffectRefreshed             // Same kind already active, duration reset
	PoisonTick                  // Poison dealt Amount to Actor
	StunTick                    // Actor cannot act this turn
	EffectExpired               // Status effect removed from Actor
	Incapacitated               // Actor's turn ends without an action
	Attacked                    // Basic attack: Actor hit Target for Amount
	Defended                    // Actor doubled defense to Amount
	SpecialUsed                 // Special move: Move, Target, Amount
	SpecialRefused              // Special move on cooldown for Turns
	ActionSkipped               // Action needed a target and none was available
	Eliminated                  // Actor's health reached zero
	BattleOver                  // Actor won (empty when no survivor)
)

var kindNames = [...]string{
	BattleStarted:   "battle_started",
	TurnStarted:     "turn_started",
	DefenseRestored: "defense_restored",
	EffectApplied:   "effect_applied",
	EffectRejected:  "effect_rejected",
	EffectRefreshed: "effect_refreshed",
	PoisonTick:      "poison_tick",
	StunTick:        "stun_tick",
	EffectExpired:   "effect_expired",
	Incapacitated:   "incapacitated",
	Attacked:        "attacked",
	Defended:        "defended",
	SpecialUsed:     "special_used",
	SpecialRefused:  "special_refused",
	ActionSkipped:   "action_skipped",
	Eliminated:      "eliminated",
	BattleOver:      "battle_over",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Event is one narrated outcome. Only the fields relevant to Kind are set.
type Event struct {
	Kind   Kind
	Actor  string  // combatant the event is about
	Target string  // affected combatant, if any
	Move   string  // special move name
	Effect string  // status effect name
	Amount float64 // damage dealt, defense value or effect magnitude
	Turns  int     // effect duration or remaining cooldown
}

// Sink receives events in the order they happen.
type Sink interface {
	Publish(events ...Event)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Publish(...Event) {}

// Recorder is a Sink that keeps every event it receives.
type Recorder struct {
	events []Event
}

// Publish appends events.
func (r *Recorder) Publish(events ...Event) {
	r.events = append(r.events, events...)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Tee fans events out to several sinks.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) Publish(events ...Event) {
	for _, s := range t {
		s.Publish(events...)
	}
}
