package model

import (
	"fmt"
	"strings"
)

// Archetype: закрытый набор шаблонов персонажей.
// Special move behaviour is looked up by this tag, never by type.
type Archetype int8

const (
	ArchetypeNone         Archetype = iota // no archetype special, generic special applies
	ArchetypeGladiator                     // heavy melee
	ArchetypeVoidcaster                    // magic
	ArchetypeStormstriker                  // ranged
	ArchetypeNightstalker                  // stealth
	ArchetypeStoneguard                    // defensive
)

var archetypeNames = map[Archetype]string{
	ArchetypeNone:         "None",
	ArchetypeGladiator:    "Gladiator",
	ArchetypeVoidcaster:   "Voidcaster",
	ArchetypeStormstriker: "Stormstriker",
	ArchetypeNightstalker: "Nightstalker",
	ArchetypeStoneguard:   "Stoneguard",
}

func (a Archetype) String() string {
	if name, ok := archetypeNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Archetype(%d)", int8(a))
}

// Archetypes returns the playable archetypes in menu order.
func Archetypes() []Archetype {
	return []Archetype{
		ArchetypeGladiator,
		ArchetypeVoidcaster,
		ArchetypeStormstriker,
		ArchetypeNightstalker,
		ArchetypeStoneguard,
	}
}

// ParseArchetype resolves a playable archetype by name (case-insensitive).
func ParseArchetype(name string) (Archetype, bool) {
	name = strings.TrimSpace(name)
	for _, a := range Archetypes() {
		if strings.EqualFold(a.String(), name) {
			return a, true
		}
	}
	return ArchetypeNone, false
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML templates.
func (a *Archetype) UnmarshalText(text []byte) error {
	parsed, ok := ParseArchetype(string(text))
	if !ok {
		return fmt.Errorf("unknown archetype %q", text)
	}
	*a = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Archetype) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
