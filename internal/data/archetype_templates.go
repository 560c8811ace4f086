package data

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/arena/internal/game/effect"
	"github.com/udisondev/arena/internal/model"
)

// ErrUnknownArchetype is returned when a roster names an archetype that
// does not exist. The roster is closed, so this is a construction failure.
var ErrUnknownArchetype = errors.New("unknown archetype")

//go:embed archetypes.yaml
var archetypesYAML []byte

// ArchetypeTemplate is the fixed stat block of one archetype.
type ArchetypeTemplate struct {
	Archetype   model.Archetype `yaml:"archetype"`
	Health      int             `yaml:"health"`
	AttackPower int             `yaml:"attack_power"`
	Defense     int             `yaml:"defense"`
	SpecialMove string          `yaml:"special_move"`
	Abilities   string          `yaml:"abilities"`
	Description string          `yaml:"description"`
}

// Stats converts the template to combat stats.
func (t *ArchetypeTemplate) Stats() model.Stats {
	return model.Stats{
		MaxHealth:   float64(t.Health),
		AttackPower: float64(t.AttackPower),
		Defense:     float64(t.Defense),
	}
}

var (
	archetypeTable map[model.Archetype]*ArchetypeTemplate
	loadOnce       sync.Once
	loadErr        error
)

// LoadArchetypeTemplates parses the embedded archetype table.
// Safe to call more than once; parsing happens only on the first call.
func LoadArchetypeTemplates() error {
	loadOnce.Do(func() {
		table, err := parseArchetypeTemplates(archetypesYAML)
		if err != nil {
			loadErr = err
			return
		}
		archetypeTable = table
		slog.Info("loaded archetype templates", "count", len(table))
	})
	return loadErr
}

func parseArchetypeTemplates(raw []byte) (map[model.Archetype]*ArchetypeTemplate, error) {
	var defs []ArchetypeTemplate
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("parsing archetype templates: %w", err)
	}

	table := make(map[model.Archetype]*ArchetypeTemplate, len(defs))
	for i := range defs {
		def := &defs[i]
		if def.Health <= 0 {
			return nil, fmt.Errorf("archetype %s: health must be positive", def.Archetype)
		}
		if _, dup := table[def.Archetype]; dup {
			return nil, fmt.Errorf("archetype %s defined twice", def.Archetype)
		}
		table[def.Archetype] = def
	}
	return table, nil
}

// Template returns the stat block for an archetype.
func Template(a model.Archetype) (*ArchetypeTemplate, error) {
	if err := LoadArchetypeTemplates(); err != nil {
		return nil, err
	}
	t, ok := archetypeTable[a]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArchetype, a)
	}
	return t, nil
}

// NewCombatant builds a fresh combatant of the named archetype.
func NewCombatant(name string, policy effect.StackPolicy) (*model.Combatant, error) {
	a, ok := model.ParseArchetype(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, name)
	}
	t, err := Template(a)
	if err != nil {
		return nil, err
	}
	return model.NewCombatant(a.String(), a, t.SpecialMove, t.Stats(), policy), nil
}

// BuildRoster builds combatants in the given order.
// Fails on the first unknown archetype.
func BuildRoster(names []string, policy effect.StackPolicy) ([]*model.Combatant, error) {
	roster := make([]*model.Combatant, 0, len(names))
	for _, name := range names {
		c, err := NewCombatant(name, policy)
		if err != nil {
			return nil, fmt.Errorf("building roster: %w", err)
		}
		roster = append(roster, c)
	}
	return roster, nil
}
