package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/game/action"
	"github.com/udisondev/arena/internal/game/battle"
	"github.com/udisondev/arena/internal/game/effect"
	"github.com/udisondev/arena/internal/game/event"
)

const duelScript = `
name: stun lock
roster: [Voidcaster, Stormstriker]
turns:
  - {actor: Voidcaster, action: special, target: Stormstriker}
  - {actor: Voidcaster, action: attack}
  - {actor: Voidcaster, action: attack}
  - {actor: Stormstriker, action: special, target: Voidcaster}
  - {actor: Voidcaster, action: attack}
  - {actor: Stormstriker, action: attack}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(duelScript))
	require.NoError(t, err)

	assert.Equal(t, "stun lock", s.Name)
	assert.Equal(t, []string{"Voidcaster", "Stormstriker"}, s.Roster)
	require.Len(t, s.Turns, 6)
	assert.Equal(t, action.KindSpecial, s.Turns[0].Action)
	assert.Equal(t, "Stormstriker", s.Turns[0].Target)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("roster: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("roster: [Gladiator]\nturns:\n  - {action: flee}\n"))
	assert.Error(t, err)
}

func TestLoad_NamesAfterPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roster: [Gladiator, Stoneguard]\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPlayer_ReplaysBattle(t *testing.T) {
	s, err := Parse([]byte(duelScript))
	require.NoError(t, err)
	roster, err := data.BuildRoster(s.Roster, effect.StackIgnore)
	require.NoError(t, err)

	p := NewPlayer(s)
	rec := &event.Recorder{}
	b, err := battle.New(roster, p, battle.Options{Sink: rec})
	require.NoError(t, err)

	// Stormstriker loses two turns to the stun and falls on the third round.
	res, err := b.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Winner)

	assert.Equal(t, "Voidcaster", res.Winner.Name())
	assert.Equal(t, 2, rec.Count(event.Incapacitated))
	assert.Equal(t, 3, p.Remaining(), "steps after the final blow are never played")
}

func TestPlayer_Exhausted(t *testing.T) {
	s, err := Parse([]byte("roster: [Gladiator, Stoneguard]\nturns:\n  - {actor: Gladiator, action: attack}\n"))
	require.NoError(t, err)
	roster, err := data.BuildRoster(s.Roster, effect.StackIgnore)
	require.NoError(t, err)

	b, err := battle.New(roster, NewPlayer(s), battle.Options{})
	require.NoError(t, err)

	_, err = b.Run(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 127.5, roster[1].Health())
}

func TestPlayer_ActorMismatch(t *testing.T) {
	s, err := Parse([]byte("roster: [Gladiator, Stoneguard]\nturns:\n  - {actor: Stoneguard, action: defend}\n"))
	require.NoError(t, err)
	roster, err := data.BuildRoster(s.Roster, effect.StackIgnore)
	require.NoError(t, err)

	b, err := battle.New(roster, NewPlayer(s), battle.Options{})
	require.NoError(t, err)

	_, err = b.Run(context.Background())
	assert.ErrorIs(t, err, ErrActorMismatch)
}

func TestPlayer_FullBattle(t *testing.T) {
	s := &Script{Roster: []string{"Nightstalker", "Voidcaster"}}
	for range 10 {
		s.Turns = append(s.Turns,
			Step{Actor: "Nightstalker", Action: action.KindAttack},
			Step{Actor: "Voidcaster", Action: action.KindAttack},
		)
	}
	roster, err := data.BuildRoster(s.Roster, effect.StackIgnore)
	require.NoError(t, err)

	b, err := battle.New(roster, NewPlayer(s), battle.Options{})
	require.NoError(t, err)

	res, err := b.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Winner)
	assert.Equal(t, "Nightstalker", res.Winner.Name())
}

func TestBundledScripts(t *testing.T) {
	tests := []struct {
		file   string
		winner string
	}{
		{"stun_lock.yaml", "Voidcaster"},
		{"fortress.yaml", "Nightstalker"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			s, err := Load(filepath.Join("..", "..", "scripts", tt.file))
			require.NoError(t, err)
			roster, err := data.BuildRoster(s.Roster, effect.StackIgnore)
			require.NoError(t, err)

			p := NewPlayer(s)
			b, err := battle.New(roster, p, battle.Options{})
			require.NoError(t, err)

			res, err := b.Run(context.Background())
			require.NoError(t, err)
			require.NotNil(t, res.Winner)
			assert.Equal(t, tt.winner, res.Winner.Name())
			assert.Zero(t, p.Remaining())
		})
	}
}
