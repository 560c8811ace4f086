package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/game/action"
	"github.com/udisondev/arena/internal/game/effect"
	"github.com/udisondev/arena/internal/model"
)

func roster(t *testing.T, names ...string) []*model.Combatant {
	t.Helper()
	r, err := data.BuildRoster(names, effect.StackIgnore)
	require.NoError(t, err)
	return r
}

func TestChooseAction_RepromptsInvalidInput(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("abc\n7\n2\n"), &out)
	r := roster(t, "Gladiator", "Stoneguard")

	kind, err := c.ChooseAction(context.Background(), r[0], r)
	require.NoError(t, err)

	assert.Equal(t, action.KindDefend, kind)
	assert.Contains(t, out.String(), "Invalid input. Please enter a number.")
	assert.Contains(t, out.String(), "Invalid choice. Please enter 1, 2, or 3.")
	assert.Contains(t, out.String(), "Stoneguard - HP: 140")
}

func TestChooseAction_SpecialOnCooldown(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("3\n1\n"), &out)
	r := roster(t, "Voidcaster", "Gladiator")
	r[0].SetCooldown(2)

	kind, err := c.ChooseAction(context.Background(), r[0], r)
	require.NoError(t, err)

	assert.Equal(t, action.KindAttack, kind)
	assert.Contains(t, out.String(), "[3] Special Move (Cooldown: 2 turns)")
	assert.Contains(t, out.String(), "Voidcaster's special move is on cooldown!")
}

func TestChooseAction_EOF(t *testing.T) {
	c := New(strings.NewReader(""), io.Discard)
	r := roster(t, "Voidcaster", "Gladiator")

	_, err := c.ChooseAction(context.Background(), r[0], r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestChooseTarget(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("0\n3\n2\n"), &out)
	r := roster(t, "Gladiator", "Voidcaster", "Stormstriker")

	target, err := c.ChooseTarget(context.Background(), r[0], r[1:])
	require.NoError(t, err)

	assert.Same(t, r[2], target)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid selection, try again."))
}

func TestChooseTarget_NoCandidates(t *testing.T) {
	c := New(strings.NewReader(""), io.Discard)
	r := roster(t, "Gladiator")

	target, err := c.ChooseTarget(context.Background(), r[0], nil)
	require.NoError(t, err)
	assert.Nil(t, target)
}

func TestSelectRoster(t *testing.T) {
	// Gladiator confirmed, Gladiator again (rejected), Voidcaster returned,
	// 9 invalid, Stoneguard confirmed, Voidcaster confirmed.
	input := "1\n2\n1\n2\n1\n9\n5\n2\n2\n2\n"
	var out bytes.Buffer
	c := New(strings.NewReader(input), &out)

	names, err := c.SelectRoster(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"Gladiator", "Stoneguard", "Voidcaster"}, names)
	assert.Contains(t, out.String(), "Character already chosen.")
	assert.Contains(t, out.String(), "Invalid choice. Please select a valid number.")
	assert.Contains(t, out.String(), "Iron Fortress")
	assert.Contains(t, out.String(), "Abilities: Close Combat, Big Physical Damage")
	assert.Contains(t, out.String(), "Abilities: High Magic Damage")
}

func TestSelectRoster_TooLarge(t *testing.T) {
	c := New(strings.NewReader(""), io.Discard)
	_, err := c.SelectRoster(context.Background(), 6)
	assert.Error(t, err)
}

func TestReadLine_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(strings.NewReader("1\n"), io.Discard)
	_, err := c.SelectRoster(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
