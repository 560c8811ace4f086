// Package console is the interactive text front end: roster selection and
// action/target prompts. Invalid input is re-prompted, never surfaced.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/game/action"
	"github.com/udisondev/arena/internal/model"
)

// Console reads choices from in and writes prompts to out.
// Implements battle.Controller.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// ChooseAction prints the battle status and the action menu, then reads a
// choice. A special move on cooldown is re-prompted.
func (c *Console) ChooseAction(ctx context.Context, actor *model.Combatant, roster []*model.Combatant) (action.Kind, error) {
	c.printf("\nCurrent Battle Status:\n")
	for _, p := range roster {
		if p.IsAlive() {
			c.printf("%s - HP: %s\n", p.Name(), hp(p.Health()))
		}
	}

	c.printf("\nChoose an action:\n[1] Attack\n[2] Defend\n")
	if actor.SpecialReady() {
		c.printf("[3] Special Move (%s)\n", actor.SpecialMove())
	} else {
		c.printf("[3] Special Move (Cooldown: %d turns)\n", actor.Cooldown())
	}

	for {
		choice, err := c.readInt(ctx, "Enter action (1, 2, or 3): ")
		if err != nil {
			return 0, err
		}
		switch choice {
		case 1:
			return action.KindAttack, nil
		case 2:
			return action.KindDefend, nil
		case 3:
			if !actor.SpecialReady() {
				c.printf("%s's special move is on cooldown!\n", actor.Name())
				continue
			}
			return action.KindSpecial, nil
		default:
			c.printf("Invalid choice. Please enter 1, 2, or 3.\n")
		}
	}
}

// ChooseTarget lists candidates and reads a 1-based index.
func (c *Console) ChooseTarget(ctx context.Context, _ *model.Combatant, candidates []*model.Combatant) (*model.Combatant, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	c.printf("\nSelect a target:\n")
	for i, p := range candidates {
		c.printf("[%d] %s - HP: %s\n", i+1, p.Name(), hp(p.Health()))
	}

	for {
		choice, err := c.readInt(ctx, "Enter target number: ")
		if err != nil {
			return nil, err
		}
		if choice >= 1 && choice <= len(candidates) {
			return candidates[choice-1], nil
		}
		c.printf("Invalid selection, try again.\n")
	}
}

// SelectRoster walks the player through choosing size distinct archetypes.
// Returns archetype names in selection order.
func (c *Console) SelectRoster(ctx context.Context, size int) ([]string, error) {
	options := model.Archetypes()
	if size > len(options) {
		return nil, fmt.Errorf("roster size %d exceeds %d archetypes", size, len(options))
	}

	chosen := make(map[model.Archetype]bool, size)
	names := make([]string, 0, size)

	for len(names) < size {
		c.printf("\nChoose your character:\n")
		for i, a := range options {
			c.printf("[%d] %s\n", i+1, a)
		}
		choice, err := c.readInt(ctx, "Select a character: ")
		if err != nil {
			return nil, err
		}
		if choice < 1 || choice > len(options) {
			c.printf("Invalid choice. Please select a valid number.\n")
			continue
		}

		a := options[choice-1]
		if chosen[a] {
			c.printf("Character already chosen. Please select a different one.\n")
			continue
		}

		tmpl, err := data.Template(a)
		if err != nil {
			return nil, err
		}
		c.printf("\n%s\nAbilities: %s\n", tmpl.Description, tmpl.Abilities)

		confirm, err := c.readLine(ctx, fmt.Sprintf("Confirm choosing %s? \n[1] Return \n[2] Proceed \nSelect: ", a))
		if err != nil {
			return nil, err
		}
		if confirm != "2" {
			continue
		}

		chosen[a] = true
		names = append(names, a.String())
		c.printf("You have chosen %s!\n", a)
	}
	return names, nil
}

func (c *Console) readInt(ctx context.Context, prompt string) (int, error) {
	for {
		line, err := c.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		c.printf("Invalid input. Please enter a number.\n")
	}
}

func (c *Console) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", fmt.Errorf("reading input: %w", io.EOF)
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func hp(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
