// Package record summarises a finished battle for archiving.
package record

import (
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/arena/internal/game/battle"
	"github.com/udisondev/arena/internal/game/event"
	"github.com/udisondev/arena/internal/narrate"
)

// Record is one finished battle.
type Record struct {
	ID       int64
	Name     string // script name, empty for interactive battles
	Roster   []string
	Winner   string // empty when nobody survived
	Turns    int
	Rounds   int
	Digest   string // hex blake2b-256 of the narrated transcript
	PlayedAt time.Time
}

// New builds a record from a battle result and its recorded events.
// Identical battles produce identical digests.
func New(name string, b *battle.Battle, res battle.Result, events []event.Event, playedAt time.Time) Record {
	roster := b.Roster()
	names := make([]string, len(roster))
	for i, c := range roster {
		names[i] = c.Name()
	}

	rec := Record{
		Name:     name,
		Roster:   names,
		Turns:    res.Turns,
		Rounds:   res.Rounds,
		Digest:   Digest(events),
		PlayedAt: playedAt.UTC(),
	}
	if res.Winner != nil {
		rec.Winner = res.Winner.Name()
	}
	return rec
}

// Digest hashes the narrated transcript of events.
func Digest(events []event.Event) string {
	transcript := strings.Join(narrate.Lines(events), "\n")
	sum := blake2b.Sum256([]byte(transcript))
	return hex.EncodeToString(sum[:])
}
