// Replays battle scripts and prints each narrated transcript.
//
// Usage:
//
//	go run ./cmd/arena-replay scripts/*.yaml
//	go run ./cmd/arena-replay -parallel 8 -quiet scripts/*.yaml
//	go run ./cmd/arena-replay -stats 10 scripts/*.yaml
package main

import (
	"bytes"
	"cmp"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/arena/internal/config"
	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/db"
	"github.com/udisondev/arena/internal/game/battle"
	"github.com/udisondev/arena/internal/game/effect"
	"github.com/udisondev/arena/internal/game/event"
	"github.com/udisondev/arena/internal/narrate"
	"github.com/udisondev/arena/internal/record"
	"github.com/udisondev/arena/internal/script"
)

const ConfigPath = "config/arena.yaml"

// replay is the outcome of one script.
type replay struct {
	path       string
	transcript bytes.Buffer
	record     record.Record
	err        error
}

func main() {
	parallel := flag.Int("parallel", 4, "max scripts replayed at once")
	quiet := flag.Bool("quiet", false, "print only the summary line per script")
	stats := flag.Int("stats", 0, "after archiving, print win counts and the N most recent archived battles")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, flag.Args(), *parallel, *quiet, *stats); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, paths []string, parallel int, quiet bool, stats int) error {
	if len(paths) == 0 {
		return fmt.Errorf("no script files given")
	}

	cfgPath := ConfigPath
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	if err := data.LoadArchetypeTemplates(); err != nil {
		return fmt.Errorf("loading archetype templates: %w", err)
	}
	policy, _ := cfg.Stacking()
	if stats > 0 && !cfg.Records.Enabled {
		return fmt.Errorf("-stats needs records.enabled in %s", cfgPath)
	}

	var repo *db.RecordRepository
	if cfg.Records.Enabled {
		database, err := db.New(ctx, cfg.Records.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		applied, err := database.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrating battle archive: %w", err)
		}
		slog.Info("battle archive ready", "migrations_applied", applied)
		repo = db.NewRecordRepository(database)
	}

	// Battles share nothing, so each script runs in its own goroutine.
	results := make([]*replay, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, parallel))

	for i, path := range paths {
		r := &replay{path: path}
		results[i] = r
		g.Go(func() error {
			r.err = replayScript(gctx, r, policy)
			if r.err != nil || repo == nil {
				return nil
			}
			if _, _, err := repo.Save(gctx, r.record); err != nil {
				return fmt.Errorf("archiving %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !quiet {
			fmt.Printf("=== %s\n%s", r.path, r.transcript.String())
		}
		if r.err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", r.path, r.err)
			continue
		}
		winner := r.record.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("OK   %s winner=%s turns=%d digest=%s\n", r.path, winner, r.record.Turns, r.record.Digest[:12])
	}
	if repo != nil && stats > 0 {
		if err := printStats(ctx, os.Stdout, repo, stats); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed", failed, len(paths))
	}
	return nil
}

// archive is the read side of the battle archive used by -stats.
type archive interface {
	WinCounts(ctx context.Context) (map[string]int, error)
	Recent(ctx context.Context, limit int) ([]record.Record, error)
}

// printStats writes win counts, most wins first, then the latest battles.
func printStats(ctx context.Context, w io.Writer, a archive, recent int) error {
	counts, err := a.WinCounts(ctx)
	if err != nil {
		return fmt.Errorf("reading win counts: %w", err)
	}
	winners := slices.Collect(maps.Keys(counts))
	slices.SortFunc(winners, func(x, y string) int {
		if c := cmp.Compare(counts[y], counts[x]); c != 0 {
			return c
		}
		return strings.Compare(x, y)
	})

	fmt.Fprintln(w, "--- wins")
	for _, name := range winners {
		fmt.Fprintf(w, "%-14s %d\n", name, counts[name])
	}

	recs, err := a.Recent(ctx, recent)
	if err != nil {
		return fmt.Errorf("reading recent battles: %w", err)
	}
	fmt.Fprintf(w, "--- last %d battles\n", len(recs))
	for _, rec := range recs {
		winner := rec.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Fprintf(w, "%s %-20s winner=%s turns=%d roster=%s\n",
			rec.PlayedAt.Format(time.DateTime), rec.Name, winner, rec.Turns, strings.Join(rec.Roster, ","))
	}
	return nil
}

func replayScript(ctx context.Context, r *replay, policy effect.StackPolicy) error {
	s, err := script.Load(r.path)
	if err != nil {
		return err
	}
	roster, err := data.BuildRoster(s.Roster, policy)
	if err != nil {
		return err
	}

	recorder := &event.Recorder{}
	b, err := battle.New(roster, script.NewPlayer(s), battle.Options{
		Sink: event.Tee(narrate.NewWriter(&r.transcript), recorder),
	})
	if err != nil {
		return err
	}

	res, err := b.Run(ctx)
	if err != nil {
		return err
	}
	r.record = record.New(s.Name, b, res, recorder.Events(), time.Now())
	return nil
}
