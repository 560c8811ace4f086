package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udisondev/arena/internal/config"
	"github.com/udisondev/arena/internal/console"
	"github.com/udisondev/arena/internal/data"
	"github.com/udisondev/arena/internal/db"
	"github.com/udisondev/arena/internal/game/battle"
	"github.com/udisondev/arena/internal/game/event"
	"github.com/udisondev/arena/internal/narrate"
	"github.com/udisondev/arena/internal/record"
)

const ConfigPath = "config/arena.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
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
	slog.Info("config loaded", "roster_size", cfg.RosterSize, "stack_policy", cfg.StackPolicy, "records", cfg.Records.Enabled)

	if err := data.LoadArchetypeTemplates(); err != nil {
		return fmt.Errorf("loading archetype templates: %w", err)
	}
	policy, _ := cfg.Stacking()

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

	fmt.Println("Initializing game...")
	con := console.New(os.Stdin, os.Stdout)

	names, err := con.SelectRoster(ctx, cfg.RosterSize)
	if err != nil {
		return fmt.Errorf("selecting roster: %w", err)
	}
	roster, err := data.BuildRoster(names, policy)
	if err != nil {
		return err
	}
	fmt.Println("\nAll characters have been selected! The battle is about to begin!")

	recorder := &event.Recorder{}
	out := narrate.NewWriter(os.Stdout)
	b, err := battle.New(roster, con, battle.Options{
		Sink:      event.Tee(out, recorder),
		TurnDelay: cfg.TurnDelay,
	})
	if err != nil {
		return err
	}

	res, err := b.Run(ctx)
	if err != nil {
		return fmt.Errorf("running battle: %w", err)
	}
	if err := out.Err(); err != nil {
		return fmt.Errorf("writing narration: %w", err)
	}

	if repo != nil {
		rec := record.New("", b, res, recorder.Events(), time.Now())
		id, _, err := repo.Save(ctx, rec)
		if err != nil {
			return fmt.Errorf("archiving battle: %w", err)
		}
		slog.Info("battle archived", "id", id, "winner", rec.Winner)
	}
	return nil
}
