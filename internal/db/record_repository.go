package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/udisondev/arena/internal/record"
)

// RecordRepository stores finished battles.
type RecordRepository struct {
	db *DB
}

// NewRecordRepository creates a repository over d.
func NewRecordRepository(d *DB) *RecordRepository {
	return &RecordRepository{db: d}
}

// Save inserts rec and returns its ID. A battle whose transcript digest is
// already archived is not inserted again; the existing ID is returned and
// inserted is false.
func (r *RecordRepository) Save(ctx context.Context, rec record.Record) (id int64, inserted bool, err error) {
	err = r.db.pool.QueryRow(ctx,
		`INSERT INTO battle_records (name, roster, winner, turns, rounds, digest, played_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (digest) DO NOTHING
		 RETURNING id`,
		rec.Name, rec.Roster, rec.Winner, rec.Turns, rec.Rounds, rec.Digest, rec.PlayedAt,
	).Scan(&id)
	if err == nil {
		slog.Debug("battle archived", "id", id, "winner", rec.Winner)
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("saving battle record: %w", err)
	}

	existing, err := r.GetByDigest(ctx, rec.Digest)
	if err != nil {
		return 0, false, err
	}
	if existing == nil {
		return 0, false, fmt.Errorf("saving battle record: digest %s conflicted but was not found", rec.Digest)
	}
	return existing.ID, false, nil
}

// GetByDigest returns the record with the given digest, or nil if none.
func (r *RecordRepository) GetByDigest(ctx context.Context, digest string) (*record.Record, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT id, name, roster, winner, turns, rounds, digest, played_at
		 FROM battle_records WHERE digest = $1`, digest)
	if err != nil {
		return nil, fmt.Errorf("querying battle record %s: %w", digest, err)
	}
	recs, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scanning battle record %s: %w", digest, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// Recent returns up to limit records, newest first.
func (r *RecordRepository) Recent(ctx context.Context, limit int) ([]record.Record, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT id, name, roster, winner, turns, rounds, digest, played_at
		 FROM battle_records ORDER BY played_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent battles: %w", err)
	}
	recs, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scanning recent battles: %w", err)
	}
	return recs, nil
}

// WinCounts returns the number of wins per combatant name.
func (r *RecordRepository) WinCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT winner, COUNT(*) FROM battle_records WHERE winner <> '' GROUP BY winner`)
	if err != nil {
		return nil, fmt.Errorf("querying win counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			winner string
			n      int
		)
		if err := rows.Scan(&winner, &n); err != nil {
			return nil, fmt.Errorf("scanning win count: %w", err)
		}
		counts[winner] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating win counts: %w", err)
	}
	return counts, nil
}

func scanRecord(row pgx.CollectableRow) (record.Record, error) {
	var rec record.Record
	err := row.Scan(&rec.ID, &rec.Name, &rec.Roster, &rec.Winner, &rec.Turns, &rec.Rounds, &rec.Digest, &rec.PlayedAt)
	return rec, err
}
