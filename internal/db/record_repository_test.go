package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arena/internal/record"
)

func testRecord(digestByte byte, winner string, playedAt time.Time) record.Record {
	digest := make([]byte, 64)
	for i := range digest {
		digest[i] = digestByte
	}
	return record.Record{
		Name:     "test",
		Roster:   []string{"Gladiator", "Stoneguard"},
		Winner:   winner,
		Turns:    12,
		Rounds:   6,
		Digest:   string(digest),
		PlayedAt: playedAt.UTC().Truncate(time.Microsecond),
	}
}

func TestRecordRepository_SaveAndGet(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))
	ctx := context.Background()
	rec := testRecord('a', "Stoneguard", time.Now())

	id, inserted, err := repo.Save(ctx, rec)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Positive(t, id)

	got, err := repo.GetByDigest(ctx, rec.Digest)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, rec.Roster, got.Roster)
	assert.Equal(t, rec.Winner, got.Winner)
	assert.Equal(t, rec.Turns, got.Turns)
	assert.True(t, rec.PlayedAt.Equal(got.PlayedAt))

	missing, err := repo.GetByDigest(ctx, testRecord('z', "", time.Now()).Digest)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecordRepository_SaveDuplicateDigest(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))
	ctx := context.Background()
	rec := testRecord('b', "Gladiator", time.Now())

	first, inserted, err := repo.Save(ctx, rec)
	require.NoError(t, err)
	require.True(t, inserted)

	second, inserted, err := repo.Save(ctx, rec)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first, second)
}

func TestRecordRepository_RecentAndWinCounts(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, winner := range []string{"Gladiator", "Stoneguard", "Gladiator", ""} {
		_, _, err := repo.Save(ctx, testRecord(byte('c'+i), winner, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "", recent[0].Winner)
	assert.Equal(t, "Gladiator", recent[1].Winner)

	counts, err := repo.WinCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Gladiator": 2, "Stoneguard": 1}, counts)
}

func TestDB_MigrateIsIdempotent(t *testing.T) {
	database := setupTestDB(t)

	applied, err := database.Migrate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, applied)
}
