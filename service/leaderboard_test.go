package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(playerID uuid.UUID, username string, steps int) *dmn.Score {
	return &dmn.Score{
		ID:         uuid.New(),
		PlayerID:   playerID,
		Username:   username,
		Rows:       19,
		Cols:       29,
		Steps:      steps,
		FinishedAt: time.Now(),
	}
}

func TestNewLeaderboard(t *testing.T) {
	_, err := NewLeaderboard(nil, &fakeRanking{}, "", nopLogger{})
	assert.ErrorIs(t, err, ErrNoStorage)

	_, err = NewLeaderboard(&fakeScoreRepo{}, &fakeRanking{}, "", nil)
	assert.ErrorIs(t, err, ErrNoLogger)

	lb, err := NewLeaderboard(&fakeScoreRepo{}, &fakeRanking{}, "", nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, defaultLeaderboardKey, lb.key)
}

func TestLeaderboardKeepsBestRun(t *testing.T) {
	repo := &fakeScoreRepo{}
	ranking := &fakeRanking{}
	lb, err := NewLeaderboard(repo, ranking, "board", nopLogger{})
	require.NoError(t, err)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	require.NoError(t, lb.Record(ctx, score(alice, "alice", 60)))
	require.NoError(t, lb.Record(ctx, score(bob, "bob", 55)))
	require.NoError(t, lb.Record(ctx, score(alice, "alice", 48)))
	require.NoError(t, lb.Record(ctx, score(alice, "alice", 70)))

	top, err := lb.Top(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []i.RankedMember{
		{Member: "alice", Score: 48},
		{Member: "bob", Score: 55},
	}, top)
	assert.Equal(t, []string{"board", "board", "board", "board"}, ranking.keys)

	history, err := lb.History(ctx, alice, 10)
	require.NoError(t, err)
	assert.Len(t, history, 3, "every run is kept in the history")
}

func TestLeaderboardClampsLimit(t *testing.T) {
	repo := &fakeScoreRepo{}
	ranking := &fakeRanking{}
	lb, err := NewLeaderboard(repo, ranking, "board", nopLogger{})
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		n, want int64
	}{
		{0, 1},
		{-4, 1},
		{25, 25},
		{1000, MaxLeaderboardSize},
	}
	for _, tt := range tests {
		_, err := lb.Top(ctx, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ranking.lastN)

		_, err = lb.History(ctx, uuid.New(), tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, repo.limit)
	}
}

func TestLeaderboardRecordErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("repository failure skips ranking", func(t *testing.T) {
		boom := errors.New("insert failed")
		ranking := &fakeRanking{}
		lb, err := NewLeaderboard(&fakeScoreRepo{err: boom}, ranking, "board", nopLogger{})
		require.NoError(t, err)

		assert.ErrorIs(t, lb.Record(ctx, score(uuid.New(), "alice", 10)), boom)
		assert.Empty(t, ranking.scores)
	})

	t.Run("ranking failure is wrapped", func(t *testing.T) {
		boom := errors.New("lock not acquired")
		lb, err := NewLeaderboard(&fakeScoreRepo{}, &fakeRanking{err: boom}, "board", nopLogger{})
		require.NoError(t, err)

		assert.ErrorIs(t, lb.Record(ctx, score(uuid.New(), "alice", 10)), boom)
	})
}
