package service

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/google/uuid"
)

var _ i.Leaderboard = &Leaderboard{}

const (
	defaultLeaderboardKey = "trapmaze:leaderboard"
	MaxLeaderboardSize    = 100
)

var ErrNoStorage = errors.New("leaderboard needs a score repository and a ranking store")

// Leaderboard ranks players by the fewest steps they needed to leave a maze.
type Leaderboard struct {
	scores  i.ScoreRepo
	ranking i.RankingStore
	key     string
	logger  i.Logger
}

// NewLeaderboard creates a leaderboard stored under key.
func NewLeaderboard(scores i.ScoreRepo, ranking i.RankingStore, key string, logger i.Logger) (*Leaderboard, error) {
	if scores == nil || ranking == nil {
		return nil, ErrNoStorage
	}
	if logger == nil {
		return nil, ErrNoLogger
	}
	if key == "" {
		key = defaultLeaderboardKey
	}

	return &Leaderboard{
		scores:  scores,
		ranking: ranking,
		key:     key,
		logger:  logger,
	}, nil
}

// Record implements i.Leaderboard.
func (l *Leaderboard) Record(ctx context.Context, score *dmn.Score) error {
	if err := l.scores.Save(ctx, score); err != nil {
		return err
	}

	improved, err := l.ranking.Submit(ctx, l.key, score.Username, float64(score.Steps))
	if err != nil {
		return fmt.Errorf("ranking %s: %w", score.Username, err)
	}
	if improved {
		l.logger.Info(fmt.Sprintf("new best for %s: %d steps", score.Username, score.Steps))
	}
	return nil
}

// Top implements i.Leaderboard. n is clamped to [1, MaxLeaderboardSize].
func (l *Leaderboard) Top(ctx context.Context, n int64) ([]i.RankedMember, error) {
	return l.ranking.Top(ctx, l.key, clamp(n))
}

// History implements i.Leaderboard.
func (l *Leaderboard) History(ctx context.Context, playerID uuid.UUID, n int64) ([]*dmn.Score, error) {
	return l.scores.ByPlayer(ctx, playerID, clamp(n))
}

func clamp(n int64) int64 {
	return max(1, min(n, MaxLeaderboardSize))
}
