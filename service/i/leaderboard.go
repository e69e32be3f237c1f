package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/google/uuid"
)

// RankedMember is one entry of a sorted ranking.
type RankedMember struct {
	Member string
	Score  float64
}

// RankingStore keeps the best (lowest) score per member in a sorted set.
type RankingStore interface {
	// Submit records score for member unless the member already has a lower one.
	// It reports whether the stored score changed.
	Submit(ctx context.Context, key, member string, score float64) (bool, error)

	// Top returns up to n members with the lowest scores, ascending.
	Top(ctx context.Context, key string, n int64) ([]RankedMember, error)
}

// Leaderboard records finished runs and ranks players.
type Leaderboard interface {
	Record(ctx context.Context, score *dmn.Score) error
	Top(ctx context.Context, n int64) ([]RankedMember, error)
	History(ctx context.Context, playerID uuid.UUID, n int64) ([]*dmn.Score, error)
}
