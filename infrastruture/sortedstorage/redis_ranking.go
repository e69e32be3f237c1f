package sortedstorage

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var ErrNilClient = errors.New("redis ranking needs a client")

// RedisRanking keeps the best (lowest) score per member in a Redis sorted set.
type RedisRanking struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisRanking initializes a RedisRanking with the provided Redis client and TTL.
// A zero TTL keeps the ranking forever.
func NewRedisRanking(client *redis.Client, ttlSeconds int) (i.RankingStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	ranking := &RedisRanking{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	ranking.locker = redsync.New(pool)
	return ranking, nil
}

// Submit records score for member unless the member already holds a lower score.
func (rr *RedisRanking) Submit(ctx context.Context, key, member string, score float64) (bool, error) {
	mutex := rr.locker.NewMutex(key + ":" + member + ":submit_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	current, err := rr.client.ZScore(ctx, key, member).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return false, err
	case current <= score:
		return false, nil
	}

	if err := rr.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return false, err
	}

	// Set expiration only if it's not already set
	if rr.ttl > 0 {
		ttl, err := rr.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = rr.client.Expire(ctx, key, rr.ttl).Err()
		}
	}

	return true, nil
}

// Top returns up to n members with the lowest scores.
func (rr *RedisRanking) Top(ctx context.Context, key string, n int64) ([]i.RankedMember, error) {
	if n <= 0 {
		return []i.RankedMember{}, nil
	}

	zs, err := rr.client.ZRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	members := make([]i.RankedMember, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		members = append(members, i.RankedMember{Member: member, Score: z.Score})
	}
	return members, nil
}
