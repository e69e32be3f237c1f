package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type fakeLeaderboard struct {
	mu     sync.Mutex
	scores []*dmn.Score
	err    error
}

func (f *fakeLeaderboard) Record(_ context.Context, score *dmn.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.scores = append(f.scores, score)
	return nil
}

func (f *fakeLeaderboard) Top(context.Context, int64) ([]i.RankedMember, error) { return nil, nil }

func (f *fakeLeaderboard) History(context.Context, uuid.UUID, int64) ([]*dmn.Score, error) {
	return nil, nil
}

func (f *fakeLeaderboard) recorded() []*dmn.Score {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.scores)
}

type fakeScoreRepo struct {
	saved []*dmn.Score
	err   error
	limit int64
}

func (f *fakeScoreRepo) Save(_ context.Context, score *dmn.Score) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, score)
	return nil
}

func (f *fakeScoreRepo) ByPlayer(_ context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Score, error) {
	f.limit = limit
	var out []*dmn.Score
	for _, s := range f.saved {
		if s.PlayerID == playerID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeRanking keeps the lowest score per member, like the redis store.
type fakeRanking struct {
	scores map[string]float64
	keys   []string
	lastN  int64
	err    error
}

func (f *fakeRanking) Submit(_ context.Context, key, member string, score float64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.scores == nil {
		f.scores = make(map[string]float64)
	}
	f.keys = append(f.keys, key)
	if old, ok := f.scores[member]; ok && old <= score {
		return false, nil
	}
	f.scores[member] = score
	return true, nil
}

func (f *fakeRanking) Top(_ context.Context, _ string, n int64) ([]i.RankedMember, error) {
	f.lastN = n
	out := make([]i.RankedMember, 0, len(f.scores))
	for m, s := range f.scores {
		out = append(out, i.RankedMember{Member: m, Score: s})
	}
	slices.SortFunc(out, func(a, b i.RankedMember) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

var errUserNotFound = errors.New("user not found")

type fakeUserRepo struct {
	users map[string]*dmn.User
}

func (f *fakeUserRepo) Save(user *dmn.User) error {
	if f.users == nil {
		f.users = make(map[string]*dmn.User)
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errUserNotFound
}

func (f *fakeUserRepo) ByUsername(username string) (*dmn.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, errUserNotFound
}
