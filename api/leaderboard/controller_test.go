package leaderboardapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-trapmaze/api/identity"
	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/beka-birhanu/vinom-trapmaze/infrastruture/token"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type fakeLeaderboard struct {
	members  []i.RankedMember
	history  map[uuid.UUID][]*dmn.Score
	lastN    int64
	lastUser uuid.UUID
}

func (f *fakeLeaderboard) Record(context.Context, *dmn.Score) error { return nil }

func (f *fakeLeaderboard) Top(_ context.Context, n int64) ([]i.RankedMember, error) {
	f.lastN = n
	return f.members[:min(int(n), len(f.members))], nil
}

func (f *fakeLeaderboard) History(_ context.Context, playerID uuid.UUID, n int64) ([]*dmn.Score, error) {
	f.lastN = n
	f.lastUser = playerID
	return f.history[playerID], nil
}

func newEngine(t *testing.T, lb i.Leaderboard) (*gin.Engine, i.Tokenizer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := NewController(lb, nopLogger{})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("test-secret", "trapmaze")
	r := gin.New()
	c.RegisterPublic(r.Group("/v1"))
	protected := r.Group("/v1")
	protected.Use(identity.Authoriz(tokenizer))
	c.RegisterProtected(protected)
	return r, tokenizer
}

func get(r http.Handler, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLeaderboardTop(t *testing.T) {
	lb := &fakeLeaderboard{members: []i.RankedMember{
		{Member: "alice", Score: 48},
		{Member: "bob", Score: 55},
		{Member: "carol", Score: 61},
	}}
	r, _ := newEngine(t, lb)

	w := get(r, "/v1/leaderboard?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []RankResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Equal(t, []RankResponse{
		{Rank: 1, Username: "alice", Steps: 48},
		{Rank: 2, Username: "bob", Steps: 55},
	}, rows)

	w = get(r, "/v1/leaderboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(defaultLimit), lb.lastN)

	w = get(r, "/v1/leaderboard?limit=5000", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(100), lb.lastN)

	for _, bad := range []string{"abc", "0", "-3"} {
		w = get(r, "/v1/leaderboard?limit="+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestLeaderboardHistory(t *testing.T) {
	player := uuid.New()
	lb := &fakeLeaderboard{history: map[uuid.UUID][]*dmn.Score{
		player: {{ID: uuid.New(), PlayerID: player, Username: "alice", Steps: 48, FinishedAt: time.Now().UTC()}},
	}}
	r, tokenizer := newEngine(t, lb)

	w := get(r, "/v1/scores/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, err := tokenizer.Generate(map[string]interface{}{"userID": player.String(), "username": "alice"}, time.Hour)
	require.NoError(t, err)

	w = get(r, "/v1/scores/me?limit=3", tok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, player, lb.lastUser)
	assert.Equal(t, int64(3), lb.lastN)

	var scores []dmn.Score
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	require.Len(t, scores, 1)
	assert.Equal(t, 48, scores[0].Steps)
}
