package gameapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-trapmaze/api"
	apii "github.com/beka-birhanu/vinom-trapmaze/api/i"
	"github.com/beka-birhanu/vinom-trapmaze/api/identity"
	"github.com/beka-birhanu/vinom-trapmaze/game"
	pb "github.com/beka-birhanu/vinom-trapmaze/game/pb_encoder"
	"github.com/beka-birhanu/vinom-trapmaze/infrastruture/token"
	"github.com/beka-birhanu/vinom-trapmaze/maze"
	"github.com/beka-birhanu/vinom-trapmaze/service"
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

type testServer struct {
	handler   http.Handler
	tokenizer i.Tokenizer
}

// newTestServer serves the 5x5 maze
//
//	#####
//	#.#.#
//	#.#.#
//	#..E#
//	#####
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gen, err := maze.NewGenerator(maze.Options{Dimensions: maze.Dimensions{Rows: 5, Cols: 5}}, maze.FirstChoice{})
	require.NoError(t, err)
	sm, err := service.NewLevelSessionManager(&service.Config{
		MazeFactory: service.NewMazeFactory(gen, nopLogger{}),
		Logger:      nopLogger{},
	})
	require.NoError(t, err)
	lc, err := NewLevelController(sm, &pb.Protobuf{}, nopLogger{})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("test-secret", "trapmaze")
	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []apii.Controller{lc},
		AuthorizationMiddleware: identity.Authoriz(tokenizer),
	})
	return &testServer{handler: router.Handler(), tokenizer: tokenizer}
}

func (s *testServer) tokenFor(t *testing.T, id uuid.UUID) string {
	t.Helper()
	tok, err := s.tokenizer.Generate(map[string]interface{}{
		"userID":   id.String(),
		"username": "runner",
	}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, tok string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) newLevel(t *testing.T, tok string) LevelResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/levels", tok, nil, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res LevelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestLevelRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/levels", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/levels", "not-a-jwt", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLevelPlayThrough(t *testing.T) {
	s := newTestServer(t)
	tok := s.tokenFor(t, uuid.New())

	level := s.newLevel(t, tok)
	assert.Equal(t, 5, level.State.Rows)
	assert.Equal(t, maze.CellPosition{Row: 1, Col: 1}, level.State.Player)
	assert.Equal(t, game.StatusPlaying, level.State.Status)
	assert.Empty(t, level.State.RevealedTraps)

	movesPath := "/api/v1/levels/" + level.SessionID + "/moves"

	w := s.do(t, http.MethodPost, movesPath, tok, MoveRequest{Direction: "Up"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, movesPath, tok, map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res MoveResponse
	for _, dir := range []string{"South", "South", "East", "East"} {
		w = s.do(t, http.MethodPost, movesPath, tok, MoveRequest{Direction: dir}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	}
	assert.Equal(t, game.EventExitReached, res.Event.Kind)
	assert.Equal(t, game.StatusWon, res.State.Status)
	assert.Equal(t, 4, res.State.Steps)
	assert.Contains(t, w.Body.String(), `"status":"won"`)

	w = s.do(t, http.MethodPost, movesPath, tok, MoveRequest{Direction: "West"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLevelStateNegotiatesProtobuf(t *testing.T) {
	s := newTestServer(t)
	tok := s.tokenFor(t, uuid.New())
	level := s.newLevel(t, tok)
	statePath := "/api/v1/levels/" + level.SessionID

	w := s.do(t, http.MethodGet, statePath, tok, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res LevelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, level, res)

	w = s.do(t, http.MethodGet, statePath, tok, nil, map[string]string{"Accept": pb.ContentType})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pb.ContentType, w.Header().Get("Content-Type"))

	decoded, err := (&pb.Protobuf{}).UnmarshalState(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, level.State.Walls, decoded.Walls)
	assert.Equal(t, level.State.Player, decoded.Player)
}

func TestLevelSessionErrors(t *testing.T) {
	s := newTestServer(t)
	owner := s.tokenFor(t, uuid.New())
	stranger := s.tokenFor(t, uuid.New())
	level := s.newLevel(t, owner)
	statePath := "/api/v1/levels/" + level.SessionID

	tests := []struct {
		name   string
		method string
		path   string
		tok    string
		code   int
	}{
		{"other player", http.MethodGet, statePath, stranger, http.StatusForbidden},
		{"unknown level", http.MethodGet, "/api/v1/levels/" + uuid.NewString(), owner, http.StatusNotFound},
		{"malformed id", http.MethodGet, "/api/v1/levels/42", owner, http.StatusBadRequest},
		{"other player ends", http.MethodDelete, statePath, stranger, http.StatusForbidden},
		{"owner ends", http.MethodDelete, statePath, owner, http.StatusNoContent},
		{"ended level", http.MethodGet, statePath, owner, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.tok, nil, nil)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}
