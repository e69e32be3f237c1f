package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/beka-birhanu/vinom-trapmaze/game"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/beka-birhanu/vinom-trapmaze/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var _ i.LevelSessionManager = &LevelSessionManager{}

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("session belongs to another player")
	ErrNoMazeFactory   = errors.New("maze factory is required")
	ErrNoLogger        = errors.New("logger is required")
)

type levelSession struct {
	level     *game.Level
	player    i.Player
	startedAt time.Time
}

// LevelSessionManager keeps one running maze level per player.
type LevelSessionManager struct {
	sessions        map[uuid.UUID]*levelSession
	playerToSession map[uuid.UUID]uuid.UUID
	mazeFactory     MazeFactory
	leaderboard     i.Leaderboard
	lives           int
	logger          i.Logger
	now             func() time.Time
	sync.RWMutex
}

// Config carries the dependencies of a LevelSessionManager.
type Config struct {
	MazeFactory MazeFactory
	Leaderboard i.Leaderboard // optional; wins are not recorded without it
	Lives       int           // defaults to game.DefaultLives
	Logger      i.Logger
}

// NewLevelSessionManager creates a manager with no sessions.
func NewLevelSessionManager(c *Config) (*LevelSessionManager, error) {
	if c.MazeFactory == nil {
		return nil, ErrNoMazeFactory
	}
	if c.Logger == nil {
		return nil, ErrNoLogger
	}

	lives := c.Lives
	if lives <= 0 {
		lives = game.DefaultLives
	}

	return &LevelSessionManager{
		sessions:        make(map[uuid.UUID]*levelSession),
		playerToSession: make(map[uuid.UUID]uuid.UUID),
		mazeFactory:     c.MazeFactory,
		leaderboard:     c.Leaderboard,
		lives:           lives,
		logger:          c.Logger,
		now:             time.Now,
	}, nil
}

// NewSession implements i.LevelSessionManager.
func (g *LevelSessionManager) NewSession(ctx context.Context, player i.Player) (uuid.UUID, game.State, error) {
	ctx, span := telemetry.Tracer("level").Start(ctx, "level.new_session")
	defer span.End()

	res, err := g.mazeFactory(ctx)
	if err != nil {
		return uuid.Nil, game.State{}, fmt.Errorf("creating maze for a new level: %w", err)
	}

	level, err := game.NewLevel(res, g.lives)
	if err != nil {
		return uuid.Nil, game.State{}, fmt.Errorf("creating level: %w", err)
	}

	sessionID := g.saveSession(player, level)
	span.SetAttributes(attribute.String("level.session_id", sessionID.String()))
	g.logger.Info(fmt.Sprintf("started level %s for player %s", sessionID, player.ID))
	return sessionID, level.Snapshot(), nil
}

// Move implements i.LevelSessionManager.
func (g *LevelSessionManager) Move(ctx context.Context, playerID, sessionID uuid.UUID, direction string) (game.Event, game.State, error) {
	s, err := g.session(playerID, sessionID)
	if err != nil {
		return game.Event{}, game.State{}, err
	}

	ev, err := s.level.Move(direction)
	if err != nil {
		return game.Event{}, game.State{}, err
	}
	state := s.level.Snapshot()

	switch ev.Kind {
	case game.EventExitReached:
		g.logger.Info(fmt.Sprintf("player %s finished level %s in %d steps", playerID, sessionID, state.Steps))
		g.recordWin(ctx, s, state)
	case game.EventLevelLost:
		g.logger.Info(fmt.Sprintf("player %s lost level %s after %d traps", playerID, sessionID, state.TrapsTriggered))
	}

	return ev, state, nil
}

// State implements i.LevelSessionManager.
func (g *LevelSessionManager) State(playerID, sessionID uuid.UUID) (game.State, error) {
	s, err := g.session(playerID, sessionID)
	if err != nil {
		return game.State{}, err
	}
	return s.level.Snapshot(), nil
}

// End drops the player's session.
func (g *LevelSessionManager) End(playerID, sessionID uuid.UUID) error {
	if _, err := g.session(playerID, sessionID); err != nil {
		return err
	}
	g.clean(sessionID)
	g.logger.Info(fmt.Sprintf("ended level %s for player %s", sessionID, playerID))
	return nil
}

func (g *LevelSessionManager) session(playerID, sessionID uuid.UUID) (*levelSession, error) {
	g.RLock()
	defer g.RUnlock()

	s, ok := g.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.player.ID != playerID {
		return nil, ErrNotSessionOwner
	}
	return s, nil
}

// saveSession stores level under a fresh ID, replacing the player's previous session.
func (g *LevelSessionManager) saveSession(player i.Player, level *game.Level) uuid.UUID {
	g.Lock()
	defer g.Unlock()

	if old, ok := g.playerToSession[player.ID]; ok {
		delete(g.sessions, old)
	}

	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	g.sessions[sessionID] = &levelSession{
		level:     level,
		player:    player,
		startedAt: g.now(),
	}
	g.playerToSession[player.ID] = sessionID
	return sessionID
}

func (g *LevelSessionManager) clean(sessionID uuid.UUID) {
	g.Lock()
	defer g.Unlock()

	if s, ok := g.sessions[sessionID]; ok {
		delete(g.playerToSession, s.player.ID)
	}
	delete(g.sessions, sessionID)
}

// recordWin stores a finished run. Storage failures are logged and never undo the win.
func (g *LevelSessionManager) recordWin(ctx context.Context, s *levelSession, state game.State) {
	if g.leaderboard == nil {
		return
	}

	finishedAt := g.now()
	score := &dmn.Score{
		ID:             uuid.New(),
		PlayerID:       s.player.ID,
		Username:       s.player.Username,
		Rows:           state.Rows,
		Cols:           state.Cols,
		Steps:          state.Steps,
		TrapsTriggered: state.TrapsTriggered,
		Duration:       finishedAt.Sub(s.startedAt).Milliseconds(),
		FinishedAt:     finishedAt,
	}
	if err := g.leaderboard.Record(ctx, score); err != nil {
		g.logger.Error(fmt.Sprintf("recording score for player %s: %s", s.player.ID, err))
	}
}
