package i

import (
	"context"

	"github.com/beka-birhanu/vinom-trapmaze/game"
	"github.com/google/uuid"
)

// Player identifies who owns a level session.
type Player struct {
	ID       uuid.UUID
	Username string
}

// LevelSessionManager manages the maze levels players are running.
type LevelSessionManager interface {
	// NewSession generates a fresh maze for the player, replacing any previous session.
	NewSession(ctx context.Context, player Player) (uuid.UUID, game.State, error)

	// Move applies one move in the player's session.
	Move(ctx context.Context, playerID, sessionID uuid.UUID, direction string) (game.Event, game.State, error)

	// State returns the fogged state of the player's session.
	State(playerID, sessionID uuid.UUID) (game.State, error)

	// End drops the player's session.
	End(playerID, sessionID uuid.UUID) error
}
