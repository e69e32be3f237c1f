package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// ScoreRepo stores the history of finished runs.
type ScoreRepo interface {
	Save(ctx context.Context, score *dmn.Score) error
	// ByPlayer returns the most recent runs of a player, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Score, error)
}
