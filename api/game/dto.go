// Package gameapi exposes maze levels over HTTP.
package gameapi

import (
	"github.com/beka-birhanu/vinom-trapmaze/game"
)

// MoveRequest is the body of a move.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// LevelResponse describes a level session and its fogged state.
type LevelResponse struct {
	SessionID string     `json:"session_id"`
	State     game.State `json:"state"`
}

// MoveResponse is returned after every accepted move.
type MoveResponse struct {
	Event game.Event `json:"event"`
	State game.State `json:"state"`
}
