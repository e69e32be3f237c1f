package domain

import (
	"time"

	"github.com/google/uuid"
)

// Score is one finished maze run.
type Score struct {
	ID             uuid.UUID `bson:"_id" json:"id"`
	PlayerID       uuid.UUID `bson:"playerID" json:"player_id"`
	Username       string    `bson:"username" json:"username"`
	Rows           int       `bson:"rows" json:"rows"`
	Cols           int       `bson:"cols" json:"cols"`
	Steps          int       `bson:"steps" json:"steps"`
	TrapsTriggered int       `bson:"trapsTriggered" json:"traps_triggered"`
	Duration       int64     `bson:"durationMs" json:"duration_ms"`
	FinishedAt     time.Time `bson:"finishedAt" json:"finished_at"`
}
