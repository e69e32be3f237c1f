package game

import (
	"fmt"

	"github.com/beka-birhanu/vinom-trapmaze/maze"
)

// Status is the outcome of a level so far.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	for _, c := range []Status{StatusPlaying, StatusWon, StatusLost} {
		if c.String() == string(b) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown level status %q", b)
}

// EventKind classifies the result of a move.
type EventKind int

const (
	EventMoved EventKind = iota
	EventBlocked
	EventTrapTriggered
	EventExitReached
	EventLevelLost
)

// String returns a human-readable event name.
func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventBlocked:
		return "blocked"
	case EventTrapTriggered:
		return "trap_triggered"
	case EventExitReached:
		return "exit_reached"
	case EventLevelLost:
		return "level_lost"
	default:
		return "unknown"
	}
}

// MarshalText encodes the event kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes an event kind name.
func (k *EventKind) UnmarshalText(b []byte) error {
	for _, c := range []EventKind{EventMoved, EventBlocked, EventTrapTriggered, EventExitReached, EventLevelLost} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Event describes what happened on a single move.
type Event struct {
	Kind      EventKind         `json:"kind"`
	Position  maze.CellPosition `json:"position"`
	LivesLeft int               `json:"lives_left"`
}

// State is a fogged snapshot of a level: only revealed traps are included.
type State struct {
	Version        int64               `json:"version"`
	Rows           int                 `json:"rows"`
	Cols           int                 `json:"cols"`
	Walls          [][]maze.CellState  `json:"walls"`
	Player         maze.CellPosition   `json:"player"`
	RevealedTraps  []maze.CellPosition `json:"revealed_traps"`
	Lives          int                 `json:"lives"`
	Steps          int                 `json:"steps"`
	TrapsTriggered int                 `json:"traps_triggered"`
	Status         Status              `json:"status"`
}
