package game

import (
	"errors"
	"slices"
	"sync"

	"github.com/beka-birhanu/vinom-trapmaze/maze"
)

// Level-related errors.
var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrLevelOver        = errors.New("level is over")
	ErrNoLives          = errors.New("lives must be positive")
	ErrNoMaze           = errors.New("level needs a generated maze")
)

const DefaultLives = 3

// Level is one play-through of a generated maze.
// Topology never changes; only the player, the traps' Revealed flags and the counters do.
type Level struct {
	maze           *maze.Maze
	traps          []maze.Trap
	player         maze.CellPosition
	lives          int
	steps          int
	trapsTriggered int
	status         Status
	version        int64
	sync.RWMutex
}

// NewLevel places the player on the entrance of a generated maze.
// The level keeps its own copy of the trap list.
func NewLevel(res *maze.Result, lives int) (*Level, error) {
	if res == nil || res.Maze == nil {
		return nil, ErrNoMaze
	}
	if lives <= 0 {
		return nil, ErrNoLives
	}

	return &Level{
		maze:   res.Maze,
		traps:  slices.Clone(res.Traps),
		player: res.Maze.Entrance(),
		lives:  lives,
		status: StatusPlaying,
	}, nil
}

// Status returns the current outcome.
func (l *Level) Status() Status {
	l.RLock()
	defer l.RUnlock()
	return l.status
}

// Move advances the player one cell in direction (North, South, East or West).
func (l *Level) Move(direction string) (Event, error) {
	delta, ok := maze.Directions[direction]
	if !ok {
		return Event{}, ErrInvalidDirection
	}

	l.Lock()
	defer l.Unlock()

	if l.status != StatusPlaying {
		return Event{}, ErrLevelOver
	}

	target := l.player.Add(delta)
	if !l.maze.IsPassable(target) {
		return Event{Kind: EventBlocked, Position: l.player, LivesLeft: l.lives}, nil
	}

	l.player = target
	l.steps++
	l.version++

	if i := l.trapIndex(target); i >= 0 {
		l.traps[i].Revealed = true
		l.trapsTriggered++
		l.lives--
		if l.lives <= 0 {
			l.status = StatusLost
			return Event{Kind: EventLevelLost, Position: target, LivesLeft: 0}, nil
		}
		return Event{Kind: EventTrapTriggered, Position: target, LivesLeft: l.lives}, nil
	}

	if l.maze.IsExit(target) {
		l.status = StatusWon
		return Event{Kind: EventExitReached, Position: target, LivesLeft: l.lives}, nil
	}

	return Event{Kind: EventMoved, Position: target, LivesLeft: l.lives}, nil
}

// trapIndex returns the index of the trap on pos, or -1.
func (l *Level) trapIndex(pos maze.CellPosition) int {
	return slices.IndexFunc(l.traps, func(t maze.Trap) bool { return t.Position == pos })
}

// Snapshot creates a fogged snapshot of the current level state.
func (l *Level) Snapshot() State {
	l.RLock()
	defer l.RUnlock()

	revealed := make([]maze.CellPosition, 0)
	for _, t := range l.traps {
		if t.Revealed {
			revealed = append(revealed, t.Position)
		}
	}

	return State{
		Version:        l.version,
		Rows:           l.maze.Rows(),
		Cols:           l.maze.Cols(),
		Walls:          l.maze.Walls(),
		Player:         l.player,
		RevealedTraps:  revealed,
		Lives:          l.lives,
		Steps:          l.steps,
		TrapsTriggered: l.trapsTriggered,
		Status:         l.status,
	}
}
