package maze

import (
	"errors"
	"fmt"
	"slices"
)

const (
	pathTrapCount    = 2  // traps seeded on the solution path
	minPathForTraps  = 10 // path must be longer than this to receive path traps
	pathTrapHeadSkip = 5  // cells at the start of the path that never get a path trap
	pathTrapTailSkip = 10 // cells at the end of the path that never get a path trap
)

var ErrUnknownTrapPolicy = errors.New("unknown trap policy")

// TrapPolicy selects whether the trap placement phase runs.
type TrapPolicy int

const (
	// TrapPolicyDeadEnds traps every dead end off the solution path plus a few path cells.
	TrapPolicyDeadEnds TrapPolicy = iota
	// TrapPolicyNone skips trap placement and leaves the trap list empty.
	TrapPolicyNone
)

// String returns the configuration name of the policy.
func (p TrapPolicy) String() string {
	switch p {
	case TrapPolicyDeadEnds:
		return "dead-ends"
	case TrapPolicyNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseTrapPolicy maps a configuration name back to a TrapPolicy.
func ParseTrapPolicy(s string) (TrapPolicy, error) {
	switch s {
	case "dead-ends":
		return TrapPolicyDeadEnds, nil
	case "none":
		return TrapPolicyNone, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownTrapPolicy)
	}
}

// Trap is a hazard hidden in fog until the player steps on its cell.
type Trap struct {
	Position CellPosition `json:"position"`
	Revealed bool         `json:"revealed"`
}

// placeTraps puts a trap on every dead end off the path, then up to pathTrapCount traps on
// random path cells away from both ends.
func placeTraps(m *Maze, path []CellPosition, rng Random) []Trap {
	onPath := make(map[CellPosition]struct{}, len(path))
	for _, p := range path {
		onPath[p] = struct{}{}
	}

	traps := make([]Trap, 0)
	for r := range m.Rows() {
		for c := range m.Cols() {
			pos := CellPosition{Row: r, Col: c}
			if m.walls[r][c] != Open {
				continue
			}
			if _, ok := onPath[pos]; ok {
				continue
			}
			if m.OpenDegree(pos) == 1 {
				traps = append(traps, Trap{Position: pos})
			}
		}
	}

	return appendPathTraps(traps, path, rng)
}

// appendPathTraps draws pathTrapCount indices from [pathTrapHeadSkip, len(path)-pathTrapTailSkip)
// and traps those cells unless they already hold a trap.
func appendPathTraps(traps []Trap, path []CellPosition, rng Random) []Trap {
	if len(path) <= minPathForTraps {
		return traps
	}
	span := len(path) - pathTrapTailSkip - pathTrapHeadSkip
	if span <= 0 {
		return traps
	}

	for range pathTrapCount {
		pos := path[pathTrapHeadSkip+rng.Intn(span)]
		if slices.ContainsFunc(traps, func(t Trap) bool { return t.Position == pos }) {
			continue
		}
		traps = append(traps, Trap{Position: pos})
	}
	return traps
}
