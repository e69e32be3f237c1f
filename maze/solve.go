package maze

import (
	"errors"
	"slices"
)

// ErrUnsolvable is returned when the exit is not reachable from the entrance.
// A carved maze of valid dimensions is always solvable.
var ErrUnsolvable = errors.New("maze exit is unreachable from the entrance")

// solve finds the path from the entrance to the exit with a breadth-first search over Open
// cells, then stamps the exit cell with Exit.
func solve(m *Maze) ([]CellPosition, error) {
	start, goal := m.Entrance(), m.Exit()

	cameFrom := map[CellPosition]CellPosition{start: start}
	queue := []CellPosition{start}
	found := false
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		if cell == goal {
			found = true
			break
		}

		for _, d := range stepOffsets {
			next := cell.Add(d)
			if m.At(next) != Open {
				continue
			}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cameFrom[next] = cell
			queue = append(queue, next)
		}
	}

	if !found {
		return nil, ErrUnsolvable
	}

	path := []CellPosition{goal}
	for cell := goal; cell != start; {
		cell = cameFrom[cell]
		path = append(path, cell)
	}
	slices.Reverse(path)

	m.set(goal, Exit)
	return path, nil
}
