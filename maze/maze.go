/*
Package maze generates trap mazes on an odd-sized grid.

A maze is carved as a spanning tree rooted at the entrance (1,1) with a randomized iterative
depth-first search, solved with a breadth-first search to the exit (rows-2, cols-2), and finally
seeded with traps on the dead ends of abandoned branches plus a couple of cells on the solution
path itself.

Generation is a pure function of the dimensions and the random source: see Generate.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinDimension = 5   // Smallest rows/cols that leave room for the entrance and exit offsets.
	MaxDimension = 201 // Largest rows/cols accepted.
)

var (
	ErrDimensionTooSmall = errors.New("maze dimension is too small")
	ErrDimensionTooLarge = errors.New("maze dimension is too large")
	ErrDimensionEven     = errors.New("maze dimension must be odd")
)

// DefaultDimensions is the grid size of the shipped game.
var DefaultDimensions = Dimensions{Rows: 19, Cols: 29}

// Dimensions is the size of a maze grid in cells.
type Dimensions struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Validate rejects dimensions the carver cannot work with.
func (d Dimensions) Validate() error {
	for _, n := range []struct {
		name  string
		value int
	}{{"rows", d.Rows}, {"cols", d.Cols}} {
		switch {
		case n.value < MinDimension:
			return fmt.Errorf("%s=%d: %w", n.name, n.value, ErrDimensionTooSmall)
		case n.value > MaxDimension:
			return fmt.Errorf("%s=%d: %w", n.name, n.value, ErrDimensionTooLarge)
		case n.value%2 == 0:
			return fmt.Errorf("%s=%d: %w", n.name, n.value, ErrDimensionEven)
		}
	}
	return nil
}

// Entrance returns the fixed start cell.
func (d Dimensions) Entrance() CellPosition {
	return CellPosition{Row: 1, Col: 1}
}

// Exit returns the fixed goal cell.
func (d Dimensions) Exit() CellPosition {
	return CellPosition{Row: d.Rows - 2, Col: d.Cols - 2}
}

// Maze holds the two layers of a generated grid.
type Maze struct {
	dims       Dimensions
	background [][]int       // decorative tile ids, always 0
	walls      [][]CellState // cell states queried by movement and rendering
}

// newMaze returns a maze of the given size with every cell set to Wall.
func newMaze(d Dimensions) *Maze {
	background := make([][]int, d.Rows)
	walls := make([][]CellState, d.Rows)
	for r := range d.Rows {
		background[r] = make([]int, d.Cols)
		walls[r] = make([]CellState, d.Cols)
		for c := range walls[r] {
			walls[r][c] = Wall
		}
	}

	return &Maze{
		dims:       d,
		background: background,
		walls:      walls,
	}
}

// Dimensions returns the size of the maze.
func (m *Maze) Dimensions() Dimensions {
	return m.dims
}

func (m *Maze) Rows() int { return m.dims.Rows }

func (m *Maze) Cols() int { return m.dims.Cols }

// Entrance returns the start cell.
func (m *Maze) Entrance() CellPosition {
	return m.dims.Entrance()
}

// Exit returns the goal cell.
func (m *Maze) Exit() CellPosition {
	return m.dims.Exit()
}

// InBound checks whether pos lies inside the grid.
func (m *Maze) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.dims.Rows && pos.Col >= 0 && pos.Col < m.dims.Cols
}

// At returns the state of the cell at pos. Out of bound positions read as Wall.
func (m *Maze) At(pos CellPosition) CellState {
	if !m.InBound(pos) {
		return Wall
	}
	return m.walls[pos.Row][pos.Col]
}

// IsPassable reports whether a player may move onto pos.
func (m *Maze) IsPassable(pos CellPosition) bool {
	return m.At(pos).IsPassable()
}

// IsExit reports whether pos is the exit cell.
func (m *Maze) IsExit(pos CellPosition) bool {
	return m.At(pos) == Exit
}

// OpenDegree counts the passable 4-neighbours of pos.
func (m *Maze) OpenDegree(pos CellPosition) int {
	degree := 0
	for _, d := range stepOffsets {
		if m.IsPassable(pos.Add(d)) {
			degree++
		}
	}
	return degree
}

// Walls returns a copy of the wall layer.
func (m *Maze) Walls() [][]CellState {
	walls := make([][]CellState, len(m.walls))
	for r, row := range m.walls {
		walls[r] = append([]CellState(nil), row...)
	}
	return walls
}

// Background returns a copy of the decorative layer.
func (m *Maze) Background() [][]int {
	background := make([][]int, len(m.background))
	for r, row := range m.background {
		background[r] = append([]int(nil), row...)
	}
	return background
}

func (m *Maze) set(pos CellPosition, s CellState) {
	m.walls[pos.Row][pos.Col] = s
}

// String provides a textual representation of the maze, one line per row.
func (m *Maze) String() string {
	var sb strings.Builder
	sb.Grow(m.dims.Rows * (m.dims.Cols + 1))
	for _, row := range m.walls {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
