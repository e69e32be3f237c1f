package maze

// CellState is the value stored in the wall layer of a maze grid.
type CellState int

const (
	Wall CellState = 3  // Wall is impassable and is the initial value of every cell.
	Open CellState = -1 // Open is a carved, passable cell.
	Exit CellState = 10 // Exit is passable and completes the level when entered.
)

// IsPassable reports whether a player may stand on a cell in this state.
func (s CellState) IsPassable() bool {
	return s == Open || s == Exit
}

// String returns the single-character representation used by Maze.String.
func (s CellState) String() string {
	switch s {
	case Open:
		return "."
	case Exit:
		return "E"
	default:
		return "#"
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Add returns the position offset by delta.
func (p CellPosition) Add(delta CellPosition) CellPosition {
	return CellPosition{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Adjacent reports whether p and o are 4-neighbours.
func (p CellPosition) Adjacent(o CellPosition) bool {
	dr, dc := p.Row-o.Row, p.Col-o.Col
	return dr*dr+dc*dc == 1
}

// Directions maps movement names to unit offsets.
var Directions = map[string]CellPosition{
	"North": {Row: -1, Col: 0},
	"South": {Row: 1, Col: 0},
	"East":  {Row: 0, Col: 1},
	"West":  {Row: 0, Col: -1},
}

// carveOffsets is the fixed order carving inspects lattice neighbours in: up, down, left, right.
var carveOffsets = [4]CellPosition{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}

// stepOffsets is the order the solver expands neighbours in: right, left, down, up.
var stepOffsets = [4]CellPosition{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
