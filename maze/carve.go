package maze

// carve opens a spanning tree over the odd lattice of m, rooted at the entrance.
// It walks with an explicit stack so large grids do not grow the goroutine stack.
func carve(m *Maze, rng Random) {
	current := m.Entrance()
	m.set(current, Open)

	stack := make([]CellPosition, 0, (m.Rows()/2)*(m.Cols()/2))
	candidates := make([]CellPosition, 0, len(carveOffsets))
	for {
		candidates = m.carveCandidates(current, candidates[:0])
		if len(candidates) > 0 {
			next := candidates[rng.Intn(len(candidates))]
			between := CellPosition{Row: (current.Row + next.Row) / 2, Col: (current.Col + next.Col) / 2}
			m.set(between, Open)
			m.set(next, Open)
			stack = append(stack, current)
			current = next
			continue
		}

		if len(stack) == 0 {
			return
		}
		current = pop(&stack)
	}
}

// carveCandidates appends the lattice neighbours of pos that are inside the border and uncarved.
func (m *Maze) carveCandidates(pos CellPosition, dst []CellPosition) []CellPosition {
	for _, d := range carveOffsets {
		next := pos.Add(d)
		if next.Row < 1 || next.Row > m.Rows()-2 || next.Col < 1 || next.Col > m.Cols()-2 {
			continue
		}
		if m.walls[next.Row][next.Col] == Wall {
			dst = append(dst, next)
		}
	}
	return dst
}

// pop removes and returns the last element of a stack of CellPositions.
func pop(s *[]CellPosition) CellPosition {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
