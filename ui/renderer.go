package ui

import (
	"fmt"

	"github.com/beka-birhanu/vinom-trapmaze/game"
	"github.com/beka-birhanu/vinom-trapmaze/maze"
	"github.com/gdamore/tcell/v2"
)

const (
	runeWall   = '#'
	runeOpen   = ' '
	runeExit   = 'E'
	runeTrap   = '^'
	runePlayer = '@'
)

// Renderer handles drawing a level to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the fogged level with a status line and msg below it.
func (r *Renderer) Render(state game.State, msg string) {
	r.screen.Clear()

	for row, cells := range state.Walls {
		for col, cell := range cells {
			ch, style := cellLook(cell)
			r.screen.SetContent(col, row, ch, style)
		}
	}

	trapStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	for _, pos := range state.RevealedTraps {
		r.screen.SetContent(pos.Col, pos.Row, runeTrap, trapStyle)
	}

	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(state.Player.Col, state.Player.Row, runePlayer, playerStyle)

	status := fmt.Sprintf("lives %d  steps %d  traps %d  %s", state.Lives, state.Steps, state.TrapsTriggered, state.Status)
	r.RenderMessage(status, state.Rows+1)
	r.RenderMessage(msg, state.Rows+2)
	r.RenderMessage("arrows/wasd move  r new maze  q quit", state.Rows+3)

	r.screen.Show()
}

// cellLook returns the rune and style for a wall-layer cell.
func cellLook(cell maze.CellState) (rune, tcell.Style) {
	switch cell {
	case maze.Wall:
		return runeWall, tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case maze.Exit:
		return runeExit, tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	default:
		return runeOpen, tcell.StyleDefault
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
