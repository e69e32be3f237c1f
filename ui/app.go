package ui

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/vinom-trapmaze/game"
	"github.com/beka-birhanu/vinom-trapmaze/service"
	"github.com/beka-birhanu/vinom-trapmaze/telemetry"
	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
)

// App plays maze levels in the terminal, one at a time.
type App struct {
	screen   *Screen
	renderer *Renderer
	newMaze  service.MazeFactory
	lives    int
	level    *game.Level
	message  string
	running  bool
}

// NewApp creates an App drawing on screen.
func NewApp(screen *Screen, newMaze service.MazeFactory, lives int) (*App, error) {
	if newMaze == nil {
		return nil, service.ErrNoMazeFactory
	}
	if lives <= 0 {
		lives = game.DefaultLives
	}
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		newMaze:  newMaze,
		lives:    lives,
		running:  true,
	}, nil
}

// Run executes the main loop until the player quits, then closes the screen.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	if err := a.reset(ctx); err != nil {
		return err
	}

	for a.running {
		a.renderer.Render(a.level.Snapshot(), a.message)
		if err := a.handleEvent(ctx, a.screen.PollEvent()); err != nil {
			return err
		}
	}
	return nil
}

// reset loads a freshly generated level.
func (a *App) reset(ctx context.Context) error {
	ctx, span := telemetry.Tracer("ui").Start(ctx, "ui.new_level")
	defer span.End()

	res, err := a.newMaze(ctx)
	if err != nil {
		return fmt.Errorf("generating maze: %w", err)
	}
	level, err := game.NewLevel(res, a.lives)
	if err != nil {
		return err
	}

	span.SetAttributes(
		attribute.Int("maze.path_length", len(res.Path)),
		attribute.Int("maze.trap_count", len(res.Traps)),
	)
	a.level = level
	a.message = fmt.Sprintf("find the exit, hidden traps: %d", len(res.Traps))
	return nil
}

func (a *App) handleEvent(ctx context.Context, ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		a.screen.Sync()
	case nil:
		// the screen was finalized
		a.running = false
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (a *App) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false

	case tcell.KeyUp:
		a.move("North")
	case tcell.KeyDown:
		a.move("South")
	case tcell.KeyLeft:
		a.move("West")
	case tcell.KeyRight:
		a.move("East")

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.running = false
		case 'r', 'R':
			return a.reset(ctx)
		case 'w', 'W':
			a.move("North")
		case 's', 'S':
			a.move("South")
		case 'a', 'A':
			a.move("West")
		case 'd', 'D':
			a.move("East")
		}
	}
	return nil
}

// move applies a move and describes the outcome in the message line.
func (a *App) move(direction string) {
	ev, err := a.level.Move(direction)
	if err != nil {
		a.message = "level over: press r for a new maze"
		return
	}

	switch ev.Kind {
	case game.EventMoved:
		a.message = ""
	case game.EventBlocked:
		a.message = "a wall blocks the way"
	case game.EventTrapTriggered:
		a.message = fmt.Sprintf("a trap! %d lives left", ev.LivesLeft)
	case game.EventExitReached:
		a.message = fmt.Sprintf("escaped in %d steps! press r for a new maze", a.level.Snapshot().Steps)
	case game.EventLevelLost:
		a.message = "out of lives: press r for a new maze"
	}
}
