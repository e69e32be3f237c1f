// Command trapmaze plays trap mazes in the terminal without the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/beka-birhanu/vinom-trapmaze/config"
	"github.com/beka-birhanu/vinom-trapmaze/game"
	"github.com/beka-birhanu/vinom-trapmaze/logger"
	"github.com/beka-birhanu/vinom-trapmaze/maze"
	"github.com/beka-birhanu/vinom-trapmaze/service"
	"github.com/beka-birhanu/vinom-trapmaze/telemetry"
	"github.com/beka-birhanu/vinom-trapmaze/ui"
	"github.com/joho/godotenv"
)

func main() {
	rows := flag.Int("rows", maze.DefaultDimensions.Rows, "maze rows, odd and at least 5")
	cols := flag.Int("cols", maze.DefaultDimensions.Cols, "maze columns, odd and at least 5")
	seed := flag.Int64("seed", 0, "generator seed, 0 for a time based seed")
	traps := flag.String("traps", maze.TrapPolicyDeadEnds.String(), "trap policy: dead-ends or none")
	lives := flag.Int("lives", game.DefaultLives, "lives per level")
	logPath := flag.String("log", "", "append logs to this file")
	flag.Parse()

	// Not fatal: env vars might be set directly
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	policy, err := maze.ParseTrapPolicy(*traps)
	if err != nil {
		log.Fatalf("-traps: %v", err)
	}

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Opening log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	mazeLogger, err := logger.New("MAZE", config.ColorBlue, logOut)
	if err != nil {
		log.Fatalf("Creating logger: %v", err)
	}

	ctx := context.Background()
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	gen, err := maze.NewGenerator(maze.Options{
		Dimensions: maze.Dimensions{Rows: *rows, Cols: *cols},
		TrapPolicy: policy,
	}, maze.NewRandom(*seed))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	app, err := ui.NewApp(screen, service.NewMazeFactory(gen, mazeLogger), *lives)
	if err != nil {
		screen.Close()
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}
