package service

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-trapmaze/maze"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/beka-birhanu/vinom-trapmaze/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// MazeFactory produces a freshly generated maze for every level load.
type MazeFactory func(ctx context.Context) (*maze.Result, error)

// NewMazeFactory wraps g so every generation is traced, with one span event per stage.
func NewMazeFactory(g *maze.Generator, logger i.Logger) MazeFactory {
	tracer := telemetry.Tracer("maze")
	opts := g.Options()
	logger.Info(fmt.Sprintf("maze generator ready: %dx%d, trap policy %s", opts.Dimensions.Rows, opts.Dimensions.Cols, opts.TrapPolicy))

	return func(ctx context.Context) (*maze.Result, error) {
		_, span := tracer.Start(ctx, "maze.generate")
		defer span.End()

		start := time.Now()
		res, err := g.Generate(func(s maze.Stage) {
			span.AddEvent(s.String())
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Error(fmt.Sprintf("generating maze: %s", err))
			return nil, err
		}

		span.SetAttributes(
			attribute.Int("maze.rows", opts.Dimensions.Rows),
			attribute.Int("maze.cols", opts.Dimensions.Cols),
			attribute.String("maze.trap_policy", res.TrapPolicy.String()),
			attribute.Int("maze.path_length", len(res.Path)),
			attribute.Int("maze.trap_count", len(res.Traps)),
			attribute.Int64("maze.generation_us", time.Since(start).Microseconds()),
		)
		return res, nil
	}
}
