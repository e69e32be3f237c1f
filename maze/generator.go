package maze

import (
	"fmt"
	"sync"
)

// Stage is a step of the generation lifecycle.
type Stage int

const (
	StageUninitialized Stage = iota
	StageCarved
	StagePathSolved
	StageTrapsPlaced
	StageTrapsSkipped
	StageReady
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageUninitialized:
		return "uninitialized"
	case StageCarved:
		return "carved"
	case StagePathSolved:
		return "path_solved"
	case StageTrapsPlaced:
		return "traps_placed"
	case StageTrapsSkipped:
		return "traps_skipped"
	case StageReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Options configures a generation.
type Options struct {
	Dimensions Dimensions
	TrapPolicy TrapPolicy

	// OnStage, when set, is called after every lifecycle transition.
	OnStage func(Stage)
}

// Validate rejects options that cannot produce a maze.
func (o Options) Validate() error {
	if err := o.Dimensions.Validate(); err != nil {
		return err
	}
	if o.TrapPolicy != TrapPolicyDeadEnds && o.TrapPolicy != TrapPolicyNone {
		return fmt.Errorf("policy %d: %w", o.TrapPolicy, ErrUnknownTrapPolicy)
	}
	return nil
}

// Result is everything one generation produces. The caller owns it exclusively.
type Result struct {
	Maze       *Maze
	Path       []CellPosition // entrance to exit, inclusive
	Traps      []Trap
	TrapPolicy TrapPolicy
	Stage      Stage
}

// Generate carves, solves and traps a new maze.
func Generate(opts Options, rng Random) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := &Result{TrapPolicy: opts.TrapPolicy}
	advance := func(s Stage) {
		res.Stage = s
		if opts.OnStage != nil {
			opts.OnStage(s)
		}
	}
	advance(StageUninitialized)

	res.Maze = newMaze(opts.Dimensions)
	carve(res.Maze, rng)
	advance(StageCarved)

	path, err := solve(res.Maze)
	if err != nil {
		return nil, err
	}
	res.Path = path
	advance(StagePathSolved)

	switch opts.TrapPolicy {
	case TrapPolicyDeadEnds:
		res.Traps = placeTraps(res.Maze, res.Path, rng)
		advance(StageTrapsPlaced)
	default:
		res.Traps = []Trap{}
		advance(StageTrapsSkipped)
	}

	advance(StageReady)
	return res, nil
}

// Generator produces mazes with fixed options from a shared random source.
// It is safe for concurrent use.
type Generator struct {
	opts Options
	rng  Random
	sync.Mutex
}

// NewGenerator validates opts up front so a misconfigured size fails at startup.
func NewGenerator(opts Options, rng Random) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRandom(0)
	}
	return &Generator{opts: opts, rng: rng}, nil
}

// Options returns the options the generator was built with.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate produces a fresh maze. onStage, when non-nil, overrides Options.OnStage for this call.
func (g *Generator) Generate(onStage func(Stage)) (*Result, error) {
	g.Lock()
	defer g.Unlock()

	opts := g.opts
	if onStage != nil {
		opts.OnStage = onStage
	}
	return Generate(opts, g.rng)
}
