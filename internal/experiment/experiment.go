package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"consav/internal/config"
	"consav/internal/metrics"
	"consav/internal/model"
	"consav/internal/sim"
)

// Experiment runs one configured model end to end: solve to convergence,
// then simulate the solved policy.
type Experiment struct {
	cfg *config.Config
	mdl *Model

	Solution   *model.Solution
	SolveIters int
	SolveTime  time.Duration
	SimTime    time.Duration
}

func New(cfg *config.Config) (*Experiment, error) {
	mdl, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, mdl: mdl}, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Solve(ctx context.Context) error {
	log := zerolog.Ctx(ctx)
	start := time.Now()
	sol, iters, err := e.mdl.Solve(ctx)
	if err != nil {
		return fmt.Errorf("solving %s: %w", e.mdl.Name, err)
	}
	e.Solution = sol
	e.SolveIters = iters
	e.SolveTime = time.Since(start)
	log.Debug().
		Str("model", e.mdl.Name).
		Int("iterations", iters).
		Dur("elapsed", e.SolveTime).
		Msg("solved")
	return nil
}

func (e *Experiment) Simulate(ctx context.Context) (*sim.Result, error) {
	if e.Solution == nil {
		return nil, fmt.Errorf("model not solved")
	}

	engine, err := e.mdl.Engine(e.Solution)
	if err != nil {
		return nil, err
	}

	simulator := sim.New(engine)
	for _, m := range metrics.Defaults() {
		simulator.AddMetric(m)
	}

	start := time.Now()
	result, err := simulator.Run(ctx, sim.Config{
		Periods: e.cfg.Sim.Periods,
		Seed:    e.cfg.Sim.Seed,
		Track:   e.cfg.Sim.Track,
	})
	if err != nil {
		return result, err
	}
	e.SimTime = time.Since(start)

	zerolog.Ctx(ctx).Debug().
		Str("model", e.mdl.Name).
		Int("periods", result.Periods).
		Dur("elapsed", e.SimTime).
		Msg("simulated")
	return result, nil
}

// NewEngine exposes the engine factory for callers that drive the
// simulation themselves (the live view).
func (e *Experiment) NewEngine() (sim.Engine, error) {
	if e.Solution == nil {
		return nil, fmt.Errorf("model not solved")
	}
	return e.mdl.Engine(e.Solution)
}
