package experiment

import (
	"context"
	"fmt"

	"consav/internal/config"
	"consav/internal/dist"
	"consav/internal/model"
	"consav/internal/sim"
	"consav/internal/solver"
)

// ModelNames lists the models the registry can build.
func ModelNames() []string {
	return []string{"perfect_foresight", "indshock", "repagent", "repagent_markov"}
}

// Model couples a solver with a simulation engine factory for one
// configured model.
type Model struct {
	Name   string
	Solve  func(ctx context.Context) (*model.Solution, int, error)
	Engine func(sol *model.Solution) (sim.Engine, error)
}

// Build resolves a configuration into a runnable model.
func Build(cfg *config.Config) (*Model, error) {
	opts := solver.Options{
		Tolerance: cfg.Solver.Tolerance,
		MaxIter:   cfg.Solver.MaxIter,
	}

	switch cfg.Model {
	case "perfect_foresight":
		p := cfg.PerfForesight()
		return &Model{
			Name: cfg.Model,
			Solve: func(ctx context.Context) (*model.Solution, int, error) {
				sol, err := solver.SolvePerfForesight(p)
				return sol, 1, err
			},
			Engine: func(sol *model.Solution) (sim.Engine, error) {
				return sim.NewPerfForesightEngine(p, sol), nil
			},
		}, nil

	case "indshock":
		p := cfg.IndShock()
		return &Model{
			Name: cfg.Model,
			Solve: func(ctx context.Context) (*model.Solution, int, error) {
				return solver.SolveIndShock(ctx, p, opts)
			},
			Engine: func(sol *model.Solution) (sim.Engine, error) {
				shks, err := solver.BuildIncShkDstn(p.IncShk)
				if err != nil {
					return nil, err
				}
				return sim.NewIndShockEngine(p, sol, shks, cfg.Sim.AgentCount), nil
			},
		}, nil

	case "repagent":
		p := cfg.RepAgent()
		return &Model{
			Name: cfg.Model,
			Solve: func(ctx context.Context) (*model.Solution, int, error) {
				return solver.SolveRepAgent(ctx, p, opts)
			},
			Engine: func(sol *model.Solution) (sim.Engine, error) {
				shks, err := solver.BuildIncShkDstn(p.IncShk)
				if err != nil {
					return nil, err
				}
				return sim.NewRepAgentEngine(p, sol, shks), nil
			},
		}, nil

	case "repagent_markov":
		p, err := cfg.RepAgentMarkov()
		if err != nil {
			return nil, err
		}
		return &Model{
			Name: cfg.Model,
			Solve: func(ctx context.Context) (*model.Solution, int, error) {
				return solver.SolveRepAgentMarkov(ctx, p, opts)
			},
			Engine: func(sol *model.Solution) (sim.Engine, error) {
				shks := make([]*dist.Discrete, p.NumStates())
				for j := range shks {
					d, err := solver.BuildIncShkDstn(p.IncShk[j])
					if err != nil {
						return nil, err
					}
					shks[j] = d
				}
				chain, err := dist.NewMarkov(p.MrkvArray, cfg.Sim.Seed)
				if err != nil {
					return nil, err
				}
				return sim.NewRepAgentMarkovEngine(p, sol, shks, chain), nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown model: %s (available: %v)", cfg.Model, ModelNames())
	}
}
