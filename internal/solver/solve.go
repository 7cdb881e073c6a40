// Package solver implements the Bellman-equation solvers for the
// consumption-saving models. Every model iterates a one-period
// endogenous-grid backward step from a consume-everything terminal policy
// until the consumption function stops moving.
package solver

import (
	"context"
	"fmt"

	"consav/internal/dist"
	"consav/internal/interp"
	"consav/internal/model"
)

const (
	DefaultTolerance = 1e-6
	DefaultMaxIter   = 1000
)

type Options struct {
	Tolerance float64
	MaxIter   int
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	return o
}

// terminalSolution consumes all market resources: c(m) = m.
func terminalSolution(numStates int) *model.Solution {
	cFuncs := make([]*interp.Linear, numStates)
	for i := range cFuncs {
		cf, _ := interp.NewLinear([]float64{0.0, 1.0}, []float64{0.0, 1.0})
		cFuncs[i] = cf
	}
	return &model.Solution{CFunc: cFuncs, MNrmMin: 0.0}
}

// probeGrid is where successive solutions are compared for convergence.
func probeGrid(aGrid []float64) []float64 {
	probe := make([]float64, len(aGrid))
	for i, a := range aGrid {
		probe[i] = a + 1.0
	}
	return probe
}

func iterate(ctx context.Context, opts Options, probe []float64, step func(*model.Solution) (*model.Solution, error)) (*model.Solution, int, error) {
	sol := terminalSolution(1)

	for iter := 1; iter <= opts.MaxIter; iter++ {
		select {
		case <-ctx.Done():
			return nil, iter, ctx.Err()
		default:
		}

		next, err := step(sol)
		if err != nil {
			return nil, iter, err
		}
		if model.Distance(next, sol, probe) < opts.Tolerance {
			return next, iter, nil
		}
		sol = next
	}
	return sol, opts.MaxIter, fmt.Errorf("no convergence within %d iterations", opts.MaxIter)
}

// SolveIndShock solves the income-shock consumer to convergence.
func SolveIndShock(ctx context.Context, p model.IndShockParams, opts Options) (*model.Solution, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	opts = opts.withDefaults()

	shks, err := BuildIncShkDstn(p.IncShk)
	if err != nil {
		return nil, 0, err
	}
	aXtra := p.AssetGrid.Build()

	return iterate(ctx, opts, probeGrid(aXtra), func(next *model.Solution) (*model.Solution, error) {
		return solveIndShockStep(next, p, shks, aXtra)
	})
}

// SolveRepAgent solves the representative agent to convergence.
func SolveRepAgent(ctx context.Context, p model.RepAgentParams, opts Options) (*model.Solution, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	opts = opts.withDefaults()

	shks, err := BuildIncShkDstn(p.IncShk)
	if err != nil {
		return nil, 0, err
	}
	aGrid := p.AssetGrid.Build()

	return iterate(ctx, opts, probeGrid(aGrid), func(next *model.Solution) (*model.Solution, error) {
		return solveRepAgentStep(next, p, shks, aGrid)
	})
}

// SolveRepAgentMarkov solves the Markov-switching representative agent to
// convergence. The returned solution carries one consumption function per
// regime.
func SolveRepAgentMarkov(ctx context.Context, p model.RepAgentMarkovParams, opts Options) (*model.Solution, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	opts = opts.withDefaults()

	shks := make([]*dist.Discrete, p.NumStates())
	for j := range shks {
		d, err := BuildIncShkDstn(p.IncShk[j])
		if err != nil {
			return nil, 0, fmt.Errorf("regime %d: %w", j, err)
		}
		shks[j] = d
	}
	aGrid := p.AssetGrid.Build()
	probe := probeGrid(aGrid)

	sol := terminalSolution(p.NumStates())
	for iter := 1; iter <= opts.MaxIter; iter++ {
		select {
		case <-ctx.Done():
			return nil, iter, ctx.Err()
		default:
		}

		next, err := solveRepAgentMarkovStep(sol, p, shks, aGrid)
		if err != nil {
			return nil, iter, err
		}
		if model.Distance(next, sol, probe) < opts.Tolerance {
			return next, iter, nil
		}
		sol = next
	}
	return sol, opts.MaxIter, fmt.Errorf("no convergence within %d iterations", opts.MaxIter)
}
