package solver

import (
	"fmt"
	"math"

	"consav/internal/interp"
	"consav/internal/model"
)

// SolvePerfForesight returns the closed-form infinite-horizon perfect
// foresight consumption function: linear in market resources plus human
// wealth, with marginal propensity to consume 1 - (R beta ell)^(1/rho)/R.
func SolvePerfForesight(p model.PerfForesightParams) (*model.Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.PermGroFac >= p.Rfree {
		return nil, fmt.Errorf("human wealth diverges: growth factor %g >= return %g", p.PermGroFac, p.Rfree)
	}

	thorn := math.Pow(p.Rfree*p.DiscFac*p.LivPrb, 1.0/p.CRRA)
	mpc := 1.0 - thorn/p.Rfree

	// Discounted labor income beyond the unit income already in m.
	gr := p.PermGroFac / p.Rfree
	hNrm := gr / (1.0 - gr)

	mNrmMin := -hNrm
	cFunc, err := interp.NewLinear(
		[]float64{mNrmMin, mNrmMin + 1.0},
		[]float64{0.0, mpc},
	)
	if err != nil {
		return nil, err
	}
	return &model.Solution{CFunc: []*interp.Linear{cFunc}, MNrmMin: mNrmMin}, nil
}
