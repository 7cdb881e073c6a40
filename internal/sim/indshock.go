package sim

import (
	"math/rand"

	"consav/internal/dist"
	"consav/internal/model"
)

// IndShockEngine simulates a cross section of income-shock consumers facing
// an exogenous return. Reported variables are cross-sectional means. Agents
// who die are replaced by newborns with no assets.
type IndShockEngine struct {
	params     model.IndShockParams
	sol        *model.Solution
	shks       *dist.Discrete
	agentCount int

	rng  *rand.Rand
	aNrm []float64
	pLvl []float64
}

func NewIndShockEngine(p model.IndShockParams, sol *model.Solution, shks *dist.Discrete, agentCount int) *IndShockEngine {
	if agentCount < 1 {
		agentCount = 1
	}
	return &IndShockEngine{params: p, sol: sol, shks: shks, agentCount: agentCount}
}

func (e *IndShockEngine) Initialize(seed int64) {
	e.shks.Reseed(seed)
	e.rng = rand.New(rand.NewSource(seed + 1))
	e.aNrm = make([]float64, e.agentCount)
	e.pLvl = make([]float64, e.agentCount)
	for i := range e.pLvl {
		e.pLvl[i] = 1.0
	}
}

func (e *IndShockEngine) Variables() []string {
	return []string{"mNrm", "cNrm", "aNrm", "pLvl"}
}

func (e *IndShockEngine) Step() map[string]float64 {
	p := e.params
	events := e.shks.DrawEvents(e.agentCount)

	var mSum, cSum, aSum, pSum float64
	for i, ev := range events {
		// Mortality: replace the agent with a newborn.
		if p.LivPrb < 1.0 && e.rng.Float64() > p.LivPrb {
			e.aNrm[i] = 0.0
			e.pLvl[i] = 1.0
		}

		psi := e.shks.X(0)[ev]
		theta := e.shks.X(1)[ev]
		gro := p.PermGroFac * psi

		mNrm := p.Rfree/gro*e.aNrm[i] + theta
		cNrm := e.sol.Consumption(mNrm)
		e.aNrm[i] = mNrm - cNrm
		e.pLvl[i] *= gro

		mSum += mNrm
		cSum += cNrm
		aSum += e.aNrm[i]
		pSum += e.pLvl[i]
	}

	n := float64(e.agentCount)
	return map[string]float64{
		"mNrm": mSum / n, "cNrm": cSum / n, "aNrm": aSum / n, "pLvl": pSum / n,
	}
}
