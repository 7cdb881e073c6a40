package sim

import "consav/internal/model"

// PerfForesightEngine simulates the shock-free consumer. Deterministic, so
// the seed is ignored.
type PerfForesightEngine struct {
	params model.PerfForesightParams
	sol    *model.Solution

	aNrm float64
	pLvl float64
}

func NewPerfForesightEngine(p model.PerfForesightParams, sol *model.Solution) *PerfForesightEngine {
	return &PerfForesightEngine{params: p, sol: sol}
}

func (e *PerfForesightEngine) Initialize(seed int64) {
	e.aNrm = 0.0
	e.pLvl = 1.0
}

func (e *PerfForesightEngine) Variables() []string {
	return []string{"mNrm", "cNrm", "aNrm", "pLvl"}
}

func (e *PerfForesightEngine) Step() map[string]float64 {
	p := e.params
	mNrm := p.Rfree/p.PermGroFac*e.aNrm + 1.0
	cNrm := e.sol.Consumption(mNrm)
	e.aNrm = mNrm - cNrm
	e.pLvl *= p.PermGroFac

	return map[string]float64{
		"mNrm": mNrm, "cNrm": cNrm, "aNrm": e.aNrm, "pLvl": e.pLvl,
	}
}
