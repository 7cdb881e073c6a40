package sim

import (
	"math"

	"consav/internal/dist"
	"consav/internal/model"
)

// RepAgentEngine simulates the solved representative agent. End-of-period
// assets become capital; factor prices are the realized Cobb-Douglas
// marginal products each period.
type RepAgentEngine struct {
	params model.RepAgentParams
	sol    *model.Solution
	shks   *dist.Discrete

	aNrm float64
	pLvl float64
}

func NewRepAgentEngine(p model.RepAgentParams, sol *model.Solution, shks *dist.Discrete) *RepAgentEngine {
	return &RepAgentEngine{params: p, sol: sol, shks: shks}
}

func (e *RepAgentEngine) Initialize(seed int64) {
	e.shks.Reseed(seed)
	// Start near the deterministic steady state of the capital ratio.
	e.aNrm = 1.0
	e.pLvl = 1.0
}

func (e *RepAgentEngine) Variables() []string {
	return []string{"kNrm", "yNrm", "Rfree", "wRte", "mNrm", "cNrm", "aNrm", "pLvl"}
}

func (e *RepAgentEngine) Step() map[string]float64 {
	p := e.params
	ev := e.shks.DrawEvents(1)[0]
	psi := e.shks.X(0)[ev]
	theta := e.shks.X(1)[ev]
	gro := p.PermGroFac * psi

	kNrm := e.aNrm / gro
	kToL := kNrm / theta
	rFree := 1.0 - p.DeprFac + p.CapShare*math.Pow(kToL, p.CapShare-1.0)
	wRte := (1.0 - p.CapShare) * math.Pow(kToL, p.CapShare)
	yNrm := math.Pow(kNrm, p.CapShare) * math.Pow(theta, 1.0-p.CapShare)
	mNrm := rFree*kNrm + wRte*theta

	cNrm := e.sol.Consumption(mNrm)
	e.aNrm = mNrm - cNrm
	e.pLvl *= gro

	return map[string]float64{
		"kNrm": kNrm, "yNrm": yNrm, "Rfree": rFree, "wRte": wRte,
		"mNrm": mNrm, "cNrm": cNrm, "aNrm": e.aNrm, "pLvl": e.pLvl,
	}
}
