package sim

import (
	"math"

	"consav/internal/dist"
	"consav/internal/model"
)

// RepAgentMarkovEngine simulates the Markov-switching representative agent:
// the regime is drawn first each period, then regime-specific shocks and
// growth apply.
type RepAgentMarkovEngine struct {
	params model.RepAgentMarkovParams
	sol    *model.Solution
	shks   []*dist.Discrete
	chain  *dist.Markov

	aNrm float64
	pLvl float64
	mrkv int
}

func NewRepAgentMarkovEngine(p model.RepAgentMarkovParams, sol *model.Solution, shks []*dist.Discrete, chain *dist.Markov) *RepAgentMarkovEngine {
	return &RepAgentMarkovEngine{params: p, sol: sol, shks: shks, chain: chain}
}

func (e *RepAgentMarkovEngine) Initialize(seed int64) {
	for i, d := range e.shks {
		d.Reseed(seed + int64(i) + 1)
	}
	e.chain.Reseed(seed)
	e.aNrm = 1.0
	e.pLvl = 1.0
	e.mrkv = e.params.MrkvNow
}

func (e *RepAgentMarkovEngine) Variables() []string {
	return []string{"Mrkv", "kNrm", "yNrm", "Rfree", "wRte", "mNrm", "cNrm", "aNrm", "pLvl"}
}

func (e *RepAgentMarkovEngine) Step() map[string]float64 {
	p := e.params
	e.mrkv = e.chain.Draw(e.mrkv)

	ev := e.shks[e.mrkv].DrawEvents(1)[0]
	psi := e.shks[e.mrkv].X(0)[ev]
	theta := e.shks[e.mrkv].X(1)[ev]
	gro := p.PermGroFac[e.mrkv] * psi

	kNrm := e.aNrm / gro
	kToL := kNrm / theta
	rFree := 1.0 - p.DeprFac + p.CapShare*math.Pow(kToL, p.CapShare-1.0)
	wRte := (1.0 - p.CapShare) * math.Pow(kToL, p.CapShare)
	yNrm := math.Pow(kNrm, p.CapShare) * math.Pow(theta, 1.0-p.CapShare)
	mNrm := rFree*kNrm + wRte*theta

	cNrm := e.sol.ConsumptionIn(e.mrkv, mNrm)
	e.aNrm = mNrm - cNrm
	e.pLvl *= gro

	return map[string]float64{
		"Mrkv": float64(e.mrkv), "kNrm": kNrm, "yNrm": yNrm,
		"Rfree": rFree, "wRte": wRte, "mNrm": mNrm, "cNrm": cNrm,
		"aNrm": e.aNrm, "pLvl": e.pLvl,
	}
}
