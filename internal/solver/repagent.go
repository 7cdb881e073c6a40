package solver

import (
	"math"

	"consav/internal/dist"
	"consav/internal/interp"
	"consav/internal/model"
)

// solveRepAgentStep performs one endogenous-grid backward step for the
// representative agent. End-of-period assets become next period's capital
// per effective labor; the gross return and wage are the Cobb-Douglas
// marginal products realized after next period's shocks.
func solveRepAgentStep(next *model.Solution, p model.RepAgentParams, shks *dist.Discrete, aGrid []float64) (*model.Solution, error) {
	permShks := shks.X(0)
	tranShks := shks.X(1)

	n := len(aGrid)
	mGrid := make([]float64, n+1)
	cGrid := make([]float64, n+1)
	mGrid[0] = 0.0
	cGrid[0] = 0.0

	for i, a := range aGrid {
		endOfPrdvP := 0.0
		for k, prob := range shks.Pmv {
			psi := permShks[k]
			theta := tranShks[k]
			gro := p.PermGroFac * psi

			kNext := a / gro
			kToL := kNext / theta
			rFree := 1.0 - p.DeprFac + p.CapShare*math.Pow(kToL, p.CapShare-1.0)
			wRte := (1.0 - p.CapShare) * math.Pow(kToL, p.CapShare)
			mNext := rFree*kNext + wRte*theta

			vPNext := next.MargValue(0, mNext, p.CRRA)
			endOfPrdvP += prob * rFree * math.Pow(gro, -p.CRRA) * vPNext
		}
		endOfPrdvP *= p.DiscFac

		c := model.UtilityPInv(endOfPrdvP, p.CRRA)
		mGrid[i+1] = a + c
		cGrid[i+1] = c
	}

	cFunc, err := interp.NewLinear(mGrid, cGrid)
	if err != nil {
		return nil, err
	}
	return &model.Solution{CFunc: []*interp.Linear{cFunc}, MNrmMin: 0.0}, nil
}
