package solver

import (
	"math"

	"consav/internal/dist"
	"consav/internal/interp"
	"consav/internal/model"
)

// solveRepAgentMarkovStep is the Markov-switching analogue of
// solveRepAgentStep: one backward step per current regime, with the
// expectation taken over next-period regimes weighted by the transition
// matrix and using regime-specific growth and shock distributions.
func solveRepAgentMarkovStep(next *model.Solution, p model.RepAgentMarkovParams, shks []*dist.Discrete, aGrid []float64) (*model.Solution, error) {
	numStates := p.NumStates()
	n := len(aGrid)
	cFuncs := make([]*interp.Linear, numStates)

	for i := 0; i < numStates; i++ {
		mGrid := make([]float64, n+1)
		cGrid := make([]float64, n+1)
		mGrid[0] = 0.0
		cGrid[0] = 0.0

		for g, a := range aGrid {
			endOfPrdvP := 0.0
			for j := 0; j < numStates; j++ {
				trans := p.MrkvArray[i][j]
				if trans == 0 {
					continue
				}
				permShks := shks[j].X(0)
				tranShks := shks[j].X(1)
				inner := 0.0
				for k, prob := range shks[j].Pmv {
					psi := permShks[k]
					theta := tranShks[k]
					gro := p.PermGroFac[j] * psi

					kNext := a / gro
					kToL := kNext / theta
					rFree := 1.0 - p.DeprFac + p.CapShare*math.Pow(kToL, p.CapShare-1.0)
					wRte := (1.0 - p.CapShare) * math.Pow(kToL, p.CapShare)
					mNext := rFree*kNext + wRte*theta

					vPNext := next.MargValue(j, mNext, p.CRRA)
					inner += prob * rFree * math.Pow(gro, -p.CRRA) * vPNext
				}
				endOfPrdvP += trans * inner
			}
			endOfPrdvP *= p.DiscFac

			c := model.UtilityPInv(endOfPrdvP, p.CRRA)
			mGrid[g+1] = a + c
			cGrid[g+1] = c
		}

		cf, err := interp.NewLinear(mGrid, cGrid)
		if err != nil {
			return nil, err
		}
		cFuncs[i] = cf
	}

	return &model.Solution{CFunc: cFuncs, MNrmMin: 0.0}, nil
}
