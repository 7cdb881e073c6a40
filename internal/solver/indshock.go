package solver

import (
	"math"

	"consav/internal/dist"
	"consav/internal/interp"
	"consav/internal/model"
)

// solveIndShockStep performs one endogenous-grid backward step for the
// income-shock consumer. Given next period's solution it computes
// end-of-period marginal value over the asset grid, inverts the first order
// condition, and rebuilds the consumption function on the implied
// endogenous market-resource grid.
func solveIndShockStep(next *model.Solution, p model.IndShockParams, shks *dist.Discrete, aXtra []float64) (*model.Solution, error) {
	permShks := shks.X(0)
	tranShks := shks.X(1)

	permShkMin := minOf(permShks)
	tranShkMin := minOf(tranShks)

	boroCnstNat := (next.MNrmMin - tranShkMin) * p.PermGroFac * permShkMin / p.Rfree
	mNrmMin := boroCnstNat
	if !math.IsNaN(p.BoroCnst) && p.BoroCnst > mNrmMin {
		mNrmMin = p.BoroCnst
	}

	beta := p.DiscFac * p.LivPrb
	n := len(aXtra)
	mGrid := make([]float64, n+1)
	cGrid := make([]float64, n+1)
	mGrid[0] = mNrmMin
	cGrid[0] = 0.0

	for i, ax := range aXtra {
		a := mNrmMin + ax
		endOfPrdvP := 0.0
		for k, prob := range shks.Pmv {
			psi := permShks[k]
			theta := tranShks[k]
			gro := p.PermGroFac * psi
			mNext := p.Rfree/gro*a + theta
			vPNext := next.MargValue(0, mNext, p.CRRA)
			endOfPrdvP += prob * math.Pow(gro, -p.CRRA) * vPNext
		}
		endOfPrdvP *= beta * p.Rfree

		c := model.UtilityPInv(endOfPrdvP, p.CRRA)
		mGrid[i+1] = a + c
		cGrid[i+1] = c
	}

	cFunc, err := interp.NewLinear(mGrid, cGrid)
	if err != nil {
		return nil, err
	}
	return &model.Solution{CFunc: []*interp.Linear{cFunc}, MNrmMin: mNrmMin}, nil
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
