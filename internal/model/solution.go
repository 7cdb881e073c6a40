package model

import (
	"math"

	"consav/internal/interp"
)

// Solution is one period's solved policy. CFunc maps normalized market
// resources to normalized consumption, one function per discrete regime
// (length 1 for models without regimes). MNrmMin is the lower bound of
// feasible market resources.
type Solution struct {
	CFunc   []*interp.Linear
	MNrmMin float64
}

// Consumption evaluates the regime-0 consumption function.
func (s *Solution) Consumption(m float64) float64 {
	return s.CFunc[0].Eval(m)
}

// ConsumptionIn evaluates the consumption function for a given regime.
func (s *Solution) ConsumptionIn(regime int, m float64) float64 {
	return s.CFunc[regime].Eval(m)
}

// MargValue is marginal value of market resources via the envelope
// condition: v'(m) = u'(c(m)).
func (s *Solution) MargValue(regime int, m, rho float64) float64 {
	return UtilityP(s.CFunc[regime].Eval(m), rho)
}

// Distance is the sup-norm gap between two solutions' consumption functions
// over a probe grid, the convergence measure for infinite-horizon iteration.
func Distance(a, b *Solution, probe []float64) float64 {
	if len(a.CFunc) != len(b.CFunc) {
		return math.Inf(1)
	}
	max := 0.0
	for r := range a.CFunc {
		for _, m := range probe {
			d := math.Abs(a.CFunc[r].Eval(m) - b.CFunc[r].Eval(m))
			if d > max {
				max = d
			}
		}
	}
	return max
}
