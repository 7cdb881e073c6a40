package model

import (
	"fmt"
	"math"
)

// GridParams controls the end-of-period asset grid used by the solvers.
type GridParams struct {
	Min     float64
	Max     float64
	Count   int
	NestFac int
}

func (g GridParams) Validate() error {
	if g.Count < 2 {
		return fmt.Errorf("asset grid needs at least 2 points, got %d", g.Count)
	}
	if g.Max <= g.Min {
		return fmt.Errorf("asset grid max %g must exceed min %g", g.Max, g.Min)
	}
	if g.Min < 0 {
		return fmt.Errorf("asset grid min must be nonnegative, got %g", g.Min)
	}
	return nil
}

// Build constructs the asset grid.
func (g GridParams) Build() []float64 {
	return ExpMultGrid(g.Min, g.Max, g.Count, g.NestFac)
}

// IncShkParams describes one period's income shock distribution: mean-one
// lognormal permanent and transitory shocks, with an unemployment point mass
// mixed into the transitory shock.
type IncShkParams struct {
	PermShkStd   float64
	TranShkStd   float64
	PermShkCount int
	TranShkCount int
	UnempPrb     float64
	IncUnemp     float64
}

func (p IncShkParams) Validate() error {
	if p.PermShkStd < 0 || p.TranShkStd < 0 {
		return fmt.Errorf("shock standard deviations must be nonnegative")
	}
	if p.PermShkCount < 1 || p.TranShkCount < 1 {
		return fmt.Errorf("shock approximation counts must be positive")
	}
	if p.UnempPrb < 0 || p.UnempPrb >= 1 {
		return fmt.Errorf("unemployment probability must be in [0,1), got %g", p.UnempPrb)
	}
	if p.IncUnemp < 0 {
		return fmt.Errorf("unemployment income must be nonnegative, got %g", p.IncUnemp)
	}
	return nil
}

// PerfForesightParams parameterize the perfect foresight consumer.
type PerfForesightParams struct {
	CRRA       float64
	DiscFac    float64
	Rfree      float64
	LivPrb     float64
	PermGroFac float64
}

func (p PerfForesightParams) Validate() error {
	if p.CRRA <= 0 {
		return fmt.Errorf("risk aversion must be positive, got %g", p.CRRA)
	}
	if p.DiscFac <= 0 || p.DiscFac > 1 {
		return fmt.Errorf("discount factor must be in (0,1], got %g", p.DiscFac)
	}
	if p.Rfree <= 0 {
		return fmt.Errorf("gross return must be positive, got %g", p.Rfree)
	}
	if p.LivPrb <= 0 || p.LivPrb > 1 {
		return fmt.Errorf("survival probability must be in (0,1], got %g", p.LivPrb)
	}
	if p.PermGroFac <= 0 {
		return fmt.Errorf("permanent growth factor must be positive, got %g", p.PermGroFac)
	}
	// Absolute impatience keeps the infinite-horizon problem well posed.
	thorn := math.Pow(p.Rfree*p.DiscFac*p.LivPrb, 1.0/p.CRRA)
	if thorn/p.Rfree >= 1.0 {
		return fmt.Errorf("return impatience condition violated: (R beta)^(1/rho)/R = %g >= 1", thorn/p.Rfree)
	}
	return nil
}

// IndShockParams parameterize the income-shock consumer: perfect foresight
// plus the shock distribution and the asset grid.
type IndShockParams struct {
	PerfForesightParams
	IncShk    IncShkParams
	BoroCnst  float64 // artificial borrowing limit; NaN means none
	AssetGrid GridParams
}

func (p IndShockParams) Validate() error {
	if err := p.PerfForesightParams.Validate(); err != nil {
		return err
	}
	if err := p.IncShk.Validate(); err != nil {
		return err
	}
	return p.AssetGrid.Validate()
}

// RepAgentParams parameterize the representative agent with Cobb-Douglas
// production: output per unit of effective labor is k^alpha, capital earns
// its marginal product and depreciates at rate DeprFac.
type RepAgentParams struct {
	CRRA       float64
	DiscFac    float64
	CapShare   float64
	DeprFac    float64
	PermGroFac float64
	IncShk     IncShkParams
	AssetGrid  GridParams
}

func (p RepAgentParams) Validate() error {
	if p.CRRA <= 0 {
		return fmt.Errorf("risk aversion must be positive, got %g", p.CRRA)
	}
	if p.DiscFac <= 0 || p.DiscFac > 1 {
		return fmt.Errorf("discount factor must be in (0,1], got %g", p.DiscFac)
	}
	if p.CapShare <= 0 || p.CapShare >= 1 {
		return fmt.Errorf("capital share must be in (0,1), got %g", p.CapShare)
	}
	if p.DeprFac < 0 || p.DeprFac > 1 {
		return fmt.Errorf("depreciation rate must be in [0,1], got %g", p.DeprFac)
	}
	if p.PermGroFac <= 0 {
		return fmt.Errorf("permanent growth factor must be positive, got %g", p.PermGroFac)
	}
	if err := p.IncShk.Validate(); err != nil {
		return err
	}
	return p.AssetGrid.Validate()
}

// RepAgentMarkovParams parameterize the Markov-switching representative
// agent: an exogenous discrete regime follows MrkvArray, and growth and
// shock parameters vary by regime.
type RepAgentMarkovParams struct {
	CRRA       float64
	DiscFac    float64
	CapShare   float64
	DeprFac    float64
	PermGroFac []float64
	IncShk     []IncShkParams
	MrkvArray  [][]float64
	MrkvNow    int
	AssetGrid  GridParams
}

func (p RepAgentMarkovParams) NumStates() int { return len(p.MrkvArray) }

func (p RepAgentMarkovParams) Validate() error {
	n := len(p.MrkvArray)
	if n == 0 {
		return fmt.Errorf("markov transition matrix is empty")
	}
	for i, row := range p.MrkvArray {
		if len(row) != n {
			return fmt.Errorf("markov transition matrix is not square: row %d has %d entries, want %d", i, len(row), n)
		}
		sum := 0.0
		for _, q := range row {
			if q < 0 {
				return fmt.Errorf("negative transition probability in row %d", i)
			}
			sum += q
		}
		if math.Abs(sum-1.0) > 1e-9 {
			return fmt.Errorf("markov transition row %d sums to %g, not 1", i, sum)
		}
	}
	if len(p.PermGroFac) != n {
		return fmt.Errorf("need %d growth factors, one per regime, got %d", n, len(p.PermGroFac))
	}
	if len(p.IncShk) != n {
		return fmt.Errorf("need %d shock specifications, one per regime, got %d", n, len(p.IncShk))
	}
	if p.MrkvNow < 0 || p.MrkvNow >= n {
		return fmt.Errorf("initial regime %d out of range [0,%d)", p.MrkvNow, n)
	}
	if p.CRRA <= 0 {
		return fmt.Errorf("risk aversion must be positive, got %g", p.CRRA)
	}
	if p.DiscFac <= 0 || p.DiscFac > 1 {
		return fmt.Errorf("discount factor must be in (0,1], got %g", p.DiscFac)
	}
	if p.CapShare <= 0 || p.CapShare >= 1 {
		return fmt.Errorf("capital share must be in (0,1), got %g", p.CapShare)
	}
	if p.DeprFac < 0 || p.DeprFac > 1 {
		return fmt.Errorf("depreciation rate must be in [0,1], got %g", p.DeprFac)
	}
	for i, g := range p.PermGroFac {
		if g <= 0 {
			return fmt.Errorf("growth factor for regime %d must be positive, got %g", i, g)
		}
	}
	for i, shk := range p.IncShk {
		if err := shk.Validate(); err != nil {
			return fmt.Errorf("regime %d shocks: %w", i, err)
		}
	}
	return p.AssetGrid.Validate()
}
