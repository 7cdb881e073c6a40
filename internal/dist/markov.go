package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// Markov is a discrete Markov process given by a row-stochastic transition
// matrix.
type Markov struct {
	Transition [][]float64
	rng        *rand.Rand
}

func NewMarkov(transition [][]float64, seed int64) (*Markov, error) {
	n := len(transition)
	for i, row := range transition {
		if len(row) != n {
			return nil, fmt.Errorf("transition matrix is not square: row %d has %d entries, want %d", i, len(row), n)
		}
		sum := 0.0
		for _, p := range row {
			if p < 0 {
				return nil, fmt.Errorf("negative transition probability in row %d", i)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			return nil, fmt.Errorf("transition row %d sums to %g, not 1", i, sum)
		}
	}
	return &Markov{Transition: transition, rng: rand.New(rand.NewSource(seed))}, nil
}

func (m *Markov) Reseed(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
}

func (m *Markov) NumStates() int { return len(m.Transition) }

// Draw samples the next state given the current one.
func (m *Markov) Draw(state int) int {
	u := m.rng.Float64()
	cum := 0.0
	row := m.Transition[state]
	for j, p := range row {
		cum += p
		if u < cum {
			return j
		}
	}
	return len(row) - 1
}

// Stationary computes the stationary distribution by power iteration.
func (m *Markov) Stationary() []float64 {
	n := m.NumStates()
	pi := make([]float64, n)
	for i := range pi {
		pi[i] = 1.0 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < 10000; iter++ {
		for j := range next {
			next[j] = 0
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				next[j] += pi[i] * m.Transition[i][j]
			}
		}
		diff := 0.0
		for j := range next {
			diff += math.Abs(next[j] - pi[j])
		}
		copy(pi, next)
		if diff < 1e-12 {
			break
		}
	}
	return pi
}

// TauchenAR1 discretizes the AR(1) process x' = rho*x + eps,
// eps ~ N(0, sigma^2), onto an n-point grid spanning bound unconditional
// standard deviations.
func TauchenAR1(n int, sigma, rho, bound float64) ([]float64, [][]float64, error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("tauchen grid needs at least 2 points, got %d", n)
	}
	if rho < 0 || rho >= 1 {
		return nil, nil, fmt.Errorf("ar(1) coefficient must be in [0,1), got %g", rho)
	}

	sigmaUncond := sigma / math.Sqrt(1.0-rho*rho)
	grid := linspace(-bound*sigmaUncond, bound*sigmaUncond, n)
	step := grid[1] - grid[0]

	trans := make([][]float64, n)
	for i := range trans {
		trans[i] = make([]float64, n)
		mean := rho * grid[i]
		for j := 0; j < n; j++ {
			switch j {
			case 0:
				trans[i][j] = normalCDF((grid[0] - mean + step/2) / sigma)
			case n - 1:
				trans[i][j] = 1.0 - normalCDF((grid[n-1]-mean-step/2)/sigma)
			default:
				trans[i][j] = normalCDF((grid[j]-mean+step/2)/sigma) -
					normalCDF((grid[j]-mean-step/2)/sigma)
			}
		}
	}
	return grid, trans, nil
}
