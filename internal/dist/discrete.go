package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// Discrete is a finite distribution: a probability mass vector over atoms.
// Atoms may be vector-valued; Atoms[v][i] is the value of variable v at
// support point i.
type Discrete struct {
	Pmv   []float64
	Atoms [][]float64
	rng   *rand.Rand
}

func NewDiscrete(pmv, atoms []float64) *Discrete {
	return NewDiscreteMulti(pmv, [][]float64{atoms})
}

func NewDiscreteMulti(pmv []float64, atoms [][]float64) *Discrete {
	return &Discrete{Pmv: pmv, Atoms: atoms, rng: rand.New(rand.NewSource(0))}
}

func (d *Discrete) Reseed(seed int64) {
	d.rng = rand.New(rand.NewSource(seed))
}

// Len is the number of support points.
func (d *Discrete) Len() int { return len(d.Pmv) }

// Dim is the number of variables per atom.
func (d *Discrete) Dim() int { return len(d.Atoms) }

// X returns the support of variable v across all atoms.
func (d *Discrete) X(v int) []float64 { return d.Atoms[v] }

// Atom returns the vector realization at support point i.
func (d *Discrete) Atom(i int) []float64 {
	out := make([]float64, d.Dim())
	for v := range d.Atoms {
		out[v] = d.Atoms[v][i]
	}
	return out
}

// DrawEvents samples n support-point indices.
func (d *Discrete) DrawEvents(n int) []int {
	events := make([]int, n)
	for i := range events {
		events[i] = d.drawEvent()
	}
	return events
}

func (d *Discrete) drawEvent() int {
	u := d.rng.Float64()
	cum := 0.0
	for i, p := range d.Pmv {
		cum += p
		if u < cum {
			return i
		}
	}
	return len(d.Pmv) - 1
}

// Draw samples n realizations of the first variable.
func (d *Discrete) Draw(n int) []float64 {
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = d.Atoms[0][d.drawEvent()]
	}
	return draws
}

// Expected computes E[f(atom)] over the distribution.
func (d *Discrete) Expected(f func(x []float64) float64) float64 {
	sum := 0.0
	for i, p := range d.Pmv {
		sum += p * f(d.Atom(i))
	}
	return sum
}

// Mean of the first variable.
func (d *Discrete) Mean() float64 {
	sum := 0.0
	for i, p := range d.Pmv {
		sum += p * d.Atoms[0][i]
	}
	return sum
}

// CombineIndependent builds the joint distribution of independent discrete
// distributions. The result has one variable per input variable and
// prod(lengths) support points; probabilities multiply across inputs.
func CombineIndependent(dstns ...*Discrete) (*Discrete, error) {
	if len(dstns) == 0 {
		return nil, fmt.Errorf("no distributions to combine")
	}

	total := 1
	dim := 0
	for _, d := range dstns {
		total *= d.Len()
		dim += d.Dim()
	}

	pmv := make([]float64, total)
	atoms := make([][]float64, dim)
	for v := range atoms {
		atoms[v] = make([]float64, total)
	}

	idx := make([]int, len(dstns))
	for i := 0; i < total; i++ {
		p := 1.0
		v := 0
		for j, d := range dstns {
			p *= d.Pmv[idx[j]]
			for r := 0; r < d.Dim(); r++ {
				atoms[v][i] = d.Atoms[r][idx[j]]
				v++
			}
		}
		pmv[i] = p

		// Advance the odometer, last distribution fastest.
		for j := len(dstns) - 1; j >= 0; j-- {
			idx[j]++
			if idx[j] < dstns[j].Len() {
				break
			}
			idx[j] = 0
		}
	}

	sum := 0.0
	for _, p := range pmv {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("combined probabilities sum to %g, not 1", sum)
	}

	return NewDiscreteMulti(pmv, atoms), nil
}

// AddOutcomeConstantMean adds outcome x with probability p to a univariate
// distribution, rescaling the other atoms so the overall mean is unchanged.
func AddOutcomeConstantMean(d *Discrete, x, p float64) *Discrete {
	n := d.Len()
	pmv := make([]float64, n+1)
	atoms := make([]float64, n+1)
	pmv[0] = p
	atoms[0] = x
	scale := (1.0 - p*x) / (1.0 - p)
	for i := 0; i < n; i++ {
		pmv[i+1] = d.Pmv[i] * (1.0 - p)
		atoms[i+1] = d.Atoms[0][i] * scale
	}
	return NewDiscrete(pmv, atoms)
}

// AddOutcome adds outcome x with probability p, holding the relative
// probabilities of the other outcomes constant.
func AddOutcome(d *Discrete, x, p float64) *Discrete {
	n := d.Len()
	pmv := make([]float64, n+1)
	atoms := make([]float64, n+1)
	pmv[0] = p
	atoms[0] = x
	for i := 0; i < n; i++ {
		pmv[i+1] = d.Pmv[i] * (1.0 - p)
		atoms[i+1] = d.Atoms[0][i]
	}
	return NewDiscrete(pmv, atoms)
}
