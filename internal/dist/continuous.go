package dist

import (
	"math"
	"math/rand"
)

// Lognormal is a lognormal distribution parameterized by the mean and
// standard deviation of the underlying normal.
type Lognormal struct {
	Mu    float64
	Sigma float64
	rng   *rand.Rand
}

func NewLognormal(mu, sigma float64, seed int64) *Lognormal {
	return &Lognormal{Mu: mu, Sigma: sigma, rng: rand.New(rand.NewSource(seed))}
}

// NewLognormalFromMeanStd builds a lognormal from the mean and standard
// deviation of the lognormal itself rather than the underlying normal.
func NewLognormalFromMeanStd(mean, std float64, seed int64) *Lognormal {
	variance := std * std
	meanSq := mean * mean
	mu := math.Log(mean / math.Sqrt(1.0+variance/meanSq))
	sigma := math.Sqrt(math.Log(1.0 + variance/meanSq))
	return NewLognormal(mu, sigma, seed)
}

func (l *Lognormal) Draw(n int) []float64 {
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = math.Exp(l.Mu + l.Sigma*l.rng.NormFloat64())
	}
	return draws
}

// Approx makes an n-point equiprobable discrete approximation. Atom values
// are the exact conditional means of each CDF segment, so the approximation
// preserves the distribution's mean.
func (l *Lognormal) Approx(n int) *Discrete {
	if l.Sigma <= 0 {
		pmv := make([]float64, n)
		atoms := make([]float64, n)
		for i := range pmv {
			pmv[i] = 1.0 / float64(n)
			atoms[i] = math.Exp(l.Mu)
		}
		return NewDiscrete(pmv, atoms)
	}

	// Segment cutoffs at equiprobable CDF values.
	cutoffs := make([]float64, n+1)
	cutoffs[0] = 0
	cutoffs[n] = math.Inf(1)
	for i := 1; i < n; i++ {
		p := float64(i) / float64(n)
		cutoffs[i] = math.Exp(l.Mu + l.Sigma*invNormalCDF(p))
	}

	pmv := make([]float64, n)
	atoms := make([]float64, n)
	scale := math.Exp(l.Mu + 0.5*l.Sigma*l.Sigma)
	for i := 0; i < n; i++ {
		pmv[i] = 1.0 / float64(n)

		tBot := math.Inf(1)
		if cutoffs[i] > 0 {
			tBot = (l.Mu + l.Sigma*l.Sigma - math.Log(cutoffs[i])) / (math.Sqrt2 * l.Sigma)
		}
		tTop := math.Inf(-1)
		if !math.IsInf(cutoffs[i+1], 1) {
			tTop = (l.Mu + l.Sigma*l.Sigma - math.Log(cutoffs[i+1])) / (math.Sqrt2 * l.Sigma)
		}

		// erfc form avoids cancellation when both arguments are large.
		if tBot <= 4 {
			atoms[i] = -0.5 * scale * (math.Erf(tTop) - math.Erf(tBot)) / pmv[i]
		} else {
			atoms[i] = -0.5 * scale * (math.Erfc(tBot) - math.Erfc(tTop)) / pmv[i]
		}
	}
	return NewDiscrete(pmv, atoms)
}

// MeanOneLognormal is a lognormal with unit mean, the standard form for
// multiplicative income shocks.
func MeanOneLognormal(sigma float64, seed int64) *Lognormal {
	return NewLognormal(-0.5*sigma*sigma, sigma, seed)
}

type Normal struct {
	Mu    float64
	Sigma float64
	rng   *rand.Rand
}

func NewNormal(mu, sigma float64, seed int64) *Normal {
	return &Normal{Mu: mu, Sigma: sigma, rng: rand.New(rand.NewSource(seed))}
}

func (d *Normal) Draw(n int) []float64 {
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = d.Mu + d.Sigma*d.rng.NormFloat64()
	}
	return draws
}

// Approx makes an n-point equiprobable approximation, placing each atom at
// the conditional mean of its segment:
// E[Z | a<Z<b] = (pdf(a)-pdf(b)) / (cdf(b)-cdf(a)).
func (d *Normal) Approx(n int) *Discrete {
	pmv := make([]float64, n)
	atoms := make([]float64, n)
	for i := 0; i < n; i++ {
		pmv[i] = 1.0 / float64(n)
		lo := invNormalCDF(float64(i) / float64(n))
		hi := invNormalCDF(float64(i+1) / float64(n))
		pdfLo, pdfHi := 0.0, 0.0
		if !math.IsInf(lo, 0) {
			pdfLo = normalPDF(lo)
		}
		if !math.IsInf(hi, 0) {
			pdfHi = normalPDF(hi)
		}
		atoms[i] = d.Mu + d.Sigma*(pdfLo-pdfHi)*float64(n)
	}
	return NewDiscrete(pmv, atoms)
}

type Uniform struct {
	Bot float64
	Top float64
	rng *rand.Rand
}

func NewUniform(bot, top float64, seed int64) *Uniform {
	return &Uniform{Bot: bot, Top: top, rng: rand.New(rand.NewSource(seed))}
}

func (d *Uniform) Draw(n int) []float64 {
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = d.Bot + (d.Top-d.Bot)*d.rng.Float64()
	}
	return draws
}

// Approx places n equiprobable atoms at segment midpoints.
func (d *Uniform) Approx(n int) *Discrete {
	pmv := make([]float64, n)
	atoms := make([]float64, n)
	for i := 0; i < n; i++ {
		pmv[i] = 1.0 / float64(n)
		atoms[i] = d.Bot + (d.Top-d.Bot)*(2.0*float64(i)+1.0)/(2.0*float64(n))
	}
	return NewDiscrete(pmv, atoms)
}

type Bernoulli struct {
	P   float64
	rng *rand.Rand
}

func NewBernoulli(p float64, seed int64) *Bernoulli {
	return &Bernoulli{P: p, rng: rand.New(rand.NewSource(seed))}
}

func (d *Bernoulli) Draw(n int) []bool {
	draws := make([]bool, n)
	for i := range draws {
		draws[i] = d.rng.Float64() < d.P
	}
	return draws
}
