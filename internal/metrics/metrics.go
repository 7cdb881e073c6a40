// Package metrics provides statistics accumulated over simulated series.
package metrics

import (
	"math"

	"consav/internal/sim"
)

// Mean tracks the running mean of one simulated variable.
type Mean struct {
	variable string
	sum      float64
	count    int
}

func NewMean(variable string) *Mean {
	return &Mean{variable: variable}
}

func (m *Mean) Name() string { return m.variable + "_mean" }

func (m *Mean) Observe(t int, vars map[string]float64) {
	m.sum += vars[m.variable]
	m.count++
}

func (m *Mean) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.count = 0
}

// StdDev tracks the standard deviation of a variable with Welford's
// algorithm.
type StdDev struct {
	variable string
	count    int
	mean     float64
	m2       float64
}

func NewStdDev(variable string) *StdDev {
	return &StdDev{variable: variable}
}

func (s *StdDev) Name() string { return s.variable + "_std" }

func (s *StdDev) Observe(t int, vars map[string]float64) {
	x := vars[s.variable]
	s.count++
	delta := x - s.mean
	s.mean += delta / float64(s.count)
	s.m2 += delta * (x - s.mean)
}

func (s *StdDev) Value() float64 {
	if s.count < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.count-1))
}

func (s *StdDev) Reset() {
	s.count = 0
	s.mean = 0
	s.m2 = 0
}

// Max tracks the largest observed value of a variable.
type Max struct {
	variable string
	max      float64
	seen     bool
}

func NewMax(variable string) *Max {
	return &Max{variable: variable}
}

func (m *Max) Name() string { return m.variable + "_max" }

func (m *Max) Observe(t int, vars map[string]float64) {
	x := vars[m.variable]
	if !m.seen || x > m.max {
		m.max = x
		m.seen = true
	}
}

func (m *Max) Value() float64 { return m.max }

func (m *Max) Reset() {
	m.max = 0
	m.seen = false
}

// Autocorr estimates the lag-k autocorrelation of a variable. It buffers
// the series and computes the statistic on demand.
type Autocorr struct {
	variable string
	lag      int
	series   []float64
}

func NewAutocorr(variable string, lag int) *Autocorr {
	if lag < 1 {
		lag = 1
	}
	return &Autocorr{variable: variable, lag: lag}
}

func (a *Autocorr) Name() string { return a.variable + "_autocorr" }

func (a *Autocorr) Observe(t int, vars map[string]float64) {
	a.series = append(a.series, vars[a.variable])
}

func (a *Autocorr) Value() float64 {
	n := len(a.series)
	if n <= a.lag+1 {
		return 0
	}
	mean := 0.0
	for _, x := range a.series {
		mean += x
	}
	mean /= float64(n)

	var num, den float64
	for i := 0; i < n-a.lag; i++ {
		num += (a.series[i] - mean) * (a.series[i+a.lag] - mean)
	}
	for _, x := range a.series {
		den += (x - mean) * (x - mean)
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func (a *Autocorr) Reset() {
	a.series = a.series[:0]
}

// Defaults is the standard metric set watching consumption and wealth.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewMean("cNrm"), NewStdDev("cNrm"),
		NewMean("mNrm"), NewStdDev("mNrm"),
		NewAutocorr("cNrm", 1),
	}
}
