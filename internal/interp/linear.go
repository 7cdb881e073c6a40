package interp

import (
	"fmt"
	"sort"
)

// Linear is a piecewise-linear interpolant over a strictly increasing grid.
// Queries outside the grid extrapolate linearly along the end segments.
type Linear struct {
	X []float64
	Y []float64
}

func NewLinear(x, y []float64) (*Linear, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("grid length mismatch: %d x values, %d y values", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("x grid not strictly increasing at index %d", i)
		}
	}
	return &Linear{X: x, Y: y}, nil
}

// Eval returns the interpolated value at q.
func (f *Linear) Eval(q float64) float64 {
	n := len(f.X)
	if n == 1 {
		return f.Y[0]
	}
	i := f.segment(q)
	slope := (f.Y[i+1] - f.Y[i]) / (f.X[i+1] - f.X[i])
	return f.Y[i] + slope*(q-f.X[i])
}

// Derivative returns the slope of the segment containing q.
func (f *Linear) Derivative(q float64) float64 {
	n := len(f.X)
	if n == 1 {
		return 0
	}
	i := f.segment(q)
	return (f.Y[i+1] - f.Y[i]) / (f.X[i+1] - f.X[i])
}

// EvalSlice evaluates the interpolant at each query point.
func (f *Linear) EvalSlice(qs []float64) []float64 {
	out := make([]float64, len(qs))
	for i, q := range qs {
		out[i] = f.Eval(q)
	}
	return out
}

// segment finds the index i of the segment [X[i], X[i+1]] used for q,
// clamping to the end segments for out-of-range queries.
func (f *Linear) segment(q float64) int {
	n := len(f.X)
	i := sort.SearchFloat64s(f.X, q)
	if i == 0 {
		return 0
	}
	if i >= n {
		return n - 2
	}
	return i - 1
}
