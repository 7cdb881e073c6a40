package model

import "math"

// ExpMultGrid builds a grid on [lo, hi] with points spaced by repeated
// exponential nesting: higher nestFac packs more points near lo, where the
// consumption function has the most curvature.
func ExpMultGrid(lo, hi float64, n, nestFac int) []float64 {
	if n == 1 {
		return []float64{lo}
	}

	var grid []float64
	if nestFac <= 0 {
		grid = make([]float64, n)
		step := (hi - lo) / float64(n-1)
		for i := range grid {
			grid[i] = lo + float64(i)*step
		}
		return grid
	}

	// Nest log transforms nestFac times, space evenly, then unwind.
	top := hi - lo + 1.0
	for j := 0; j < nestFac; j++ {
		top = math.Log(top) + 1.0
	}
	grid = make([]float64, n)
	step := (top - 1.0) / float64(n-1)
	for i := range grid {
		v := 1.0 + float64(i)*step
		for j := 0; j < nestFac; j++ {
			v = math.Exp(v - 1.0)
		}
		grid[i] = lo + v - 1.0
	}
	grid[0] = lo
	grid[n-1] = hi
	return grid
}
