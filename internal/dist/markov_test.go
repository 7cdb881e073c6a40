package dist

import (
	"math"
	"testing"
)

func TestNewMarkovValidation(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]float64
	}{
		{"not square", [][]float64{{0.5, 0.5}}},
		{"row sum wrong", [][]float64{{0.5, 0.4}, {0.3, 0.7}}},
		{"negative entry", [][]float64{{1.2, -0.2}, {0.5, 0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMarkov(tt.matrix, 0); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestMarkovDrawAbsorbing(t *testing.T) {
	m, err := NewMarkov([][]float64{{1.0, 0.0}, {0.0, 1.0}}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 50; i++ {
		if got := m.Draw(0); got != 0 {
			t.Fatalf("absorbing state 0 transitioned to %d", got)
		}
		if got := m.Draw(1); got != 1 {
			t.Fatalf("absorbing state 1 transitioned to %d", got)
		}
	}
}

func TestMarkovStationary(t *testing.T) {
	m, err := NewMarkov([][]float64{{0.97, 0.03}, {0.03, 0.97}}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pi := m.Stationary()
	if math.Abs(pi[0]-0.5) > 1e-9 || math.Abs(pi[1]-0.5) > 1e-9 {
		t.Errorf("stationary = %v, want [0.5 0.5]", pi)
	}
}

func TestTauchenAR1(t *testing.T) {
	grid, trans, err := TauchenAR1(9, 0.1, 0.9, 3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != 9 {
		t.Fatalf("grid has %d points, want 9", len(grid))
	}
	if grid[0] >= 0 || grid[8] <= 0 {
		t.Errorf("grid should straddle zero, got [%g, %g]", grid[0], grid[8])
	}
	for i, row := range trans {
		sum := 0.0
		for _, p := range row {
			if p < 0 {
				t.Fatalf("negative transition probability in row %d", i)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("row %d sums to %g", i, sum)
		}
	}

	if _, _, err := TauchenAR1(1, 0.1, 0.9, 3.0); err == nil {
		t.Error("expected error for single-point grid")
	}
	if _, _, err := TauchenAR1(5, 0.1, 1.0, 3.0); err == nil {
		t.Error("expected error for unit root")
	}
}
