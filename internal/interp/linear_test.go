package interp

import (
	"math"
	"testing"
)

func TestNewLinearValidation(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"length mismatch", []float64{0, 1}, []float64{0}},
		{"empty", []float64{}, []float64{}},
		{"not increasing", []float64{0, 1, 1}, []float64{0, 1, 2}},
		{"decreasing", []float64{0, 2, 1}, []float64{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLinear(tt.x, tt.y); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLinearEval(t *testing.T) {
	f, err := NewLinear([]float64{0, 1, 3}, []float64{0, 2, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		q    float64
		want float64
	}{
		{0, 0},
		{1, 2},
		{3, 4},
		{0.5, 1},   // interior of first segment
		{2, 3},     // interior of second segment
		{-1, -2},   // extrapolate below with slope 2
		{4, 5},     // extrapolate above with slope 1
		{5, 6},
	}
	for _, tt := range tests {
		if got := f.Eval(tt.q); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Eval(%g) = %g, want %g", tt.q, got, tt.want)
		}
	}
}

func TestLinearDerivative(t *testing.T) {
	f, _ := NewLinear([]float64{0, 1, 3}, []float64{0, 2, 4})
	if got := f.Derivative(0.5); math.Abs(got-2) > 1e-12 {
		t.Errorf("Derivative(0.5) = %g, want 2", got)
	}
	if got := f.Derivative(2); math.Abs(got-1) > 1e-12 {
		t.Errorf("Derivative(2) = %g, want 1", got)
	}
	if got := f.Derivative(10); math.Abs(got-1) > 1e-12 {
		t.Errorf("Derivative(10) = %g, want 1", got)
	}
}

func TestLinearSinglePoint(t *testing.T) {
	f, err := NewLinear([]float64{2}, []float64{5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.Eval(100); got != 5 {
		t.Errorf("single-point Eval = %g, want 5", got)
	}
	if got := f.Derivative(0); got != 0 {
		t.Errorf("single-point Derivative = %g, want 0", got)
	}
}

func TestEvalSlice(t *testing.T) {
	f, _ := NewLinear([]float64{0, 1}, []float64{0, 10})
	got := f.EvalSlice([]float64{0, 0.5, 1})
	want := []float64{0, 5, 10}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("EvalSlice[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}
