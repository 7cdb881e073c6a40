package dist

import (
	"math"
	"testing"
)

func TestDiscreteExpected(t *testing.T) {
	d := NewDiscrete([]float64{0.25, 0.25, 0.5}, []float64{1, 2, 4})
	if got := d.Mean(); math.Abs(got-2.75) > 1e-12 {
		t.Errorf("mean = %g, want 2.75", got)
	}
	sq := d.Expected(func(x []float64) float64 { return x[0] * x[0] })
	if math.Abs(sq-9.25) > 1e-12 {
		t.Errorf("E[x^2] = %g, want 9.25", sq)
	}
}

func TestCombineIndependent(t *testing.T) {
	a := NewDiscrete([]float64{0.5, 0.5}, []float64{1, 2})
	b := NewDiscrete([]float64{0.25, 0.25, 0.5}, []float64{10, 20, 30})

	joint, err := CombineIndependent(a, b)
	if err != nil {
		t.Fatalf("combine failed: %v", err)
	}
	if joint.Len() != 6 {
		t.Fatalf("joint has %d atoms, want 6", joint.Len())
	}
	if joint.Dim() != 2 {
		t.Fatalf("joint has %d variables, want 2", joint.Dim())
	}

	sum := 0.0
	for _, p := range joint.Pmv {
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("joint pmv sums to %g", sum)
	}

	// Independence: joint means equal the marginal means.
	meanA := joint.Expected(func(x []float64) float64 { return x[0] })
	meanB := joint.Expected(func(x []float64) float64 { return x[1] })
	if math.Abs(meanA-1.5) > 1e-12 {
		t.Errorf("joint mean of a = %g, want 1.5", meanA)
	}
	if math.Abs(meanB-22.5) > 1e-12 {
		t.Errorf("joint mean of b = %g, want 22.5", meanB)
	}
	prod := joint.Expected(func(x []float64) float64 { return x[0] * x[1] })
	if math.Abs(prod-meanA*meanB) > 1e-12 {
		t.Errorf("E[ab] = %g, want %g for independent variables", prod, meanA*meanB)
	}
}

func TestCombineIndependentEmpty(t *testing.T) {
	if _, err := CombineIndependent(); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestAddOutcomeConstantMean(t *testing.T) {
	base := MeanOneLognormal(0.1, 0).Approx(7)
	d := AddOutcomeConstantMean(base, 0.3, 0.05)

	if d.Len() != 8 {
		t.Fatalf("got %d atoms, want 8", d.Len())
	}
	if d.Atoms[0][0] != 0.3 || math.Abs(d.Pmv[0]-0.05) > 1e-12 {
		t.Errorf("point mass = (%g, %g), want (0.3, 0.05)", d.Atoms[0][0], d.Pmv[0])
	}
	if got := d.Mean(); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("mean after adding outcome = %g, want 1", got)
	}
}

func TestAddOutcome(t *testing.T) {
	base := NewDiscrete([]float64{1.0}, []float64{2.0})
	d := AddOutcome(base, 0.0, 0.1)
	if d.Len() != 2 {
		t.Fatalf("got %d atoms, want 2", d.Len())
	}
	if math.Abs(d.Mean()-1.8) > 1e-12 {
		t.Errorf("mean = %g, want 1.8", d.Mean())
	}
}

func TestDiscreteDrawReproducible(t *testing.T) {
	d := NewDiscrete([]float64{0.2, 0.3, 0.5}, []float64{1, 2, 3})
	d.Reseed(99)
	first := d.DrawEvents(100)
	d.Reseed(99)
	second := d.DrawEvents(100)
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("events not reproducible with the same seed")
		}
		if first[i] < 0 || first[i] > 2 {
			t.Fatalf("event index %d out of range", first[i])
		}
	}
}
