package dist

import (
	"math"
	"testing"
)

func TestInvNormalCDF(t *testing.T) {
	ps := []float64{0.001, 0.01, 0.025, 0.1, 0.25, 0.5, 0.75, 0.9, 0.975, 0.99, 0.999}
	for _, p := range ps {
		z := invNormalCDF(p)
		if got := normalCDF(z); math.Abs(got-p) > 1e-9 {
			t.Errorf("normalCDF(invNormalCDF(%g)) = %g, want %g", p, got, p)
		}
	}
	if invNormalCDF(0.5) != 0 && math.Abs(invNormalCDF(0.5)) > 1e-12 {
		t.Errorf("median quantile = %g, want 0", invNormalCDF(0.5))
	}
	if !math.IsInf(invNormalCDF(0), -1) || !math.IsInf(invNormalCDF(1), 1) {
		t.Error("boundary quantiles should be infinite")
	}
}

func TestMeanOneLognormalApprox(t *testing.T) {
	for _, sigma := range []float64{0.05, 0.1, 0.2, 0.5} {
		d := MeanOneLognormal(sigma, 0).Approx(7)
		if d.Len() != 7 {
			t.Fatalf("sigma %g: got %d atoms, want 7", sigma, d.Len())
		}
		if got := d.Mean(); math.Abs(got-1.0) > 1e-6 {
			t.Errorf("sigma %g: approximated mean = %g, want 1", sigma, got)
		}
		sum := 0.0
		for _, p := range d.Pmv {
			if math.Abs(p-1.0/7.0) > 1e-12 {
				t.Errorf("sigma %g: non-equiprobable pmv %g", sigma, p)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("sigma %g: pmv sums to %g", sigma, sum)
		}
		for i := 1; i < d.Len(); i++ {
			if d.Atoms[0][i] <= d.Atoms[0][i-1] {
				t.Errorf("sigma %g: atoms not increasing at %d", sigma, i)
			}
		}
	}
}

func TestLognormalApproxDegenerate(t *testing.T) {
	d := NewLognormal(0.5, 0.0, 0).Approx(5)
	want := math.Exp(0.5)
	for i := 0; i < d.Len(); i++ {
		if math.Abs(d.Atoms[0][i]-want) > 1e-12 {
			t.Errorf("atom %d = %g, want %g", i, d.Atoms[0][i], want)
		}
	}
}

func TestLognormalDraw(t *testing.T) {
	d := NewLognormal(0.0, 0.2, 42)
	draws := d.Draw(1000)
	if len(draws) != 1000 {
		t.Fatalf("got %d draws", len(draws))
	}
	for _, x := range draws {
		if x <= 0 {
			t.Fatalf("lognormal draw %g not positive", x)
		}
	}

	// Same seed reproduces the sequence.
	again := NewLognormal(0.0, 0.2, 42).Draw(1000)
	for i := range draws {
		if draws[i] != again[i] {
			t.Fatal("draws not reproducible with the same seed")
		}
	}
}

func TestNormalApprox(t *testing.T) {
	d := NewNormal(2.0, 1.5, 0).Approx(9)
	if got := d.Mean(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("approximated mean = %g, want 2", got)
	}
	for i := 1; i < d.Len(); i++ {
		if d.Atoms[0][i] <= d.Atoms[0][i-1] {
			t.Errorf("atoms not increasing at %d", i)
		}
	}
}

func TestUniformApprox(t *testing.T) {
	d := NewUniform(1.0, 3.0, 0).Approx(4)
	wantAtoms := []float64{1.25, 1.75, 2.25, 2.75}
	for i, want := range wantAtoms {
		if math.Abs(d.Atoms[0][i]-want) > 1e-12 {
			t.Errorf("atom %d = %g, want %g", i, d.Atoms[0][i], want)
		}
	}
	if got := d.Mean(); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("mean = %g, want 2", got)
	}
}

func TestBernoulliDraw(t *testing.T) {
	d := NewBernoulli(0.3, 7)
	draws := d.Draw(10000)
	count := 0
	for _, b := range draws {
		if b {
			count++
		}
	}
	frac := float64(count) / float64(len(draws))
	if math.Abs(frac-0.3) > 0.02 {
		t.Errorf("empirical frequency %g too far from 0.3", frac)
	}
}
