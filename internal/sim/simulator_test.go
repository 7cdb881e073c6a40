package sim

import (
	"context"
	"testing"
)

type fakeEngine struct {
	steps int
	seed  int64
}

func (f *fakeEngine) Initialize(seed int64) {
	f.steps = 0
	f.seed = seed
}

func (f *fakeEngine) Variables() []string { return []string{"x", "y"} }

func (f *fakeEngine) Step() map[string]float64 {
	f.steps++
	return map[string]float64{"x": float64(f.steps), "y": -float64(f.steps)}
}

func TestSimulatorRun(t *testing.T) {
	engine := &fakeEngine{}
	s := New(engine)

	result, err := s.Run(context.Background(), Config{Periods: 10, Seed: 7})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if engine.seed != 7 {
		t.Errorf("seed not passed to engine: %d", engine.seed)
	}
	if len(result.Series["x"]) != 10 || len(result.Series["y"]) != 10 {
		t.Fatalf("series lengths = %d, %d, want 10", len(result.Series["x"]), len(result.Series["y"]))
	}
	if result.Series["x"][9] != 10 {
		t.Errorf("last x = %g, want 10", result.Series["x"][9])
	}
}

func TestSimulatorTrackSubset(t *testing.T) {
	s := New(&fakeEngine{})
	result, err := s.Run(context.Background(), Config{Periods: 5, Track: []string{"y"}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, ok := result.Series["x"]; ok {
		t.Error("untracked variable recorded")
	}
	if len(result.Series["y"]) != 5 {
		t.Errorf("tracked series length = %d, want 5", len(result.Series["y"]))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&fakeEngine{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero periods", Config{Periods: 0}},
		{"negative periods", Config{Periods: -1}},
		{"unknown variable", Config{Periods: 5, Track: []string{"bogus"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

type countMetric struct {
	count int
}

func (c *countMetric) Name() string                          { return "count" }
func (c *countMetric) Observe(t int, vars map[string]float64) { c.count++ }
func (c *countMetric) Value() float64                        { return float64(c.count) }
func (c *countMetric) Reset()                                { c.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	s := New(&fakeEngine{})
	m := &countMetric{count: 99} // Reset must clear this
	s.AddMetric(m)

	result, err := s.Run(context.Background(), Config{Periods: 8})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := result.Metrics["count"]; got != 8 {
		t.Errorf("metric value = %g, want 8", got)
	}
}

func TestSimulatorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&fakeEngine{})
	if _, err := s.Run(ctx, Config{Periods: 5}); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestRunWithCallbackEarlyStop(t *testing.T) {
	engine := &fakeEngine{}
	s := New(engine)

	err := s.RunWithCallback(context.Background(), Config{Periods: 100}, func(t int, vars map[string]float64) bool {
		return t < 4
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if engine.steps != 5 {
		t.Errorf("engine stepped %d times, want 5", engine.steps)
	}
}
