package sim

import (
	"context"
	"math"
	"testing"

	"consav/internal/dist"
	"consav/internal/model"
	"consav/internal/solver"
)

func repAgentFixture(t *testing.T) (model.RepAgentParams, *model.Solution, *dist.Discrete) {
	t.Helper()
	p := model.RepAgentParams{
		CRRA: 2, DiscFac: 0.96, CapShare: 0.36, DeprFac: 0.025, PermGroFac: 1.01,
		IncShk: model.IncShkParams{
			PermShkStd: 0.1, TranShkStd: 0.1, PermShkCount: 5, TranShkCount: 5,
			UnempPrb: 0.05, IncUnemp: 0.3,
		},
		AssetGrid: model.GridParams{Min: 0.001, Max: 120, Count: 32, NestFac: 3},
	}
	sol, _, err := solver.SolveRepAgent(context.Background(), p, solver.Options{Tolerance: 1e-5})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	shks, err := solver.BuildIncShkDstn(p.IncShk)
	if err != nil {
		t.Fatalf("shock build failed: %v", err)
	}
	return p, sol, shks
}

func TestRepAgentEngineBudgetIdentity(t *testing.T) {
	p, sol, shks := repAgentFixture(t)
	engine := NewRepAgentEngine(p, sol, shks)
	engine.Initialize(3)

	for period := 0; period < 200; period++ {
		vars := engine.Step()
		if math.Abs(vars["aNrm"]-(vars["mNrm"]-vars["cNrm"])) > 1e-12 {
			t.Fatalf("period %d: budget identity violated: a=%g, m-c=%g",
				period, vars["aNrm"], vars["mNrm"]-vars["cNrm"])
		}
		if vars["cNrm"] <= 0 || vars["mNrm"] <= 0 || vars["kNrm"] <= 0 {
			t.Fatalf("period %d: nonpositive state: %v", period, vars)
		}
	}
}

func TestRepAgentEngineReproducible(t *testing.T) {
	p, sol, shks := repAgentFixture(t)
	engine := NewRepAgentEngine(p, sol, shks)

	s := New(engine)
	first, err := s.Run(context.Background(), Config{Periods: 50, Seed: 11, Track: []string{"mNrm"}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := s.Run(context.Background(), Config{Periods: 50, Seed: 11, Track: []string{"mNrm"}})
	if err != nil {
		t.Fatalf("rerun failed: %v", err)
	}
	for i := range first.Series["mNrm"] {
		if first.Series["mNrm"][i] != second.Series["mNrm"][i] {
			t.Fatal("same seed produced different paths")
		}
	}
}

func TestRepAgentMarkovEngine(t *testing.T) {
	shk := model.IncShkParams{
		PermShkStd: 0.1, TranShkStd: 0.1, PermShkCount: 5, TranShkCount: 5,
		UnempPrb: 0.05, IncUnemp: 0.3,
	}
	p := model.RepAgentMarkovParams{
		CRRA: 2, DiscFac: 0.96, CapShare: 0.36, DeprFac: 0.025,
		PermGroFac: []float64{0.97, 1.03},
		IncShk:     []model.IncShkParams{shk, shk},
		MrkvArray:  [][]float64{{0.97, 0.03}, {0.03, 0.97}},
		AssetGrid:  model.GridParams{Min: 0.001, Max: 120, Count: 32, NestFac: 3},
	}
	sol, _, err := solver.SolveRepAgentMarkov(context.Background(), p, solver.Options{Tolerance: 1e-5})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	shks := make([]*dist.Discrete, 2)
	for j := range shks {
		d, err := solver.BuildIncShkDstn(p.IncShk[j])
		if err != nil {
			t.Fatalf("shock build failed: %v", err)
		}
		shks[j] = d
	}
	chain, err := dist.NewMarkov(p.MrkvArray, 5)
	if err != nil {
		t.Fatalf("markov build failed: %v", err)
	}

	engine := NewRepAgentMarkovEngine(p, sol, shks, chain)
	engine.Initialize(5)

	seen := map[int]bool{}
	for period := 0; period < 500; period++ {
		vars := engine.Step()
		regime := int(vars["Mrkv"])
		if regime < 0 || regime > 1 {
			t.Fatalf("period %d: regime %d out of range", period, regime)
		}
		seen[regime] = true
		if math.Abs(vars["aNrm"]-(vars["mNrm"]-vars["cNrm"])) > 1e-12 {
			t.Fatalf("period %d: budget identity violated", period)
		}
	}
	if len(seen) != 2 {
		t.Error("both regimes should occur in 500 periods")
	}
}

func TestIndShockEngineCrossSection(t *testing.T) {
	p := model.IndShockParams{
		PerfForesightParams: model.PerfForesightParams{
			CRRA: 2, DiscFac: 0.96, Rfree: 1.03, LivPrb: 0.98, PermGroFac: 1.01,
		},
		IncShk: model.IncShkParams{
			PermShkStd: 0.1, TranShkStd: 0.1, PermShkCount: 5, TranShkCount: 5,
			UnempPrb: 0.05, IncUnemp: 0.3,
		},
		BoroCnst:  0.0,
		AssetGrid: model.GridParams{Min: 0.001, Max: 20, Count: 24, NestFac: 3},
	}
	sol, _, err := solver.SolveIndShock(context.Background(), p, solver.Options{Tolerance: 1e-5})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	shks, err := solver.BuildIncShkDstn(p.IncShk)
	if err != nil {
		t.Fatalf("shock build failed: %v", err)
	}

	engine := NewIndShockEngine(p, sol, shks, 500)
	engine.Initialize(1)
	for period := 0; period < 50; period++ {
		vars := engine.Step()
		if math.Abs(vars["aNrm"]-(vars["mNrm"]-vars["cNrm"])) > 1e-9 {
			t.Fatalf("period %d: mean budget identity violated", period)
		}
		if vars["cNrm"] <= 0 {
			t.Fatalf("period %d: nonpositive mean consumption", period)
		}
	}
}

func TestPerfForesightEngineDeterministic(t *testing.T) {
	p := model.PerfForesightParams{CRRA: 2, DiscFac: 0.96, Rfree: 1.03, LivPrb: 0.98, PermGroFac: 1.01}
	sol, err := solver.SolvePerfForesight(p)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	engine := NewPerfForesightEngine(p, sol)
	engine.Initialize(0)
	a := engine.Step()
	engine.Initialize(123)
	b := engine.Step()
	if a["mNrm"] != b["mNrm"] || a["cNrm"] != b["cNrm"] {
		t.Error("perfect foresight path should not depend on the seed")
	}
}
