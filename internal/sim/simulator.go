package sim

import (
	"context"
	"fmt"
)

// Simulator runs an Engine for a fixed horizon, recording tracked variables
// and feeding metrics and observers each period.
type Simulator struct {
	engine    Engine
	metrics   []Metric
	observers []Observer
}

func New(engine Engine) *Simulator {
	return &Simulator{engine: engine}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Periods <= 0 {
		return fmt.Errorf("periods must be positive, got %d", cfg.Periods)
	}
	known := make(map[string]bool)
	for _, v := range s.engine.Variables() {
		known[v] = true
	}
	for _, v := range cfg.Track {
		if !known[v] {
			return fmt.Errorf("unknown variable %q (engine reports %v)", v, s.engine.Variables())
		}
	}
	return nil
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	track := cfg.Track
	if len(track) == 0 {
		track = s.engine.Variables()
	}

	s.engine.Initialize(cfg.Seed)
	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Periods: cfg.Periods,
		Series:  make(map[string][]float64, len(track)),
		Metrics: make(map[string]float64),
	}
	for _, v := range track {
		result.Series[v] = make([]float64, 0, cfg.Periods)
	}

	for t := 0; t < cfg.Periods; t++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		vars := s.engine.Step()

		for _, v := range track {
			result.Series[v] = append(result.Series[v], vars[v])
		}
		for _, m := range s.metrics {
			m.Observe(t, vars)
		}
		for _, obs := range s.observers {
			obs.OnPeriod(t, vars)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback steps the engine until the horizon is reached or the
// callback returns false. Used by the live view.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(t int, vars map[string]float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	s.engine.Initialize(cfg.Seed)
	for t := 0; t < cfg.Periods; t++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		vars := s.engine.Step()
		if !callback(t, vars) {
			return nil
		}
	}
	return nil
}
