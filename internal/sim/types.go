package sim

// Engine advances one model through simulated time, one period per Step.
type Engine interface {
	// Initialize resets simulated state and reseeds shock draws.
	Initialize(seed int64)
	// Variables lists every variable name Step reports.
	Variables() []string
	// Step simulates one period and returns the period's variables.
	Step() map[string]float64
}

// Metric accumulates a statistic over the simulated periods.
type Metric interface {
	Name() string
	Observe(t int, vars map[string]float64)
	Value() float64
	Reset()
}

// Observer is notified after every simulated period.
type Observer interface {
	OnPeriod(t int, vars map[string]float64)
}

type Config struct {
	Periods int
	Seed    int64
	// Track selects which variables to record; empty means all.
	Track []string
}

type Result struct {
	Periods int
	Series  map[string][]float64
	Metrics map[string]float64
}
