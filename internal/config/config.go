package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"consav/internal/model"
)

const (
	DefaultCRRA       = 2.0
	DefaultDiscFac    = 0.96
	DefaultRfree      = 1.03
	DefaultLivPrb     = 0.98
	DefaultPermGroFac = 1.01
	DefaultPermShkStd = 0.1
	DefaultTranShkStd = 0.1
	DefaultShkCount   = 7
	DefaultUnempPrb   = 0.05
	DefaultIncUnemp   = 0.3
	DefaultCapShare   = 0.36
	DefaultDeprFac    = 0.025
	DefaultGridMin    = 0.001
	DefaultGridMax    = 120.0
	DefaultGridCount  = 48
	DefaultGridNest   = 3
	DefaultPeriods    = 200
	DefaultAgentCount = 1000
	DefaultTolerance  = 1e-6
	DefaultMaxIter    = 1000
)

type Config struct {
	Model  string       `yaml:"model"`
	Solver SolverConfig `yaml:"solver"`
	Sim    SimConfig    `yaml:"sim"`
	Params ParamsConfig `yaml:"params"`
}

type SolverConfig struct {
	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter"`
}

type SimConfig struct {
	Periods    int      `yaml:"periods"`
	Seed       int64    `yaml:"seed"`
	AgentCount int      `yaml:"agent_count"`
	Track      []string `yaml:"track"`
}

type ParamsConfig struct {
	CRRA       float64 `yaml:"crra"`
	DiscFac    float64 `yaml:"disc_fac"`
	Rfree      float64 `yaml:"rfree"`
	LivPrb     float64 `yaml:"liv_prb"`
	PermGroFac float64 `yaml:"perm_gro_fac"`

	PermShkStd   float64 `yaml:"perm_shk_std"`
	TranShkStd   float64 `yaml:"tran_shk_std"`
	PermShkCount int     `yaml:"perm_shk_count"`
	TranShkCount int     `yaml:"tran_shk_count"`
	UnempPrb     float64 `yaml:"unemp_prb"`
	IncUnemp     float64 `yaml:"inc_unemp"`

	CapShare float64 `yaml:"cap_share"`
	DeprFac  float64 `yaml:"depr_fac"`

	// Regime-switching fields, used by the Markov variant only.
	MrkvArray        [][]float64 `yaml:"mrkv_array"`
	MrkvNow          int         `yaml:"mrkv_now"`
	PermGroFacRegime []float64   `yaml:"perm_gro_fac_regime"`

	BoroCnst *float64 `yaml:"boro_cnst"`

	GridMin   float64 `yaml:"grid_min"`
	GridMax   float64 `yaml:"grid_max"`
	GridCount int     `yaml:"grid_count"`
	GridNest  int     `yaml:"grid_nest"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: "repagent",
		Solver: SolverConfig{
			Tolerance: DefaultTolerance,
			MaxIter:   DefaultMaxIter,
		},
		Sim: SimConfig{
			Periods:    DefaultPeriods,
			AgentCount: DefaultAgentCount,
		},
		Params: ParamsConfig{
			CRRA:         DefaultCRRA,
			DiscFac:      DefaultDiscFac,
			Rfree:        DefaultRfree,
			LivPrb:       DefaultLivPrb,
			PermGroFac:   DefaultPermGroFac,
			PermShkStd:   DefaultPermShkStd,
			TranShkStd:   DefaultTranShkStd,
			PermShkCount: DefaultShkCount,
			TranShkCount: DefaultShkCount,
			UnempPrb:     DefaultUnempPrb,
			IncUnemp:     DefaultIncUnemp,
			CapShare:     DefaultCapShare,
			DeprFac:      DefaultDeprFac,
			GridMin:      DefaultGridMin,
			GridMax:      DefaultGridMax,
			GridCount:    DefaultGridCount,
			GridNest:     DefaultGridNest,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) incShk() model.IncShkParams {
	return model.IncShkParams{
		PermShkStd:   c.Params.PermShkStd,
		TranShkStd:   c.Params.TranShkStd,
		PermShkCount: c.Params.PermShkCount,
		TranShkCount: c.Params.TranShkCount,
		UnempPrb:     c.Params.UnempPrb,
		IncUnemp:     c.Params.IncUnemp,
	}
}

func (c *Config) grid() model.GridParams {
	return model.GridParams{
		Min:     c.Params.GridMin,
		Max:     c.Params.GridMax,
		Count:   c.Params.GridCount,
		NestFac: c.Params.GridNest,
	}
}

func (c *Config) PerfForesight() model.PerfForesightParams {
	return model.PerfForesightParams{
		CRRA:       c.Params.CRRA,
		DiscFac:    c.Params.DiscFac,
		Rfree:      c.Params.Rfree,
		LivPrb:     c.Params.LivPrb,
		PermGroFac: c.Params.PermGroFac,
	}
}

func (c *Config) IndShock() model.IndShockParams {
	boro := math.NaN()
	if c.Params.BoroCnst != nil {
		boro = *c.Params.BoroCnst
	}
	return model.IndShockParams{
		PerfForesightParams: c.PerfForesight(),
		IncShk:              c.incShk(),
		BoroCnst:            boro,
		AssetGrid:           c.grid(),
	}
}

func (c *Config) RepAgent() model.RepAgentParams {
	return model.RepAgentParams{
		CRRA:       c.Params.CRRA,
		DiscFac:    c.Params.DiscFac,
		CapShare:   c.Params.CapShare,
		DeprFac:    c.Params.DeprFac,
		PermGroFac: c.Params.PermGroFac,
		IncShk:     c.incShk(),
		AssetGrid:  c.grid(),
	}
}

func (c *Config) RepAgentMarkov() (model.RepAgentMarkovParams, error) {
	n := len(c.Params.MrkvArray)
	if n == 0 {
		return model.RepAgentMarkovParams{}, fmt.Errorf("markov model requires mrkv_array")
	}
	gro := c.Params.PermGroFacRegime
	if len(gro) == 0 {
		gro = make([]float64, n)
		for i := range gro {
			gro[i] = c.Params.PermGroFac
		}
	}
	shks := make([]model.IncShkParams, n)
	for i := range shks {
		shks[i] = c.incShk()
	}
	return model.RepAgentMarkovParams{
		CRRA:       c.Params.CRRA,
		DiscFac:    c.Params.DiscFac,
		CapShare:   c.Params.CapShare,
		DeprFac:    c.Params.DeprFac,
		PermGroFac: gro,
		IncShk:     shks,
		MrkvArray:  c.Params.MrkvArray,
		MrkvNow:    c.Params.MrkvNow,
		AssetGrid:  c.grid(),
	}, nil
}
