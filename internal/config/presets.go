package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]map[string]func() *Config{
	"perfect_foresight": {
		"baseline": func() *Config {
			return preset(func(c *Config) {
				c.Model = "perfect_foresight"
			})
		},
		"patient": func() *Config {
			return preset(func(c *Config) {
				c.Model = "perfect_foresight"
				c.Params.DiscFac = 0.99
				c.Params.Rfree = 1.02
				c.Params.PermGroFac = 1.0
			})
		},
	},
	"indshock": {
		"baseline": func() *Config {
			return preset(func(c *Config) {
				c.Model = "indshock"
				c.Params.GridMax = 20.0
			})
		},
		"volatile": func() *Config {
			return preset(func(c *Config) {
				c.Model = "indshock"
				c.Params.GridMax = 20.0
				c.Params.PermShkStd = 0.2
				c.Params.TranShkStd = 0.2
			})
		},
		"constrained": func() *Config {
			return preset(func(c *Config) {
				c.Model = "indshock"
				c.Params.GridMax = 20.0
				zero := 0.0
				c.Params.BoroCnst = &zero
			})
		},
	},
	"repagent": {
		"baseline": func() *Config {
			return preset(func(c *Config) {
				c.Model = "repagent"
			})
		},
		"patient": func() *Config {
			return preset(func(c *Config) {
				c.Model = "repagent"
				c.Params.DiscFac = 0.99
			})
		},
		"volatile": func() *Config {
			return preset(func(c *Config) {
				c.Model = "repagent"
				c.Params.PermShkStd = 0.2
				c.Params.TranShkStd = 0.2
			})
		},
	},
	"repagent_markov": {
		// Two regimes: contraction (shrinking productivity) and expansion.
		"twostate": func() *Config {
			return preset(func(c *Config) {
				c.Model = "repagent_markov"
				c.Params.MrkvArray = [][]float64{
					{0.97, 0.03},
					{0.03, 0.97},
				}
				c.Params.PermGroFacRegime = []float64{0.97, 1.03}
				c.Sim.Periods = 2000
				c.Sim.Track = []string{"mNrm", "cNrm", "Mrkv"}
			})
		},
		"persistent": func() *Config {
			return preset(func(c *Config) {
				c.Model = "repagent_markov"
				c.Params.MrkvArray = [][]float64{
					{0.99, 0.01},
					{0.01, 0.99},
				}
				c.Params.PermGroFacRegime = []float64{0.98, 1.02}
				c.Sim.Periods = 2000
			})
		},
	},
}

func GetPreset(modelName, presetName string) *Config {
	modelPresets, ok := Presets[modelName]
	if !ok {
		return nil
	}
	build, ok := modelPresets[presetName]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets(modelName string) []string {
	modelPresets, ok := Presets[modelName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
