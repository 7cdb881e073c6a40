package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"consav/internal/config"
	"consav/internal/experiment"
)

type Handler struct {
	log zerolog.Logger
}

func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) buildConfig(req SolveRequest) (*config.Config, error) {
	var cfg *config.Config
	if req.Preset != "" {
		cfg = config.GetPreset(req.Model, req.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q for model %q (available: %v)",
				req.Preset, req.Model, config.ListPresets(req.Model))
		}
	} else {
		cfg = config.DefaultConfig()
		cfg.Model = req.Model
	}

	p := req.Params
	if p.CRRA != nil {
		cfg.Params.CRRA = *p.CRRA
	}
	if p.DiscFac != nil {
		cfg.Params.DiscFac = *p.DiscFac
	}
	if p.Rfree != nil {
		cfg.Params.Rfree = *p.Rfree
	}
	if p.LivPrb != nil {
		cfg.Params.LivPrb = *p.LivPrb
	}
	if p.PermGroFac != nil {
		cfg.Params.PermGroFac = *p.PermGroFac
	}
	if p.PermShkStd != nil {
		cfg.Params.PermShkStd = *p.PermShkStd
	}
	if p.TranShkStd != nil {
		cfg.Params.TranShkStd = *p.TranShkStd
	}
	if p.UnempPrb != nil {
		cfg.Params.UnempPrb = *p.UnempPrb
	}
	if p.IncUnemp != nil {
		cfg.Params.IncUnemp = *p.IncUnemp
	}
	if p.CapShare != nil {
		cfg.Params.CapShare = *p.CapShare
	}
	if p.DeprFac != nil {
		cfg.Params.DeprFac = *p.DeprFac
	}
	if len(p.MrkvArray) > 0 {
		cfg.Params.MrkvArray = p.MrkvArray
	}
	if p.MrkvNow != nil {
		cfg.Params.MrkvNow = *p.MrkvNow
	}
	if len(p.PermGroFacRegime) > 0 {
		cfg.Params.PermGroFacRegime = p.PermGroFacRegime
	}
	return cfg, nil
}

// Solve handles POST /api/v1/solve.
func (h *Handler) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	cfg, err := h.buildConfig(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_CONFIG", Message: err.Error()},
		})
		return
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_MODEL", Message: err.Error()},
		})
		return
	}

	ctx := h.log.WithContext(c.Request.Context())
	if err := exp.Solve(ctx); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "SOLVE_FAILED", Message: err.Error()},
		})
		return
	}

	cFuncs := make([][]Knot, len(exp.Solution.CFunc))
	for r, cf := range exp.Solution.CFunc {
		knots := make([]Knot, len(cf.X))
		for i := range cf.X {
			knots[i] = Knot{M: cf.X[i], C: cf.Y[i]}
		}
		cFuncs[r] = knots
	}

	c.JSON(http.StatusOK, SolveResponse{
		Model:      cfg.Model,
		Iterations: exp.SolveIters,
		SolveMs:    float64(exp.SolveTime.Microseconds()) / 1000.0,
		MNrmMin:    exp.Solution.MNrmMin,
		CFuncs:     cFuncs,
	})
}

// Simulate handles POST /api/v1/simulate.
func (h *Handler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	cfg, err := h.buildConfig(req.SolveRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_CONFIG", Message: err.Error()},
		})
		return
	}
	if req.Periods > 0 {
		cfg.Sim.Periods = req.Periods
	}
	if req.Seed != 0 {
		cfg.Sim.Seed = req.Seed
	}
	if len(req.Track) > 0 {
		cfg.Sim.Track = req.Track
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_MODEL", Message: err.Error()},
		})
		return
	}

	ctx := h.log.WithContext(c.Request.Context())
	if err := exp.Solve(ctx); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "SOLVE_FAILED", Message: err.Error()},
		})
		return
	}

	result, err := exp.Simulate(ctx)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "SIMULATE_FAILED", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, SimulateResponse{
		Model:      cfg.Model,
		Iterations: exp.SolveIters,
		Periods:    result.Periods,
		Seed:       cfg.Sim.Seed,
		Series:     result.Series,
		Metrics:    result.Metrics,
	})
}

// Models handles GET /api/v1/models.
func (h *Handler) Models(c *gin.Context) {
	models := experiment.ModelNames()
	presets := make(map[string][]string, len(models))
	for _, m := range models {
		presets[m] = config.ListPresets(m)
	}
	c.JSON(http.StatusOK, gin.H{"models": models, "presets": presets})
}
