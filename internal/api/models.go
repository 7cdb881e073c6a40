package api

// ParamOverrides carries optional parameter overrides; nil fields keep the
// preset or default value.
type ParamOverrides struct {
	CRRA             *float64    `json:"crra,omitempty"`
	DiscFac          *float64    `json:"disc_fac,omitempty"`
	Rfree            *float64    `json:"rfree,omitempty"`
	LivPrb           *float64    `json:"liv_prb,omitempty"`
	PermGroFac       *float64    `json:"perm_gro_fac,omitempty"`
	PermShkStd       *float64    `json:"perm_shk_std,omitempty"`
	TranShkStd       *float64    `json:"tran_shk_std,omitempty"`
	UnempPrb         *float64    `json:"unemp_prb,omitempty"`
	IncUnemp         *float64    `json:"inc_unemp,omitempty"`
	CapShare         *float64    `json:"cap_share,omitempty"`
	DeprFac          *float64    `json:"depr_fac,omitempty"`
	MrkvArray        [][]float64 `json:"mrkv_array,omitempty"`
	MrkvNow          *int        `json:"mrkv_now,omitempty"`
	PermGroFacRegime []float64   `json:"perm_gro_fac_regime,omitempty"`
}

type SolveRequest struct {
	Model  string         `json:"model" binding:"required"`
	Preset string         `json:"preset,omitempty"`
	Params ParamOverrides `json:"params"`
}

type SimulateRequest struct {
	SolveRequest
	Periods int      `json:"periods,omitempty"`
	Seed    int64    `json:"seed,omitempty"`
	Track   []string `json:"track,omitempty"`
}

// Knot is one point of the solved consumption function.
type Knot struct {
	M float64 `json:"m"`
	C float64 `json:"c"`
}

type SolveResponse struct {
	Model      string   `json:"model"`
	Iterations int      `json:"iterations"`
	SolveMs    float64  `json:"solve_ms"`
	MNrmMin    float64  `json:"m_nrm_min"`
	CFuncs     [][]Knot `json:"c_funcs"`
}

type SimulateResponse struct {
	Model      string               `json:"model"`
	Iterations int                  `json:"iterations"`
	Periods    int                  `json:"periods"`
	Seed       int64                `json:"seed"`
	Series     map[string][]float64 `json:"series"`
	Metrics    map[string]float64   `json:"metrics"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
