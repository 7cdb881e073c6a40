package solver

import (
	"fmt"

	"consav/internal/dist"
	"consav/internal/model"
)

// BuildIncShkDstn discretizes the income process: mean-one lognormal
// permanent and transitory shocks, with an unemployment outcome mixed into
// the transitory shock holding its mean constant. The result is the joint
// distribution with variable 0 the permanent shock and variable 1 the
// transitory shock.
func BuildIncShkDstn(p model.IncShkParams) (*dist.Discrete, error) {
	permDstn := dist.MeanOneLognormal(p.PermShkStd, 0).Approx(p.PermShkCount)
	tranDstn := dist.MeanOneLognormal(p.TranShkStd, 0).Approx(p.TranShkCount)
	if p.UnempPrb > 0 {
		tranDstn = dist.AddOutcomeConstantMean(tranDstn, p.IncUnemp, p.UnempPrb)
	}
	joint, err := dist.CombineIndependent(permDstn, tranDstn)
	if err != nil {
		return nil, fmt.Errorf("combining income shocks: %w", err)
	}
	return joint, nil
}
