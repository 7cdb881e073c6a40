package model

import "math"

// Utility is CRRA utility c^(1-rho)/(1-rho), with the log limit at rho=1.
func Utility(c, rho float64) float64 {
	if rho == 1.0 {
		return math.Log(c)
	}
	return math.Pow(c, 1.0-rho) / (1.0 - rho)
}

// UtilityP is marginal utility c^(-rho).
func UtilityP(c, rho float64) float64 {
	return math.Pow(c, -rho)
}

// UtilityPInv inverts marginal utility: the consumption level whose marginal
// utility equals vP.
func UtilityPInv(vP, rho float64) float64 {
	return math.Pow(vP, -1.0/rho)
}
