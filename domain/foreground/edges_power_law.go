package foreground

import (
	"math"
)

// EdgesPowerLaw is the five-term linearized foreground used in the EDGES
// low-band analysis: a -2.5 power law with log corrections, an ionospheric
// absorption term and an emission term, all centred at 75 MHz.
type EdgesPowerLaw struct{}

// NewEdgesPowerLaw creates the five-term EDGES foreground
func NewEdgesPowerLaw() *EdgesPowerLaw {
	return &EdgesPowerLaw{}
}

// Name returns the model name
func (m *EdgesPowerLaw) Name() string {
	return "edges_power_law"
}

// Description returns a human-readable description
func (m *EdgesPowerLaw) Description() string {
	return "Five-term linearized power-law foreground centred at 75 MHz"
}

// Terms returns the coefficient count
func (m *EdgesPowerLaw) Terms() int {
	return 5
}

// Eval computes the foreground temperature at freq MHz
func (m *EdgesPowerLaw) Eval(coef []float64, freq float64) float64 {
	p := freq / CentreFreq
	lp := math.Log(p)
	return coef[0]*math.Pow(p, -2.5) +
		coef[1]*math.Pow(p, -2.5)*lp +
		coef[2]*math.Pow(p, -2.5)*lp*lp +
		coef[3]*math.Pow(p, -4.5) +
		coef[4]*math.Pow(p, -2.0)
}

var _ Model = (*EdgesPowerLaw)(nil)
