package foreground

import (
	"math"
)

// SimsPober is the nine-term foreground of Sims & Pober (2020): a damped
// sinusoid modelling a calibration systematic plus a five-term power series
// in log frequency, centred at 75 MHz.
//
// Coefficient layout: d0 tilts the sinusoid envelope, d1 is its period in
// MHz, d2/d3 are the sine/cosine amplitudes, d4..d8 are the series terms.
type SimsPober struct{}

// NewSimsPober creates the nine-term Sims & Pober foreground
func NewSimsPober() *SimsPober {
	return &SimsPober{}
}

// Name returns the model name
func (m *SimsPober) Name() string {
	return "sims_pober"
}

// Description returns a human-readable description
func (m *SimsPober) Description() string {
	return "Damped-sinusoid calibration term plus log-frequency power series (Sims & Pober 2020)"
}

// Terms returns the coefficient count
func (m *SimsPober) Terms() int {
	return 9
}

// Eval computes the foreground temperature at freq MHz
func (m *SimsPober) Eval(coef []float64, freq float64) float64 {
	p := freq / CentreFreq
	sum := math.Pow(p, coef[0]) * (coef[2]*math.Sin(2*math.Pi*freq/coef[1]) + coef[3]*math.Cos(2*math.Pi*freq/coef[1]))
	lp := math.Log10(p)
	for i := 0; i < 5; i++ {
		sum += math.Pow(10, coef[4+i]*math.Pow(lp, float64(i)))
	}
	return sum
}

var _ Model = (*SimsPober)(nil)
