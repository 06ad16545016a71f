package foreground

import (
	"fmt"

	"flexknot/domain/core"
)

// CentreFreq is the pivot frequency in MHz shared by the built-in models.
const CentreFreq = 75.0

// Model evaluates a parametric radio foreground at a single frequency.
// Coefficients arrive per call so one model instance can serve many
// proposals.
type Model interface {
	Name() string
	Description() string
	// Terms is the number of coefficients Eval expects.
	Terms() int
	// Eval returns the foreground temperature in Kelvin at freq MHz.
	// coef must have at least Terms() entries.
	Eval(coef []float64, freq float64) float64
}

// Lookup returns the foreground model registered under name.
func Lookup(name string) (Model, error) {
	switch name {
	case "edges_power_law":
		return NewEdgesPowerLaw(), nil
	case "sims_pober":
		return NewSimsPober(), nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnknownModel, name)
}

// Names lists the registered foreground models.
func Names() []string {
	return []string{"edges_power_law", "sims_pober"}
}
