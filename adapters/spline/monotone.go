package spline

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"flexknot/domain/core"
	"flexknot/ports"
)

// Monotone is a shape-preserving piecewise cubic interpolator built on
// Fritsch-Butland tangents. The fitted curve never overshoots the knot
// amplitudes, so a flat stretch of knots stays flat and no ringing appears
// between them. A two-knot fit is the straight line through both.
//
// Fit state lives in the wrapped gonum interpolator; not safe for
// concurrent use.
type Monotone struct {
	fb interp.FritschButland
}

// NewMonotone creates an unfitted interpolator
func NewMonotone() *Monotone {
	return &Monotone{}
}

// Fit validates the knots and prepares cubic coefficients. The underlying
// gonum implementation panics on degenerate input, so ordering and length
// checks happen here first.
func (m *Monotone) Fit(xs, ys []float64) error {
	if len(xs) < 2 {
		return fmt.Errorf("%w: need at least 2 knots, got %d", core.ErrNumeric, len(xs))
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d knot positions, %d amplitudes", core.ErrNumeric, len(xs), len(ys))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf("%w: knot %d at %v follows knot %d at %v", core.ErrKnotPositions, i, xs[i], i-1, xs[i-1])
		}
	}
	return m.fb.Fit(xs, ys)
}

// Predict evaluates the fitted curve at x. Only valid after a successful
// Fit.
func (m *Monotone) Predict(x float64) float64 {
	return m.fb.Predict(x)
}

var _ ports.InterpolatorPort = (*Monotone)(nil)
