package ports

// InterpolatorPort fits a curve through a set of knots and evaluates it
// pointwise. Implementations must be shape preserving: the fitted curve
// stays within the envelope of neighbouring knot amplitudes on every
// interval, and a two-knot fit degrades to the straight line between them.
//
// Fit must reject knot positions that are not strictly increasing rather
// than extrapolating or panicking. Implementations keep fit state between
// calls and are not safe for concurrent use; give each worker its own
// instance.
type InterpolatorPort interface {
	// Fit prepares interpolation coefficients for the given knots.
	Fit(xs, ys []float64) error

	// Predict evaluates the fitted curve at x. Only valid after a
	// successful Fit.
	Predict(x float64) float64
}
