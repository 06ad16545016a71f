package likelihood

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexknot/adapters/spline"
	"flexknot/domain/core"
	"flexknot/domain/dataset"
	"flexknot/domain/foreground"
	"flexknot/ports"
)

func newInterp() ports.InterpolatorPort { return spline.NewMonotone() }

func testSpectrum(t *testing.T, temps []float64) *dataset.Spectrum {
	t.Helper()
	freq := []float64{50, 60, 70, 80, 90}
	s, err := dataset.NewSpectrum(freq, temps)
	require.NoError(t, err)
	return s
}

func testEngine(t *testing.T, temps []float64, cfg Config) *Engine {
	t.Helper()
	cfg.NewInterpolator = newInterp
	e, err := NewEngine(testSpectrum(t, temps), cfg)
	require.NoError(t, err)
	return e
}

// flatProposal builds an order-0 proposal with both boundary amplitudes
// at c and all five power-law coefficients zero.
func flatProposal(c float64) ([]string, []float64) {
	return []string{"fy_f", "fy_l", "a_0", "a_1", "a_2", "a_3", "a_4"},
		[]float64{c, c, 0, 0, 0, 0, 0}
}

func TestEvaluateFlatModel(t *testing.T) {
	// With both boundary knots at the data value and no foreground the
	// residuals vanish, leaving only the Gaussian normalization.
	e := testEngine(t, []float64{3.5, 3.5, 3.5, 3.5, 3.5}, DefaultConfig(0))

	names, values := flatProposal(3.5)
	got, err := e.Evaluate(names, values)
	require.NoError(t, err)

	want := -5.0 * math.Log(math.Sqrt(2*math.Pi)*DefaultSigma)
	assert.InDelta(t, want, got, 1e-9)
}

func TestEvaluateAgainstDirectFormula(t *testing.T) {
	freq := []float64{50, 60, 70, 80, 90}
	temps := []float64{2.0, 2.6, 3.1, 3.4, 3.9}
	sigma := 0.5

	cfg := DefaultConfig(0)
	cfg.Sigma = sigma
	e := testEngine(t, temps, cfg)

	// Order 0 pins the curve to the straight line between the boundary
	// knots at 49.9 and 90.1 MHz, so the whole model is hand-computable.
	names := []string{"fy_f", "fy_l", "a_0", "a_1", "a_2", "a_3", "a_4"}
	values := []float64{2, 4, 1, 0, 0, 0, 5}

	want := 0.0
	for i, f := range freq {
		m := 2.0 + (f-49.9)*(4.0-2.0)/(90.1-49.9)
		m += math.Pow(f/75.0, -2.5) + 5*math.Pow(f/75.0, -2.0)
		r := (temps[i] - m) / sigma
		want += -0.5*r*r - math.Log(math.Sqrt(2*math.Pi)*sigma)
	}

	got, err := e.Evaluate(names, values)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-6)
}

func TestEvaluateDeterministic(t *testing.T) {
	e := testEngine(t, []float64{2.0, 2.6, 3.1, 3.4, 3.9}, DefaultConfig(2))

	names := []string{"fy_f", "fy_l", "x_1", "y_1", "x_2", "y_2", "a_0", "a_1", "a_2", "a_3", "a_4"}
	values := []float64{0.5, 1.5, 60, 1, 75, -2, 0, 0, 0, 0, 0}

	first, err := e.Evaluate(names, values)
	require.NoError(t, err)
	second, err := e.Evaluate(names, values)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	fromClone, err := e.Clone().Evaluate(names, values)
	require.NoError(t, err)
	assert.Equal(t, first, fromClone)
}

func TestEvaluateErrorsLeaveEngineUsable(t *testing.T) {
	e := testEngine(t, []float64{3.5, 3.5, 3.5, 3.5, 3.5}, DefaultConfig(2))

	names := []string{"fy_f", "fy_l", "x_1", "y_1", "x_2", "y_2", "a_0", "a_1", "a_2", "a_3", "a_4"}
	good := []float64{3.5, 3.5, 60, 3.5, 75, 3.5, 0, 0, 0, 0, 0}

	before, err := e.Evaluate(names, good)
	require.NoError(t, err)

	// Wrong proposal length.
	_, err = e.Evaluate([]string{"fy_f"}, []float64{1})
	require.Error(t, err)
	assert.True(t, core.IsProposalError(err))

	// Knot positions out of order reach the curve fit and bounce there.
	bad := []float64{3.5, 3.5, 80, 3.5, 60, 3.5, 0, 0, 0, 0, 0}
	_, err = e.Evaluate(names, bad)
	require.Error(t, err)
	assert.True(t, core.IsNumericError(err))
	assert.ErrorIs(t, err, core.ErrKnotPositions)

	// Failed calls leave no residue.
	after, err := e.Evaluate(names, good)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEvaluatePrefersCloserModel(t *testing.T) {
	e := testEngine(t, []float64{3.5, 3.5, 3.5, 3.5, 3.5}, DefaultConfig(0))

	names, near := flatProposal(3.5)
	_, far := flatProposal(10.0)

	nearScore, err := e.Evaluate(names, near)
	require.NoError(t, err)
	farScore, err := e.Evaluate(names, far)
	require.NoError(t, err)

	assert.Greater(t, nearScore, farScore)
}

func TestCurve(t *testing.T) {
	e := testEngine(t, []float64{3.5, 3.5, 3.5, 3.5, 3.5}, DefaultConfig(0))

	names, values := flatProposal(2.0)
	curve, err := e.Curve(names, values, []float64{55, 63.2, 88})
	require.NoError(t, err)

	require.Len(t, curve, 3)
	for i, v := range curve {
		assert.InDelta(t, 2.0, v, 1e-12, "query %d", i)
	}
}

func TestResiduals(t *testing.T) {
	temps := []float64{2.0, 2.6, 3.1, 3.4, 3.9}
	e := testEngine(t, temps, DefaultConfig(0))

	names, values := flatProposal(3.0)
	res, err := e.Residuals(names, values)
	require.NoError(t, err)

	require.Len(t, res, 5)
	for i := range res {
		assert.InDelta(t, temps[i]-3.0, res[i], 1e-12, "observation %d", i)
	}
}

func TestNewEngineValidation(t *testing.T) {
	spec := testSpectrum(t, []float64{1, 2, 3, 4, 5})

	tests := []struct {
		name string
		spec *dataset.Spectrum
		cfg  Config
	}{
		{"nil spectrum", nil, Config{Order: 0, Foreground: foreground.NewEdgesPowerLaw(), Sigma: 0.025, NewInterpolator: newInterp}},
		{"nil foreground", spec, Config{Order: 0, Sigma: 0.025, NewInterpolator: newInterp}},
		{"zero sigma", spec, Config{Order: 0, Foreground: foreground.NewEdgesPowerLaw(), NewInterpolator: newInterp}},
		{"negative sigma", spec, Config{Order: 0, Foreground: foreground.NewEdgesPowerLaw(), Sigma: -1, NewInterpolator: newInterp}},
		{"nil interpolator", spec, Config{Order: 0, Foreground: foreground.NewEdgesPowerLaw(), Sigma: 0.025}},
		{"negative order", spec, Config{Order: -1, Foreground: foreground.NewEdgesPowerLaw(), Sigma: 0.025, NewInterpolator: newInterp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.spec, tt.cfg)
			require.Error(t, err)
			assert.True(t, core.IsConfigError(err))
		})
	}
}

func TestEngineShape(t *testing.T) {
	e := testEngine(t, []float64{1, 2, 3, 4, 5}, DefaultConfig(3))

	assert.Equal(t, 13, e.Schema().Size())
	assert.Equal(t, 5, e.Schema().Knots())
	assert.Equal(t, 5, e.Observations())
	assert.Equal(t, DefaultSigma, e.Sigma())
	assert.Equal(t, "edges_power_law", e.Foreground().Name())
	assert.False(t, core.Hash(e.Fingerprint()).IsEmpty())
	assert.Equal(t, e.Fingerprint(), e.Clone().Fingerprint())
}

func TestCloneIsolation(t *testing.T) {
	e := testEngine(t, []float64{3.5, 3.5, 3.5, 3.5, 3.5}, DefaultConfig(0))
	clone := e.Clone()

	names, a := flatProposal(3.5)
	_, b := flatProposal(-1.0)

	wantA, err := e.Evaluate(names, a)
	require.NoError(t, err)

	// Scoring a different proposal on the clone must not disturb the
	// parent's scratch.
	_, err = clone.Evaluate(names, b)
	require.NoError(t, err)

	again, err := e.Evaluate(names, a)
	require.NoError(t, err)
	assert.Equal(t, wantA, again)
}
