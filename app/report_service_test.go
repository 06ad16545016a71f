package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexknot/adapters/memory"
	"flexknot/adapters/spline"
	"flexknot/domain/core"
	"flexknot/domain/dataset"
	"flexknot/domain/likelihood"
	"flexknot/ports"
)

func TestReportEmptyLedger(t *testing.T) {
	engine := testEngine(t)
	spec, err := dataset.NewSpectrum([]float64{50, 60, 70, 80, 90}, []float64{3.5, 3.5, 3.5, 3.5, 3.5})
	require.NoError(t, err)

	svc := NewReportService(engine, spec, memory.NewLedger(10))
	_, err = svc.Compile(context.Background())
	assert.ErrorIs(t, err, core.ErrEvaluationNotFound)
}

func TestReportCompilesBestFit(t *testing.T) {
	spec, err := dataset.NewSpectrum(
		[]float64{50, 60, 70, 80, 90},
		[]float64{3.5, 3.5, 3.5, 3.5, 3.5},
	)
	require.NoError(t, err)

	cfg := likelihood.DefaultConfig(0)
	cfg.NewInterpolator = func() ports.InterpolatorPort { return spline.NewMonotone() }
	engine, err := likelihood.NewEngine(spec, cfg)
	require.NoError(t, err)

	ledger := memory.NewLedger(10)
	evalSvc := NewEvaluationService(engine, ledger)
	_, err = evalSvc.Evaluate(context.Background(), flatProposal(3.0).Names, flatProposal(3.0).Values)
	require.NoError(t, err)
	_, err = evalSvc.Evaluate(context.Background(), flatProposal(3.5).Names, flatProposal(3.5).Values)
	require.NoError(t, err)

	svc := NewReportService(engine, spec, ledger)
	report, err := svc.Compile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.Evaluations)
	assert.Len(t, report.CurveFreqs, CurveResolution)
	assert.Len(t, report.CurveTemps, CurveResolution)
	assert.Equal(t, 50.0, report.CurveFreqs[0])
	assert.Equal(t, 90.0, report.CurveFreqs[CurveResolution-1])

	// The exact-fit proposal wins, so the curve is flat at 3.5 and the
	// residuals vanish.
	for _, temp := range report.CurveTemps {
		assert.InDelta(t, 3.5, temp, 1e-9)
	}
	assert.Contains(t, report.Markdown, "# Flexknot fit report")
	assert.Contains(t, report.Markdown, "edges_power_law")
	assert.Contains(t, report.Markdown, "| fy_f | 3.5 |")
	assert.Contains(t, report.Markdown, "2 evaluations")
}
