package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"flexknot/domain/dataset"
	"flexknot/domain/likelihood"
	"flexknot/ports"
)

// CurveResolution is how many evenly spaced frequencies the report
// samples the best-fit model at.
const CurveResolution = 300

// ReportService compiles a markdown report of the best evaluation seen
// so far: the dataset profile, the winning parameters, residual
// statistics and a sampled model curve.
type ReportService struct {
	engine   *likelihood.Engine
	spectrum *dataset.Spectrum
	ledger   ports.LedgerPort
}

// Report is the compiled best-fit report
type Report struct {
	Markdown      string    `json:"markdown"`
	LogLikelihood float64   `json:"log_likelihood"`
	Evaluations   int64     `json:"evaluations"`
	CurveFreqs    []float64 `json:"curve_freqs"`
	CurveTemps    []float64 `json:"curve_temps"`
}

// NewReportService creates a report service
func NewReportService(engine *likelihood.Engine, spectrum *dataset.Spectrum, ledger ports.LedgerPort) *ReportService {
	return &ReportService{
		engine:   engine,
		spectrum: spectrum,
		ledger:   ledger,
	}
}

// Compile builds the report for the current best evaluation. Returns
// core.ErrEvaluationNotFound when the ledger is empty. The engine is
// cloned per call so report compilation never races live evaluations.
func (s *ReportService) Compile(ctx context.Context) (*Report, error) {
	best, err := s.ledger.Best(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.ledger.Count(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.spectrum.Profile()
	if err != nil {
		return nil, err
	}

	worker := s.engine.Clone()
	residuals, err := worker.Residuals(best.Names, best.Values)
	if err != nil {
		return nil, fmt.Errorf("best evaluation no longer scores: %w", err)
	}

	resData := stats.Float64Data(residuals)
	resMean, err := stats.Mean(resData)
	if err != nil {
		return nil, err
	}
	resStd, err := stats.StandardDeviation(resData)
	if err != nil {
		return nil, err
	}
	resMax, err := stats.Max(resData)
	if err != nil {
		return nil, err
	}
	resMin, err := stats.Min(resData)
	if err != nil {
		return nil, err
	}

	queries := floats.Span(make([]float64, CurveResolution), s.spectrum.FreqMin(), s.spectrum.FreqMax())
	curve, err := worker.Curve(best.Names, best.Values, queries)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Flexknot fit report\n\n")
	fmt.Fprintf(&b, "Generated %s after %d evaluations.\n\n", time.Now().UTC().Format(time.RFC3339), count)

	fmt.Fprintf(&b, "## Dataset\n\n")
	fmt.Fprintf(&b, "- Observations: %d spanning %.2f-%.2f MHz\n", profile.Samples, profile.FreqMin, profile.FreqMax)
	fmt.Fprintf(&b, "- Temperature: mean %.4f K, std %.4f K, range [%.4f, %.4f] K\n", profile.TempMean, profile.TempStd, profile.TempMin, profile.TempMax)
	fmt.Fprintf(&b, "- Fingerprint: `%s`\n\n", profile.Fingerprint)

	fmt.Fprintf(&b, "## Best fit\n\n")
	fmt.Fprintf(&b, "- Log-likelihood: %.6f\n", best.LogLikelihood)
	fmt.Fprintf(&b, "- Model: %s, order %d, sigma %.4g K\n", s.engine.Foreground().Name(), s.engine.Schema().Order, s.engine.Sigma())
	fmt.Fprintf(&b, "- Evaluation: `%s` (%.1fms)\n\n", best.ID, float64(best.ElapsedMicros)/1000.0)

	fmt.Fprintf(&b, "| Parameter | Value |\n|---|---|\n")
	for i, name := range best.Names {
		fmt.Fprintf(&b, "| %s | %.6g |\n", name, best.Values[i])
	}

	fmt.Fprintf(&b, "\n## Residuals\n\n")
	fmt.Fprintf(&b, "- Mean %.6g K, std %.6g K, range [%.6g, %.6g] K\n", resMean, resStd, resMin, resMax)

	return &Report{
		Markdown:      b.String(),
		LogLikelihood: best.LogLikelihood,
		Evaluations:   count,
		CurveFreqs:    queries,
		CurveTemps:    curve,
	}, nil
}
