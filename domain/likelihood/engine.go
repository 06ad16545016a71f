package likelihood

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"flexknot/domain/core"
	"flexknot/domain/dataset"
	"flexknot/domain/flexknot"
	"flexknot/domain/foreground"
	"flexknot/ports"
)

// DefaultSigma is the assumed Gaussian measurement error of the EDGES
// low-band spectrum, in Kelvin.
const DefaultSigma = 0.025

// Config selects the model an engine scores proposals against.
type Config struct {
	// Order is the number of interior knots.
	Order int

	// Foreground is the parametric model added to the knot curve.
	Foreground foreground.Model

	// Sigma is the per-observation Gaussian noise in Kelvin.
	Sigma float64

	// NewInterpolator constructs the curve fitter. The engine and every
	// clone call it once, so each instance stays single-owner.
	NewInterpolator func() ports.InterpolatorPort
}

// DefaultConfig returns the EDGES low-band setup for the given knot
// order: five-term power-law foreground and 25 mK noise. Callers supply
// the interpolator constructor when building the engine.
func DefaultConfig(order int) Config {
	return Config{
		Order:      order,
		Foreground: foreground.NewEdgesPowerLaw(),
		Sigma:      DefaultSigma,
	}
}

// Engine scores flexknot-plus-foreground proposals against one observed
// spectrum. Dataset columns are copied in and the decode and model
// buffers are allocated once at construction, so repeated Evaluate calls
// do not allocate. An engine must not be shared between goroutines; give
// each worker a Clone.
type Engine struct {
	freq []float64
	temp []float64

	schema *flexknot.Schema
	fg     foreground.Model
	sigma  float64

	newInterp func() ports.InterpolatorPort
	interp    ports.InterpolatorPort

	// Per-call scratch, fully overwritten before use on every call.
	knots *flexknot.KnotSet
	model []float64

	fingerprint core.EngineHash
}

// NewEngine validates the configuration and allocates scratch for spec.
func NewEngine(spec *dataset.Spectrum, cfg Config) (*Engine, error) {
	if spec == nil {
		return nil, core.ErrEmptyDataset
	}
	if cfg.Foreground == nil {
		return nil, fmt.Errorf("%w: nil foreground model", core.ErrConfig)
	}
	if cfg.Sigma <= 0 {
		return nil, fmt.Errorf("%w: got %v", core.ErrSigma, cfg.Sigma)
	}
	if cfg.NewInterpolator == nil {
		return nil, fmt.Errorf("%w: nil interpolator constructor", core.ErrConfig)
	}

	schema, err := flexknot.NewSchema(cfg.Order, cfg.Foreground.Terms(), spec.FreqMin(), spec.FreqMax())
	if err != nil {
		return nil, err
	}

	return &Engine{
		freq:        spec.Freqs(),
		temp:        spec.Temps(),
		schema:      schema,
		fg:          cfg.Foreground,
		sigma:       cfg.Sigma,
		newInterp:   cfg.NewInterpolator,
		interp:      cfg.NewInterpolator(),
		knots:       flexknot.NewKnotSet(schema),
		model:       make([]float64, spec.Len()),
		fingerprint: core.ComputeEngineHash(cfg.Order, cfg.Foreground.Name(), cfg.Sigma, spec.Fingerprint()),
	}, nil
}

// Evaluate decodes one proposal, fits the knot curve, and returns the
// Gaussian log-likelihood of the observed spectrum under curve plus
// foreground. Proposal and fit errors leave the engine ready for the
// next call. Identical inputs always produce identical results.
func (e *Engine) Evaluate(names []string, values []float64) (float64, error) {
	if err := e.schema.Decode(names, values, e.knots); err != nil {
		return 0, err
	}
	if err := e.interp.Fit(e.knots.X, e.knots.Y); err != nil {
		return 0, err
	}

	sum := 0.0
	for i, f := range e.freq {
		m := e.interp.Predict(f) + e.fg.Eval(e.knots.Foreground, f)
		e.model[i] = m
		obs := distuv.Normal{Mu: m, Sigma: e.sigma}
		sum += obs.LogProb(e.temp[i])
	}
	return sum, nil
}

// Curve evaluates the proposal's model spectrum (knot curve plus
// foreground) at arbitrary query frequencies. Queries are expected to
// lie within the knot span; the boundary knots sit just outside the
// observed band, so any observed frequency is valid.
func (e *Engine) Curve(names []string, values []float64, queries []float64) ([]float64, error) {
	if err := e.schema.Decode(names, values, e.knots); err != nil {
		return nil, err
	}
	if err := e.interp.Fit(e.knots.X, e.knots.Y); err != nil {
		return nil, err
	}

	out := make([]float64, len(queries))
	for i, q := range queries {
		out[i] = e.interp.Predict(q) + e.fg.Eval(e.knots.Foreground, q)
	}
	return out, nil
}

// Residuals returns observed minus model at each data frequency.
func (e *Engine) Residuals(names []string, values []float64) ([]float64, error) {
	if _, err := e.Evaluate(names, values); err != nil {
		return nil, err
	}
	res := make([]float64, len(e.temp))
	for i := range res {
		res[i] = e.temp[i] - e.model[i]
	}
	return res, nil
}

// Clone returns an engine sharing the immutable dataset columns but
// owning fresh scratch and a fresh interpolator. Sweeps give one clone
// to each worker.
func (e *Engine) Clone() *Engine {
	return &Engine{
		freq:        e.freq,
		temp:        e.temp,
		schema:      e.schema,
		fg:          e.fg,
		sigma:       e.sigma,
		newInterp:   e.newInterp,
		interp:      e.newInterp(),
		knots:       flexknot.NewKnotSet(e.schema),
		model:       make([]float64, len(e.freq)),
		fingerprint: e.fingerprint,
	}
}

// Schema exposes the parameter layout so hosts can size proposals.
func (e *Engine) Schema() *flexknot.Schema { return e.schema }

// Foreground returns the configured foreground model.
func (e *Engine) Foreground() foreground.Model { return e.fg }

// Sigma returns the configured noise level in Kelvin.
func (e *Engine) Sigma() float64 { return e.sigma }

// Observations returns the dataset length.
func (e *Engine) Observations() int { return len(e.freq) }

// Fingerprint identifies the engine configuration and dataset.
func (e *Engine) Fingerprint() core.EngineHash { return e.fingerprint }
