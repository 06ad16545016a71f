package proposal

import (
	"fmt"
	"math"

	"flexknot/domain/core"
	"flexknot/domain/flexknot"
)

// Prior is a closed uniform range.
type Prior struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultForegroundPrior is the wide-open range used for a foreground
// coefficient when the host does not narrow it.
var DefaultForegroundPrior = Prior{Min: -100000, Max: 100000}

// DefaultForegroundPriors returns n copies of the wide-open coefficient
// prior.
func DefaultForegroundPriors(n int) []Prior {
	out := make([]Prior, n)
	for i := range out {
		out[i] = DefaultForegroundPrior
	}
	return out
}

// Block describes the parameter space a sampling host walks: the interior
// knot count, a shared amplitude range for interior and boundary knots,
// and one prior per foreground coefficient. Transform maps draws from the
// unit hypercube into physical values in the canonical name order, so a
// host needs no knowledge of the knot geometry.
type Block struct {
	Order      int
	Knot       Prior
	Foreground []Prior

	// Observed frequency span; interior knot positions land inside it.
	FreqMin float64
	FreqMax float64

	names []string
}

// NewBlock validates the priors and fixes the canonical name order.
func NewBlock(order int, knot Prior, fg []Prior, freqMin, freqMax float64) (*Block, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: %d", core.ErrOrder, order)
	}
	if knot.Min > knot.Max {
		return nil, fmt.Errorf("%w: knot range [%v, %v]", core.ErrPriorBounds, knot.Min, knot.Max)
	}
	for i, p := range fg {
		if p.Min > p.Max {
			return nil, fmt.Errorf("%w: foreground prior %d [%v, %v]", core.ErrPriorBounds, i, p.Min, p.Max)
		}
	}
	if freqMin >= freqMax {
		return nil, fmt.Errorf("%w: span [%v, %v]", core.ErrFrequencyOrder, freqMin, freqMax)
	}

	return &Block{
		Order:      order,
		Knot:       knot,
		Foreground: append([]Prior(nil), fg...),
		FreqMin:    freqMin,
		FreqMax:    freqMax,
		names:      flexknot.CanonicalNames(order, len(fg)),
	}, nil
}

// Names returns the canonical parameter ordering.
func (b *Block) Names() []string {
	return append([]string(nil), b.names...)
}

// Size is the parameter count, matching the engine schema built from the
// same order and foreground model.
func (b *Block) Size() int { return len(b.names) }

// Transform maps one unit-hypercube draw to physical parameter values
// aligned with Names. Amplitudes scale into the knot range and foreground
// coefficients into their priors. Interior positions follow the
// sorted-uniform recursion of Handley et al. (2015), which draws them
// jointly uniform over ascending configurations of the observed span, so
// the resulting knot vector is ordered without any rejection step.
func (b *Block) Transform(unit []float64) ([]float64, error) {
	if len(unit) != b.Size() {
		return nil, core.NewShapeError(b.Size(), len(unit))
	}
	for i, v := range unit {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: unit[%d]=%v outside [0, 1]", core.ErrProposal, i, v)
		}
	}

	scale := func(p Prior, v float64) float64 {
		return p.Min + v*(p.Max-p.Min)
	}

	out := make([]float64, b.Size())
	out[0] = scale(b.Knot, unit[0])
	out[1] = scale(b.Knot, unit[1])

	x := b.FreqMin
	for i := 0; i < b.Order; i++ {
		v := unit[2+2*i]
		x += (b.FreqMax - x) * (1 - math.Pow(v, 1/float64(b.Order-i)))
		out[2+2*i] = x
		out[3+2*i] = scale(b.Knot, unit[3+2*i])
	}

	base := 2 + 2*b.Order
	for i, p := range b.Foreground {
		out[base+i] = scale(p, unit[base+i])
	}
	return out, nil
}
