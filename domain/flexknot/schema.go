package flexknot

import (
	"fmt"

	"flexknot/domain/core"
)

// Border is the margin in MHz by which the boundary knots sit outside the
// observed frequency span, keeping every observation interior to the
// fitted curve.
const Border = 0.1

// Schema fixes the parameter layout for one engine: how many interior
// knots, how many foreground coefficients, and where the two boundary
// knots sit. Every proposal vector is validated against it on decode.
type Schema struct {
	Order           int
	ForegroundTerms int

	// Boundary knot positions, derived from the observed span.
	LeftEdge  float64
	RightEdge float64
}

// NewSchema builds the parameter layout for a dataset spanning
// [freqMin, freqMax].
func NewSchema(order, fgTerms int, freqMin, freqMax float64) (*Schema, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: %d", core.ErrOrder, order)
	}
	if fgTerms < 0 {
		return nil, fmt.Errorf("%w: negative foreground term count %d", core.ErrConfig, fgTerms)
	}
	return &Schema{
		Order:           order,
		ForegroundTerms: fgTerms,
		LeftEdge:        freqMin - Border,
		RightEdge:       freqMax + Border,
	}, nil
}

// Size is the proposal length the schema accepts.
func (s *Schema) Size() int { return 2*s.Order + 2 + s.ForegroundTerms }

// Knots is the knot vector length including both boundary knots.
func (s *Schema) Knots() int { return s.Order + 2 }

// Names returns the canonical host-side parameter ordering for this
// schema.
func (s *Schema) Names() []string {
	return CanonicalNames(s.Order, s.ForegroundTerms)
}

// CanonicalNames returns the parameter ordering hosts are expected to use:
// the two boundary amplitudes, then alternating interior knot positions
// and amplitudes, then foreground coefficients. Decode accepts any
// ordering; this one is the published convention.
func CanonicalNames(order, fgTerms int) []string {
	names := make([]string, 0, 2*order+2+fgTerms)
	names = append(names, "fy_f", "fy_l")
	for i := 1; i <= order; i++ {
		names = append(names, fmt.Sprintf("x_%d", i), fmt.Sprintf("y_%d", i))
	}
	for i := 0; i < fgTerms; i++ {
		names = append(names, fmt.Sprintf("a_%d", i))
	}
	return names
}

// KnotSet is the decode target: the full knot vector plus foreground
// coefficients for one proposal. An engine allocates one and reuses it
// across calls; each successful decode fully overwrites it. Not safe for
// concurrent use.
type KnotSet struct {
	X          []float64 // knot positions, boundary knots at the ends
	Y          []float64 // knot amplitudes
	Foreground []float64
}

// NewKnotSet allocates buffers sized for the schema.
func NewKnotSet(s *Schema) *KnotSet {
	return &KnotSet{
		X:          make([]float64, s.Knots()),
		Y:          make([]float64, s.Knots()),
		Foreground: make([]float64, s.ForegroundTerms),
	}
}

// Decode scatters a named proposal into ks. Each name's leading character
// selects its bucket: interior knot positions ('x') and amplitudes ('y')
// fill slots 1..Order in encounter order, the first 'f' parameter is the
// left boundary amplitude and the second the right, and 'a' parameters
// append as foreground coefficients. Tag counts must match the schema
// exactly; knot ordering is left to the curve fit.
func (s *Schema) Decode(names []string, values []float64, ks *KnotSet) error {
	if len(names) != len(values) {
		return fmt.Errorf("%w: %d names, %d values", core.ErrProposalShape, len(names), len(values))
	}
	if len(names) != s.Size() {
		return core.NewShapeError(s.Size(), len(names))
	}

	xSeen, ySeen, aSeen, fSeen := 0, 0, 0, 0
	for i, name := range names {
		if name == "" {
			return core.NewUnknownTagError(name)
		}
		switch name[0] {
		case 'x':
			if xSeen == s.Order {
				return core.NewTagCountError('x', s.Order, xSeen+1)
			}
			xSeen++
			ks.X[xSeen] = values[i]
		case 'y':
			if ySeen == s.Order {
				return core.NewTagCountError('y', s.Order, ySeen+1)
			}
			ySeen++
			ks.Y[ySeen] = values[i]
		case 'a':
			if aSeen == s.ForegroundTerms {
				return core.NewTagCountError('a', s.ForegroundTerms, aSeen+1)
			}
			ks.Foreground[aSeen] = values[i]
			aSeen++
		case 'f':
			switch fSeen {
			case 0:
				ks.X[0] = s.LeftEdge
				ks.Y[0] = values[i]
			case 1:
				ks.X[s.Order+1] = s.RightEdge
				ks.Y[s.Order+1] = values[i]
			default:
				return core.NewTagCountError('f', 2, fSeen+1)
			}
			fSeen++
		default:
			return core.NewUnknownTagError(name)
		}
	}

	if xSeen != s.Order {
		return core.NewTagCountError('x', s.Order, xSeen)
	}
	if ySeen != s.Order {
		return core.NewTagCountError('y', s.Order, ySeen)
	}
	if fSeen != 2 {
		return core.NewTagCountError('f', 2, fSeen)
	}
	if aSeen != s.ForegroundTerms {
		return core.NewTagCountError('a', s.ForegroundTerms, aSeen)
	}
	return nil
}
