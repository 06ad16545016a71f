package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors (engine and schema construction)
	ErrConfig         = errors.New("invalid configuration")
	ErrEmptyDataset   = fmt.Errorf("%w: empty dataset", ErrConfig)
	ErrLengthMismatch = fmt.Errorf("%w: frequency and temperature lengths differ", ErrConfig)
	ErrFrequencyOrder = fmt.Errorf("%w: frequencies not strictly increasing", ErrConfig)
	ErrOrder          = fmt.Errorf("%w: negative knot order", ErrConfig)
	ErrSigma          = fmt.Errorf("%w: noise sigma must be positive", ErrConfig)
	ErrUnknownModel   = fmt.Errorf("%w: unknown foreground model", ErrConfig)
	ErrPriorBounds    = fmt.Errorf("%w: prior lower bound above upper bound", ErrConfig)

	// Proposal errors (per-call decode)
	ErrProposal      = errors.New("malformed proposal")
	ErrProposalShape = fmt.Errorf("%w: wrong parameter count", ErrProposal)
	ErrUnknownTag    = fmt.Errorf("%w: unknown parameter tag", ErrProposal)
	ErrTagCount      = fmt.Errorf("%w: parameter tag count mismatch", ErrProposal)

	// Numeric errors (per-call curve fit)
	ErrNumeric       = errors.New("numeric failure")
	ErrKnotPositions = fmt.Errorf("%w: knot positions not strictly increasing", ErrNumeric)

	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrEvaluationNotFound = fmt.Errorf("%w: evaluation", ErrNotFound)
)

// Error constructors with context
func NewTagCountError(tag byte, want, got int) error {
	return fmt.Errorf("%w: want %d %q-tagged parameters, got %d", ErrTagCount, want, tag, got)
}

func NewUnknownTagError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

func NewShapeError(want, got int) error {
	return fmt.Errorf("%w: want %d parameters, got %d", ErrProposalShape, want, got)
}

// Error checking helpers
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

func IsProposalError(err error) bool {
	return errors.Is(err, ErrProposal)
}

func IsNumericError(err error) bool {
	return errors.Is(err, ErrNumeric)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
