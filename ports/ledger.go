package ports

import (
	"context"

	"flexknot/domain/core"
)

// Evaluation is one scored proposal as stored in the ledger.
type Evaluation struct {
	ID            core.EvaluationID `json:"id" db:"id"`
	SweepID       core.SweepID      `json:"sweep_id,omitempty" db:"sweep_id"`
	EngineHash    string            `json:"engine_hash" db:"engine_hash"`
	Names         []string          `json:"names"`
	Values        []float64         `json:"values"`
	LogLikelihood float64           `json:"log_likelihood" db:"log_likelihood"`
	ElapsedMicros int64             `json:"elapsed_us" db:"elapsed_us"`
	CreatedAt     core.Timestamp    `json:"created_at" db:"created_at"`
}

// LedgerPort provides append-only storage for scored proposals.
// Record never mutates existing rows; Best/Recent/Count are read-only.
type LedgerPort interface {
	Record(ctx context.Context, eval *Evaluation) error

	// Best returns the highest log-likelihood evaluation, or
	// core.ErrEvaluationNotFound when the ledger is empty.
	Best(ctx context.Context) (*Evaluation, error)

	// Recent returns up to limit evaluations, newest first.
	Recent(ctx context.Context, limit int) ([]Evaluation, error)

	Count(ctx context.Context) (int64, error)
}
