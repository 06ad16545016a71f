package memory

import (
	"context"
	"sync"

	"flexknot/domain/core"
	"flexknot/ports"
)

// Ledger is a bounded in-memory evaluation store, the default when no
// DATABASE_URL is configured. The best evaluation is tracked separately so
// it survives eviction of old rows.
type Ledger struct {
	mu    sync.Mutex
	rows  []ports.Evaluation
	best  *ports.Evaluation
	total int64
	limit int
}

// NewLedger creates a ledger keeping at most limit recent evaluations.
func NewLedger(limit int) *Ledger {
	if limit < 1 {
		limit = 1
	}
	return &Ledger{limit: limit}
}

// Record appends an evaluation, evicting the oldest row past the limit.
func (l *Ledger) Record(ctx context.Context, eval *ports.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows = append(l.rows, *eval)
	if len(l.rows) > l.limit {
		l.rows = l.rows[len(l.rows)-l.limit:]
	}
	l.total++

	if l.best == nil || eval.LogLikelihood > l.best.LogLikelihood {
		best := *eval
		l.best = &best
	}
	return nil
}

// Best returns the highest log-likelihood evaluation recorded so far.
func (l *Ledger) Best(ctx context.Context) (*ports.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.best == nil {
		return nil, core.ErrEvaluationNotFound
	}
	best := *l.best
	return &best, nil
}

// Recent returns up to limit evaluations, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]ports.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limit > len(l.rows) {
		limit = len(l.rows)
	}
	out := make([]ports.Evaluation, 0, limit)
	for i := len(l.rows) - 1; i >= len(l.rows)-limit; i-- {
		out = append(out, l.rows[i])
	}
	return out, nil
}

// Count returns the number of evaluations ever recorded, including
// evicted ones.
func (l *Ledger) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total, nil
}

var _ ports.LedgerPort = (*Ledger)(nil)
