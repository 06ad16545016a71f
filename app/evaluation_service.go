package app

import (
	"context"
	"log"
	"sync"
	"time"

	"flexknot/domain/core"
	"flexknot/domain/likelihood"
	"flexknot/ports"
)

// EvaluationService scores single proposals and records them in the
// ledger. The engine's scratch memory is single-owner, so concurrent
// requests are serialized through one mutex; batch workloads should use
// SweepService, which clones the engine per worker instead.
type EvaluationService struct {
	mu     sync.Mutex
	engine *likelihood.Engine
	ledger ports.LedgerPort
}

// EvaluationResult is one scored proposal
type EvaluationResult struct {
	ID            core.EvaluationID `json:"id"`
	LogLikelihood float64           `json:"log_likelihood"`
	ElapsedMicros int64             `json:"elapsed_us"`
}

// NewEvaluationService creates an evaluation service
func NewEvaluationService(engine *likelihood.Engine, ledger ports.LedgerPort) *EvaluationService {
	return &EvaluationService{
		engine: engine,
		ledger: ledger,
	}
}

// Evaluate scores one proposal and records the result. Ledger failures
// are logged, never surfaced: a scored proposal is still a valid answer
// for the sampler even when persistence is down.
func (s *EvaluationService) Evaluate(ctx context.Context, names []string, values []float64) (*EvaluationResult, error) {
	s.mu.Lock()
	start := time.Now()
	logL, err := s.engine.Evaluate(names, values)
	elapsed := time.Since(start).Microseconds()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	result := &EvaluationResult{
		ID:            core.EvaluationID(core.NewID()),
		LogLikelihood: logL,
		ElapsedMicros: elapsed,
	}

	s.record(ctx, result.ID, "", names, values, logL, elapsed)
	return result, nil
}

func (s *EvaluationService) record(ctx context.Context, id core.EvaluationID, sweepID core.SweepID, names []string, values []float64, logL float64, elapsed int64) {
	if s.ledger == nil {
		return
	}
	eval := &ports.Evaluation{
		ID:            id,
		SweepID:       sweepID,
		EngineHash:    s.engine.Fingerprint().String(),
		Names:         names,
		Values:        values,
		LogLikelihood: logL,
		ElapsedMicros: elapsed,
		CreatedAt:     core.Now(),
	}
	if err := s.ledger.Record(ctx, eval); err != nil {
		log.Printf("[EvaluationService] Failed to record evaluation %s: %v", id, err)
	}
}
