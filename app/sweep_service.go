package app

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"flexknot/domain/core"
	"flexknot/domain/likelihood"
	"flexknot/ports"
)

// SweepService evaluates batches of proposals concurrently. Each worker
// holds its own engine clone, so no scratch memory is ever shared; a
// weighted semaphore caps how many clones run at once.
type SweepService struct {
	engine  *likelihood.Engine
	ledger  ports.LedgerPort
	sem     *semaphore.Weighted
	workers int
}

// Proposal is one named parameter vector in a sweep request
type Proposal struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// ProposalResult is the outcome for one proposal, in request order
type ProposalResult struct {
	Index         int     `json:"index"`
	LogLikelihood float64 `json:"log_likelihood,omitempty"`
	Error         string  `json:"error,omitempty"`
	OK            bool    `json:"ok"`
}

// SweepOutcome is the complete result of one sweep
type SweepOutcome struct {
	SweepID   core.SweepID     `json:"sweep_id"`
	Results   []ProposalResult `json:"results"`
	Evaluated int              `json:"evaluated"`
	Failed    int              `json:"failed"`
	RuntimeMs int64            `json:"runtime_ms"`
}

// NewSweepService creates a sweep service allowing up to workers
// concurrent engine clones.
func NewSweepService(engine *likelihood.Engine, ledger ports.LedgerPort, workers int) *SweepService {
	if workers < 1 {
		workers = 1
	}
	return &SweepService{
		engine:  engine,
		ledger:  ledger,
		sem:     semaphore.NewWeighted(int64(workers)),
		workers: workers,
	}
}

// Run scores every proposal and returns results in request order. A bad
// proposal fails only its own slot; the rest of the batch proceeds.
func (s *SweepService) Run(ctx context.Context, proposals []Proposal) (*SweepOutcome, error) {
	start := time.Now()
	sweepID := core.SweepID(core.NewID())

	results := make([]ProposalResult, len(proposals))
	var wg sync.WaitGroup

	for i, p := range proposals {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(idx int, prop Proposal) {
			defer wg.Done()
			defer s.sem.Release(1)

			worker := s.engine.Clone()
			evalStart := time.Now()
			logL, err := worker.Evaluate(prop.Names, prop.Values)
			if err != nil {
				results[idx] = ProposalResult{Index: idx, Error: err.Error()}
				return
			}
			results[idx] = ProposalResult{Index: idx, LogLikelihood: logL, OK: true}

			s.record(ctx, sweepID, prop, logL, time.Since(evalStart).Microseconds())
		}(i, p)
	}
	wg.Wait()

	outcome := &SweepOutcome{
		SweepID:   sweepID,
		Results:   results,
		RuntimeMs: time.Since(start).Milliseconds(),
	}
	for _, r := range results {
		if r.OK {
			outcome.Evaluated++
		} else {
			outcome.Failed++
		}
	}

	log.Printf("[SweepService] Sweep %s: %d evaluated, %d failed in %dms",
		sweepID, outcome.Evaluated, outcome.Failed, outcome.RuntimeMs)
	return outcome, nil
}

// Workers returns the configured concurrency cap.
func (s *SweepService) Workers() int { return s.workers }

func (s *SweepService) record(ctx context.Context, sweepID core.SweepID, p Proposal, logL float64, elapsed int64) {
	if s.ledger == nil {
		return
	}
	eval := &ports.Evaluation{
		ID:            core.EvaluationID(core.NewID()),
		SweepID:       sweepID,
		EngineHash:    s.engine.Fingerprint().String(),
		Names:         p.Names,
		Values:        p.Values,
		LogLikelihood: logL,
		ElapsedMicros: elapsed,
		CreatedAt:     core.Now(),
	}
	if err := s.ledger.Record(ctx, eval); err != nil {
		log.Printf("[SweepService] Failed to record evaluation in sweep %s: %v", sweepID, err)
	}
}
