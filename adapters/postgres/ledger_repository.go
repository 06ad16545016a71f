package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"flexknot/domain/core"
	"flexknot/ports"
)

// LedgerRepositoryImpl implements the evaluation ledger for PostgreSQL
type LedgerRepositoryImpl struct {
	db *sqlx.DB
}

// NewLedgerRepository creates a new PostgreSQL evaluation ledger
func NewLedgerRepository(db *sqlx.DB) ports.LedgerPort {
	return &LedgerRepositoryImpl{db: db}
}

// evalParams is the JSONB shape of the params column
type evalParams struct {
	Names  []string  `json:"names"`
	Values []float64 `json:"values"`
}

// Record appends one scored proposal to the evaluations table
func (r *LedgerRepositoryImpl) Record(ctx context.Context, eval *ports.Evaluation) error {
	paramsJSON, err := json.Marshal(evalParams{Names: eval.Names, Values: eval.Values})
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation params: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO evaluations (
			id, sweep_id, engine_hash, params, log_likelihood, elapsed_us, created_at
		) VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7)`,
		eval.ID.String(), eval.SweepID.String(), eval.EngineHash, paramsJSON,
		eval.LogLikelihood, eval.ElapsedMicros, eval.CreatedAt.Time())

	return err
}

// Best returns the highest log-likelihood evaluation
func (r *LedgerRepositoryImpl) Best(ctx context.Context) (*ports.Evaluation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(sweep_id::text, ''), engine_hash, params, log_likelihood, elapsed_us, created_at
		FROM evaluations
		ORDER BY log_likelihood DESC, created_at ASC
		LIMIT 1`)

	eval, err := scanEvaluation(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrEvaluationNotFound
	}
	return eval, err
}

// Recent returns up to limit evaluations, newest first
func (r *LedgerRepositoryImpl) Recent(ctx context.Context, limit int) ([]ports.Evaluation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, COALESCE(sweep_id::text, ''), engine_hash, params, log_likelihood, elapsed_us, created_at
		FROM evaluations
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []ports.Evaluation
	for rows.Next() {
		eval, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, *eval)
	}
	return evals, rows.Err()
}

// Count returns the total number of recorded evaluations
func (r *LedgerRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM evaluations`)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluation(row rowScanner) (*ports.Evaluation, error) {
	var eval ports.Evaluation
	var id, sweepID string
	var paramsJSON []byte
	var createdAt sql.NullTime

	err := row.Scan(&id, &sweepID, &eval.EngineHash, &paramsJSON,
		&eval.LogLikelihood, &eval.ElapsedMicros, &createdAt)
	if err != nil {
		return nil, err
	}

	eval.ID = core.EvaluationID(id)
	eval.SweepID = core.SweepID(sweepID)
	if createdAt.Valid {
		eval.CreatedAt = core.NewTimestamp(createdAt.Time)
	}

	var params evalParams
	if err := json.Unmarshal(paramsJSON, &params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation params: %w", err)
	}
	eval.Names = params.Names
	eval.Values = params.Values

	return &eval, nil
}
