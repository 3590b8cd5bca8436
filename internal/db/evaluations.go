package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// SaveEvaluation archives one evaluation result and returns its ID.
// The full result is stored as JSONB alongside the columns used for
// filtering and ranking queries.
func (db *DB) SaveEvaluation(ctx context.Context, result *types.EvaluationResult, batchRunID *uuid.UUID) (uuid.UUID, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal evaluation: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO evaluations (resume_id, job_id, overall_score, verdict, result, batch_run_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		result.ResumeID, result.JobID, result.OverallScore, string(result.SuitabilityVerdict), payload, batchRunID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save evaluation: %w", err)
	}
	return id, nil
}

// GetEvaluation retrieves an archived evaluation by ID. A missing row
// returns (nil, nil).
func (db *DB) GetEvaluation(ctx context.Context, id uuid.UUID) (*StoredEvaluation, error) {
	var stored StoredEvaluation
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, resume_id, job_id, overall_score, verdict, result, batch_run_id, created_at
		 FROM evaluations WHERE id = $1`,
		id,
	).Scan(&stored.ID, &stored.ResumeID, &stored.JobID, &stored.OverallScore, &stored.Verdict, &payload, &stored.BatchRunID, &stored.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}

	if len(payload) > 0 {
		var result types.EvaluationResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("failed to decode stored evaluation: %w", err)
		}
		stored.Result = &result
	}
	return &stored, nil
}

// EvaluationFilters holds optional filters for listing evaluations
type EvaluationFilters struct {
	JobID      string
	ResumeID   string
	Verdict    string
	BatchRunID uuid.UUID
	Limit      int
}

// ListEvaluations retrieves archived evaluations with optional
// filters, best score first.
func (db *DB) ListEvaluations(ctx context.Context, filters EvaluationFilters) ([]StoredEvaluation, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, resume_id, job_id, overall_score, verdict, batch_run_id, created_at
		FROM evaluations WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.JobID != "" {
		query += fmt.Sprintf(" AND job_id = $%d", argNum)
		args = append(args, filters.JobID)
		argNum++
	}
	if filters.ResumeID != "" {
		query += fmt.Sprintf(" AND resume_id = $%d", argNum)
		args = append(args, filters.ResumeID)
		argNum++
	}
	if filters.Verdict != "" {
		query += fmt.Sprintf(" AND verdict = $%d", argNum)
		args = append(args, filters.Verdict)
		argNum++
	}
	if filters.BatchRunID != uuid.Nil {
		query += fmt.Sprintf(" AND batch_run_id = $%d", argNum)
		args = append(args, filters.BatchRunID)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY overall_score DESC, created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []StoredEvaluation
	for rows.Next() {
		var stored StoredEvaluation
		if err := rows.Scan(&stored.ID, &stored.ResumeID, &stored.JobID, &stored.OverallScore, &stored.Verdict, &stored.BatchRunID, &stored.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		evaluations = append(evaluations, stored)
	}
	return evaluations, nil
}

// CreateBatchRun creates a batch run record and returns its ID
func (db *DB) CreateBatchRun(ctx context.Context, jobID string, total int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO batch_runs (job_id, total, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		jobID, total, BatchStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create batch run: %w", err)
	}
	return id, nil
}

// CompleteBatchRun records the outcome counts and final status of a
// batch run.
func (db *DB) CompleteBatchRun(ctx context.Context, id uuid.UUID, successful, failed int, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE batch_runs SET successful = $1, failed = $2, status = $3, completed_at = NOW() WHERE id = $4`,
		successful, failed, status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete batch run: %w", err)
	}
	return nil
}

// GetBatchRun retrieves a batch run by ID. A missing row returns
// (nil, nil).
func (db *DB) GetBatchRun(ctx context.Context, id uuid.UUID) (*BatchRun, error) {
	var run BatchRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, total, successful, failed, status, created_at, completed_at
		 FROM batch_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.JobID, &run.Total, &run.Successful, &run.Failed, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch run: %w", err)
	}
	return &run, nil
}

// ArchiveBatch persists every successful item of a batch under one
// batch run record. Persistence failures on individual items abort
// the archive but never rewrite the in-memory batch result.
func (db *DB) ArchiveBatch(ctx context.Context, jobID string, batch *types.BatchResult) (uuid.UUID, error) {
	runID, err := db.CreateBatchRun(ctx, jobID, len(batch.Items))
	if err != nil {
		return uuid.Nil, err
	}

	for _, item := range batch.Items {
		if item.Result == nil {
			continue
		}
		if _, err := db.SaveEvaluation(ctx, item.Result, &runID); err != nil {
			completeErr := db.CompleteBatchRun(ctx, runID, batch.SuccessfulEvaluations, batch.FailedEvaluations, BatchStatusFailed)
			if completeErr != nil {
				return runID, fmt.Errorf("archive failed: %w (and run status update failed: %v)", err, completeErr)
			}
			return runID, err
		}
	}

	if err := db.CompleteBatchRun(ctx, runID, batch.SuccessfulEvaluations, batch.FailedEvaluations, BatchStatusCompleted); err != nil {
		return runID, err
	}
	return runID, nil
}
