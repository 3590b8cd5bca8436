package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// Batch run status values
const (
	BatchStatusRunning   = "running"
	BatchStatusCompleted = "completed"
	BatchStatusFailed    = "failed"
)

// StoredEvaluation is one archived evaluation record
type StoredEvaluation struct {
	ID           uuid.UUID               `json:"id"`
	ResumeID     string                  `json:"resume_id"`
	JobID        string                  `json:"job_id"`
	OverallScore float64                 `json:"overall_score"`
	Verdict      types.Verdict           `json:"verdict"`
	Result       *types.EvaluationResult `json:"result"`
	BatchRunID   *uuid.UUID              `json:"batch_run_id,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

// BatchRun represents a batch evaluation run record
type BatchRun struct {
	ID          uuid.UUID  `json:"id"`
	JobID       string     `json:"job_id"`
	Total       int        `json:"total"`
	Successful  int        `json:"successful"`
	Failed      int        `json:"failed"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
