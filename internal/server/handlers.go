package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vivekkumar2004/resume-relevance/internal/db"
	"github.com/vivekkumar2004/resume-relevance/internal/extraction"
	"github.com/vivekkumar2004/resume-relevance/internal/feedback"
	"github.com/vivekkumar2004/resume-relevance/internal/ingestion"
	"github.com/vivekkumar2004/resume-relevance/internal/keywords"
	"github.com/vivekkumar2004/resume-relevance/internal/scoring"
	"github.com/vivekkumar2004/resume-relevance/internal/taxonomy"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// ingestLimit caps concurrent resume ingestion in a batch request
const ingestLimit = 4

// EvaluateRequest represents the request body for /evaluate
type EvaluateRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	ResumeID   string `json:"resume_id,omitempty"`
	JobText    string `json:"job_text" validate:"required"`
	JobTitle   string `json:"job_title,omitempty"`
	JobID      string `json:"job_id,omitempty"`
	Archive    bool   `json:"archive,omitempty"`
}

// EvaluateResponse wraps an evaluation result with its archive id
type EvaluateResponse struct {
	Result       *types.EvaluationResult `json:"result"`
	EvaluationID string                  `json:"evaluation_id,omitempty"`
}

// BatchResume is one resume in a batch evaluation request
type BatchResume struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text"`
}

// BatchRequest represents the request body for /evaluate/batch
type BatchRequest struct {
	Resumes  []BatchResume `json:"resumes" validate:"required,min=1,dive"`
	JobText  string        `json:"job_text" validate:"required"`
	JobTitle string        `json:"job_title,omitempty"`
	JobID    string        `json:"job_id,omitempty"`
	Archive  bool          `json:"archive,omitempty"`
}

// BatchResponse wraps a batch result with ranking and its archive id
type BatchResponse struct {
	Batch      *types.BatchResult `json:"batch"`
	Comparison *types.Comparison  `json:"comparison"`
	BatchRunID string             `json:"batch_run_id,omitempty"`
}

// KeywordsRequest represents the request body for /keywords
type KeywordsRequest struct {
	JobText string `json:"job_text" validate:"required"`
}

// RecommendRequest represents the request body for /recommend
type RecommendRequest struct {
	CurrentSkills []string `json:"current_skills" validate:"required,min=1"`
	TargetRole    string   `json:"target_role,omitempty"`
}

// FeedbackRequest represents the request body for /feedback
type FeedbackRequest struct {
	Result       *types.EvaluationResult `json:"result" validate:"required"`
	JobTitle     string                  `json:"job_title,omitempty"`
	FeedbackType string                  `json:"feedback_type" validate:"required"`
	Tone         string                  `json:"tone" validate:"required"`
}

// decodeAndValidate parses a JSON request body into dst and runs
// struct validation on it.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// buildJobSpec turns raw job text into an enriched JobSpec
func buildJobSpec(id, title, text string) *types.JobSpec {
	cleaned, _ := ingestion.IngestText(text)
	spec := extraction.ExtractJobSpec(id, title, cleaned)
	keywords.Enrich(spec)
	return spec
}

// buildDocument turns raw resume text into a parsed Document. Parse
// failures yield an empty document carrying the id so batch evaluation
// can record a structured per-item failure instead of dropping it.
func buildDocument(id, text string) *types.Document {
	cleaned, _ := ingestion.IngestText(text)
	doc, err := extraction.Parse(id, cleaned)
	if err != nil {
		return &types.Document{ID: id}
	}
	return doc
}

// handleEvaluate scores one resume against one job description
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if req.ResumeID == "" {
		req.ResumeID = "resume"
	}

	doc := buildDocument(req.ResumeID, req.ResumeText)
	spec := buildJobSpec(req.JobID, req.JobTitle, req.JobText)

	result, err := s.scorer.Analyze(r.Context(), doc, spec)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := EvaluateResponse{Result: result}
	if req.Archive {
		if s.db == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
			return
		}
		id, err := s.db.SaveEvaluation(r.Context(), result, nil)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to archive evaluation: "+err.Error())
			return
		}
		resp.EvaluationID = id.String()
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleEvaluateBatch scores several resumes against one job. Resume
// ingestion runs concurrently; evaluation itself is sequential with
// per-item failure isolation.
func (s *Server) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	spec := buildJobSpec(req.JobID, req.JobTitle, req.JobText)

	docs := make([]*types.Document, len(req.Resumes))
	g, _ := errgroup.WithContext(r.Context())
	g.SetLimit(ingestLimit)
	for i, resume := range req.Resumes {
		g.Go(func() error {
			docs[i] = buildDocument(resume.ID, resume.Text)
			return nil
		})
	}
	_ = g.Wait() // ingestion never returns an error; failures become empty documents

	batch := s.scorer.EvaluateBatch(r.Context(), docs, spec)
	resp := BatchResponse{
		Batch:      batch,
		Comparison: scoring.CompareCandidates(batch),
	}

	if req.Archive {
		if s.db == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
			return
		}
		runID, err := s.db.ArchiveBatch(r.Context(), req.JobID, batch)
		if err != nil {
			log.Printf("Failed to archive batch run: %v", err)
		} else {
			resp.BatchRunID = runID.String()
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleKeywords mines a job description for skills and requirements
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	cleaned, _ := ingestion.IngestText(req.JobText)
	s.jsonResponse(w, http.StatusOK, keywords.Analyze(cleaned))
}

// handleRecommend runs skill-gap analysis against a target role
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	s.jsonResponse(w, http.StatusOK, taxonomy.Recommend(req.CurrentSkills, req.TargetRole))
}

// handleFeedback renders narrative feedback for an evaluation result
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	text, err := s.feedback.Generate(req.Result, req.JobTitle, feedback.FeedbackType(req.FeedbackType), feedback.Tone(req.Tone))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"feedback": text})
}

// handleGetEvaluation returns one archived evaluation by id
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid evaluation ID format")
		return
	}

	stored, err := s.db.GetEvaluation(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		s.errorResponse(w, http.StatusNotFound, "Evaluation not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, stored)
}

// listFilters builds evaluation list filters from query parameters
func listFilters(r *http.Request) (db.EvaluationFilters, error) {
	filters := db.EvaluationFilters{
		JobID:    r.URL.Query().Get("job_id"),
		ResumeID: r.URL.Query().Get("resume_id"),
		Verdict:  r.URL.Query().Get("verdict"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return filters, errors.New("Invalid limit")
		}
		filters.Limit = limit
	}
	if batchStr := r.URL.Query().Get("batch_run_id"); batchStr != "" {
		batchID, err := uuid.Parse(batchStr)
		if err != nil {
			return filters, errors.New("Invalid batch run ID format")
		}
		filters.BatchRunID = batchID
	}
	return filters, nil
}

// handleListEvaluations returns archived evaluations, best score first
func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	filters, err := listFilters(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	evaluations, err := s.db.ListEvaluations(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"evaluations": evaluations,
		"count":       len(evaluations),
	})
}

// handleGetBatchRun returns one archived batch run by id
func (s *Server) handleGetBatchRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid batch run ID format")
		return
	}

	run, err := s.db.GetBatchRun(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Batch run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}
