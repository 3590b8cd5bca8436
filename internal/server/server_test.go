package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekkumar2004/resume-relevance/internal/feedback"
	"github.com/vivekkumar2004/resume-relevance/internal/scoring"
	"github.com/vivekkumar2004/resume-relevance/internal/similarity"
)

const testResume = `Jane Doe
jane@example.com

Skills: Python, PostgreSQL, Docker, Kubernetes

Experience
Backend Engineer at Acme
2019 - 2023
Built data services in Python on PostgreSQL.`

const testJob = `We are hiring a Backend Engineer.
Required: Python and PostgreSQL. Docker is required.
Kubernetes is preferred. 3+ years of experience required.`

// newTestServer builds a server without a database or embedding
// backend; semantic scoring falls back to lexical overlap.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	engine, err := similarity.NewEngine(nil, similarity.DefaultWeights())
	require.NoError(t, err)
	return &Server{
		scorer:   scoring.NewScorer(engine),
		feedback: feedback.NewGenerator(),
		validate: validator.New(),
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestEvaluateEndpoint_Success(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/evaluate", EvaluateRequest{
		ResumeText: testResume,
		JobText:    testJob,
		JobTitle:   "Backend Engineer",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Greater(t, resp.Result.OverallScore, 0.0)
	assert.NotEmpty(t, resp.Result.SuitabilityVerdict)
	assert.NotEmpty(t, resp.Result.ComponentBreakdown)
	assert.Contains(t, resp.Result.MatchedSkills, "Python")
}

func TestEvaluateEndpoint_MissingJobText(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/evaluate", EvaluateRequest{
		ResumeText: testResume,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestEvaluateEndpoint_BlankResume(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/evaluate", EvaluateRequest{
		ResumeText: "   \n  ",
		JobText:    testJob,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluateEndpoint_InvalidBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/evaluate", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluateEndpoint_ArchiveWithoutDatabase(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/evaluate", EvaluateRequest{
		ResumeText: testResume,
		JobText:    testJob,
		Archive:    true,
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBatchEndpoint_PartialFailure(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/evaluate/batch", BatchRequest{
		JobText: testJob,
		Resumes: []BatchResume{
			{ID: "good", Text: testResume},
			{ID: "blank", Text: "   "},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Batch)
	assert.Equal(t, 1, resp.Batch.SuccessfulEvaluations)
	assert.Equal(t, 1, resp.Batch.FailedEvaluations)
	require.Len(t, resp.Batch.Items, 2)
	assert.Equal(t, "good", resp.Batch.Items[0].ID)
	assert.NotEmpty(t, resp.Batch.Items[1].Error)
	require.NotNil(t, resp.Comparison)
	assert.Equal(t, "good", resp.Comparison.TopCandidate)
}

func TestBatchEndpoint_RequiresResumes(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/evaluate/batch", BatchRequest{
		JobText: testJob,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKeywordsEndpoint(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/keywords", KeywordsRequest{JobText: testJob})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		RequiredSkills  []string `json:"required_skills"`
		PreferredSkills []string `json:"preferred_skills"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.RequiredSkills, "Python")
	assert.Contains(t, resp.PreferredSkills, "Kubernetes")
}

func TestRecommendEndpoint(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/recommend", RecommendRequest{
		CurrentSkills: []string{"Python", "SQL"},
		TargetRole:    "backend developer",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "category_coverage")
	assert.Contains(t, resp, "recommended_skills")
}

func TestRecommendEndpoint_RequiresSkills(t *testing.T) {
	w := doJSON(t, newTestServer(t), http.MethodPost, "/recommend", RecommendRequest{
		TargetRole: "backend developer",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackEndpoint(t *testing.T) {
	s := newTestServer(t)

	eval := doJSON(t, s, http.MethodPost, "/evaluate", EvaluateRequest{
		ResumeText: testResume,
		JobText:    testJob,
	})
	require.Equal(t, http.StatusOK, eval.Code)
	var evalResp EvaluateResponse
	require.NoError(t, json.Unmarshal(eval.Body.Bytes(), &evalResp))

	w := doJSON(t, s, http.MethodPost, "/feedback", FeedbackRequest{
		Result:       evalResp.Result,
		JobTitle:     "Backend Engineer",
		FeedbackType: "personalized",
		Tone:         "professional",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["feedback"], "Backend Engineer")
}

func TestFeedbackEndpoint_UnsupportedTone(t *testing.T) {
	s := newTestServer(t)

	eval := doJSON(t, s, http.MethodPost, "/evaluate", EvaluateRequest{
		ResumeText: testResume,
		JobText:    testJob,
	})
	var evalResp EvaluateResponse
	require.NoError(t, json.Unmarshal(eval.Body.Bytes(), &evalResp))

	w := doJSON(t, s, http.MethodPost, "/feedback", FeedbackRequest{
		Result:       evalResp.Result,
		FeedbackType: "personalized",
		Tone:         "sarcastic",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArchiveEndpoints_Unavailable(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/evaluations", "/evaluations/00000000-0000-0000-0000-000000000000", "/batches/00000000-0000-0000-0000-000000000000"} {
		w := doJSON(t, s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestListFilters(t *testing.T) {
	batchID := uuid.New()
	req := httptest.NewRequest(http.MethodGet,
		"/evaluations?job_id=job-1&verdict=Strong&limit=10&batch_run_id="+batchID.String(), nil)

	filters, err := listFilters(req)
	require.NoError(t, err)

	assert.Equal(t, "job-1", filters.JobID)
	assert.Equal(t, "Strong", filters.Verdict)
	assert.Equal(t, 10, filters.Limit)
	assert.Equal(t, batchID, filters.BatchRunID)
}

func TestListFilters_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/evaluations", nil)

	filters, err := listFilters(req)
	require.NoError(t, err)

	assert.Zero(t, filters.Limit)
	assert.Equal(t, uuid.Nil, filters.BatchRunID)
}

func TestListFilters_Invalid(t *testing.T) {
	for _, query := range []string{"limit=0", "limit=abc", "batch_run_id=not-a-uuid"} {
		req := httptest.NewRequest(http.MethodGet, "/evaluations?"+query, nil)
		_, err := listFilters(req)
		assert.Error(t, err, query)
	}
}
