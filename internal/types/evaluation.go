// Package types provides type definitions for structured data used throughout the relevance scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Verdict is the bucketed suitability label derived from the overall score
type Verdict string

// Suitability verdict values, from best to worst
const (
	VerdictStrong   Verdict = "Strong"
	VerdictModerate Verdict = "Moderate"
	VerdictWeak     Verdict = "Weak"
	VerdictPoor     Verdict = "Poor"
)

// ConfidenceLevel buckets the confidence score
type ConfidenceLevel string

// Confidence level values
const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// SimilarityComponent is one independently scored similarity dimension.
// Weights across all components of a single evaluation sum to 1.0.
type SimilarityComponent struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"`      // 0-100
	Weight      float64  `json:"weight"`     // 0-1
	Confidence  float64  `json:"confidence"` // 0-1
	Evidence    []string `json:"evidence"`
	Methodology string   `json:"methodology"`
}

// WeightedContribution returns the component's share of the overall score
func (c SimilarityComponent) WeightedContribution() float64 {
	return c.Score * c.Weight
}

// SimilarityResult is the raw output of the similarity engine before
// confidence estimation and feedback generation are layered on top.
type SimilarityResult struct {
	OverallScore  float64               `json:"overall_score"` // 0-100
	MatchQuality  string                `json:"match_quality"` // excellent/good/fair/poor
	Components    []SimilarityComponent `json:"components"`
	MatchedSkills []string              `json:"matched_skills"`
	MissingSkills []string              `json:"missing_skills"`
}

// EvaluationResult is the final verdict for one (resume, job) pair.
// It is never mutated after construction; callers may archive copies.
type EvaluationResult struct {
	ResumeID           string                `json:"resume_id,omitempty"`
	JobID              string                `json:"job_id,omitempty"`
	OverallScore       float64               `json:"overall_score"` // 0-100
	SuitabilityVerdict Verdict               `json:"suitability_verdict"`
	ConfidenceLevel    ConfidenceLevel       `json:"confidence_level"`
	ConfidenceScore    float64               `json:"confidence_score"` // 0-1
	ComponentBreakdown []SimilarityComponent `json:"component_breakdown"`
	MatchedSkills      []string              `json:"matched_skills"`
	MissingSkills      []string              `json:"missing_skills"`
	Strengths          []string              `json:"strengths"`
	Weaknesses         []string              `json:"weaknesses"`
	Recommendations    []string              `json:"recommendations"`
}

// BatchItem is one entry of a batch evaluation: either a result or a
// structured per-item failure, never both.
type BatchItem struct {
	ID     string            `json:"id"`
	Result *EvaluationResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// BatchResult aggregates per-item outcomes of a batch evaluation
type BatchResult struct {
	Items                 []BatchItem `json:"items"`
	SuccessfulEvaluations int         `json:"successful_evaluations"`
	FailedEvaluations     int         `json:"failed_evaluations"`
}

// Comparison summarizes a ranked candidate field for one job
type Comparison struct {
	Ranked         []BatchItem `json:"ranked"`
	TopCandidate   string      `json:"top_candidate,omitempty"`
	TopScore       float64     `json:"top_score"`
	AverageScore   float64     `json:"average_score"`
	ScoreRange     float64     `json:"score_range"`
	Insights       []string    `json:"insights"`
	HiringGuidance []string    `json:"hiring_guidance"`
}
