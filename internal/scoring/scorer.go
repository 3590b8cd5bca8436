// Package scoring layers verdicts, confidence estimation and
// actionable feedback on top of the raw similarity engine output.
package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vivekkumar2004/resume-relevance/internal/similarity"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// Verdict score boundaries. A score exactly on a boundary takes the
// higher verdict.
const (
	strongThreshold   = 80.0
	moderateThreshold = 60.0
	weakThreshold     = 40.0
)

// Confidence level boundaries over the 0-1 confidence score
const (
	highConfidenceThreshold   = 0.75
	mediumConfidenceThreshold = 0.5
)

// Confidence factor weights: data completeness, score consistency
// across components, and evidence strength.
const (
	completenessWeight = 0.3
	consistencyWeight  = 0.3
	evidenceWeight     = 0.4
)

const maxSkillRecommendations = 5

// Scorer turns similarity results into full evaluations.
type Scorer struct {
	engine *similarity.Engine
}

// NewScorer builds a scorer over a similarity engine.
func NewScorer(engine *similarity.Engine) *Scorer {
	return &Scorer{engine: engine}
}

// Analyze evaluates one resume against one job. The result carries a
// verdict, a confidence estimate and generated feedback, and is fully
// determined by its inputs.
func (s *Scorer) Analyze(ctx context.Context, doc *types.Document, spec *types.JobSpec) (*types.EvaluationResult, error) {
	if doc == nil || !doc.HasContent() {
		return nil, &MissingInputError{Field: "resume", Reason: "no resume text or entities provided"}
	}
	if spec == nil || !spec.HasContent() {
		return nil, &MissingInputError{Field: "job", Reason: "no job description provided"}
	}

	simResult, err := s.engine.Comprehensive(ctx, doc, spec)
	if err != nil {
		return nil, err
	}

	confidence := confidenceScore(doc, spec, simResult)

	return &types.EvaluationResult{
		ResumeID:           doc.ID,
		JobID:              spec.ID,
		OverallScore:       round2(simResult.OverallScore),
		SuitabilityVerdict: verdictFor(simResult.OverallScore),
		ConfidenceLevel:    confidenceLevelFor(confidence),
		ConfidenceScore:    round2(confidence),
		ComponentBreakdown: simResult.Components,
		MatchedSkills:      simResult.MatchedSkills,
		MissingSkills:      simResult.MissingSkills,
		Strengths:          strengths(simResult.Components),
		Weaknesses:         weaknesses(simResult.Components),
		Recommendations:    recommendations(simResult, spec),
	}, nil
}

// verdictFor buckets an overall score. Boundaries are inclusive on
// the high side: exactly 80 is Strong.
func verdictFor(score float64) types.Verdict {
	switch {
	case score >= strongThreshold:
		return types.VerdictStrong
	case score >= moderateThreshold:
		return types.VerdictModerate
	case score >= weakThreshold:
		return types.VerdictWeak
	default:
		return types.VerdictPoor
	}
}

func confidenceLevelFor(confidence float64) types.ConfidenceLevel {
	switch {
	case confidence >= highConfidenceThreshold:
		return types.ConfidenceHigh
	case confidence >= mediumConfidenceThreshold:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// confidenceScore blends three factors: how much of the expected
// input data was present, how consistent the component scores are
// with each other, and how confident each component was in its own
// evidence.
func confidenceScore(doc *types.Document, spec *types.JobSpec, result *types.SimilarityResult) float64 {
	completeness := dataCompleteness(doc, spec)
	consistency := scoreConsistency(result.Components)
	evidence := evidenceStrength(result.Components)

	return completenessWeight*completeness + consistencyWeight*consistency + evidenceWeight*evidence
}

func dataCompleteness(doc *types.Document, spec *types.JobSpec) float64 {
	var present, total float64
	check := func(ok bool) {
		total++
		if ok {
			present++
		}
	}

	check(strings.TrimSpace(doc.RawText) != "")
	check(doc.Entities != nil && len(doc.Entities.Skills.All()) > 0)
	check(doc.Entities != nil && len(doc.Entities.Experience) > 0)
	check(len(spec.RequiredSkills) > 0 || len(spec.Keywords) > 0)
	check(strings.TrimSpace(spec.Description) != "")

	return present / total
}

// scoreConsistency maps the standard deviation of component scores
// onto [0,1]: identical scores give 1, wildly divergent scores
// approach 0.
func scoreConsistency(components []types.SimilarityComponent) float64 {
	if len(components) < 2 {
		return 0.5
	}
	var sum float64
	for _, c := range components {
		sum += c.Score
	}
	mean := sum / float64(len(components))

	var variance float64
	for _, c := range components {
		variance += (c.Score - mean) * (c.Score - mean)
	}
	stddev := math.Sqrt(variance / float64(len(components)))

	consistency := 1 - stddev/50
	if consistency < 0 {
		consistency = 0
	}
	return consistency
}

func evidenceStrength(components []types.SimilarityComponent) float64 {
	if len(components) == 0 {
		return 0
	}
	var sum float64
	for _, c := range components {
		sum += c.Confidence
	}
	return sum / float64(len(components))
}

// componentLabels humanize component names for feedback text
var componentLabels = map[string]string{
	similarity.ComponentSkillMatch:    "skill alignment",
	similarity.ComponentSemantic:      "overall profile relevance",
	similarity.ComponentExperience:    "experience level",
	similarity.ComponentCertification: "certification coverage",
}

func labelFor(name string) string {
	if label, ok := componentLabels[name]; ok {
		return label
	}
	return name
}

// strengths reports the two highest weighted contributions, provided
// the component actually scored well.
func strengths(components []types.SimilarityComponent) []string {
	ranked := make([]types.SimilarityComponent, len(components))
	copy(ranked, components)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeightedContribution() > ranked[j].WeightedContribution()
	})

	var out []string
	for _, c := range ranked {
		if len(out) == 2 {
			break
		}
		if c.Score >= 70 {
			out = append(out, fmt.Sprintf("Strong %s (%.0f/100)", labelFor(c.Name), c.Score))
		}
	}
	return out
}

// weaknesses reports the two lowest scoring components below the fair
// line.
func weaknesses(components []types.SimilarityComponent) []string {
	ranked := make([]types.SimilarityComponent, len(components))
	copy(ranked, components)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	var out []string
	for _, c := range ranked {
		if len(out) == 2 {
			break
		}
		if c.Score < 50 {
			out = append(out, fmt.Sprintf("Weak %s (%.0f/100)", labelFor(c.Name), c.Score))
		}
	}
	return out
}

// recommendations derives concrete next steps from missing skills and
// low components. Output order is stable for a given input.
func recommendations(result *types.SimilarityResult, spec *types.JobSpec) []string {
	var out []string

	for i, skill := range result.MissingSkills {
		if i == maxSkillRecommendations {
			out = append(out, fmt.Sprintf("Address the remaining %d missing skills listed in the breakdown", len(result.MissingSkills)-maxSkillRecommendations))
			break
		}
		out = append(out, fmt.Sprintf("Develop demonstrable experience with %s", skill))
	}

	for _, c := range result.Components {
		switch {
		case c.Name == similarity.ComponentExperience && c.Score < 70 && spec.MinYears > 0:
			out = append(out, fmt.Sprintf("Highlight projects that evidence the %.0f+ years of experience this role asks for", spec.MinYears))
		case c.Name == similarity.ComponentCertification && c.Score < 100:
			out = append(out, "Pursue the certifications the role lists to strengthen the application")
		case c.Name == similarity.ComponentSemantic && c.Score < 50:
			out = append(out, "Tailor the resume wording toward the responsibilities in the job description")
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
