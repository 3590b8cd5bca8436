// Package similarity computes the weighted multi-component relevance
// score between a resume document and a job specification.
package similarity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vivekkumar2004/resume-relevance/internal/extraction"
	"github.com/vivekkumar2004/resume-relevance/internal/taxonomy"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// Component names reported on SimilarityComponent.Name
const (
	ComponentSkillMatch    = "skill_match"
	ComponentSemantic      = "semantic_similarity"
	ComponentExperience    = "experience_match"
	ComponentCertification = "certification_match"
)

// Match quality buckets reported on SimilarityResult.MatchQuality
const (
	QualityExcellent = "excellent"
	QualityGood      = "good"
	QualityFair      = "fair"
	QualityPoor      = "poor"
)

// neutralScore stands in when a component has no signal either way.
const neutralScore = 50.0

// Engine computes comprehensive similarity. A nil embedder is valid
// and routes semantic similarity to the lexical fallback.
type Engine struct {
	embedder Embedder
	weights  Weights
}

// NewEngine builds an engine. Invalid weights are rejected.
func NewEngine(embedder Embedder, weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{embedder: embedder, weights: weights}, nil
}

// Comprehensive scores doc against spec across all components. The
// certification component is excluded, with its weight redistributed,
// when the job names no certifications. Embedding failures degrade to
// lexical similarity rather than failing the call.
func (e *Engine) Comprehensive(ctx context.Context, doc *types.Document, spec *types.JobSpec) (*types.SimilarityResult, error) {
	if doc == nil {
		return nil, &ComputationError{Component: "comprehensive", Reason: "document is nil"}
	}
	if spec == nil {
		return nil, &ComputationError{Component: "comprehensive", Reason: "job spec is nil"}
	}

	weights := e.weights
	includeCerts := len(spec.Certifications) > 0
	if !includeCerts {
		weights = weights.withoutCertification()
	}

	skill, matched, missing := e.skillComponent(doc, spec, weights.SkillMatch)
	semantic := e.semanticComponent(ctx, doc, spec, weights.Semantic)
	experience := e.experienceComponent(doc, spec, weights.Experience)

	components := []types.SimilarityComponent{skill, semantic, experience}
	if includeCerts {
		components = append(components, e.certificationComponent(doc, spec, weights.Certification))
	}

	var overall float64
	for _, c := range components {
		overall += c.WeightedContribution()
	}

	return &types.SimilarityResult{
		OverallScore:  overall,
		MatchQuality:  qualityFor(overall),
		Components:    components,
		MatchedSkills: matched,
		MissingSkills: missing,
	}, nil
}

func qualityFor(score float64) string {
	switch {
	case score >= 85:
		return QualityExcellent
	case score >= 70:
		return QualityGood
	case score >= 50:
		return QualityFair
	default:
		return QualityPoor
	}
}

// skillComponent measures coverage of the job's required skills by
// the resume, matching through canonical skill identity so aliases
// like "k8s" and "Kubernetes" count as the same skill. When the job
// lists no required skills the extracted keywords stand in.
func (e *Engine) skillComponent(doc *types.Document, spec *types.JobSpec, weight float64) (types.SimilarityComponent, []string, []string) {
	component := types.SimilarityComponent{
		Name:        ComponentSkillMatch,
		Weight:      weight,
		Methodology: "canonical skill coverage over required skills",
	}

	var resumeSkills []string
	if doc.Entities != nil {
		resumeSkills = doc.Entities.Skills.All()
	}
	have := taxonomy.CanonicalSet(resumeSkills)

	wanted := spec.RequiredSkills
	if len(wanted) == 0 {
		wanted = spec.Keywords
		component.Methodology = "canonical skill coverage over extracted keywords"
	}
	if len(wanted) == 0 {
		component.Score = neutralScore
		component.Confidence = 0.2
		component.Evidence = []string{"job lists no skills to match against"}
		return component, nil, nil
	}

	var matched, missing []string
	for _, skill := range wanted {
		canonical := taxonomy.NormalizeSkill(skill).Canonical
		if _, ok := have[strings.ToLower(canonical)]; ok {
			matched = append(matched, canonical)
		} else {
			missing = append(missing, canonical)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	score := float64(len(matched)) / float64(len(wanted)) * 100
	if score > 100 {
		score = 100
	}
	component.Score = score
	component.Confidence = skillConfidence(len(wanted), len(spec.RequiredSkills) > 0)
	component.Evidence = evidenceList("matched", matched)
	return component, matched, missing
}

// skillConfidence grows with the amount of data the coverage ratio is
// based on, discounted when keywords stood in for required skills.
func skillConfidence(sampleSize int, fromRequired bool) float64 {
	confidence := 0.4 + 0.6*float64(sampleSize)/8
	if confidence > 1 {
		confidence = 1
	}
	if !fromRequired {
		confidence *= 0.8
	}
	return confidence
}

// semanticComponent embeds both texts and takes cosine similarity.
// Any embedding failure falls back to lexical token overlap with
// reduced confidence; the call itself never fails.
func (e *Engine) semanticComponent(ctx context.Context, doc *types.Document, spec *types.JobSpec, weight float64) types.SimilarityComponent {
	component := types.SimilarityComponent{
		Name:   ComponentSemantic,
		Weight: weight,
	}

	jobText := strings.TrimSpace(spec.Title + "\n" + spec.Description)
	if strings.TrimSpace(doc.RawText) == "" || jobText == "" {
		component.Score = 0
		component.Confidence = 0.2
		component.Methodology = "no text available"
		return component
	}

	if e.embedder != nil {
		score, err := e.embeddingScore(ctx, doc.RawText, jobText)
		if err == nil {
			component.Score = score
			component.Confidence = 0.9
			component.Methodology = "embedding cosine similarity"
			return component
		}
		component.Evidence = []string{fmt.Sprintf("embedding backend degraded: %v", err)}
	}

	component.Score = LexicalOverlap(doc.RawText, jobText) * 100
	component.Confidence = 0.5
	component.Methodology = "lexical token overlap"
	return component
}

func (e *Engine) embeddingScore(ctx context.Context, resumeText, jobText string) (float64, error) {
	resumeVec, err := e.embedder.Embed(ctx, resumeText)
	if err != nil {
		return 0, err
	}
	jobVec, err := e.embedder.Embed(ctx, jobText)
	if err != nil {
		return 0, err
	}
	cos, err := Cosine(resumeVec, jobVec)
	if err != nil {
		return 0, err
	}
	if cos < 0 {
		cos = 0
	}
	return cos * 100, nil
}

// experienceComponent compares estimated tenure against the job's
// minimum. Unknown tenure scores neutral rather than zero so a resume
// without duration phrases is not punished for formatting.
func (e *Engine) experienceComponent(doc *types.Document, spec *types.JobSpec, weight float64) types.SimilarityComponent {
	component := types.SimilarityComponent{
		Name:        ComponentExperience,
		Weight:      weight,
		Methodology: "estimated tenure vs required years",
	}

	var entries []types.ExperienceEntry
	if doc.Entities != nil {
		entries = doc.Entities.Experience
	}
	years := extraction.TotalYears(entries)

	switch {
	case years == 0:
		component.Score = neutralScore
		component.Confidence = 0.3
		component.Evidence = []string{"no measurable tenure found"}
	case spec.MinYears == 0:
		component.Score = 100
		component.Confidence = 0.6
		component.Evidence = []string{fmt.Sprintf("%.1f years of experience, no minimum required", years)}
	case years >= spec.MinYears:
		component.Score = 100
		component.Confidence = 0.9
		component.Evidence = []string{fmt.Sprintf("%.1f years of experience meets the %.1f year minimum", years, spec.MinYears)}
	default:
		component.Score = years / spec.MinYears * 100
		component.Confidence = 0.9
		component.Evidence = []string{fmt.Sprintf("%.1f years of experience against a %.1f year minimum", years, spec.MinYears)}
	}
	return component
}

// certificationComponent measures coverage of the job's requested
// certifications, matched through canonical certification names.
func (e *Engine) certificationComponent(doc *types.Document, spec *types.JobSpec, weight float64) types.SimilarityComponent {
	component := types.SimilarityComponent{
		Name:        ComponentCertification,
		Weight:      weight,
		Methodology: "canonical certification coverage",
	}

	have := make(map[string]bool)
	if doc.Entities != nil {
		for _, cert := range doc.Entities.Certifications {
			have[strings.ToLower(taxonomy.NormalizeCert(cert))] = true
		}
	}

	var matched []string
	for _, cert := range spec.Certifications {
		canonical := taxonomy.NormalizeCert(cert)
		if have[strings.ToLower(canonical)] {
			matched = append(matched, canonical)
		}
	}
	sort.Strings(matched)

	component.Score = float64(len(matched)) / float64(len(spec.Certifications)) * 100
	component.Confidence = 0.8
	component.Evidence = evidenceList("matched certifications", matched)
	return component
}

func evidenceList(label string, items []string) []string {
	if len(items) == 0 {
		return []string{label + ": none"}
	}
	return []string{label + ": " + strings.Join(items, ", ")}
}
