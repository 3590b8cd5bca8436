package similarity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubEmbedder) Close() error { return nil }

func testDoc(skills []string, experience []types.ExperienceEntry, certs []string) *types.Document {
	return &types.Document{
		ID:      "resume-1",
		RawText: "Engineer who builds backend services with Python and PostgreSQL.",
		Entities: &types.EntityBag{
			Skills:         types.SkillSet{Technical: skills},
			Experience:     experience,
			Certifications: certs,
		},
	}
}

func testSpec() *types.JobSpec {
	return &types.JobSpec{
		ID:             "job-1",
		Title:          "Backend Engineer",
		Description:    "Build backend services in Python with PostgreSQL storage.",
		RequiredSkills: []string{"Python", "PostgreSQL", "Docker", "Kubernetes"},
		MinYears:       4,
	}
}

func newTestEngine(t *testing.T, embedder Embedder) *Engine {
	t.Helper()
	engine, err := NewEngine(embedder, DefaultWeights())
	require.NoError(t, err)
	return engine
}

func TestNewEngine_RejectsInvalidWeights(t *testing.T) {
	_, err := NewEngine(nil, Weights{SkillMatch: 0.5, Semantic: 0.5, Experience: 0.5})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
}

func TestComprehensive_WeightsSumToOne(t *testing.T) {
	engine := newTestEngine(t, nil)

	withCerts := testSpec()
	withCerts.Certifications = []string{"AWS Certified Solutions Architect"}
	withoutCerts := testSpec()

	for _, spec := range []*types.JobSpec{withCerts, withoutCerts} {
		result, err := engine.Comprehensive(context.Background(), testDoc([]string{"Python"}, nil, nil), spec)
		require.NoError(t, err)

		var sum float64
		for _, c := range result.Components {
			sum += c.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestComprehensive_WeightsSumToOne_CertificationOnly(t *testing.T) {
	// Valid configuration with all weight on certifications; when the
	// job lists none, the weight spreads equally over the remaining
	// components instead of vanishing with the excluded one.
	engine, err := NewEngine(nil, Weights{Certification: 1.0})
	require.NoError(t, err)

	result, err := engine.Comprehensive(context.Background(), testDoc([]string{"Python"}, nil, nil), testSpec())
	require.NoError(t, err)

	require.Len(t, result.Components, 3)
	var sum float64
	for _, c := range result.Components {
		assert.InDelta(t, 1.0/3, c.Weight, 1e-9)
		sum += c.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestComprehensive_CertComponentExcludedWhenJobHasNone(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Comprehensive(context.Background(), testDoc([]string{"Python"}, nil, nil), testSpec())
	require.NoError(t, err)

	require.Len(t, result.Components, 3)
	for _, c := range result.Components {
		assert.NotEqual(t, ComponentCertification, c.Name)
	}
}

func TestComprehensive_SkillCoverageAndAliasMatch(t *testing.T) {
	engine := newTestEngine(t, nil)

	// k8s resolves to Kubernetes, so 3 of 4 required skills match.
	doc := testDoc([]string{"python", "postgres", "k8s"}, nil, nil)
	result, err := engine.Comprehensive(context.Background(), doc, testSpec())
	require.NoError(t, err)

	assert.Equal(t, []string{"Kubernetes", "PostgreSQL", "Python"}, result.MatchedSkills)
	assert.Equal(t, []string{"Docker"}, result.MissingSkills)

	skill := componentByName(t, result.Components, ComponentSkillMatch)
	assert.InDelta(t, 75.0, skill.Score, 1e-9)
}

func TestComprehensive_SkillMonotonicity(t *testing.T) {
	engine := newTestEngine(t, nil)
	ctx := context.Background()

	fewer, err := engine.Comprehensive(ctx, testDoc([]string{"Python"}, nil, nil), testSpec())
	require.NoError(t, err)
	more, err := engine.Comprehensive(ctx, testDoc([]string{"Python", "PostgreSQL", "Docker"}, nil, nil), testSpec())
	require.NoError(t, err)

	assert.Greater(t, more.OverallScore, fewer.OverallScore)
}

func TestComprehensive_ExperienceScoring(t *testing.T) {
	engine := newTestEngine(t, nil)
	ctx := context.Background()

	meets := []types.ExperienceEntry{{Title: "Engineer", Duration: "5 years"}}
	under := []types.ExperienceEntry{{Title: "Engineer", Duration: "2 years"}}

	full, err := engine.Comprehensive(ctx, testDoc(nil, meets, nil), testSpec())
	require.NoError(t, err)
	partial, err := engine.Comprehensive(ctx, testDoc(nil, under, nil), testSpec())
	require.NoError(t, err)
	unknown, err := engine.Comprehensive(ctx, testDoc(nil, nil, nil), testSpec())
	require.NoError(t, err)

	assert.InDelta(t, 100.0, componentByName(t, full.Components, ComponentExperience).Score, 1e-9)
	assert.InDelta(t, 50.0, componentByName(t, partial.Components, ComponentExperience).Score, 1e-9)
	assert.InDelta(t, 50.0, componentByName(t, unknown.Components, ComponentExperience).Score, 1e-9)
	assert.Less(t, componentByName(t, unknown.Components, ComponentExperience).Confidence, 0.5)
}

func TestComprehensive_CertificationCoverage(t *testing.T) {
	engine := newTestEngine(t, nil)

	spec := testSpec()
	spec.Certifications = []string{"AWS Certified Solutions Architect", "CKA"}
	doc := testDoc(nil, nil, []string{"aws solutions architect"})

	result, err := engine.Comprehensive(context.Background(), doc, spec)
	require.NoError(t, err)

	cert := componentByName(t, result.Components, ComponentCertification)
	assert.InDelta(t, 50.0, cert.Score, 1e-9)
}

func TestComprehensive_EmbeddingPath(t *testing.T) {
	spec := testSpec()
	doc := testDoc([]string{"Python"}, nil, nil)
	embedder := &stubEmbedder{vectors: map[string][]float32{
		doc.RawText: {1, 1, 0},
		spec.Title + "\n" + spec.Description: {1, 1, 0},
	}}
	engine := newTestEngine(t, embedder)

	result, err := engine.Comprehensive(context.Background(), doc, spec)
	require.NoError(t, err)

	semantic := componentByName(t, result.Components, ComponentSemantic)
	assert.InDelta(t, 100.0, semantic.Score, 1e-6)
	assert.Equal(t, "embedding cosine similarity", semantic.Methodology)
	assert.InDelta(t, 0.9, semantic.Confidence, 1e-9)
}

func TestComprehensive_FallsBackToLexicalOnBackendFailure(t *testing.T) {
	embedder := &stubEmbedder{err: &BackendUnavailableError{Backend: "gemini", Err: errors.New("connection refused")}}
	engine := newTestEngine(t, embedder)

	result, err := engine.Comprehensive(context.Background(), testDoc([]string{"Python"}, nil, nil), testSpec())
	require.NoError(t, err)

	semantic := componentByName(t, result.Components, ComponentSemantic)
	assert.Equal(t, "lexical token overlap", semantic.Methodology)
	assert.InDelta(t, 0.5, semantic.Confidence, 1e-9)
	assert.Greater(t, semantic.Score, 0.0)
}

func TestComprehensive_NilInputs(t *testing.T) {
	engine := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := engine.Comprehensive(ctx, nil, testSpec())
	var ce *ComputationError
	require.ErrorAs(t, err, &ce)

	_, err = engine.Comprehensive(ctx, testDoc(nil, nil, nil), nil)
	require.ErrorAs(t, err, &ce)
}

func TestComprehensive_Idempotent(t *testing.T) {
	engine := newTestEngine(t, nil)
	ctx := context.Background()
	doc := testDoc([]string{"Python", "Docker"}, []types.ExperienceEntry{{Duration: "3 years"}}, nil)

	first, err := engine.Comprehensive(ctx, doc, testSpec())
	require.NoError(t, err)
	second, err := engine.Comprehensive(ctx, doc, testSpec())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestQualityBuckets(t *testing.T) {
	assert.Equal(t, QualityExcellent, qualityFor(85))
	assert.Equal(t, QualityGood, qualityFor(84.99))
	assert.Equal(t, QualityGood, qualityFor(70))
	assert.Equal(t, QualityFair, qualityFor(69.99))
	assert.Equal(t, QualityFair, qualityFor(50))
	assert.Equal(t, QualityPoor, qualityFor(49.99))
}

func TestCosine(t *testing.T) {
	same, err := Cosine([]float32{1, 2, 3}, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, same, 1e-9)

	orthogonal, err := Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, orthogonal, 1e-9)

	_, err = Cosine([]float32{1}, []float32{1, 2})
	require.Error(t, err)

	_, err = Cosine([]float32{0, 0}, []float32{1, 2})
	require.Error(t, err)
}

func TestLexicalOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, LexicalOverlap("python backend services", "python backend services"), 1e-9)
	assert.Equal(t, 0.0, LexicalOverlap("python golang", "marketing sales"))
	assert.Equal(t, 0.0, LexicalOverlap("", "python"))
}

func componentByName(t *testing.T, components []types.SimilarityComponent, name string) types.SimilarityComponent {
	t.Helper()
	for _, c := range components {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("component %s not found", name)
	return types.SimilarityComponent{}
}
