package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/vivekkumar2004/resume-relevance/internal/schemas"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

var schemaFiles = []string{
	"evaluation_result.schema.json",
	"batch_result.schema.json",
	"keyword_analysis.schema.json",
	"recommendation.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_CompileAsJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			abs, err := filepath.Abs(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			loader := gojsonschema.NewReferenceLoader("file://" + abs)
			_, err = gojsonschema.NewSchema(loader)
			assert.NoError(t, err, "schema should compile: %s", schemaFile)
		})
	}
}

func writeArtifact(t *testing.T, v any) string {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, os.WriteFile(path, payload, 0644))
	return path
}

func TestKeywordAnalysisArtifact(t *testing.T) {
	analysis := &types.KeywordAnalysis{
		RequiredSkills:   []string{"Python"},
		PreferredSkills:  []string{"AWS"},
		Responsibilities: []string{"Build data pipelines"},
		KeywordFrequency: map[string]int{"Python": 2},
		SkillImportance:  []types.SkillImportance{{Skill: "Python", Score: 100}},
	}

	err := schemas.ValidateJSON("keyword_analysis.schema.json", writeArtifact(t, analysis))
	assert.NoError(t, err)
}

func TestRecommendationArtifact(t *testing.T) {
	rec := &types.Recommendation{
		TargetRole:        "backend developer",
		CategoryCoverage:  map[string]float64{"databases": 0.5},
		MissingCategories: []string{"devops"},
		RecommendedSkills: []string{"Docker"},
		StrengthAreas:     []string{"databases"},
		CoverageScore:     0.5,
	}

	err := schemas.ValidateJSON("recommendation.schema.json", writeArtifact(t, rec))
	assert.NoError(t, err)
}

func TestBatchResultArtifact(t *testing.T) {
	batch := &types.BatchResult{
		Items: []types.BatchItem{
			{ID: "bad", Error: "resume document has no content"},
		},
		SuccessfulEvaluations: 0,
		FailedEvaluations:     1,
	}

	err := schemas.ValidateJSON("batch_result.schema.json", writeArtifact(t, batch))
	assert.NoError(t, err)
}
