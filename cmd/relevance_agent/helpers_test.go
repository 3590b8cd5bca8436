package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekkumar2004/resume-relevance/internal/config"
)

const cliResume = `Jane Doe
jane@example.com

Skills: Python, PostgreSQL, Docker

Experience
Backend Engineer at Acme
2019 - 2023
Built data services in Python on PostgreSQL.`

const cliJob = `Backend Engineer.
Required: Python and PostgreSQL. Docker is required.
3+ years of experience required.`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveConfig_FlagsWinOverFile(t *testing.T) {
	configPath := writeTempFile(t, "config.json", `{"job_url": "https://example.com/job", "skill_weight": 0.5, "semantic_weight": 0.5}`)

	cfg, err := resolveConfig(configPath, config.Config{JobURL: "https://other.example.com/job"})
	require.NoError(t, err)

	assert.Equal(t, "https://other.example.com/job", cfg.JobURL)
	assert.Equal(t, 0.5, cfg.SkillWeight)
	assert.Equal(t, 0.0, cfg.ExperienceWeight)
}

func TestResolveConfig_DefaultWeights(t *testing.T) {
	cfg, err := resolveConfig("", config.Config{})
	require.NoError(t, err)

	weights := weightsFrom(cfg)
	require.NoError(t, weights.Validate())
	assert.Equal(t, 0.4, weights.SkillMatch)
	assert.Equal(t, 0.3, weights.Semantic)
	assert.Equal(t, 0.2, weights.Experience)
	assert.Equal(t, 0.1, weights.Certification)
}

func TestResolveConfig_RejectsMutuallyExclusiveJobSources(t *testing.T) {
	jobPath := writeTempFile(t, "job.txt", cliJob)

	_, err := resolveConfig("", config.Config{Job: jobPath, JobURL: "https://example.com/job"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadResume(t *testing.T) {
	resumePath := writeTempFile(t, "resume.txt", cliResume)

	doc, err := loadResume(resumePath)
	require.NoError(t, err)

	assert.Equal(t, resumePath, doc.ID)
	assert.Contains(t, doc.Entities.Skills.Technical, "Python")
}

func TestLoadJobSpec_FromFile(t *testing.T) {
	jobPath := writeTempFile(t, "job.txt", cliJob)

	spec, err := loadJobSpec(context.Background(), config.Config{Job: jobPath}, "Backend Engineer")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", spec.Title)
	assert.Contains(t, spec.RequiredSkills, "Python")
	assert.Equal(t, 3.0, spec.MinYears)
}

func TestLoadJobSpec_RequiresSource(t *testing.T) {
	_, err := loadJobSpec(context.Background(), config.Config{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--job or --job-url")
}

func TestWriteArtifact_WritesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.json")

	err := writeArtifact(map[string]string{"status": "ok"}, outPath, "")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status": "ok"`)
}
