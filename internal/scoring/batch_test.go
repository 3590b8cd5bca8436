package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

func TestEvaluateBatch_FailureIsolation(t *testing.T) {
	scorer := newTestScorer(t)

	docs := []*types.Document{
		candidateDoc("r1", []string{"Python", "PostgreSQL", "Docker"}, "5 years"),
		candidateDoc("r2", []string{"Python"}, "2 years"),
		{ID: "r3"}, // no content, must fail alone
		candidateDoc("r4", []string{"Docker"}, ""),
		nil,
	}

	batch := scorer.EvaluateBatch(context.Background(), docs, backendJob())

	require.Len(t, batch.Items, 5)
	assert.Equal(t, 3, batch.SuccessfulEvaluations)
	assert.Equal(t, 2, batch.FailedEvaluations)

	assert.NotNil(t, batch.Items[0].Result)
	assert.NotNil(t, batch.Items[1].Result)
	assert.NotEmpty(t, batch.Items[2].Error)
	assert.Nil(t, batch.Items[2].Result)
	assert.NotNil(t, batch.Items[3].Result)
	assert.Nil(t, batch.Items[4].Result)
	assert.NotEmpty(t, batch.Items[4].Error)
}

func TestEvaluateBatch_PreservesSubmissionOrder(t *testing.T) {
	scorer := newTestScorer(t)

	docs := []*types.Document{
		candidateDoc("weak", []string{"Python"}, ""),
		candidateDoc("strong", []string{"Python", "PostgreSQL", "Docker"}, "5 years"),
	}

	batch := scorer.EvaluateBatch(context.Background(), docs, backendJob())

	require.Len(t, batch.Items, 2)
	assert.Equal(t, "weak", batch.Items[0].ID)
	assert.Equal(t, "strong", batch.Items[1].ID)
}

func TestEvaluateBatch_CanceledContext(t *testing.T) {
	scorer := newTestScorer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := scorer.EvaluateBatch(ctx, []*types.Document{candidateDoc("r1", []string{"Python"}, "")}, backendJob())

	require.Len(t, batch.Items, 1)
	assert.Contains(t, batch.Items[0].Error, "canceled")
	assert.Equal(t, 1, batch.FailedEvaluations)
}

func TestRankCandidates_OrdersByScoreDescending(t *testing.T) {
	scorer := newTestScorer(t)

	docs := []*types.Document{
		candidateDoc("low", []string{"Python"}, ""),
		candidateDoc("high", []string{"Python", "PostgreSQL", "Docker"}, "5 years"),
		{ID: "broken"},
		candidateDoc("mid", []string{"Python", "Docker"}, "3 years"),
	}

	batch := scorer.EvaluateBatch(context.Background(), docs, backendJob())
	ranked := RankCandidates(batch)

	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, "mid", ranked[1].ID)
	assert.Equal(t, "low", ranked[2].ID)
	assert.GreaterOrEqual(t, ranked[0].Result.OverallScore, ranked[1].Result.OverallScore)
	assert.GreaterOrEqual(t, ranked[1].Result.OverallScore, ranked[2].Result.OverallScore)
}

func TestCompareCandidates_Summary(t *testing.T) {
	scorer := newTestScorer(t)

	docs := []*types.Document{
		candidateDoc("high", []string{"Python", "PostgreSQL", "Docker"}, "5 years"),
		candidateDoc("low", []string{"Python"}, ""),
	}

	batch := scorer.EvaluateBatch(context.Background(), docs, backendJob())
	comparison := CompareCandidates(batch)

	assert.Equal(t, "high", comparison.TopCandidate)
	assert.Equal(t, comparison.Ranked[0].Result.OverallScore, comparison.TopScore)
	assert.Greater(t, comparison.ScoreRange, 0.0)
	assert.NotEmpty(t, comparison.Insights)
	assert.NotEmpty(t, comparison.HiringGuidance)
	assert.Contains(t, comparison.Insights[0], "2 of 2")
}

func TestCompareCandidates_EmptyBatch(t *testing.T) {
	comparison := CompareCandidates(&types.BatchResult{})

	assert.Empty(t, comparison.Ranked)
	assert.Empty(t, comparison.TopCandidate)
	assert.Equal(t, []string{"no candidates could be evaluated"}, comparison.Insights)
}
