package scoring

import (
	"context"
	"fmt"
	"sort"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// EvaluateBatch scores every document against one job. Items are
// processed sequentially and a failing item never affects the others;
// it is recorded as a structured per-item error instead.
func (s *Scorer) EvaluateBatch(ctx context.Context, docs []*types.Document, spec *types.JobSpec) *types.BatchResult {
	batch := &types.BatchResult{Items: make([]types.BatchItem, 0, len(docs))}

	for _, doc := range docs {
		item := types.BatchItem{}
		if doc != nil {
			item.ID = doc.ID
		}

		if err := ctx.Err(); err != nil {
			item.Error = fmt.Sprintf("evaluation canceled: %v", err)
			batch.Items = append(batch.Items, item)
			batch.FailedEvaluations++
			continue
		}

		result, err := s.Analyze(ctx, doc, spec)
		if err != nil {
			item.Error = err.Error()
			batch.FailedEvaluations++
		} else {
			item.Result = result
			batch.SuccessfulEvaluations++
		}
		batch.Items = append(batch.Items, item)
	}
	return batch
}

// RankCandidates orders the successful items of a batch by overall
// score, best first. Ties keep their submission order.
func RankCandidates(batch *types.BatchResult) []types.BatchItem {
	ranked := make([]types.BatchItem, 0, len(batch.Items))
	for _, item := range batch.Items {
		if item.Result != nil {
			ranked = append(ranked, item)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.OverallScore > ranked[j].Result.OverallScore
	})
	return ranked
}

// CompareCandidates summarizes a batch into a ranked comparison with
// aggregate statistics, insights and hiring guidance.
func CompareCandidates(batch *types.BatchResult) *types.Comparison {
	ranked := RankCandidates(batch)
	comparison := &types.Comparison{Ranked: ranked}

	if len(ranked) == 0 {
		comparison.Insights = []string{"no candidates could be evaluated"}
		return comparison
	}

	top := ranked[0]
	comparison.TopCandidate = top.ID
	comparison.TopScore = top.Result.OverallScore

	var sum float64
	verdictCounts := make(map[types.Verdict]int)
	for _, item := range ranked {
		sum += item.Result.OverallScore
		verdictCounts[item.Result.SuitabilityVerdict]++
	}
	comparison.AverageScore = round2(sum / float64(len(ranked)))
	comparison.ScoreRange = round2(top.Result.OverallScore - ranked[len(ranked)-1].Result.OverallScore)

	comparison.Insights = insights(batch, ranked, verdictCounts, comparison)
	comparison.HiringGuidance = hiringGuidance(comparison, verdictCounts)
	return comparison
}

func insights(batch *types.BatchResult, ranked []types.BatchItem, verdictCounts map[types.Verdict]int, comparison *types.Comparison) []string {
	out := []string{
		fmt.Sprintf("%d of %d candidates evaluated successfully", batch.SuccessfulEvaluations, len(batch.Items)),
		fmt.Sprintf("scores average %.2f across a %.2f point spread", comparison.AverageScore, comparison.ScoreRange),
	}
	for _, verdict := range []types.Verdict{types.VerdictStrong, types.VerdictModerate, types.VerdictWeak, types.VerdictPoor} {
		if count := verdictCounts[verdict]; count > 0 {
			out = append(out, fmt.Sprintf("%d candidate(s) rate %s", count, verdict))
		}
	}
	if len(ranked) >= 2 && comparison.ScoreRange < 10 {
		out = append(out, "candidates are closely clustered; component breakdowns differentiate better than overall scores here")
	}
	return out
}

func hiringGuidance(comparison *types.Comparison, verdictCounts map[types.Verdict]int) []string {
	var out []string
	switch {
	case comparison.TopScore >= strongThreshold:
		out = append(out, fmt.Sprintf("Advance %s to interview; the profile is a strong match", comparison.TopCandidate))
	case comparison.TopScore >= moderateThreshold:
		out = append(out, "Top candidates are moderate fits; use interviews to probe the missing skills")
	default:
		out = append(out, "No candidate reaches a moderate fit; consider widening the sourcing pool")
	}
	if strong := verdictCounts[types.VerdictStrong]; strong > 1 {
		out = append(out, fmt.Sprintf("%d strong candidates are available; compare component breakdowns before shortlisting", strong))
	}
	return out
}
