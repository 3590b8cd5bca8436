package taxonomy

import (
	"sort"
	"strings"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

const (
	// coverageThreshold is the per-category coverage below which a
	// category is reported as a gap.
	coverageThreshold = 0.5

	// maxRecommendedSkills caps the recommendation list
	maxRecommendedSkills = 15

	// recommendedPerCategory limits suggestions drawn from each gap category
	recommendedPerCategory = 3
)

// Recommend performs skill-gap analysis against a target role. With no
// target role (or an unknown one) it still reports the candidate's
// strength areas and normalized category coverage, but no gaps.
func Recommend(currentSkills []string, targetRole string) *types.Recommendation {
	normalized := Normalize(currentSkills)

	// Count matched canonical skills per category
	categoryCounts := make(map[string]int)
	seen := make(map[string]bool)
	for _, norm := range normalized {
		if norm.Category == CategoryUnclassified {
			continue
		}
		key := strings.ToLower(norm.Canonical)
		if seen[key] {
			continue
		}
		seen[key] = true
		categoryCounts[norm.Category]++
	}

	strengths := make([]string, 0, len(categoryCounts))
	for category := range categoryCounts {
		strengths = append(strengths, category)
	}
	sort.Strings(strengths)

	rec := &types.Recommendation{
		TargetRole:        targetRole,
		CategoryCoverage:  map[string]float64{},
		MissingCategories: []string{},
		RecommendedSkills: []string{},
		StrengthAreas:     strengths,
	}

	expected, ok := roleCategories(targetRole)
	if targetRole == "" || !ok {
		for category, count := range categoryCounts {
			rec.CategoryCoverage[category] = float64(count)
		}
		return rec
	}

	// Coverage per expected category, gaps ordered by ascending
	// coverage then by the role's category priority.
	type gap struct {
		category string
		coverage float64
		priority int
	}
	var gaps []gap
	covered := 0
	for priority, rc := range expected {
		coverage := 1.0
		if rc.Expected > 0 {
			coverage = float64(categoryCounts[rc.Category]) / float64(rc.Expected)
			if coverage > 1.0 {
				coverage = 1.0
			}
		}
		rec.CategoryCoverage[rc.Category] = coverage
		if coverage >= coverageThreshold {
			covered++
		} else {
			gaps = append(gaps, gap{category: rc.Category, coverage: coverage, priority: priority})
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].coverage != gaps[j].coverage {
			return gaps[i].coverage < gaps[j].coverage
		}
		return gaps[i].priority < gaps[j].priority
	})

	for _, g := range gaps {
		rec.MissingCategories = append(rec.MissingCategories, g.category)
		suggested := 0
		for _, name := range SkillsInCategory(g.category) {
			if seen[strings.ToLower(name)] {
				continue
			}
			if suggested >= recommendedPerCategory || len(rec.RecommendedSkills) >= maxRecommendedSkills {
				break
			}
			rec.RecommendedSkills = append(rec.RecommendedSkills, name)
			suggested++
		}
	}

	if len(expected) > 0 {
		rec.CoverageScore = float64(covered) / float64(len(expected))
	}

	return rec
}
