package similarity

import (
	"fmt"
	"math"
)

// weightEpsilon is the tolerance for the weight-sum check.
const weightEpsilon = 1e-6

// Weights holds the relative weight of each scoring component. They
// must sum to 1.0.
type Weights struct {
	SkillMatch    float64 `json:"skill_match"`
	Semantic      float64 `json:"semantic_similarity"`
	Experience    float64 `json:"experience_match"`
	Certification float64 `json:"certification_match"`
}

// DefaultWeights returns the standard component weighting.
func DefaultWeights() Weights {
	return Weights{
		SkillMatch:    0.4,
		Semantic:      0.3,
		Experience:    0.2,
		Certification: 0.1,
	}
}

// Validate checks that all weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	for name, value := range map[string]float64{
		"skill_match":         w.SkillMatch,
		"semantic_similarity": w.Semantic,
		"experience_match":    w.Experience,
		"certification_match": w.Certification,
	} {
		if value < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %v", name, value)
		}
	}
	sum := w.SkillMatch + w.Semantic + w.Experience + w.Certification
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// withoutCertification redistributes the certification weight across
// the remaining components proportionally, preserving the unit sum.
// When every remaining weight is zero the certification weight is
// split equally so the sum still comes to 1.0.
func (w Weights) withoutCertification() Weights {
	remaining := w.SkillMatch + w.Semantic + w.Experience
	if remaining == 0 {
		return Weights{
			SkillMatch: 1.0 / 3,
			Semantic:   1.0 / 3,
			Experience: 1.0 / 3,
		}
	}
	return Weights{
		SkillMatch: w.SkillMatch / remaining,
		Semantic:   w.Semantic / remaining,
		Experience: w.Experience / remaining,
	}
}
