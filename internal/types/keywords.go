// Package types provides type definitions for structured data used throughout the relevance scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// KeywordAnalysis is the structured output of mining a job description
// for skills, responsibilities and importance-weighted keywords.
type KeywordAnalysis struct {
	RequiredSkills   []string         `json:"required_skills"`
	PreferredSkills  []string         `json:"preferred_skills"`
	Responsibilities []string         `json:"responsibilities"`
	KeywordFrequency map[string]int   `json:"keyword_frequency"`
	SkillImportance  []SkillImportance `json:"skill_importance"`
}

// SkillImportance pairs a keyword with its normalized importance score,
// sorted descending in SkillImportance lists.
type SkillImportance struct {
	Skill string  `json:"skill"`
	Score float64 `json:"score"` // 0-100, min-max normalized
}

// NormalizedSkill is the result of mapping one free-text skill mention
// onto the canonical taxonomy. Unresolved mentions keep their original
// text with category "unclassified".
type NormalizedSkill struct {
	Original   string  `json:"original"`
	Canonical  string  `json:"canonical"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"` // 0-1
	MatchType  string  `json:"match_type"` // exact, containment, unrecognized
}

// Recommendation is the output of skill-gap analysis for a target role
type Recommendation struct {
	TargetRole        string             `json:"target_role,omitempty"`
	CategoryCoverage  map[string]float64 `json:"category_coverage"`
	MissingCategories []string           `json:"missing_categories"`
	RecommendedSkills []string           `json:"recommended_skills"`
	StrengthAreas     []string           `json:"strength_areas"`
	CoverageScore     float64            `json:"coverage_score"` // 0-1
}
