// Package types provides type definitions for structured data used throughout the relevance scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// JobSpec represents a structured job description against which resumes
// are scored. It is usually produced by the keyword extractor, but
// callers may also construct one directly.
type JobSpec struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Certifications  []string `json:"certifications,omitempty"`
	MinYears        float64  `json:"min_years,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// AllSkills returns required and preferred skills combined, required first
func (j *JobSpec) AllSkills() []string {
	all := make([]string, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	all = append(all, j.RequiredSkills...)
	all = append(all, j.PreferredSkills...)
	return all
}

// HasContent reports whether the spec carries any usable signal
func (j *JobSpec) HasContent() bool {
	if j == nil {
		return false
	}
	return strings.TrimSpace(j.Description) != "" ||
		len(j.RequiredSkills) > 0 || len(j.PreferredSkills) > 0 ||
		len(j.Keywords) > 0
}
