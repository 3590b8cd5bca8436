// Package types provides type definitions for structured data used throughout the relevance scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Document represents one parsed input document (a resume or a job
// description). It is immutable once constructed; the scoring engine
// never mutates it.
type Document struct {
	ID       string     `json:"id,omitempty"`
	RawText  string     `json:"raw_text"`
	Entities *EntityBag `json:"entities"`
}

// EntityBag holds every structured entity extracted from a document.
// All fields may be empty; partial extraction is the normal case.
type EntityBag struct {
	Skills         SkillSet          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Certifications []string          `json:"certifications"`
	Education      []string          `json:"education"`
	Contact        ContactInfo       `json:"contact"`
}

// SkillSet separates technical skills from soft skills
type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// All returns the combined technical and soft skill list
func (s SkillSet) All() []string {
	all := make([]string, 0, len(s.Technical)+len(s.Soft))
	all = append(all, s.Technical...)
	all = append(all, s.Soft...)
	return all
}

// ExperienceEntry represents one work-history entry from a resume
type ExperienceEntry struct {
	Title       string `json:"title"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description"`
}

// ContactInfo holds optional contact fields extracted from a resume
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// IsEmpty reports whether the bag contains no extracted entities
func (b *EntityBag) IsEmpty() bool {
	if b == nil {
		return true
	}
	return len(b.Skills.Technical) == 0 && len(b.Skills.Soft) == 0 &&
		len(b.Experience) == 0 && len(b.Certifications) == 0 &&
		len(b.Education) == 0
}

// HasContent reports whether the document carries any usable signal,
// either raw text or extracted entities.
func (d *Document) HasContent() bool {
	if d == nil {
		return false
	}
	if strings.TrimSpace(d.RawText) != "" {
		return true
	}
	return !d.Entities.IsEmpty()
}
