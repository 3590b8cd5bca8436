// Package extraction parses raw resume or job text into structured
// entities using section segmentation and an ordered list of
// independent extraction rules.
package extraction

import (
	"regexp"
	"strings"
)

// Section identifiers produced by Segment
const (
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
)

// sectionPatterns maps each logical section to the heading variants
// that open it. Matching is case-insensitive against a whole line.
var sectionPatterns = map[string][]*regexp.Regexp{
	SectionSummary: compileAll(
		`^(professional\s+|career\s+)?summary\b`,
		`^(career\s+|professional\s+)?objective\b`,
		`^profile\b`,
	),
	SectionExperience: compileAll(
		`^(work\s+|professional\s+|relevant\s+)?experience\b`,
		`^employment(\s+history)?\b`,
		`^(career|work)\s+history\b`,
	),
	SectionEducation: compileAll(
		`^education(al\s+background)?\b`,
		`^academic\s+(background|qualifications)\b`,
		`^qualifications\b`,
	),
	SectionSkills: compileAll(
		`^(technical\s+|key\s+|core\s+)?skills\b`,
		`^core\s+competencies\b`,
		`^expertise\b`,
	),
	SectionCertifications: compileAll(
		`^certifications?\b`,
		`^certificates\b`,
		`^licenses\b`,
		`^credentials\b`,
	),
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}

// headingFor returns the section a line opens, or "" if it is not a heading.
// Headings are short lines; a long prose line mentioning "experience"
// must not start a new section.
func headingFor(line string) string {
	trimmed := strings.TrimSpace(strings.Trim(strings.TrimSpace(line), ":=-# "))
	if trimmed == "" || len(trimmed) > 40 {
		return ""
	}
	for section, patterns := range sectionPatterns {
		for _, pattern := range patterns {
			if pattern.MatchString(trimmed) {
				return section
			}
		}
	}
	return ""
}

// Segment splits raw text into logical sections keyed by section
// identifier. Text before the first recognized heading is returned
// under the empty key. Repeated headings for the same section append.
func Segment(raw string) map[string]string {
	sections := make(map[string]string)
	var current string
	var buf []string

	flush := func() {
		if len(buf) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if content == "" {
			buf = buf[:0]
			return
		}
		if existing, ok := sections[current]; ok {
			sections[current] = existing + "\n" + content
		} else {
			sections[current] = content
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(raw, "\n") {
		if section := headingFor(line); section != "" {
			flush()
			current = section
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return sections
}
