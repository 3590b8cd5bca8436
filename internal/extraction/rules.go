package extraction

import (
	"regexp"
	"strings"

	"github.com/vivekkumar2004/resume-relevance/internal/taxonomy"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// field names the EntityBag slot a match belongs to.
type field int

const (
	fieldTechnicalSkill field = iota
	fieldSoftSkill
	fieldCertification
	fieldEducation
)

// match is one confidence-tagged value extracted by a rule.
type match struct {
	field      field
	value      string
	confidence float64
	// entry is set instead of value for experience matches.
	entry *types.ExperienceEntry
}

// rule extracts one entity kind from a segmented document. Rules are
// independent of each other and run in a fixed order.
type rule struct {
	name  string
	apply func(raw string, sections map[string]string) []match
}

// rules is the ordered extraction pipeline.
var rules = []rule{
	{name: "skills_section", apply: applySkillsSection},
	{name: "skills_fulltext", apply: applySkillsFullText},
	{name: "experience", apply: applyExperience},
	{name: "certifications", apply: applyCertifications},
	{name: "education", apply: applyEducation},
}

var skillDelimiter = regexp.MustCompile(`[,;|\n]|[•·▪]|\s[-*]\s`)

// applySkillsSection tokenizes the skills section on common delimiters
// and classifies each token through the taxonomy. Tokens found in the
// registry carry full confidence; unrecognized short tokens are kept
// with low confidence so downstream normalization can still see them.
func applySkillsSection(_ string, sections map[string]string) []match {
	section, ok := sections[SectionSkills]
	if !ok {
		return nil
	}
	var matches []match
	for _, token := range skillDelimiter.Split(section, -1) {
		token = strings.TrimSpace(strings.Trim(strings.TrimSpace(token), ":-*•"))
		if token == "" || len(token) > 40 {
			continue
		}
		// Strip label prefixes like "Languages:" that survive splitting.
		if idx := strings.Index(token, ":"); idx >= 0 && idx < len(token)-1 {
			token = strings.TrimSpace(token[idx+1:])
		}
		if token == "" {
			continue
		}
		normalized := taxonomy.NormalizeSkill(token)
		switch {
		case normalized.MatchType != taxonomy.MatchUnrecognized && normalized.Category == taxonomy.CategorySoftSkills:
			matches = append(matches, match{field: fieldSoftSkill, value: normalized.Canonical, confidence: normalized.Confidence})
		case normalized.MatchType != taxonomy.MatchUnrecognized:
			matches = append(matches, match{field: fieldTechnicalSkill, value: normalized.Canonical, confidence: normalized.Confidence})
		case len(strings.Fields(token)) <= 3:
			matches = append(matches, match{field: fieldTechnicalSkill, value: token, confidence: 0.3})
		}
	}
	return matches
}

// applySkillsFullText scans the whole document for registered skill
// aliases. This recovers skills mentioned in experience bullets and
// covers documents without a dedicated skills section.
func applySkillsFullText(raw string, _ map[string]string) []match {
	lower := strings.ToLower(raw)
	var matches []match
	for _, skill := range taxonomy.AllSkills() {
		for _, alias := range skill.Mentions() {
			if containsWord(lower, strings.ToLower(alias)) {
				f := fieldTechnicalSkill
				if skill.Category == taxonomy.CategorySoftSkills {
					f = fieldSoftSkill
				}
				matches = append(matches, match{field: f, value: skill.Name, confidence: 0.8})
				break
			}
		}
	}
	return matches
}

// containsWord reports whether needle occurs in haystack on word
// boundaries. Plain substring search would turn "scala" up in
// "scalable".
func containsWord(haystack, needle string) bool {
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(needle)
		leftOK := idx == 0 || !isWordChar(haystack[idx-1])
		rightOK := end == len(haystack) || !isWordChar(haystack[end])
		if leftOK && rightOK {
			return true
		}
		start = idx + 1
		if start >= len(haystack) {
			return false
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '+' || c == '#'
}

var (
	durationPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(years?|yrs?|months?|mos?)`)
	dateRange       = regexp.MustCompile(`(?i)\b((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+)?(\d{4})\s*(?:-|–|—|to)\s*((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+)?(\d{4}|present|current)`)
	titleIndicator  = regexp.MustCompile(`(?i)\b(engineer|developer|manager|analyst|scientist|architect|consultant|designer|administrator|specialist|lead|director|intern|officer)\b`)
)

// applyExperience walks the experience section line by line. A short
// line naming a role starts a new entry; a duration phrase or date
// range on a nearby line becomes its duration; remaining lines
// accumulate into the description.
func applyExperience(raw string, sections map[string]string) []match {
	section, ok := sections[SectionExperience]
	if !ok {
		// Degraded input: a duration phrase anywhere still yields
		// one untitled entry so tenure can be estimated.
		if m := durationPattern.FindString(raw); m != "" {
			return []match{{entry: &types.ExperienceEntry{Duration: m}, confidence: 0.4}}
		}
		return nil
	}

	var matches []match
	var current *types.ExperienceEntry
	var desc []string

	flush := func(confidence float64) {
		if current == nil {
			return
		}
		current.Description = strings.TrimSpace(strings.Join(desc, "\n"))
		matches = append(matches, match{entry: current, confidence: confidence})
		current = nil
		desc = nil
	}

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		isTitle := len(line) < 60 && titleIndicator.MatchString(line) && !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•")
		if isTitle {
			flush(0.9)
			current = &types.ExperienceEntry{Title: line}
			continue
		}
		if current != nil && current.Duration == "" {
			if m := dateRange.FindString(line); m != "" {
				current.Duration = m
				continue
			}
			if m := durationPattern.FindString(line); m != "" {
				current.Duration = m
			}
		}
		if current != nil {
			desc = append(desc, line)
		}
	}
	flush(0.9)

	if len(matches) == 0 {
		if m := durationPattern.FindString(section); m != "" {
			matches = append(matches, match{entry: &types.ExperienceEntry{Duration: m}, confidence: 0.4})
		}
	}
	return matches
}

var certKeyword = regexp.MustCompile(`(?i)\b(certified|certificate|certification)\b`)

// applyCertifications collects lines from the certifications section
// plus any full-text line matching a registered certification alias.
func applyCertifications(raw string, sections map[string]string) []match {
	seen := make(map[string]bool)
	var matches []match
	add := func(value string, confidence float64) {
		key := strings.ToLower(value)
		if value == "" || seen[key] {
			return
		}
		seen[key] = true
		matches = append(matches, match{field: fieldCertification, value: value, confidence: confidence})
	}

	if section, ok := sections[SectionCertifications]; ok {
		for _, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "-*•"))
			if line == "" || len(line) > 120 {
				continue
			}
			add(taxonomy.NormalizeCert(line), 1.0)
		}
	}

	lower := strings.ToLower(raw)
	for _, cert := range taxonomy.AllCertifications() {
		for _, alias := range cert.Mentions() {
			if strings.Contains(lower, strings.ToLower(alias)) {
				add(cert.Name, 0.8)
				break
			}
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 0 && len(line) <= 120 && certKeyword.MatchString(line) {
			add(taxonomy.NormalizeCert(strings.Trim(line, "-*• ")), 0.6)
		}
	}
	return matches
}

var degreePattern = regexp.MustCompile(`(?i)\b(bachelor|master|ph\.?d|b\.?\s?(s|a|sc|tech|e)\b|m\.?\s?(s|a|sc|tech|ba)\b|doctorate|diploma|associate)\b`)

// applyEducation captures degree-bearing lines from the education
// section, falling back to a full-text degree scan.
func applyEducation(raw string, sections map[string]string) []match {
	source, ok := sections[SectionEducation]
	confidence := 1.0
	if !ok {
		source = raw
		confidence = 0.5
	}
	seen := make(map[string]bool)
	var matches []match
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "-*•"))
		if line == "" || len(line) > 120 || !degreePattern.MatchString(line) {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		matches = append(matches, match{field: fieldEducation, value: line, confidence: confidence})
	}
	return matches
}

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`(\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9\-_%]+`)
)

// extractContact pulls contact details from the document head. The
// name heuristic takes the first short line that is not a heading and
// carries no digits.
func extractContact(raw string) types.ContactInfo {
	info := types.ContactInfo{
		Email:    emailPattern.FindString(raw),
		Phone:    strings.TrimSpace(phonePattern.FindString(raw)),
		LinkedIn: linkedinPattern.FindString(raw),
	}
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if i > 4 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 60 || headingFor(line) != "" {
			continue
		}
		if strings.ContainsAny(line, "0123456789@/") {
			continue
		}
		words := strings.Fields(line)
		if len(words) >= 2 && len(words) <= 4 {
			info.Name = line
			break
		}
	}
	return info
}
