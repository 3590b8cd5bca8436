package extraction

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vivekkumar2004/resume-relevance/internal/taxonomy"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// minConfidence drops rule matches too weak to act on.
const minConfidence = 0.3

// Extract runs the rule pipeline over raw text and assembles an
// EntityBag. It never fails: unusable text yields an empty bag.
func Extract(raw string) *types.EntityBag {
	bag := &types.EntityBag{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return bag
	}

	sections := Segment(raw)
	bag.Contact = extractContact(raw)

	seen := map[field]map[string]bool{
		fieldTechnicalSkill: {},
		fieldSoftSkill:      {},
		fieldCertification:  {},
		fieldEducation:      {},
	}
	add := func(m match) {
		key := strings.ToLower(m.value)
		if seen[m.field][key] {
			return
		}
		// Skills found in both classifications keep the first, which
		// rule order makes the dedicated skills section.
		if m.field == fieldTechnicalSkill && seen[fieldSoftSkill][key] {
			return
		}
		if m.field == fieldSoftSkill && seen[fieldTechnicalSkill][key] {
			return
		}
		seen[m.field][key] = true
		switch m.field {
		case fieldTechnicalSkill:
			bag.Skills.Technical = append(bag.Skills.Technical, m.value)
		case fieldSoftSkill:
			bag.Skills.Soft = append(bag.Skills.Soft, m.value)
		case fieldCertification:
			bag.Certifications = append(bag.Certifications, m.value)
		case fieldEducation:
			bag.Education = append(bag.Education, m.value)
		}
	}

	for _, r := range rules {
		for _, m := range r.apply(raw, sections) {
			if m.confidence < minConfidence {
				continue
			}
			if m.entry != nil {
				bag.Experience = append(bag.Experience, *m.entry)
				continue
			}
			add(m)
		}
	}
	return bag
}

// Parse builds a Document from raw text. Whitespace-only input is a
// recoverable ParseFailureError; callers that tolerate empty documents
// can substitute an empty bag instead.
func Parse(id, raw string) (*types.Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseFailureError{DocumentID: id, Reason: "document contains no usable text"}
	}
	return &types.Document{ID: id, RawText: raw, Entities: Extract(raw)}, nil
}

// TotalYears estimates total tenure from the experience entries,
// summing explicit duration phrases and date ranges. Overlapping jobs
// are not reconciled; the sum is an upper bound.
func TotalYears(entries []types.ExperienceEntry) float64 {
	var total float64
	for _, entry := range entries {
		total += entryYears(entry)
	}
	return total
}

func entryYears(entry types.ExperienceEntry) float64 {
	for _, source := range []string{entry.Duration, entry.Title, entry.Description} {
		if source == "" {
			continue
		}
		if m := durationPattern.FindStringSubmatch(source); m != nil {
			value, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			unit := strings.ToLower(m[2])
			if strings.HasPrefix(unit, "mo") {
				return value / 12
			}
			return value
		}
		if m := dateRange.FindStringSubmatch(source); m != nil {
			start, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			endText := strings.ToLower(m[4])
			end := time.Now().Year()
			if endText != "present" && endText != "current" {
				end, err = strconv.Atoi(endText)
				if err != nil {
					continue
				}
			}
			if end >= start {
				return float64(end - start)
			}
		}
	}
	return 0
}

// ExtractJobSpec parses a job description into a JobSpec. Required
// versus preferred partitioning and keyword analysis live in the
// keywords package; this covers the structural fields.
func ExtractJobSpec(id, title, description string) *types.JobSpec {
	spec := &types.JobSpec{ID: id, Title: title, Description: description}
	lower := strings.ToLower(description)

	if m := durationPattern.FindStringSubmatch(description); m != nil {
		if years, err := strconv.ParseFloat(m[1], 64); err == nil && !strings.HasPrefix(strings.ToLower(m[2]), "mo") {
			spec.MinYears = years
		}
	}

	// Only registry-backed certifications count here; free-form
	// "certified" prose would pollute the requirement list.
	var certs []string
	for _, cert := range taxonomy.AllCertifications() {
		for _, alias := range cert.Mentions() {
			if strings.Contains(lower, strings.ToLower(alias)) {
				certs = append(certs, cert.Name)
				break
			}
		}
	}
	sort.Strings(certs)
	spec.Certifications = certs
	return spec
}
