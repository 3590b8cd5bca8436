// Package taxonomy maps free-text skill and certification mentions onto
// a canonical registry. The registry is embedded at compile time and
// loaded into immutable process-wide state on first use.
package taxonomy

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

//go:embed taxonomy.json
var registryFile embed.FS

// Match type constants reported on NormalizedSkill
const (
	MatchExact        = "exact"
	MatchContainment  = "containment"
	MatchUnrecognized = "unrecognized"
)

// CategoryUnclassified is assigned to mentions no registry entry covers
const CategoryUnclassified = "unclassified"

// CategorySoftSkills distinguishes interpersonal skills from technical
// ones during resume parsing.
const CategorySoftSkills = "soft_skills"

// minContainmentLen guards containment matching against short tokens
// like "R" or "Go" producing false positives.
const minContainmentLen = 4

// CanonicalSkill is one canonical registry entry
type CanonicalSkill struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases"`
}

// CanonicalCert is one canonical certification entry
type CanonicalCert struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// Mentions returns every string that resolves to this skill: the
// canonical name followed by its aliases.
func (s CanonicalSkill) Mentions() []string {
	out := make([]string, 0, len(s.Aliases)+1)
	out = append(out, s.Name)
	out = append(out, s.Aliases...)
	return out
}

// Mentions returns the canonical certification name and its aliases.
func (c CanonicalCert) Mentions() []string {
	out := make([]string, 0, len(c.Aliases)+1)
	out = append(out, c.Name)
	out = append(out, c.Aliases...)
	return out
}

// RoleCategory is one expected skill category for a target role.
// Slice order within a role encodes category priority.
type RoleCategory struct {
	Category string `json:"category"`
	Expected int    `json:"expected"`
}

type registry struct {
	Skills         []CanonicalSkill          `json:"skills"`
	Certifications []CanonicalCert           `json:"certifications"`
	Roles          map[string][]RoleCategory `json:"roles"`

	// alias (lowercased) -> index into Skills; includes canonical names
	skillIndex map[string]int
	certIndex  map[string]int
}

var (
	loadOnce sync.Once
	loaded   *registry
	loadErr  error
)

func load() (*registry, error) {
	loadOnce.Do(func() {
		data, err := registryFile.ReadFile("taxonomy.json")
		if err != nil {
			loadErr = fmt.Errorf("failed to read embedded taxonomy: %w", err)
			return
		}

		var reg registry
		if err := json.Unmarshal(data, &reg); err != nil {
			loadErr = fmt.Errorf("failed to parse taxonomy JSON: %w", err)
			return
		}

		reg.skillIndex = make(map[string]int)
		for i, skill := range reg.Skills {
			reg.skillIndex[strings.ToLower(skill.Name)] = i
			for _, alias := range skill.Aliases {
				// First alias registration wins so entry order in the
				// registry file is the tie-break.
				key := strings.ToLower(alias)
				if _, exists := reg.skillIndex[key]; !exists {
					reg.skillIndex[key] = i
				}
			}
		}

		reg.certIndex = make(map[string]int)
		for i, cert := range reg.Certifications {
			reg.certIndex[strings.ToLower(cert.Name)] = i
			for _, alias := range cert.Aliases {
				key := strings.ToLower(alias)
				if _, exists := reg.certIndex[key]; !exists {
					reg.certIndex[key] = i
				}
			}
		}

		loaded = &reg
	})
	return loaded, loadErr
}

// mustLoad panics on a broken embedded registry. The file ships inside
// the binary, so failure here is a build defect, not a runtime input.
func mustLoad() *registry {
	reg, err := load()
	if err != nil {
		panic(fmt.Sprintf("taxonomy registry unavailable: %v", err))
	}
	return reg
}

var (
	prefixRe  = regexp.MustCompile(`(?i)^(experience\s+with|knowledge\s+of|proficient\s+in|expert\s+in)\s+`)
	suffixRe  = regexp.MustCompile(`(?i)\s+(programming|language|framework|library|tool|platform|database)$`)
	versionRe = regexp.MustCompile(`\s+v?\d+(\.\d+)*$`)
	parenRe   = regexp.MustCompile(`\([^)]*\)`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// CleanMention strips qualifier prefixes, trailing noise words, version
// numbers and parenthesized asides from a raw skill mention.
func CleanMention(mention string) string {
	s := spaceRe.ReplaceAllString(strings.TrimSpace(mention), " ")
	s = prefixRe.ReplaceAllString(s, "")
	s = suffixRe.ReplaceAllString(s, "")
	s = versionRe.ReplaceAllString(s, "")
	s = parenRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NormalizeSkill maps one raw mention to at most one canonical skill.
// Resolution order: case-insensitive exact alias match, then a
// containment match when the shorter string has at least four
// characters. Unresolved mentions pass through unchanged with category
// "unclassified".
func NormalizeSkill(mention string) types.NormalizedSkill {
	reg := mustLoad()

	cleaned := CleanMention(mention)
	if cleaned == "" {
		return types.NormalizedSkill{
			Original:  mention,
			Canonical: strings.TrimSpace(mention),
			Category:  CategoryUnclassified,
			MatchType: MatchUnrecognized,
		}
	}

	lower := strings.ToLower(cleaned)
	if idx, ok := reg.skillIndex[lower]; ok {
		skill := reg.Skills[idx]
		return types.NormalizedSkill{
			Original:   mention,
			Canonical:  skill.Name,
			Category:   skill.Category,
			Confidence: 1.0,
			MatchType:  MatchExact,
		}
	}

	for i, skill := range reg.Skills {
		canonLower := strings.ToLower(skill.Name)
		shorter := len(canonLower)
		if len(lower) < shorter {
			shorter = len(lower)
		}
		if shorter < minContainmentLen {
			continue
		}
		if strings.Contains(lower, canonLower) || strings.Contains(canonLower, lower) {
			return types.NormalizedSkill{
				Original:   mention,
				Canonical:  reg.Skills[i].Name,
				Category:   reg.Skills[i].Category,
				Confidence: 0.7,
				MatchType:  MatchContainment,
			}
		}
	}

	return types.NormalizedSkill{
		Original:  mention,
		Canonical: cleaned,
		Category:  CategoryUnclassified,
		MatchType: MatchUnrecognized,
	}
}

// Normalize maps a list of raw mentions, dropping empties. Duplicate
// canonical identities are preserved; callers needing a set should use
// CanonicalSet.
func Normalize(skills []string) []types.NormalizedSkill {
	out := make([]types.NormalizedSkill, 0, len(skills))
	for _, skill := range skills {
		if strings.TrimSpace(skill) == "" {
			continue
		}
		out = append(out, NormalizeSkill(skill))
	}
	return out
}

// CanonicalSet normalizes mentions and returns the set of canonical
// identities, keyed by lowercased canonical name.
func CanonicalSet(skills []string) map[string]types.NormalizedSkill {
	set := make(map[string]types.NormalizedSkill)
	for _, norm := range Normalize(skills) {
		key := strings.ToLower(norm.Canonical)
		if _, exists := set[key]; !exists {
			set[key] = norm
		}
	}
	return set
}

// NormalizeCert maps a raw certification mention to its canonical name,
// falling back to the cleaned mention when unrecognized.
func NormalizeCert(mention string) string {
	reg := mustLoad()

	cleaned := CleanMention(mention)
	if cleaned == "" {
		return strings.TrimSpace(mention)
	}

	lower := strings.ToLower(cleaned)
	if idx, ok := reg.certIndex[lower]; ok {
		return reg.Certifications[idx].Name
	}

	for i, cert := range reg.Certifications {
		canonLower := strings.ToLower(cert.Name)
		shorter := len(canonLower)
		if len(lower) < shorter {
			shorter = len(lower)
		}
		if shorter < minContainmentLen {
			continue
		}
		if strings.Contains(lower, canonLower) || strings.Contains(canonLower, lower) {
			return reg.Certifications[i].Name
		}
	}

	return cleaned
}

// SkillsInCategory returns the canonical skills registered under a category
func SkillsInCategory(category string) []string {
	reg := mustLoad()

	var names []string
	for _, skill := range reg.Skills {
		if skill.Category == category {
			names = append(names, skill.Name)
		}
	}
	return names
}

// AllSkills returns every canonical skill in the registry.
func AllSkills() []CanonicalSkill {
	return mustLoad().Skills
}

// AllCertifications returns every canonical certification in the registry.
func AllCertifications() []CanonicalCert {
	return mustLoad().Certifications
}

// Roles returns the known target-role names
func Roles() []string {
	reg := mustLoad()

	names := make([]string, 0, len(reg.Roles))
	for name := range reg.Roles {
		names = append(names, name)
	}
	return names
}

// roleCategories looks up the expected categories for a role,
// normalizing the role name to the registry's snake_case convention.
func roleCategories(role string) ([]RoleCategory, bool) {
	reg := mustLoad()

	key := strings.ToLower(strings.TrimSpace(role))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	cats, ok := reg.Roles[key]
	return cats, ok
}
