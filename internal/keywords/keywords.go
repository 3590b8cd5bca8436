// Package keywords analyzes job descriptions: it partitions skill
// mentions into required and preferred sets, measures keyword
// frequency, scores skill importance by marker proximity, and pulls
// out responsibility statements.
package keywords

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vivekkumar2004/resume-relevance/internal/taxonomy"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

const (
	// proximityWindow is how far back from a skill mention marker
	// words still influence its importance score.
	proximityWindow = 50

	maxResponsibilities = 10

	highImportanceBoost   = 3
	mediumImportanceBoost = 1
)

var (
	requiredMarkers  = []string{"required", "must have", "essential"}
	preferredMarkers = []string{"preferred", "nice to have", "desired", "plus"}

	highImportanceMarkers   = []string{"required", "must", "essential", "critical", "key", "strong"}
	mediumImportanceMarkers = []string{"preferred", "desired", "experience with", "knowledge of"}
)

// sentenceBoundary ends a marker's scope. Single newlines stay inside
// scope so a "Required:" heading governs the bullet list under it.
var sentenceBoundary = regexp.MustCompile(`[.!?]|\n\s*\n`)

var actionVerbs = regexp.MustCompile(`(?i)^(design|develop|build|maintain|lead|manage|implement|collaborate|write|create|own|drive|support|deploy|monitor|optimize|analyze|review|architect|deliver|ensure)\b`)

var sentenceSplit = regexp.MustCompile(`[.!?]`)

type markerKind int

const (
	markerRequired markerKind = iota
	markerPreferred
)

type markerHit struct {
	kind markerKind
	pos  int
}

type mention struct {
	canonical string
	positions []int
}

// Analyze runs the full keyword pass over a job description. The
// result is deterministic for a given input.
func Analyze(description string) *types.KeywordAnalysis {
	analysis := &types.KeywordAnalysis{KeywordFrequency: map[string]int{}}
	if strings.TrimSpace(description) == "" {
		return analysis
	}

	lower := strings.ToLower(description)
	mentions := findMentions(lower)
	markers := findMarkers(lower)
	boundaries := sentenceBoundary.FindAllStringIndex(lower, -1)

	var required, preferred []string
	for _, m := range mentions {
		analysis.KeywordFrequency[m.canonical] = len(m.positions)
		if classify(m.positions[0], markers, boundaries) == markerPreferred {
			preferred = append(preferred, m.canonical)
		} else {
			required = append(required, m.canonical)
		}
	}
	sort.Strings(required)
	sort.Strings(preferred)
	analysis.RequiredSkills = required
	analysis.PreferredSkills = preferred
	analysis.SkillImportance = scoreImportance(lower, mentions)
	analysis.Responsibilities = responsibilities(description)
	return analysis
}

// Enrich fills a JobSpec's skill partitions and keyword list from its
// description.
func Enrich(spec *types.JobSpec) *types.KeywordAnalysis {
	analysis := Analyze(spec.Description)
	spec.RequiredSkills = analysis.RequiredSkills
	spec.PreferredSkills = analysis.PreferredSkills

	keywords := make([]string, 0, len(analysis.KeywordFrequency))
	for keyword := range analysis.KeywordFrequency {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	spec.Keywords = keywords
	return analysis
}

// findMentions locates every registered skill alias in the lowered
// text, keyed by canonical name. Word boundaries prevent "scala"
// matching inside "scalable".
func findMentions(lower string) []mention {
	byName := make(map[string][]int)
	for _, skill := range taxonomy.AllSkills() {
		for _, alias := range skill.Mentions() {
			for _, pos := range wordOccurrences(lower, strings.ToLower(alias)) {
				byName[skill.Name] = append(byName[skill.Name], pos)
			}
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	mentions := make([]mention, 0, len(names))
	for _, name := range names {
		positions := byName[name]
		sort.Ints(positions)
		mentions = append(mentions, mention{canonical: name, positions: positions})
	}
	return mentions
}

func wordOccurrences(haystack, needle string) []int {
	var out []int
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return out
		}
		idx += start
		end := idx + len(needle)
		leftOK := idx == 0 || !isWordChar(haystack[idx-1])
		rightOK := end == len(haystack) || !isWordChar(haystack[end])
		if leftOK && rightOK {
			out = append(out, idx)
		}
		start = idx + 1
		if start >= len(haystack) {
			return out
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '+' || c == '#'
}

func findMarkers(lower string) []markerHit {
	var hits []markerHit
	for _, marker := range requiredMarkers {
		for _, pos := range wordOccurrences(lower, marker) {
			hits = append(hits, markerHit{kind: markerRequired, pos: pos})
		}
	}
	for _, marker := range preferredMarkers {
		for _, pos := range wordOccurrences(lower, marker) {
			hits = append(hits, markerHit{kind: markerPreferred, pos: pos})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	return hits
}

// classify assigns a mention to required or preferred. The nearest
// marker preceding the mention wins, but only if no sentence boundary
// separates them. Without a preceding marker, a marker later in the
// same sentence governs, which covers phrasing like "Python is
// preferred". Unmarked mentions default to required, since a job
// description lists hard requirements as its unmarked baseline.
func classify(mentionPos int, markers []markerHit, boundaries [][]int) markerKind {
	governing := markerRequired
	found := false
	for _, marker := range markers {
		if marker.pos >= mentionPos {
			break
		}
		if boundaryBetween(marker.pos, mentionPos, boundaries) {
			continue
		}
		governing = marker.kind
		found = true
	}
	if found {
		return governing
	}
	for _, marker := range markers {
		if marker.pos <= mentionPos {
			continue
		}
		if boundaryBetween(mentionPos, marker.pos, boundaries) {
			break
		}
		return marker.kind
	}
	return markerRequired
}

func boundaryBetween(from, to int, boundaries [][]int) bool {
	for _, b := range boundaries {
		if b[0] > from && b[0] < to {
			return true
		}
		if b[0] >= to {
			break
		}
	}
	return false
}

// scoreImportance scores each skill by occurrence count plus boosts
// for importance markers inside the window around each occurrence,
// then min-max normalizes onto [0,100], descending.
func scoreImportance(lower string, mentions []mention) []types.SkillImportance {
	if len(mentions) == 0 {
		return nil
	}

	raw := make([]float64, len(mentions))
	for i, m := range mentions {
		score := float64(len(m.positions))
		for _, pos := range m.positions {
			windowStart := pos - proximityWindow
			if windowStart < 0 {
				windowStart = 0
			}
			windowEnd := pos + proximityWindow
			if windowEnd > len(lower) {
				windowEnd = len(lower)
			}
			window := lower[windowStart:windowEnd]
			for _, marker := range highImportanceMarkers {
				if strings.Contains(window, marker) {
					score += highImportanceBoost
				}
			}
			for _, marker := range mediumImportanceMarkers {
				if strings.Contains(window, marker) {
					score += mediumImportanceBoost
				}
			}
		}
		raw[i] = score
	}

	minScore, maxScore := raw[0], raw[0]
	for _, s := range raw[1:] {
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	result := make([]types.SkillImportance, len(mentions))
	for i, m := range mentions {
		normalized := 100.0
		if maxScore > minScore {
			normalized = (raw[i] - minScore) / (maxScore - minScore) * 100
		}
		result[i] = types.SkillImportance{Skill: m.canonical, Score: normalized}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Skill < result[j].Skill
	})
	return result
}

// responsibilities collects action-verb statements, bullets first,
// then sentences, up to the cap.
func responsibilities(description string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "-*•"))
		if s == "" || len(s) > 200 || !actionVerbs.MatchString(s) {
			return
		}
		key := strings.ToLower(s)
		if seen[key] || len(out) >= maxResponsibilities {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	for _, line := range strings.Split(description, "\n") {
		add(line)
	}
	for _, sentence := range sentenceSplit.Split(description, -1) {
		add(sentence)
	}
	return out
}
