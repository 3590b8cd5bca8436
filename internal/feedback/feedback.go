// Package feedback renders evaluation results into candidate-facing
// narrative text. Generation is template based and fully
// deterministic: the same evaluation always produces the same text.
package feedback

import (
	"fmt"
	"strings"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// FeedbackType selects which aspect of the evaluation the narrative
// covers.
type FeedbackType string

// Supported feedback types
const (
	TypePersonalized         FeedbackType = "personalized"
	TypeSkillFocused         FeedbackType = "skill_focused"
	TypeExperienceFocused    FeedbackType = "experience_focused"
	TypeCertificationFocused FeedbackType = "certification_focused"
)

// Tone selects the register of the narrative.
type Tone string

// Supported tones
const (
	ToneProfessional Tone = "professional"
	ToneEncouraging  Tone = "encouraging"
	TonePractical    Tone = "practical"
	ToneStrategic    Tone = "strategic"
	ToneAnalytical   Tone = "analytical"
)

// UnsupportedOptionError reports an unknown feedback type or tone.
type UnsupportedOptionError struct {
	Option string
	Value  string
}

func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("unsupported %s: %q", e.Option, e.Value)
}

// Types lists the supported feedback types.
func Types() []FeedbackType {
	return []FeedbackType{TypePersonalized, TypeSkillFocused, TypeExperienceFocused, TypeCertificationFocused}
}

// Tones lists the supported tones.
func Tones() []Tone {
	return []Tone{ToneProfessional, ToneEncouraging, TonePractical, ToneStrategic, ToneAnalytical}
}

// Generator renders feedback text from evaluation results.
type Generator struct{}

// NewGenerator returns a feedback generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders one feedback narrative for an evaluation.
func (g *Generator) Generate(result *types.EvaluationResult, jobTitle string, feedbackType FeedbackType, tone Tone) (string, error) {
	if result == nil {
		return "", fmt.Errorf("evaluation result is required")
	}
	if !validTone(tone) {
		return "", &UnsupportedOptionError{Option: "tone", Value: string(tone)}
	}

	switch feedbackType {
	case TypePersonalized:
		return g.personalized(result, jobTitle, tone), nil
	case TypeSkillFocused:
		return g.skillFocused(result, tone), nil
	case TypeExperienceFocused:
		return g.experienceFocused(result, tone), nil
	case TypeCertificationFocused:
		return g.certificationFocused(result, tone), nil
	default:
		return "", &UnsupportedOptionError{Option: "feedback type", Value: string(feedbackType)}
	}
}

func validTone(tone Tone) bool {
	switch tone {
	case ToneProfessional, ToneEncouraging, TonePractical, ToneStrategic, ToneAnalytical:
		return true
	}
	return false
}

// verdictPhrases maps each verdict to its opening phrase per tone.
var verdictPhrases = map[types.Verdict]map[Tone]string{
	types.VerdictStrong: {
		ToneProfessional: "The profile demonstrates strong alignment with this role.",
		ToneEncouraging:  "This is an excellent match, and the application is well worth pursuing.",
		TonePractical:    "Strong fit. Submit the application and tailor the summary to the posting.",
		ToneStrategic:    "This role plays directly to the profile's established strengths.",
		ToneAnalytical:   "Component scores indicate strong alignment across the evaluated dimensions.",
	},
	types.VerdictModerate: {
		ToneProfessional: "The profile shows moderate alignment with this role.",
		ToneEncouraging:  "There is a solid foundation here, with a few gaps that are very addressable.",
		TonePractical:    "Reasonable fit. Close the listed gaps before applying.",
		ToneStrategic:    "The role is reachable, but positioning should emphasize the strongest overlapping areas.",
		ToneAnalytical:   "Component scores indicate partial alignment, with measurable gaps in specific dimensions.",
	},
	types.VerdictWeak: {
		ToneProfessional: "The profile shows limited alignment with this role.",
		ToneEncouraging:  "The match is not there yet, but the gaps point to a concrete growth path.",
		TonePractical:    "Weak fit. Address the largest gaps before investing in an application.",
		ToneStrategic:    "A stepping-stone role building the missing skills would strengthen a future application.",
		ToneAnalytical:   "Component scores indicate misalignment in the majority of evaluated dimensions.",
	},
	types.VerdictPoor: {
		ToneProfessional: "The profile does not currently align with this role.",
		ToneEncouraging:  "This particular role is a stretch today; a nearby role may be a better springboard.",
		TonePractical:    "Not a fit. Redirect effort toward roles matching the current skill set.",
		ToneStrategic:    "The distance to this role suggests targeting an adjacent role first.",
		ToneAnalytical:   "Component scores indicate low alignment across all evaluated dimensions.",
	},
}

func (g *Generator) personalized(result *types.EvaluationResult, jobTitle string, tone Tone) string {
	var b strings.Builder
	if jobTitle != "" {
		fmt.Fprintf(&b, "Assessment for %s: ", jobTitle)
	}
	b.WriteString(verdictPhrases[result.SuitabilityVerdict][tone])
	fmt.Fprintf(&b, " Overall relevance score: %.1f/100 (%s confidence).", result.OverallScore, strings.ToLower(string(result.ConfidenceLevel)))

	if len(result.Strengths) > 0 {
		fmt.Fprintf(&b, " Key strengths: %s.", strings.Join(result.Strengths, "; "))
	}
	if len(result.Weaknesses) > 0 {
		fmt.Fprintf(&b, " Main concerns: %s.", strings.Join(result.Weaknesses, "; "))
	}
	if len(result.Recommendations) > 0 && (tone == TonePractical || tone == ToneStrategic) {
		b.WriteString(" Next steps:")
		for i, rec := range result.Recommendations {
			fmt.Fprintf(&b, "\n%d. %s", i+1, rec)
		}
	}
	return b.String()
}

func (g *Generator) skillFocused(result *types.EvaluationResult, tone Tone) string {
	var b strings.Builder
	switch {
	case len(result.MissingSkills) == 0:
		switch tone {
		case ToneEncouraging:
			b.WriteString("Every required skill is covered. The skills section is a real asset here.")
		case ToneAnalytical:
			b.WriteString("Required-skill coverage is complete; no skill gaps were detected.")
		default:
			b.WriteString("All required skills for this role are represented on the resume.")
		}
	default:
		switch tone {
		case ToneEncouraging:
			fmt.Fprintf(&b, "A few skills would round out the profile: %s.", strings.Join(result.MissingSkills, ", "))
		case TonePractical:
			fmt.Fprintf(&b, "Skills to acquire, most useful first: %s.", strings.Join(result.MissingSkills, ", "))
		case ToneAnalytical:
			fmt.Fprintf(&b, "%d required skill(s) were not found on the resume: %s.", len(result.MissingSkills), strings.Join(result.MissingSkills, ", "))
		case ToneStrategic:
			fmt.Fprintf(&b, "Closing these skill gaps would materially change how this profile reads for the role: %s.", strings.Join(result.MissingSkills, ", "))
		default:
			fmt.Fprintf(&b, "The following required skills were not found on the resume: %s.", strings.Join(result.MissingSkills, ", "))
		}
		if resources := resourceLines(result.MissingSkills); len(resources) > 0 {
			b.WriteString(" Suggested starting points: ")
			b.WriteString(strings.Join(resources, " "))
		}
	}
	if len(result.MatchedSkills) > 0 {
		fmt.Fprintf(&b, " Matched skills: %s.", strings.Join(result.MatchedSkills, ", "))
	}
	return b.String()
}

func (g *Generator) experienceFocused(result *types.EvaluationResult, tone Tone) string {
	component, ok := findComponent(result.ComponentBreakdown, "experience_match")
	if !ok {
		return "No experience signal was available for this evaluation."
	}

	var b strings.Builder
	switch {
	case component.Score >= 100:
		if tone == ToneEncouraging {
			b.WriteString("The experience level fully meets what this role asks for, which is a strong signal to lead with.")
		} else {
			b.WriteString("The experience level meets the role's requirement.")
		}
	case component.Score > 50:
		if tone == TonePractical {
			b.WriteString("Experience partially meets the requirement; make the most relevant tenure prominent.")
		} else {
			b.WriteString("The experience level partially meets the role's requirement.")
		}
	default:
		if tone == ToneAnalytical {
			fmt.Fprintf(&b, "The experience component scored %.0f/100, below the passing range.", component.Score)
		} else {
			b.WriteString("The experience level appears below what the role asks for.")
		}
	}
	for _, line := range component.Evidence {
		fmt.Fprintf(&b, " %s.", capitalize(line))
	}
	return b.String()
}

func (g *Generator) certificationFocused(result *types.EvaluationResult, tone Tone) string {
	component, ok := findComponent(result.ComponentBreakdown, "certification_match")
	if !ok {
		return "This role lists no certification requirements."
	}

	var b strings.Builder
	switch {
	case component.Score >= 100:
		if tone == ToneEncouraging {
			b.WriteString("Every requested certification is already in hand. Lead with them.")
		} else {
			b.WriteString("All certifications requested by the role are present.")
		}
	case component.Score > 0:
		switch tone {
		case TonePractical:
			b.WriteString("Some requested certifications are missing; schedule the highest-value exam first.")
		case ToneAnalytical:
			fmt.Fprintf(&b, "The certification component scored %.0f/100; coverage of requested certifications is partial.", component.Score)
		default:
			b.WriteString("Some of the certifications requested by the role are covered, others are not.")
		}
	default:
		if tone == ToneStrategic {
			b.WriteString("None of the requested certifications are present; earning one would be a visible differentiator for this role.")
		} else {
			b.WriteString("None of the certifications requested by the role were found on the resume.")
		}
	}
	for _, line := range component.Evidence {
		fmt.Fprintf(&b, " %s.", capitalize(line))
	}
	return b.String()
}

func findComponent(components []types.SimilarityComponent, name string) (types.SimilarityComponent, bool) {
	for _, c := range components {
		if c.Name == name {
			return c, true
		}
	}
	return types.SimilarityComponent{}, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
