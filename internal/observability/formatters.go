// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// truncate shortens s to max display runes, never splitting a
// multi-byte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEvaluation outputs a human-readable summary of one evaluation.
func (p *Printer) PrintEvaluation(result *types.EvaluationResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall score: %.1f/100\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Verdict:       %s\n", result.SuitabilityVerdict))
	sb.WriteString(fmt.Sprintf("Confidence:    %s (%.2f)\n", result.ConfidenceLevel, result.ConfidenceScore))
	sb.WriteString("\n")

	for _, c := range result.ComponentBreakdown {
		sb.WriteString(fmt.Sprintf("%-24s %6.1f  (weight %.2f)\n", c.Name, c.Score, c.Weight))
	}

	if len(result.MatchedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("\nMatched: %s\n", truncate(strings.Join(result.MatchedSkills, ", "), 40)))
	}
	if len(result.MissingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Missing: %s\n", truncate(strings.Join(result.MissingSkills, ", "), 40)))
	}

	p.printBox("EVALUATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvidence outputs the per-component evidence of an evaluation.
func (p *Printer) PrintEvidence(result *types.EvaluationResult) {
	if result == nil || len(result.ComponentBreakdown) == 0 {
		return
	}

	var sb strings.Builder
	for i, c := range result.ComponentBreakdown {
		sb.WriteString(fmt.Sprintf("%s (%s)\n", c.Name, c.Methodology))
		for _, line := range c.Evidence {
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(line, 50)))
		}
		if i < len(result.ComponentBreakdown)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("COMPONENT EVIDENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywordAnalysis outputs the mined skills and requirements of a
// job description.
func (p *Printer) PrintKeywordAnalysis(analysis *types.KeywordAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder

	if len(analysis.RequiredSkills) > 0 {
		sb.WriteString("Required:\n")
		count := min(len(analysis.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.RequiredSkills[i]))
		}
		if len(analysis.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.RequiredSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(analysis.PreferredSkills) > 0 {
		sb.WriteString("Preferred:\n")
		count := min(len(analysis.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", analysis.PreferredSkills[i]))
		}
		if len(analysis.PreferredSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(analysis.PreferredSkills)-3))
		}
		sb.WriteString("\n")
	}

	if len(analysis.SkillImportance) > 0 {
		sb.WriteString("Importance:\n")
		count := min(len(analysis.SkillImportance), maxItemsToShow)
		for i := 0; i < count; i++ {
			imp := analysis.SkillImportance[i]
			sb.WriteString(fmt.Sprintf("  %-20s %5.1f\n", imp.Skill, imp.Score))
		}
	}

	p.printBox("KEYWORD ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendation outputs the skill-gap analysis for a target role.
func (p *Printer) PrintRecommendation(rec *types.Recommendation) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	if rec.TargetRole != "" {
		sb.WriteString(fmt.Sprintf("Target role: %s\n", rec.TargetRole))
		sb.WriteString(fmt.Sprintf("Coverage:    %.0f%%\n", rec.CoverageScore*100))
		sb.WriteString("\n")
	}

	if len(rec.StrengthAreas) > 0 {
		sb.WriteString(fmt.Sprintf("Strength areas: %s\n", strings.Join(rec.StrengthAreas, ", ")))
	}
	if len(rec.MissingCategories) > 0 {
		sb.WriteString(fmt.Sprintf("Gap areas:      %s\n", strings.Join(rec.MissingCategories, ", ")))
	}

	if len(rec.RecommendedSkills) > 0 {
		sb.WriteString("\nRecommended skills:\n")
		count := min(len(rec.RecommendedSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec.RecommendedSkills[i]))
		}
		if len(rec.RecommendedSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.RecommendedSkills)-maxItemsToShow))
		}
	}

	p.printBox("SKILL GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs the ranked candidate field for one job.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintComparison(comparison *types.Comparison) {
	if comparison == nil {
		return
	}
	if len(comparison.Ranked) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO CANDIDATES EVALUATED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	count := min(len(comparison.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := comparison.Ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %-20s %6.1f  %s\n", i+1, item.ID, item.Result.OverallScore, item.Result.SuitabilityVerdict))
	}
	if len(comparison.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more candidates\n", len(comparison.Ranked)-maxItemsToShow))
	}

	sb.WriteString(fmt.Sprintf("\nAverage: %.1f   Range: %.1f\n", comparison.AverageScore, comparison.ScoreRange))
	sb.WriteString("\n")
	for _, insight := range comparison.Insights {
		sb.WriteString(fmt.Sprintf("• %s\n", truncate(insight, 52)))
	}
	for _, guidance := range comparison.HiringGuidance {
		sb.WriteString(fmt.Sprintf("• %s\n", truncate(guidance, 52)))
	}

	p.printBox("CANDIDATE RANKING", strings.TrimSuffix(sb.String(), "\n"))
}
