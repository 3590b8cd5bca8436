package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vivekkumar2004/resume-relevance/internal/extraction"
	"github.com/vivekkumar2004/resume-relevance/internal/ingestion"
	"github.com/vivekkumar2004/resume-relevance/internal/observability"
	"github.com/vivekkumar2004/resume-relevance/internal/taxonomy"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Run skill-gap analysis against a target role",
	Long:  "Analyze a skill list (or the skills extracted from a resume) against a target role's expected skill categories and recommend skills to close the gaps.",
	RunE:  runRecommend,
}

var (
	recSkills     []string
	recResumeFile string
	recTargetRole string
	recOutputFile string
	recVerbose    bool
)

func init() {
	recommendCmd.Flags().StringSliceVarP(&recSkills, "skill", "s", nil, "A current skill (repeatable)")
	recommendCmd.Flags().StringVarP(&recResumeFile, "resume", "r", "", "Path to a resume text file to extract skills from")
	recommendCmd.Flags().StringVar(&recTargetRole, "role", "", "Target role, e.g. \"backend developer\"")
	recommendCmd.Flags().StringVarP(&recOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	recommendCmd.Flags().BoolVarP(&recVerbose, "verbose", "v", false, "Print a formatted summary")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, _ []string) error {
	skills := recSkills

	if recResumeFile != "" {
		text, _, err := ingestion.IngestFromFile(recResumeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		entities := extraction.Extract(text)
		skills = append(skills, entities.Skills.All()...)
	}

	if len(skills) == 0 {
		return fmt.Errorf("provide skills via --skill or --resume")
	}

	if recTargetRole == "" {
		fmt.Fprintf(os.Stderr, "Warning: no --role given; reporting strengths only. Known roles: %s\n", strings.Join(taxonomy.Roles(), ", "))
	}

	rec := taxonomy.Recommend(skills, recTargetRole)

	if recVerbose {
		observability.NewPrinter(os.Stderr).PrintRecommendation(rec)
	}

	return writeArtifact(rec, recOutputFile, "schemas/recommendation.schema.json")
}
