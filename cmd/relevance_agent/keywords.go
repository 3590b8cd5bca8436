package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vivekkumar2004/resume-relevance/internal/config"
	"github.com/vivekkumar2004/resume-relevance/internal/ingestion"
	"github.com/vivekkumar2004/resume-relevance/internal/keywords"
	"github.com/vivekkumar2004/resume-relevance/internal/observability"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Mine a job description for skills and requirements",
	Long:  "Extract required vs preferred skills, responsibilities, keyword frequencies and importance-weighted scores from a job description.",
	RunE:  runKeywords,
}

var (
	kwJobFile    string
	kwJobURL     string
	kwOutputFile string
	kwVerbose    bool
)

func init() {
	keywordsCmd.Flags().StringVarP(&kwJobFile, "job", "j", "", "Path to job description text file")
	keywordsCmd.Flags().StringVar(&kwJobURL, "job-url", "", "URL of a job posting to fetch")
	keywordsCmd.Flags().StringVarP(&kwOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	keywordsCmd.Flags().BoolVarP(&kwVerbose, "verbose", "v", false, "Print a formatted summary")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(_ *cobra.Command, _ []string) error {
	cfg := config.Config{Job: kwJobFile, JobURL: kwJobURL}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var text string
	switch {
	case cfg.Job != "":
		loaded, _, err := ingestion.IngestFromFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		text = loaded
	case cfg.JobURL != "":
		loaded, _, err := ingestion.IngestFromURL(context.Background(), cfg.JobURL)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		text = loaded
	default:
		return fmt.Errorf("either --job or --job-url is required")
	}

	analysis := keywords.Analyze(text)

	if kwVerbose {
		observability.NewPrinter(os.Stderr).PrintKeywordAnalysis(analysis)
	}

	return writeArtifact(analysis, kwOutputFile, "schemas/keyword_analysis.schema.json")
}
