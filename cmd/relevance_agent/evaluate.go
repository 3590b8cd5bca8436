package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vivekkumar2004/resume-relevance/internal/config"
	"github.com/vivekkumar2004/resume-relevance/internal/db"
	"github.com/vivekkumar2004/resume-relevance/internal/feedback"
	"github.com/vivekkumar2004/resume-relevance/internal/observability"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score one resume against one job description",
	Long:  "Evaluate a resume against a job description, producing a weighted relevance score with verdict, confidence, per-component evidence and optional narrative feedback.",
	RunE:  runEvaluate,
}

var (
	evalConfigFile   string
	evalResumeFile   string
	evalJobFile      string
	evalJobURL       string
	evalJobTitle     string
	evalOutputFile   string
	evalAPIKey       string
	evalDatabaseURL  string
	evalArchive      bool
	evalFeedbackType string
	evalTone         string
	evalVerbose      bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalConfigFile, "config", "c", "", "Path to JSON config file")
	evaluateCmd.Flags().StringVarP(&evalResumeFile, "resume", "r", "", "Path to resume text file (required)")
	evaluateCmd.Flags().StringVarP(&evalJobFile, "job", "j", "", "Path to job description text file")
	evaluateCmd.Flags().StringVar(&evalJobURL, "job-url", "", "URL of a job posting to fetch")
	evaluateCmd.Flags().StringVar(&evalJobTitle, "title", "", "Job title used in feedback text")
	evaluateCmd.Flags().StringVarP(&evalOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	evaluateCmd.Flags().StringVar(&evalAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	evaluateCmd.Flags().StringVar(&evalDatabaseURL, "db-url", "", "Database URL for archiving (overrides DATABASE_URL env var)")
	evaluateCmd.Flags().BoolVar(&evalArchive, "archive", false, "Store the result in the database")
	evaluateCmd.Flags().StringVar(&evalFeedbackType, "feedback", "", "Feedback type to print (personalized, skill_focused, experience_focused, certification_focused)")
	evaluateCmd.Flags().StringVar(&evalTone, "tone", string(feedback.ToneProfessional), "Feedback tone (professional, encouraging, practical, strategic, analytical)")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print detailed breakdowns")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(evalConfigFile, config.Config{
		Resume:      evalResumeFile,
		Job:         evalJobFile,
		JobURL:      evalJobURL,
		APIKey:      evalAPIKey,
		DatabaseURL: evalDatabaseURL,
	})
	if err != nil {
		return err
	}
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required")
	}

	ctx := context.Background()

	doc, err := loadResume(cfg.Resume)
	if err != nil {
		return err
	}
	spec, err := loadJobSpec(ctx, cfg, evalJobTitle)
	if err != nil {
		return err
	}

	scorer, cleanup, err := newScorer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := scorer.Analyze(ctx, doc, spec)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if evalVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintEvaluation(result)
		printer.PrintEvidence(result)
	}

	if evalFeedbackType != "" {
		text, err := feedback.NewGenerator().Generate(result, evalJobTitle, feedback.FeedbackType(evalFeedbackType), feedback.Tone(evalTone))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "\n%s\n\n", text)
	}

	if evalArchive {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--archive requires a database URL (set DATABASE_URL or --db-url)")
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure database schema: %w", err)
		}
		id, err := database.SaveEvaluation(ctx, result, nil)
		if err != nil {
			return fmt.Errorf("failed to archive evaluation: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Archived evaluation: %s\n", id)
	}

	return writeArtifact(result, evalOutputFile, "schemas/evaluation_result.schema.json")
}
