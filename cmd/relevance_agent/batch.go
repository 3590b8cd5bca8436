package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vivekkumar2004/resume-relevance/internal/config"
	"github.com/vivekkumar2004/resume-relevance/internal/db"
	"github.com/vivekkumar2004/resume-relevance/internal/observability"
	"github.com/vivekkumar2004/resume-relevance/internal/scoring"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score several resumes against one job and rank the candidates",
	Long:  "Evaluate several resume files against one job description. Each resume is scored independently; a failing resume becomes a structured per-item error without aborting the batch.",
	RunE:  runBatch,
}

var (
	batchConfigFile  string
	batchResumeFiles []string
	batchJobFile     string
	batchJobURL      string
	batchJobTitle    string
	batchOutputFile  string
	batchAPIKey      string
	batchDatabaseURL string
	batchArchive     bool
	batchVerbose     bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchConfigFile, "config", "c", "", "Path to JSON config file")
	batchCmd.Flags().StringSliceVarP(&batchResumeFiles, "resume", "r", nil, "Path to a resume text file (repeatable, required)")
	batchCmd.Flags().StringVarP(&batchJobFile, "job", "j", "", "Path to job description text file")
	batchCmd.Flags().StringVar(&batchJobURL, "job-url", "", "URL of a job posting to fetch")
	batchCmd.Flags().StringVar(&batchJobTitle, "title", "", "Job title used in output")
	batchCmd.Flags().StringVarP(&batchOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	batchCmd.Flags().StringVar(&batchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	batchCmd.Flags().StringVar(&batchDatabaseURL, "db-url", "", "Database URL for archiving (overrides DATABASE_URL env var)")
	batchCmd.Flags().BoolVar(&batchArchive, "archive", false, "Store the batch run in the database")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print the ranked candidate table")

	rootCmd.AddCommand(batchCmd)
}

// batchOutput is the artifact written by the batch command
type batchOutput struct {
	Batch      *types.BatchResult `json:"batch"`
	Comparison *types.Comparison  `json:"comparison"`
}

func runBatch(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(batchConfigFile, config.Config{
		Job:         batchJobFile,
		JobURL:      batchJobURL,
		APIKey:      batchAPIKey,
		DatabaseURL: batchDatabaseURL,
	})
	if err != nil {
		return err
	}
	if len(batchResumeFiles) == 0 {
		return fmt.Errorf("at least one --resume is required")
	}

	ctx := context.Background()

	spec, err := loadJobSpec(ctx, cfg, batchJobTitle)
	if err != nil {
		return err
	}

	// Unreadable or unparsable files still occupy a slot so the batch
	// reports them as per-item failures.
	docs := make([]*types.Document, len(batchResumeFiles))
	for i, path := range batchResumeFiles {
		doc, err := loadResume(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			docs[i] = &types.Document{ID: path}
			continue
		}
		docs[i] = doc
	}

	scorer, cleanup, err := newScorer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	batch := scorer.EvaluateBatch(ctx, docs, spec)
	comparison := scoring.CompareCandidates(batch)

	if batchVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintComparison(comparison)
	}

	if batchArchive {
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
		runID, err := database.ArchiveBatch(ctx, spec.ID, batch)
		if err != nil {
			return fmt.Errorf("failed to archive batch run: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Archived batch run: %s\n", runID)
	}

	return writeArtifact(batchOutput{Batch: batch, Comparison: comparison}, batchOutputFile, "")
}
