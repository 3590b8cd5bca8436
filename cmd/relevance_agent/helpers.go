package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/vivekkumar2004/resume-relevance/internal/config"
	"github.com/vivekkumar2004/resume-relevance/internal/extraction"
	"github.com/vivekkumar2004/resume-relevance/internal/ingestion"
	"github.com/vivekkumar2004/resume-relevance/internal/keywords"
	"github.com/vivekkumar2004/resume-relevance/internal/schemas"
	"github.com/vivekkumar2004/resume-relevance/internal/scoring"
	"github.com/vivekkumar2004/resume-relevance/internal/similarity"
	"github.com/vivekkumar2004/resume-relevance/internal/types"
)

// resolveConfig loads an optional config file, overlays flag values on
// top of it, fills secrets from the environment and validates the
// result. Flag values always win over file values.
func resolveConfig(configPath string, flags config.Config) (config.Config, error) {
	cfg := flags
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = flags.MergeWithDefaults(*fileCfg)
	} else {
		cfg = flags.MergeWithDefaults(config.Config{})
	}
	cfg.FromEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// weightsFrom maps config weight fields onto engine weights
func weightsFrom(cfg config.Config) similarity.Weights {
	return similarity.Weights{
		SkillMatch:    cfg.SkillWeight,
		Semantic:      cfg.SemanticWeight,
		Experience:    cfg.ExperienceWeight,
		Certification: cfg.CertificationWeight,
	}
}

// newScorer builds a scorer from config. Without an API key the
// semantic component falls back to lexical overlap.
func newScorer(ctx context.Context, cfg config.Config) (*scoring.Scorer, func(), error) {
	var embedder similarity.Embedder
	cleanup := func() {}

	if cfg.APIKey != "" {
		gemini, err := similarity.NewGeminiEmbedder(ctx, cfg.APIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to create embedding client: %w", err)
		}
		embedder = gemini
		cleanup = func() { _ = gemini.Close() }
	} else {
		fmt.Fprintf(os.Stderr, "Warning: GEMINI_API_KEY not set; semantic scoring uses lexical overlap\n")
	}

	engine, err := similarity.NewEngine(embedder, weightsFrom(cfg))
	if err != nil {
		return nil, cleanup, err
	}
	return scoring.NewScorer(engine), cleanup, nil
}

// loadResume reads and parses one resume text file
func loadResume(path string) (*types.Document, error) {
	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	return extraction.Parse(path, text)
}

// loadJobSpec builds an enriched JobSpec from a job text file or a
// job-posting URL.
func loadJobSpec(ctx context.Context, cfg config.Config, title string) (*types.JobSpec, error) {
	var text, id string
	switch {
	case cfg.Job != "":
		loaded, _, err := ingestion.IngestFromFile(cfg.Job)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		text, id = loaded, cfg.Job
	case cfg.JobURL != "":
		loaded, _, err := ingestion.IngestFromURL(ctx, cfg.JobURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch job posting: %w", err)
		}
		text, id = loaded, cfg.JobURL
	default:
		return nil, fmt.Errorf("either --job or --job-url is required")
	}

	spec := extraction.ExtractJobSpec(id, title, text)
	keywords.Enrich(spec)
	return spec, nil
}

// writeArtifact marshals v to indented JSON, writes it to outPath (or
// stdout when outPath is empty) and, when a schema is named and
// resolvable, validates the artifact against it.
func writeArtifact(v any, outPath, schemaFile string) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if outPath == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(outPath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if schemaFile != "" {
		if schemaPath := schemas.ResolveSchemaPath(schemaFile); schemaPath != "" {
			if err := schemas.ValidateJSON(schemaPath, outPath); err != nil {
				var validationErr *schemas.ValidationError
				if errors.As(err, &validationErr) {
					return fmt.Errorf("generated JSON does not validate against schema: %w", err)
				}
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
			}
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", outPath)
	return nil
}
