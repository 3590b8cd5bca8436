// Package config provides configuration loading and validation for the
// CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Weight defaults, mirrored by the similarity engine
const (
	defaultSkillWeight         = 0.4
	defaultSemanticWeight      = 0.3
	defaultExperienceWeight    = 0.2
	defaultCertificationWeight = 0.1
)

// Config represents the configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Resume string `json:"resume,omitempty"` // Path to resume text file
	Job    string `json:"job,omitempty"`    // Path to job description text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch job description from

	// Scoring weights. Zero means "use the default"; explicit weights
	// must sum to 1.0.
	SkillWeight         float64 `json:"skill_weight,omitempty"`
	SemanticWeight      float64 `json:"semantic_weight,omitempty"`
	ExperienceWeight    float64 `json:"experience_weight,omitempty"`
	CertificationWeight float64 `json:"certification_weight,omitempty"`

	// Embedding backend
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key; empty disables embeddings
	EmbeddingModel string `json:"embedding_model,omitempty"` // Gemini embedding model name

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty disables archiving

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed breakdowns
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills sensitive fields from the environment when the config
// file leaves them empty.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	for name, weight := range map[string]float64{
		"skill_weight":         c.SkillWeight,
		"semantic_weight":      c.SemanticWeight,
		"experience_weight":    c.ExperienceWeight,
		"certification_weight": c.CertificationWeight,
	} {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("config error: '%s' must be between 0.0 and 1.0", name)
		}
	}
	if sum := c.SkillWeight + c.SemanticWeight + c.ExperienceWeight + c.CertificationWeight; sum != 0 && math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("config error: scoring weights must sum to 1.0, got %v", sum)
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for
// CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Weights merge as a block: a config that sets none inherits the
	// whole default split, one that sets any keeps its own values.
	if result.SkillWeight == 0 && result.SemanticWeight == 0 && result.ExperienceWeight == 0 && result.CertificationWeight == 0 {
		result.SkillWeight = defaults.SkillWeight
		result.SemanticWeight = defaults.SemanticWeight
		result.ExperienceWeight = defaults.ExperienceWeight
		result.CertificationWeight = defaults.CertificationWeight
		if result.SkillWeight == 0 && result.SemanticWeight == 0 && result.ExperienceWeight == 0 && result.CertificationWeight == 0 {
			result.SkillWeight = defaultSkillWeight
			result.SemanticWeight = defaultSemanticWeight
			result.ExperienceWeight = defaultExperienceWeight
			result.CertificationWeight = defaultCertificationWeight
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
