package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/juparave/commitguard/internal/domain"
	"github.com/juparave/commitguard/internal/util"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Repo          string       `yaml:"repo"`
	Commits       int          `yaml:"commits"`
	MinConfidence string       `yaml:"min_confidence"` // low, medium, high
	Output        string       `yaml:"output"`
	Format        string       `yaml:"format"` // json, sarif
	Exclude       []string     `yaml:"exclude"`
	Workers       int          `yaml:"workers"`
	Review        ReviewConfig `yaml:"review"`
	Verbose       bool         `yaml:"-"` // Set via CLI only
}

// ReviewConfig holds LLM classifier settings
type ReviewConfig struct {
	Provider string `yaml:"provider"` // openai, compat_openai, googleai, none
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // Custom API endpoint (for Zhipu AI, etc.)
}

// Report formats
const (
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// DefaultOpenAIModel is used when neither config nor OPENAI_MODEL names one
const DefaultOpenAIModel = "gpt-4o-mini"

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Commits:       3,
		MinConfidence: string(domain.ConfidenceMedium),
		Output:        "report.json",
		Format:        FormatJSON,
		Workers:       1,
		Review: ReviewConfig{
			Provider: "openai",
		},
	}
}

// Load reads configuration from file and merges with defaults. A .env file
// in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	explicit := path != ""
	// Determine config file path
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Use defaults if can't find home
		}
		path = filepath.Join(homeDir, ".config", "commitguard", "config.yaml")
	}

	path = util.ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Repo = util.ExpandPath(cfg.Repo)
	cfg.Output = util.ExpandPath(cfg.Output)

	return cfg, nil
}

// Validate checks if the configuration is valid and fills in API keys and
// models from the environment
func (c *Config) Validate() error {
	if c.Repo == "" {
		return fmt.Errorf("repo is required")
	}

	if c.Commits <= 0 {
		return fmt.Errorf("commits must be greater than 0")
	}

	if _, err := domain.ParseConfidence(c.MinConfidence); err != nil {
		return fmt.Errorf("min_confidence: %w", err)
	}

	switch c.Format {
	case FormatJSON, FormatSARIF:
	default:
		return fmt.Errorf("unknown format: %s", c.Format)
	}

	if c.Workers <= 0 {
		c.Workers = 1
	}

	if c.Review.Provider == "" {
		c.Review.Provider = "openai"
	}

	switch c.Review.Provider {
	case "openai", "compat_openai":
		if c.Review.APIKey == "" {
			c.Review.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if c.Review.Model == "" {
			c.Review.Model = os.Getenv("OPENAI_MODEL")
		}
		if c.Review.Model == "" {
			c.Review.Model = DefaultOpenAIModel
		}
	case "googleai":
		if c.Review.APIKey == "" {
			// Check environment variable
			if key := os.Getenv("GEMINI_API_KEY"); key != "" {
				c.Review.APIKey = key
			} else if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
				c.Review.APIKey = key
			}
		}
	case "none":
	default:
		return fmt.Errorf("unknown review provider: %s", c.Review.Provider)
	}

	return nil
}

// Threshold returns the parsed min_confidence, defaulting to medium
func (c *Config) Threshold() domain.Confidence {
	conf, err := domain.ParseConfidence(c.MinConfidence)
	if err != nil {
		return domain.ConfidenceMedium
	}
	return conf
}
