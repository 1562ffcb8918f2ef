// Package config holds the settings of a scrape run
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gnzdotmx/ytdatascraper/internal/export"
	"github.com/gnzdotmx/ytdatascraper/internal/scraper"
	"github.com/gnzdotmx/ytdatascraper/internal/utils"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv
const (
	EnvAPIKey           = "YOUTUBE_API_KEY"
	EnvOAuthCredentials = "YOUTUBE_OAUTH_CREDENTIALS"
)

// Defaults
const (
	DefaultOutputPath     = "youtube_data.csv"
	DefaultTargetCount    = 500
	DefaultCaptionWorkers = 1
)

// Config is everything a run needs. Precedence: flags > YAML file > environment > defaults.
type Config struct {
	APIKey           string   `yaml:"apiKey"`
	OAuthCredentials string   `yaml:"oauthCredentials"` // OAuth client secrets JSON, enables caption downloads
	TokenDir         string   `yaml:"tokenDir"`
	OutputPath       string   `yaml:"outputPath"`
	Query            string   `yaml:"query"`
	TargetCount      int      `yaml:"targetCount"`
	CaptionWorkers   int      `yaml:"captionWorkers"`
	Columns          []string `yaml:"columns"`
}

// Default returns a Config with every default filled in
func Default() *Config {
	return &Config{
		TokenDir:       utils.DefaultTokenDir,
		OutputPath:     DefaultOutputPath,
		TargetCount:    DefaultTargetCount,
		CaptionWorkers: DefaultCaptionWorkers,
		Columns:        append([]string(nil), scraper.DefaultColumns...),
	}
}

// LoadFile reads a YAML file over the defaults. Keys missing from the file keep their default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = append([]string(nil), scraper.DefaultColumns...)
	}

	return cfg, nil
}

// ApplyEnv fills credentials from the environment when the file left them empty
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.OAuthCredentials == "" {
		c.OAuthCredentials = os.Getenv(EnvOAuthCredentials)
	}
}

// UsesOAuth reports whether requests are authorized with OAuth instead of the API key
func (c *Config) UsesOAuth() bool {
	return c.OAuthCredentials != ""
}

// Validate checks everything except the query, which may still be prompted for
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" && strings.TrimSpace(c.OAuthCredentials) == "" {
		return &utils.ValidationError{
			Field:   "apiKey",
			Message: fmt.Sprintf("an API key (%s) or OAuth credentials file (%s) is required", EnvAPIKey, EnvOAuthCredentials),
		}
	}

	if c.OAuthCredentials != "" {
		path, err := utils.ExpandHomeDir(c.OAuthCredentials)
		if err != nil {
			return &utils.ValidationError{Field: "oauthCredentials", Message: "cannot expand path", Err: err}
		}
		if _, err := os.Stat(path); err != nil {
			return &utils.ValidationError{Field: "oauthCredentials", Message: "credentials file is not readable", Err: err}
		}
	}

	if c.TargetCount < 1 {
		return &utils.ValidationError{
			Field:   "targetCount",
			Message: fmt.Sprintf("must be at least 1, got %d", c.TargetCount),
		}
	}

	if err := utils.ValidateRange("captionWorkers", c.CaptionWorkers, 1, scraper.MaxCaptionWorkers); err != nil {
		return err
	}

	if err := utils.ValidateOutputFile(c.OutputPath, export.AllowedExtensions); err != nil {
		return err
	}

	return c.validateColumns()
}

func (c *Config) validateColumns() error {
	if len(c.Columns) == 0 {
		return &utils.ValidationError{Field: "columns", Message: "at least one column is required"}
	}
	seen := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		if !scraper.IsColumn(col) {
			return &utils.ValidationError{
				Field:   "columns",
				Message: fmt.Sprintf("unknown column %q, expected one of %v", col, scraper.DefaultColumns),
			}
		}
		if seen[col] {
			return &utils.ValidationError{Field: "columns", Message: fmt.Sprintf("duplicate column %q", col)}
		}
		seen[col] = true
	}
	return nil
}

// ValidateQuery checks the query once it is known
func (c *Config) ValidateQuery() error {
	if strings.TrimSpace(c.Query) == "" {
		return &utils.ValidationError{Field: "query", Message: "search query is required"}
	}
	return nil
}
