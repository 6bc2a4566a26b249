// Package config holds the explicit configuration value handed to the
// refresher. Values come from defaults, then the environment, then an
// optional YAML file, then command-line flags, each layer overriding the
// previous one.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/muhammadolammi/resumerefresher/internal/keywords"
	"github.com/muhammadolammi/resumerefresher/internal/section"
)

// Environment variable names, kept from the original deployment.
const (
	EnvResumePath = "RESUME_PATH"
	EnvBackupDir  = "BACKUP_DIR"
)

// Config is everything a single refresh run needs.
type Config struct {
	// ResumePath is the document to refresh.
	ResumePath string `yaml:"resume_path"`
	// BackupDir receives a snapshot of the document before each write.
	// Empty disables backups.
	BackupDir string `yaml:"backup_dir"`
	// BackupKeep caps how many snapshots are retained. Zero or negative
	// disables pruning.
	BackupKeep int `yaml:"backup_keep"`
	// SourcePath optionally points at a local file whose text replaces
	// the résumé body as keyword input.
	SourcePath string `yaml:"source_path"`

	// Keyword extraction tuning.
	MinKeywordLength int      `yaml:"min_keyword_length"`
	KeywordLimit     int      `yaml:"keyword_limit"`
	StopWords        []string `yaml:"stop_words"`

	// Headings are the section marker labels.
	Headings []string `yaml:"headings"`

	// DryRun computes the rewrite but skips backup and save.
	DryRun bool `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ResumePath:       "resume.docx",
		BackupDir:        "resume_backups",
		BackupKeep:       10,
		MinKeywordLength: keywords.DefaultMinLength,
		KeywordLimit:     keywords.DefaultLimit,
		StopWords:        keywords.DefaultStopWords(),
		Headings:         section.DefaultHeadings(),
	}
}

// FromEnv overlays environment variables onto c.
func (c *Config) FromEnv() {
	if v := os.Getenv(EnvResumePath); v != "" {
		c.ResumePath = v
	}
	if v := os.Getenv(EnvBackupDir); v != "" {
		c.BackupDir = v
	}
}

// ApplyFile overlays a YAML config file onto c. Fields absent from the
// file keep their current values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate reports configuration that cannot produce a sensible run.
func (c Config) Validate() error {
	if c.ResumePath == "" {
		return fmt.Errorf("empty resume path")
	}
	if c.MinKeywordLength < 1 {
		return fmt.Errorf("min keyword length must be at least 1, got %d", c.MinKeywordLength)
	}
	if c.KeywordLimit < 1 {
		return fmt.Errorf("keyword limit must be at least 1, got %d", c.KeywordLimit)
	}
	return nil
}

// KeywordOptions builds the extraction options for this configuration.
func (c Config) KeywordOptions() keywords.Options {
	return keywords.Options{
		MinLength: c.MinKeywordLength,
		StopWords: c.StopWords,
		Limit:     c.KeywordLimit,
	}
}
