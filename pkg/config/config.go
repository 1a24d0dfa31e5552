// Package config loads pdf-dates settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvDirectory = "PDF_DATES_DIRECTORY"
	EnvOutput    = "PDF_DATES_OUTPUT"
	EnvTimezone  = "PDF_DATES_TIMEZONE"
)

// Config holds the settings for one run.
type Config struct {
	// Directory is scanned for PDF files.
	Directory string `yaml:"directory"`

	// Output is the CSV destination; empty disables CSV output.
	Output string `yaml:"output"`

	// MaxDepth limits recursion: 0 scans only Directory, -1 is unlimited.
	MaxDepth int `yaml:"max_depth"`

	Extensions []string `yaml:"extensions"`

	// Timezone names the location creation dates are interpreted in.
	Timezone string `yaml:"timezone"`

	Verbose bool `yaml:"verbose"`

	location *time.Location
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Directory:  ".",
		MaxDepth:   0,
		Extensions: []string{".pdf"},
		Timezone:   "UTC",
	}
}

// Load reads path, applies environment overrides and validates the result.
// An empty path skips the file and starts from DefaultConfig.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Read is Load without validation, for callers that layer further overrides
// (command-line flags) before calling Validate.
func Read(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ApplyEnvironment()
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file in the working directory, if
// one exists. Variables already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// ApplyEnvironment overrides settings from PDF_DATES_* variables.
func (c *Config) ApplyEnvironment() {
	if v := os.Getenv(EnvDirectory); v != "" {
		c.Directory = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
}

// Validate checks cfg and resolves its timezone.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Directory) == "" {
		return errors.New("directory: must not be empty")
	}
	if cfg.MaxDepth < -1 {
		return fmt.Errorf("max_depth: must be -1 or greater, got %d", cfg.MaxDepth)
	}
	if len(cfg.Extensions) == 0 {
		return errors.New("extensions: at least one extension is required")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	cfg.location = loc
	return nil
}

// Location returns the resolved timezone, UTC before Validate succeeds.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}
