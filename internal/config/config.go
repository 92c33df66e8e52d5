// Package config provides environment-based configuration for the batch
// analysis.
//
// Loads an optional .env file (godotenv), then maps the environment onto
// Config via go-simpler/env struct tags. Defaults follow the historical
// variable names (POSITIVE_SEUIL, TEXT_COLUMN, ...).
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

type Config struct {
	InputFile     string `env:"INPUT_FILE" default:"data/reviews.js"`
	OutputCSV     string `env:"OUTPUT_CSV" default:"output/resultats.csv"`
	OutputSummary string `env:"OUTPUT_SUMMARY" default:"output/resume.json"`
	TextColumn    string `env:"TEXT_COLUMN" default:"review_text"`

	PositiveThreshold float64 `env:"POSITIVE_SEUIL" default:"0.1"`
	NegativeThreshold float64 `env:"NEGATIVE_SEUIL" default:"-0.1"`

	Lexicon string `env:"LEXICON" default:"fr"`
	Oracle  string `env:"POLARITY_ORACLE" default:"vader"`
	Workers int    `env:"WORKERS" default:"4"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// Load reads .env files (default ".env") if present, then the environment.
// Variables already set in the environment win over .env values.
// The result is not validated; call Validate once flags are applied.
func Load(dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("config.Load: failed to load environment variables: %w", err)
	}
	return &cfg, nil
}

// Validate checks the thresholds, the text column and the worker count.
func (c *Config) Validate() error {
	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("POSITIVE_SEUIL/NEGATIVE_SEUIL: %w", err)
	}
	if c.TextColumn == "" {
		return errors.New("TEXT_COLUMN is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Thresholds returns the classification thresholds.
func (c *Config) Thresholds() sentiment.Config {
	return sentiment.Config{
		PositiveThreshold: c.PositiveThreshold,
		NegativeThreshold: c.NegativeThreshold,
	}
}
