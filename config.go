package qsim

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the tunable thresholds and bounds of the engine.
//
// Example config.toml:
//
//	similarity_threshold = 20.0
//	duplicate_threshold = 70.0
//	candidate_cap = 500
//	min_token_length = 3
type Config struct {
	// Retrieval keeps candidates scoring strictly above this value.
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	// Duplicate detection keeps pairs scoring at or above this value.
	DuplicateThreshold float64 `toml:"duplicate_threshold"`
	// Maximum number of corpus candidates scored per retrieval.
	CandidateCap int `toml:"candidate_cap"`
	// Tokens shorter than this many runes are dropped.
	MinTokenLength int `toml:"min_token_length"`
	// Result limit used when a query does not set one.
	DefaultLimit int `toml:"default_limit"`
	// Largest questionnaire accepted for duplicate detection; 0 disables the check.
	MaxQuestionnaireSize int `toml:"max_questionnaire_size"`
	// Concurrent retrievals when suggesting answers for a whole questionnaire.
	Parallelism int `toml:"parallelism"`

	EnableStemming bool     `toml:"enable_stemming"`
	ExtraStopwords []string `toml:"extra_stopwords"`
}

// DefaultConfig returns the standard engine configuration
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:  20,
		DuplicateThreshold:   70,
		CandidateCap:         500,
		MinTokenLength:       3,
		DefaultLimit:         10,
		MaxQuestionnaireSize: 1000,
		Parallelism:          4,
	}
}

// Validate checks that every option is within range.
func (c Config) Validate() error {
	switch {
	case c.SimilarityThreshold < 0 || c.SimilarityThreshold > MaxScore:
		return fmt.Errorf("%w: similarity_threshold must be within [0, %d], got %v", ErrInvalidConfig, MaxScore, c.SimilarityThreshold)
	case c.DuplicateThreshold <= 0 || c.DuplicateThreshold > MaxScore:
		return fmt.Errorf("%w: duplicate_threshold must be within (0, %d], got %v", ErrInvalidConfig, MaxScore, c.DuplicateThreshold)
	case c.CandidateCap < 1:
		return fmt.Errorf("%w: candidate_cap must be positive, got %d", ErrInvalidConfig, c.CandidateCap)
	case c.MinTokenLength < 1:
		return fmt.Errorf("%w: min_token_length must be positive, got %d", ErrInvalidConfig, c.MinTokenLength)
	case c.DefaultLimit < 1:
		return fmt.Errorf("%w: default_limit must be positive, got %d", ErrInvalidConfig, c.DefaultLimit)
	case c.MaxQuestionnaireSize < 0:
		return fmt.Errorf("%w: max_questionnaire_size must not be negative, got %d", ErrInvalidConfig, c.MaxQuestionnaireSize)
	case c.Parallelism < 1:
		return fmt.Errorf("%w: parallelism must be positive, got %d", ErrInvalidConfig, c.Parallelism)
	}
	return nil
}

// AnalyzerConfig returns the tokenizer settings carried by c.
func (c Config) AnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MinTokenLength: c.MinTokenLength,
		EnableStemming: c.EnableStemming,
		ExtraStopwords: c.ExtraStopwords,
	}
}

// LoadConfig reads a TOML file over the defaults, so keys absent from the file
// keep their default values. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
