package qsim

import (
	"context"
	"fmt"
	"log/slog"
)

// cancelCheckInterval is how many comparisons run between context checks.
const cancelCheckInterval = 64

// Engine answers similarity, duplicate and suggestion queries over a corpus.
//
// An Engine holds no mutable state: its configuration, analyzer and corpus
// are fixed at construction, so one Engine may serve concurrent callers from
// any number of organizations.
type Engine struct {
	corpus   Corpus
	config   Config
	analyzer *Analyzer
	logger   *slog.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(config Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithLogger sets the logger used for retrieval diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine reading candidates from corpus.
func NewEngine(corpus Corpus, opts ...Option) (*Engine, error) {
	if corpus == nil {
		return nil, ErrNilCorpus
	}

	e := &Engine{
		corpus: corpus,
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	e.analyzer = NewAnalyzer(e.config.AnalyzerConfig())
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.config
}

// Tokenize analyzes text with the engine's analyzer settings.
func (e *Engine) Tokenize(text string) []string {
	return e.analyzer.Tokenize(text)
}

// checkpoint returns the context error every cancelCheckInterval steps.
func checkpoint(ctx context.Context, step int) error {
	if step%cancelCheckInterval != 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scoring interrupted: %w", err)
	}
	return nil
}
