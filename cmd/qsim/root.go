package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
	"github.com/mewitt74/gigachad-grc-sub014/corpus"
	"github.com/mewitt74/gigachad-grc-sub014/internal/logger"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultLogLevel is used when --log-level is not given.
	DefaultLogLevel = "info"

	// cacheSize and cacheTTL bound the candidate cache of one invocation.
	cacheSize = 64
	cacheTTL  = 5 * time.Minute
)

var errNoCorpus = errors.New("no corpus: pass --corpus or --db")

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
	corpusPath string
	dbPath     string
}

// env is what a command needs once the persistent flags are resolved.
type env struct {
	config qsim.Config
	logger *slog.Logger
	out    io.Writer
}

// =============================================================================
// Root Command
// =============================================================================

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "qsim",
		Short: "Question similarity and deduplication",
		Long: `qsim compares compliance questionnaire questions.

It finds previously answered questions worded like a new one, suggests their
answers, and flags near-duplicates inside a single questionnaire.

Examples:
  qsim similar --corpus corpus.yaml --org org-1 "Do you encrypt data at rest?"
  qsim suggest --db questions.db --org org-1 "Is MFA enforced?"
  qsim duplicates questionnaire.yaml
  qsim import --db questions.db corpus.yaml
  qsim snapshot corpus.yaml corpus.msgpack`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pflags := root.PersistentFlags()
	pflags.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	pflags.StringVar(&opts.logLevel, "log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	pflags.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json, logfmt)")
	pflags.StringVar(&opts.corpusPath, "corpus", "", "corpus fixture (.yaml, .json) or snapshot (.msgpack)")
	pflags.StringVar(&opts.dbPath, "db", "", "SQLite question database")

	root.AddCommand(
		newSimilarCmd(opts),
		newSuggestCmd(opts),
		newDuplicatesCmd(opts),
		newImportCmd(opts),
		newSnapshotCmd(opts),
	)
	return root
}

// setup resolves configuration and logging.
func (o *options) setup(cmd *cobra.Command) (*env, error) {
	log, err := logger.NewWithFormat(o.logLevel, o.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	config, err := qsim.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	log.Debug("configuration loaded",
		slog.String("path", o.configPath),
		slog.Float64("similarity_threshold", config.SimilarityThreshold),
		slog.Float64("duplicate_threshold", config.DuplicateThreshold),
		slog.Int("candidate_cap", config.CandidateCap))

	return &env{config: config, logger: log, out: cmd.OutOrStdout()}, nil
}

// openCorpus opens the SQLite database when --db is set, otherwise the corpus
// file. The returned close function is never nil.
func (o *options) openCorpus(log *slog.Logger) (qsim.Corpus, func() error, error) {
	noop := func() error { return nil }

	switch {
	case o.dbPath != "":
		store, err := corpus.OpenSQLStore(o.dbPath)
		if err != nil {
			return nil, noop, err
		}
		log.Debug("opened question database", slog.String("path", o.dbPath))
		return corpus.NewCached(store, cacheSize, cacheTTL), store.Close, nil
	case o.corpusPath != "":
		mem, err := corpus.Open(o.corpusPath)
		if err != nil {
			return nil, noop, err
		}
		log.Debug("loaded corpus",
			slog.String("path", o.corpusPath),
			slog.Int("organizations", len(mem.Organizations())))
		return mem, noop, nil
	default:
		return nil, noop, errNoCorpus
	}
}

// newEngine opens the corpus and builds an engine over it.
func (o *options) newEngine(e *env) (*qsim.Engine, func() error, error) {
	c, closeFn, err := o.openCorpus(e.logger)
	if err != nil {
		return nil, closeFn, err
	}
	engine, err := qsim.NewEngine(c, qsim.WithConfig(e.config), qsim.WithLogger(e.logger))
	if err != nil {
		closeFn()
		return nil, func() error { return nil }, err
	}
	return engine, closeFn, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
