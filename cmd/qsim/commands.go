package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
	"github.com/mewitt74/gigachad-grc-sub014/corpus"
)

// queryFlags are the flags of commands that query one organization.
type queryFlags struct {
	org     string
	exclude string
	limit   int
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.org, "org", "", "organization id (required)")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "question id to leave out of the results")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum results (default from configuration)")
	_ = cmd.MarkFlagRequired("org")
}

func (f *queryFlags) query(text string) qsim.SimilarityQuery {
	return qsim.SimilarityQuery{
		OrganizationID: f.org,
		Text:           text,
		ExcludeID:      f.exclude,
		Limit:          f.limit,
	}
}

// similarOutput is one query and its ranked matches.
type similarOutput struct {
	Query   string                       `json:"query"`
	Results []qsim.SimilarQuestionResult `json:"results"`
}

// =============================================================================
// similar
// =============================================================================

func newSimilarCmd(opts *options) *cobra.Command {
	flags := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "similar <text> [text...]",
		Short: "Find previously answered questions similar to the given text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			engine, closeFn, err := opts.newEngine(e)
			defer closeFn()
			if err != nil {
				return err
			}

			outputs := make([]similarOutput, 0, len(args))
			for _, text := range args {
				results, err := engine.FindSimilarQuestions(cmd.Context(), flags.query(text))
				if err != nil {
					return err
				}
				outputs = append(outputs, similarOutput{Query: text, Results: results})
			}
			return writeJSON(e.out, outputs)
		},
	}
	flags.register(cmd)
	return cmd
}

// =============================================================================
// suggest
// =============================================================================

func newSuggestCmd(opts *options) *cobra.Command {
	flags := &queryFlags{}
	var questionnairePath string

	cmd := &cobra.Command{
		Use:   "suggest [text]",
		Short: "Suggest answers from similar answered questions",
		Long: `Suggest answers for one question, or for every question of a
questionnaire file with --questionnaire.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (questionnairePath != "") {
				return fmt.Errorf("pass either a question text or --questionnaire")
			}

			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			engine, closeFn, err := opts.newEngine(e)
			defer closeFn()
			if err != nil {
				return err
			}

			if questionnairePath != "" {
				questions, err := corpus.LoadQuestionnaire(questionnairePath)
				if err != nil {
					return err
				}
				suggestions, err := engine.SuggestAnswersForQuestionnaire(cmd.Context(), flags.org, questions, flags.limit)
				if err != nil {
					return err
				}
				return writeJSON(e.out, suggestions)
			}

			suggestions, err := engine.SuggestAnswers(cmd.Context(), flags.query(args[0]))
			if err != nil {
				return err
			}
			return writeJSON(e.out, suggestions)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&questionnairePath, "questionnaire", "", "questionnaire file (.yaml, .json)")
	return cmd
}

// =============================================================================
// duplicates
// =============================================================================

func newDuplicatesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicates <questionnaire>",
		Short: "List near-duplicate questions inside a questionnaire",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			questions, err := corpus.LoadQuestionnaire(args[0])
			if err != nil {
				return err
			}
			clusters, err := qsim.FindDuplicates(cmd.Context(), questions, e.config)
			if err != nil {
				return err
			}
			e.logger.Info("duplicate scan finished",
				slog.Int("questions", len(questions)),
				slog.Int("clusters", len(clusters)))
			return writeJSON(e.out, clusters)
		},
	}
}

// =============================================================================
// import
// =============================================================================

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <corpus-file>",
		Short: "Load a corpus fixture or snapshot into the SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dbPath == "" {
				return fmt.Errorf("import needs --db")
			}
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			mem, err := corpus.Open(args[0])
			if err != nil {
				return err
			}
			store, err := corpus.OpenSQLStore(opts.dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Import(cmd.Context(), mem)
			if err != nil {
				return err
			}
			e.logger.Info("import finished",
				slog.String("db", opts.dbPath),
				slog.Int("organizations", len(mem.Organizations())),
				slog.Int("questions", n))
			return writeJSON(e.out, map[string]int{"imported": n})
		},
	}
}

// =============================================================================
// snapshot
// =============================================================================

func newSnapshotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <corpus-file> <out.msgpack>",
		Short: "Convert a corpus fixture into a msgpack snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			mem, err := corpus.Open(args[0])
			if err != nil {
				return err
			}
			if err := mem.WriteSnapshot(args[1]); err != nil {
				return err
			}
			e.logger.Info("snapshot written",
				slog.String("path", args[1]),
				slog.Int("organizations", len(mem.Organizations())))
			return nil
		},
	}
}
