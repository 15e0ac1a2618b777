package qsim

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// SuggestAnswers returns reusable answers for query, best match first.
//
// Results come from FindSimilarQuestions and are filtered again on having an
// answer: the corpus is expected to return only answered questions, but a
// suggestion without an answer is never produced even if it does not.
func (e *Engine) SuggestAnswers(ctx context.Context, query SimilarityQuery) ([]AnswerSuggestion, error) {
	results, err := e.FindSimilarQuestions(ctx, query)
	if err != nil {
		return nil, err
	}
	return toSuggestions(results), nil
}

func toSuggestions(results []SimilarQuestionResult) []AnswerSuggestion {
	suggestions := make([]AnswerSuggestion, 0, len(results))
	for _, r := range results {
		if !r.HasAnswer() {
			continue
		}
		suggestions = append(suggestions, AnswerSuggestion{
			Question:   r.QuestionText,
			Answer:     r.AnswerText,
			Source:     r.Source.String(),
			Similarity: r.Similarity,
		})
	}
	return suggestions
}

// SuggestAnswersForQuestionnaire suggests answers for every question of a
// questionnaire, keyed by question id. Each question is excluded from its own
// results. Question ids must be unique (ErrDuplicateQuestionID). Up to
// Config.Parallelism retrievals run at once; the first failure cancels the
// rest and is returned.
func (e *Engine) SuggestAnswersForQuestionnaire(ctx context.Context, organizationID string, questions []Question, limit int) (map[string][]AnswerSuggestion, error) {
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateQuestionID, q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	suggestions := make([][]AnswerSuggestion, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Parallelism)
	for i, q := range questions {
		g.Go(func() error {
			s, err := e.SuggestAnswers(gctx, SimilarityQuery{
				OrganizationID: organizationID,
				Text:           q.Text,
				ExcludeID:      q.ID,
				Limit:          limit,
			})
			if err != nil {
				return fmt.Errorf("question %q: %w", q.ID, err)
			}
			suggestions[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string][]AnswerSuggestion, len(questions))
	for i, q := range questions {
		byID[q.ID] = suggestions[i]
	}

	e.logger.Debug("questionnaire suggestions",
		slog.String("organization", organizationID),
		slog.Int("questions", len(questions)))
	return byID, nil
}
