// ═══════════════════════════════════════════════════════════════════════════════
// DUPLICATE DETECTION WITHIN ONE QUESTIONNAIRE
// ═══════════════════════════════════════════════════════════════════════════════
// A reviewer should not answer the same question twice under different
// wording. Every question is compared with every other question of the same
// questionnaire; a pair is a duplicate when its score reaches
// DuplicateThreshold (default 70).
//
// The duplicate bar is deliberately higher than the retrieval threshold:
// "answer these once" is a stronger statement than "these look related".
//
// SCALING LIMIT:
// --------------
// All ordered pairs are considered: O(n²) comparisons for n questions. A
// single questionnaire holds tens to a few hundred questions, which keeps
// this cheap. Config.MaxQuestionnaireSize rejects larger inputs rather than
// letting the quadratic cost grow unchecked. Pairs that share no token are
// skipped through the TokenIndex; they score 0 and can never qualify.
// ═══════════════════════════════════════════════════════════════════════════════

package qsim

import (
	"context"
	"fmt"
	"sort"
)

// FindDuplicatesInQuestionnaire returns one cluster per question that has at
// least one duplicate among questions, in input order. Questions without
// duplicates are left out entirely.
func (e *Engine) FindDuplicatesInQuestionnaire(ctx context.Context, questions []Question) ([]DuplicateCluster, error) {
	return findDuplicates(ctx, e.analyzer, e.config, questions)
}

// FindDuplicates runs duplicate detection without a corpus, using config for
// the threshold, size limit and analyzer settings.
func FindDuplicates(ctx context.Context, questions []Question, config Config) ([]DuplicateCluster, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return findDuplicates(ctx, NewAnalyzer(config.AnalyzerConfig()), config, questions)
}

func findDuplicates(ctx context.Context, analyzer *Analyzer, config Config, questions []Question) ([]DuplicateCluster, error) {
	if limit := config.MaxQuestionnaireSize; limit > 0 && len(questions) > limit {
		return nil, fmt.Errorf("%w: %d questions, limit is %d", ErrQuestionnaireTooLarge, len(questions), limit)
	}

	clusters := make([]DuplicateCluster, 0)
	if len(questions) < 2 {
		return clusters, nil
	}

	// STEP 1: Tokenize each question once
	index := NewTokenIndex()
	tokens := make([][]string, len(questions))
	sets := make([]TokenSet, len(questions))
	for i, q := range questions {
		tokens[i] = analyzer.Tokenize(q.Text)
		sets[i] = NewTokenSet(tokens[i])
		index.Add(uint32(i), tokens[i])
	}

	// STEP 2: Compare each question with every other question sharing a token
	step := 0
	for i := range questions {
		var matches []DuplicateMatch

		iter := index.Candidates(tokens[i]).Iterator()
		for iter.HasNext() {
			j := int(iter.Next())
			if j == i {
				continue
			}
			if err := checkpoint(ctx, step); err != nil {
				return nil, err
			}
			step++

			score := ScoreSets(sets[i], sets[j])
			if float64(score) >= config.DuplicateThreshold {
				matches = append(matches, DuplicateMatch{
					ID:           questions[j].ID,
					QuestionText: questions[j].Text,
					Similarity:   score,
				})
			}
		}

		if len(matches) == 0 {
			continue
		}

		// STEP 3: Best partner first, ties in questionnaire order
		sort.SliceStable(matches, func(a, b int) bool {
			return matches[a].Similarity > matches[b].Similarity
		})
		clusters = append(clusters, DuplicateCluster{
			QuestionID: questions[i].ID,
			Duplicates: matches,
		})
	}

	return clusters, nil
}
