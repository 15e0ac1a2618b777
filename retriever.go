// ═══════════════════════════════════════════════════════════════════════════════
// SIMILAR QUESTION RETRIEVAL
// ═══════════════════════════════════════════════════════════════════════════════
// Given a new question, find previously answered questions worded alike.
//
// ALGORITHM:
// ----------
//  1. Tokenize the query; no tokens means no possible match
//  2. Fetch a bounded snapshot (at most CandidateCap) from the corpus and
//     keep only completed, answered candidates other than ExcludeID
//  3. Index the snapshot and score only candidates sharing a token
//  4. Keep scores strictly above SimilarityThreshold
//  5. Stable sort by descending score, ties keep snapshot order
//  6. Truncate to the requested limit
//
// COST:
// -----
// This is a brute-force scan of the snapshot, O(CandidateCap) per query. The
// cap keeps the cost independent of corpus size. Corpora too large for a
// capped snapshot need a persistent TokenIndex (or an approximate
// nearest-neighbour structure) maintained next to the store instead of one
// built per query.
// ═══════════════════════════════════════════════════════════════════════════════

package qsim

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// SimilarityQuery describes one retrieval.
type SimilarityQuery struct {
	OrganizationID string
	Text           string
	ExcludeID      string // Usually the id of the question being answered
	Limit          int    // Defaults to Config.DefaultLimit when not positive
}

// FindSimilarQuestions returns the corpus questions of the organization that
// score above the similarity threshold against query.Text, best first.
//
// A query without tokens returns an empty result without calling the corpus.
// A corpus failure is returned wrapped in ErrCandidateRetrieval.
//
// Example:
//
//	results, err := engine.FindSimilarQuestions(ctx, SimilarityQuery{
//	    OrganizationID: "org-1",
//	    Text:           "Do you encrypt customer data at rest?",
//	})
func (e *Engine) FindSimilarQuestions(ctx context.Context, query SimilarityQuery) ([]SimilarQuestionResult, error) {
	tokens := e.analyzer.Tokenize(query.Text)
	if len(tokens) == 0 {
		return []SimilarQuestionResult{}, nil
	}

	candidates, err := e.fetchCandidates(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := e.rankCandidates(ctx, tokens, candidates)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("similar questions",
		slog.String("organization", query.OrganizationID),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(results)))

	return limitResults(results, e.limit(query.Limit)), nil
}

// fetchCandidates asks the corpus for a snapshot and enforces the cap, the
// excluded id and reusability itself, whatever the corpus returned.
func (e *Engine) fetchCandidates(ctx context.Context, query SimilarityQuery) ([]CandidateQuestion, error) {
	candidates, err := e.corpus.FetchCandidates(ctx, CandidateFilter{
		OrganizationID: query.OrganizationID,
		ExcludeID:      query.ExcludeID,
		Limit:          e.config.CandidateCap,
	})
	if err != nil {
		e.logger.Error("candidate retrieval failed",
			slog.String("organization", query.OrganizationID),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: organization %q: %w", ErrCandidateRetrieval, query.OrganizationID, err)
	}

	if len(candidates) > e.config.CandidateCap {
		e.logger.Warn("corpus returned more candidates than requested",
			slog.String("organization", query.OrganizationID),
			slog.Int("returned", len(candidates)),
			slog.Int("cap", e.config.CandidateCap))
		candidates = candidates[:e.config.CandidateCap]
	}

	// drafts and unanswered questions are never offered for reuse
	kept := make([]CandidateQuestion, 0, len(candidates))
	for _, c := range candidates {
		if query.ExcludeID != "" && c.ID == query.ExcludeID {
			continue
		}
		if !c.IsReusable() {
			continue
		}
		kept = append(kept, c)
	}
	if dropped := len(candidates) - len(kept); dropped > 0 {
		e.logger.Debug("candidates filtered",
			slog.String("organization", query.OrganizationID),
			slog.Int("dropped", dropped))
	}
	return kept, nil
}

// rankCandidates scores the snapshot against the query tokens and returns the
// candidates above the similarity threshold, sorted.
func (e *Engine) rankCandidates(ctx context.Context, tokens []string, candidates []CandidateQuestion) ([]SimilarQuestionResult, error) {
	// STEP 1: Tokenize every candidate once and index it by ordinal
	index := NewTokenIndex()
	sets := make([]TokenSet, len(candidates))
	for i, c := range candidates {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		candidateTokens := e.analyzer.Tokenize(c.QuestionText)
		sets[i] = NewTokenSet(candidateTokens)
		index.Add(uint32(i), candidateTokens)
	}

	// STEP 2: Score candidates sharing at least one token, in snapshot order
	querySet := NewTokenSet(tokens)
	results := make([]SimilarQuestionResult, 0)
	iter := index.Candidates(tokens).Iterator()
	for step := 0; iter.HasNext(); step++ {
		if err := checkpoint(ctx, step); err != nil {
			return nil, err
		}
		i := iter.Next()
		score := ScoreSets(querySet, sets[i])
		if float64(score) > e.config.SimilarityThreshold {
			results = append(results, SimilarQuestionResult{
				CandidateQuestion: candidates[i],
				Similarity:        score,
			})
		}
	}

	// STEP 3: Best first; equal scores keep snapshot order
	sortResultsByScore(results)
	return results, nil
}

func (e *Engine) limit(requested int) int {
	if requested > 0 {
		return requested
	}
	return e.config.DefaultLimit
}

// sortResultsByScore sorts results by descending similarity, keeping the
// relative order of equal scores.
func sortResultsByScore(results []SimilarQuestionResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
}

// limitResults returns at most maxResults items
func limitResults[T any](items []T, maxResults int) []T {
	if maxResults < len(items) {
		return items[:maxResults]
	}
	return items
}
