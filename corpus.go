package qsim

import "context"

// CandidateFilter is what the engine asks of the corpus for one retrieval.
//
// Implementations must return only candidates of OrganizationID that are
// completed and answered, must leave out ExcludeID when it is set, and must
// return at most Limit items.
type CandidateFilter struct {
	OrganizationID string
	ExcludeID      string
	Limit          int
}

// Corpus supplies the bounded snapshot of previously answered questions.
//
// A returned error means no snapshot could be produced (storage unavailable,
// unknown organization). It must not be reported as an empty slice.
type Corpus interface {
	FetchCandidates(ctx context.Context, filter CandidateFilter) ([]CandidateQuestion, error)
}

// CorpusFunc adapts an ordinary function to the Corpus interface.
type CorpusFunc func(ctx context.Context, filter CandidateFilter) ([]CandidateQuestion, error)

// FetchCandidates calls f(ctx, filter).
func (f CorpusFunc) FetchCandidates(ctx context.Context, filter CandidateFilter) ([]CandidateQuestion, error) {
	return f(ctx, filter)
}
