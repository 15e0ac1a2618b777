package qsim

import "errors"

// Errors are package-level variables so callers can test them with errors.Is.
var (
	// ErrCandidateRetrieval wraps every failure of the corpus to produce a
	// candidate snapshot. It is never converted into an empty result.
	ErrCandidateRetrieval = errors.New("candidate retrieval failed")

	ErrNilCorpus             = errors.New("corpus must not be nil")
	ErrQuestionnaireTooLarge = errors.New("questionnaire exceeds maximum size")
	ErrInvalidConfig         = errors.New("invalid configuration")
	ErrDuplicateQuestionID   = errors.New("duplicate question id")
)
