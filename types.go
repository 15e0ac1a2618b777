package qsim

import "strings"

// QuestionStatus is the lifecycle state of a question as recorded by the
// corpus. The engine only reads it as a filter predicate.
type QuestionStatus string

const (
	StatusDraft     QuestionStatus = "draft"
	StatusInReview  QuestionStatus = "in_review"
	StatusCompleted QuestionStatus = "completed"
)

// Source describes where a previously answered question came from: the
// questionnaire it belonged to and who asked for it.
type Source struct {
	Title     string `json:"title" yaml:"title" msgpack:"title"`
	Requester string `json:"requester,omitempty" yaml:"requester" msgpack:"requester"`
}

// String renders the provenance shown next to a suggested answer.
//
//	Source{"Vendor Review 2024", "Acme"} → "Vendor Review 2024 (Acme)"
func (s Source) String() string {
	title := strings.TrimSpace(s.Title)
	requester := strings.TrimSpace(s.Requester)
	switch {
	case title != "" && requester != "":
		return title + " (" + requester + ")"
	case title != "":
		return title
	case requester != "":
		return requester
	default:
		return "Unknown source"
	}
}

// CandidateQuestion is a question held by the corpus. It is read-only to the
// engine.
type CandidateQuestion struct {
	ID           string         `json:"id" yaml:"id" msgpack:"id"`
	QuestionText string         `json:"questionText" yaml:"question" msgpack:"question"`
	AnswerText   string         `json:"answerText,omitempty" yaml:"answer" msgpack:"answer"`
	Status       QuestionStatus `json:"status" yaml:"status" msgpack:"status"`
	Category     string         `json:"category,omitempty" yaml:"category" msgpack:"category"`
	Source       Source         `json:"source" yaml:"source" msgpack:"source"`
}

// HasAnswer reports whether the candidate carries non-blank answer text.
func (c CandidateQuestion) HasAnswer() bool {
	return strings.TrimSpace(c.AnswerText) != ""
}

// IsReusable reports whether the candidate may be offered as a reusable
// answer: completed and answered.
func (c CandidateQuestion) IsReusable() bool {
	return c.Status == StatusCompleted && c.HasAnswer()
}

// Question is one entry of a questionnaire submitted for duplicate detection.
type Question struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// SimilarQuestionResult is a candidate together with its score against a query.
type SimilarQuestionResult struct {
	CandidateQuestion
	Similarity int `json:"similarity"`
}

// DuplicateMatch is one partner of a question inside a duplicate cluster.
type DuplicateMatch struct {
	ID           string `json:"id"`
	QuestionText string `json:"questionText"`
	Similarity   int    `json:"similarity"`
}

// DuplicateCluster lists the questions of the same questionnaire that score at
// or above the duplicate threshold against QuestionID, best match first.
type DuplicateCluster struct {
	QuestionID string           `json:"questionId"`
	Duplicates []DuplicateMatch `json:"duplicates"`
}

// AnswerSuggestion is the presentation shape of an answered similar question.
type AnswerSuggestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Source     string `json:"source"`
	Similarity int    `json:"similarity"`
}
