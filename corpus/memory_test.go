package corpus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
)

// =============================================================================
// Test Fixtures
// =============================================================================

func completed(id, text string) qsim.CandidateQuestion {
	return qsim.CandidateQuestion{
		ID:           id,
		QuestionText: text,
		AnswerText:   "Yes, see policy " + id + ".",
		Status:       qsim.StatusCompleted,
		Source:       qsim.Source{Title: "Vendor Review 2024", Requester: "Acme"},
	}
}

func seededMemory() *Memory {
	m := NewMemory()
	m.Add("org-1",
		completed("q1", "Do you encrypt data at rest?"),
		qsim.CandidateQuestion{ID: "q2", QuestionText: "Do you have a firewall?", Status: qsim.StatusDraft},
		completed("q3", "Is data encrypted in transit?"),
		qsim.CandidateQuestion{ID: "q4", QuestionText: "Do you run backups?", AnswerText: "   ", Status: qsim.StatusCompleted},
		qsim.CandidateQuestion{ID: "q5", QuestionText: "Is MFA enforced?", AnswerText: "Yes.", Status: qsim.StatusInReview},
		completed("q6", "Do you rotate keys?"),
	)
	m.Add("org-2", completed("x1", "Do you encrypt data at rest?"))
	m.AddOrganization("org-empty")
	return m
}

func candidateIDs(candidates []qsim.CandidateQuestion) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	return ids
}

// =============================================================================
// Memory Tests
// =============================================================================

func TestMemory_FetchCandidates_ReusableOnly(t *testing.T) {
	m := seededMemory()

	got, err := m.FetchCandidates(context.Background(), qsim.CandidateFilter{OrganizationID: "org-1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q3", "q6"}, candidateIDs(got), "drafts, in-review and blank answers are skipped")
}

func TestMemory_FetchCandidates_OrganizationScoped(t *testing.T) {
	m := seededMemory()

	got, err := m.FetchCandidates(context.Background(), qsim.CandidateFilter{OrganizationID: "org-2"})

	require.NoError(t, err)
	assert.Equal(t, []string{"x1"}, candidateIDs(got))
}

func TestMemory_FetchCandidates_ExcludeAndLimit(t *testing.T) {
	m := seededMemory()

	got, err := m.FetchCandidates(context.Background(), qsim.CandidateFilter{
		OrganizationID: "org-1",
		ExcludeID:      "q1",
		Limit:          1,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"q3"}, candidateIDs(got))
}

func TestMemory_FetchCandidates_EmptyOrganization(t *testing.T) {
	m := seededMemory()

	got, err := m.FetchCandidates(context.Background(), qsim.CandidateFilter{OrganizationID: "org-empty"})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemory_FetchCandidates_UnknownOrganization(t *testing.T) {
	m := seededMemory()

	_, err := m.FetchCandidates(context.Background(), qsim.CandidateFilter{OrganizationID: "nope"})

	assert.ErrorIs(t, err, ErrUnknownOrganization)
}

func TestMemory_FetchCandidates_Cancelled(t *testing.T) {
	m := seededMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.FetchCandidates(ctx, qsim.CandidateFilter{OrganizationID: "org-1"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory_Organizations(t *testing.T) {
	m := seededMemory()

	assert.Equal(t, []string{"org-1", "org-2", "org-empty"}, m.Organizations())
}

func TestMemory_QuestionsIsACopy(t *testing.T) {
	m := seededMemory()

	qs := m.Questions("org-2")
	qs[0].QuestionText = "changed"

	assert.Equal(t, "Do you encrypt data at rest?", m.Questions("org-2")[0].QuestionText)
}

func TestMemory_WithEngine(t *testing.T) {
	m := seededMemory()
	engine, err := qsim.NewEngine(m)
	require.NoError(t, err)

	results, err := engine.FindSimilarQuestions(context.Background(), qsim.SimilarityQuery{
		OrganizationID: "org-1",
		Text:           "Do you encrypt data at rest?",
	})

	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "q1", results[0].ID)
	assert.Equal(t, 100, results[0].Similarity)
}
