package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
)

const fixtureYAML = `
organizations:
  org-1:
    - id: q-100
      question: Do you encrypt data at rest?
      answer: Yes, AES-256.
      status: completed
      category: Encryption
      source:
        title: Vendor Review 2024
        requester: Acme
    - id: q-101
      question: Do you have a firewall?
      status: draft
  org-2: []
`

func TestParseFixture(t *testing.T) {
	m, err := ParseFixture([]byte(fixtureYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"org-1", "org-2"}, m.Organizations())

	qs := m.Questions("org-1")
	require.Len(t, qs, 2)
	assert.Equal(t, qsim.CandidateQuestion{
		ID:           "q-100",
		QuestionText: "Do you encrypt data at rest?",
		AnswerText:   "Yes, AES-256.",
		Status:       qsim.StatusCompleted,
		Category:     "Encryption",
		Source:       qsim.Source{Title: "Vendor Review 2024", Requester: "Acme"},
	}, qs[0])
	assert.Equal(t, qsim.StatusDraft, qs[1].Status)

	got, err := m.FetchCandidates(context.Background(), qsim.CandidateFilter{OrganizationID: "org-2"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseFixture_Malformed(t *testing.T) {
	_, err := ParseFixture([]byte("organizations: [unclosed"))

	assert.Error(t, err)
}

const fixtureJSON = `{
  "organizations": {
    "org-1": [
      {
        "id": "q-100",
        "questionText": "Do you encrypt data at rest?",
        "answerText": "Yes, AES-256.",
        "status": "completed",
        "source": {"title": "Vendor Review 2024", "requester": "Acme"}
      }
    ]
  }
}`

func TestParseJSONFixture(t *testing.T) {
	m, err := ParseJSONFixture([]byte(fixtureJSON))
	require.NoError(t, err)

	qs := m.Questions("org-1")
	require.Len(t, qs, 1)
	assert.Equal(t, "Do you encrypt data at rest?", qs[0].QuestionText)
	assert.Equal(t, "Yes, AES-256.", qs[0].AnswerText)
	assert.True(t, qs[0].IsReusable())
}

func TestParseJSONFixture_RejectsYAMLKeys(t *testing.T) {
	data := `{"organizations": {"org-1": [{"id": "q-100", "question": "Do you encrypt data at rest?"}]}}`

	_, err := ParseJSONFixture([]byte(data))

	assert.Error(t, err, "short YAML keys must not load as empty questions")
}

func TestParseFixture_RejectsUnknownKeys(t *testing.T) {
	data := "organizations:\n  org-1:\n    - id: q-100\n      questionText: Do you encrypt data at rest?\n"

	_, err := ParseFixture([]byte(data))

	assert.Error(t, err)
}

func TestParseFixture_Empty(t *testing.T) {
	m, err := ParseFixture(nil)

	require.NoError(t, err)
	assert.Empty(t, m.Organizations())
}

func TestLoadFixture_JSONByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o644))

	m, err := Open(path)

	require.NoError(t, err)
	require.Len(t, m.Questions("org-1"), 1)
	assert.Equal(t, "Do you encrypt data at rest?", m.Questions("org-1")[0].QuestionText)
}

func TestLoadFixture_Missing(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseQuestionnaire(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []qsim.Question
	}{
		{
			name: "document",
			data: "title: Vendor Review\nquestions:\n  - id: a\n    text: Do you encrypt data?\n  - id: b\n    text: Is MFA on?\n",
			want: []qsim.Question{{ID: "a", Text: "Do you encrypt data?"}, {ID: "b", Text: "Is MFA on?"}},
		},
		{
			name: "bare list",
			data: "- id: a\n  text: Do you encrypt data?\n",
			want: []qsim.Question{{ID: "a", Text: "Do you encrypt data?"}},
		},
		{
			name: "json",
			data: `{"questions": [{"id": "a", "text": "Do you encrypt data?"}]}`,
			want: []qsim.Question{{ID: "a", Text: "Do you encrypt data?"}},
		},
		{
			name: "empty input",
			data: "",
			want: []qsim.Question{},
		},
		{
			name: "document without questions",
			data: "title: Nothing here\n",
			want: []qsim.Question{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestionnaire([]byte(tt.data))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadQuestionnaire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questionnaire.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: a\n  text: Is MFA on?\n"), 0o644))

	got, err := LoadQuestionnaire(path)

	require.NoError(t, err)
	assert.Equal(t, []qsim.Question{{ID: "a", Text: "Is MFA on?"}}, got)
}
