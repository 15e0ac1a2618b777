package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
)

// fixture is the layout of a corpus file. YAML fixtures use the short keys
// below; JSON fixtures use the engine's JSON field names (questionText,
// answerText, ...) as they appear in its output.
//
//	organizations:
//	  org-1:
//	    - id: q-100
//	      question: Do you encrypt data at rest?
//	      answer: Yes, AES-256.
//	      status: completed
//	      source:
//	        title: Vendor Review 2024
//	        requester: Acme
//
// Unknown keys are rejected in both formats.
type fixture struct {
	Organizations map[string][]qsim.CandidateQuestion `yaml:"organizations" json:"organizations"`
}

// ParseFixture builds a Memory store from YAML fixture data.
func ParseFixture(data []byte) (*Memory, error) {
	var f fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse corpus fixture: %w", err)
	}
	return f.memory(), nil
}

// ParseJSONFixture builds a Memory store from JSON fixture data.
func ParseJSONFixture(data []byte) (*Memory, error) {
	var f fixture
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse corpus fixture: %w", err)
	}
	return f.memory(), nil
}

func (f fixture) memory() *Memory {
	m := NewMemory()
	for org, questions := range f.Organizations {
		m.AddOrganization(org)
		m.Add(org, questions...)
	}
	return m
}

// LoadFixture reads a fixture file, JSON when the extension is .json and
// YAML otherwise.
func LoadFixture(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus fixture: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSONFixture(data)
	}
	return ParseFixture(data)
}

// questionnaire is the document form of a questionnaire file. A bare list of
// questions is accepted as well.
type questionnaire struct {
	Title     string          `yaml:"title"`
	Questions []qsim.Question `yaml:"questions"`
}

// ParseQuestionnaire reads questions from YAML or JSON data, either as a list
// of {id, text} or as a document with a "questions" key.
func ParseQuestionnaire(data []byte) ([]qsim.Question, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse questionnaire: %w", err)
	}
	if len(root.Content) == 0 {
		return []qsim.Question{}, nil
	}

	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var questions []qsim.Question
		if err := doc.Decode(&questions); err != nil {
			return nil, fmt.Errorf("failed to decode questions: %w", err)
		}
		return questions, nil
	}

	var q questionnaire
	if err := doc.Decode(&q); err != nil {
		return nil, fmt.Errorf("failed to decode questionnaire: %w", err)
	}
	if q.Questions == nil {
		return []qsim.Question{}, nil
	}
	return q.Questions, nil
}

// LoadQuestionnaire reads a questionnaire file.
func LoadQuestionnaire(path string) ([]qsim.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questionnaire: %w", err)
	}
	return ParseQuestionnaire(data)
}
