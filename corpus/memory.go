// Package corpus provides stores of previously answered questions that
// satisfy qsim.Corpus: an in-memory store loadable from YAML fixtures or
// msgpack snapshots, a SQLite store, and a caching decorator.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
)

var (
	// ErrUnknownOrganization is returned when the requested organization
	// does not exist in the store.
	ErrUnknownOrganization = errors.New("unknown organization")

	ErrSnapshotVersion   = errors.New("unsupported snapshot version")
	ErrUnsupportedFormat = errors.New("unsupported corpus file format")
)

// Memory is an organization-scoped question store held in memory. Questions
// are returned in insertion order. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	orgs map[string][]qsim.CandidateQuestion
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{orgs: make(map[string][]qsim.CandidateQuestion)}
}

// AddOrganization registers an organization with no questions. Registering
// an existing organization is a no-op.
func (m *Memory) AddOrganization(organizationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orgs[organizationID]; !ok {
		m.orgs[organizationID] = nil
	}
}

// Add appends questions to an organization, registering it if needed.
func (m *Memory) Add(organizationID string, questions ...qsim.CandidateQuestion) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.orgs[organizationID] = append(m.orgs[organizationID], questions...)
}

// Organizations returns the registered organization ids, sorted.
func (m *Memory) Organizations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.orgs))
	for id := range m.orgs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Questions returns a copy of every question of an organization, whatever
// its status.
func (m *Memory) Questions(organizationID string) []qsim.CandidateQuestion {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]qsim.CandidateQuestion(nil), m.orgs[organizationID]...)
}

// FetchCandidates returns the completed, answered questions of the filter's
// organization, without ExcludeID, capped at Limit when it is positive.
func (m *Memory) FetchCandidates(ctx context.Context, filter qsim.CandidateFilter) ([]qsim.CandidateQuestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	questions, ok := m.orgs[filter.OrganizationID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrganization, filter.OrganizationID)
	}

	candidates := make([]qsim.CandidateQuestion, 0)
	for _, q := range questions {
		if filter.Limit > 0 && len(candidates) >= filter.Limit {
			break
		}
		if filter.ExcludeID != "" && q.ID == filter.ExcludeID {
			continue
		}
		if !q.IsReusable() {
			continue
		}
		candidates = append(candidates, q)
	}
	return candidates, nil
}
