package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	qsim "github.com/mewitt74/gigachad-grc-sub014"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SNAPSHOTS: Saving and Loading a Memory store
// ═══════════════════════════════════════════════════════════════════════════════
// A snapshot is a msgpack document:
//
//	{
//	  "v":    1,
//	  "orgs": [ {"id": "org-1", "q": [ <CandidateQuestion>, ... ]}, ... ]
//	}
//
// Organizations are written in sorted order and questions in insertion
// order, so encoding the same store twice yields identical bytes.
// ═══════════════════════════════════════════════════════════════════════════════

const snapshotVersion = 1

type snapshot struct {
	Version       int                   `msgpack:"v"`
	Organizations []organizationRecords `msgpack:"orgs"`
}

type organizationRecords struct {
	ID        string                   `msgpack:"id"`
	Questions []qsim.CandidateQuestion `msgpack:"q"`
}

// Encode serializes the store to a msgpack snapshot.
func (m *Memory) Encode() ([]byte, error) {
	s := snapshot{Version: snapshotVersion}
	for _, org := range m.Organizations() {
		s.Organizations = append(s.Organizations, organizationRecords{
			ID:        org,
			Questions: m.Questions(org),
		})
	}

	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeMemory rebuilds a store from a snapshot produced by Encode.
func DecodeMemory(data []byte) (*Memory, error) {
	var s snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, s.Version)
	}

	m := NewMemory()
	for _, org := range s.Organizations {
		m.AddOrganization(org.ID)
		m.Add(org.ID, org.Questions...)
	}
	return m, nil
}

// WriteSnapshot encodes the store to path.
func (m *Memory) WriteSnapshot(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Open loads a Memory store from a YAML/JSON fixture or a msgpack snapshot,
// chosen by file extension.
func Open(path string) (*Memory, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return LoadFixture(path)
	case ".msgpack", ".mp":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		return DecodeMemory(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
