package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	m := seededMemory()

	data, err := m.Encode()
	require.NoError(t, err)

	restored, err := DecodeMemory(data)
	require.NoError(t, err)

	assert.Equal(t, m.Organizations(), restored.Organizations())
	for _, org := range m.Organizations() {
		assert.Equal(t, m.Questions(org), restored.Questions(org), "organization %s", org)
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	a, err := seededMemory().Encode()
	require.NoError(t, err)
	b, err := seededMemory().Encode()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDecodeMemory_VersionMismatch(t *testing.T) {
	data, err := msgpack.Marshal(&snapshot{Version: snapshotVersion + 1})
	require.NoError(t, err)

	_, err = DecodeMemory(data)

	assert.ErrorIs(t, err, ErrSnapshotVersion)
}

func TestDecodeMemory_Garbage(t *testing.T) {
	_, err := DecodeMemory([]byte{0xc1, 0x00})

	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	snapshotPath := filepath.Join(dir, "corpus.msgpack")
	require.NoError(t, seededMemory().WriteSnapshot(snapshotPath))

	fixturePath := filepath.Join(dir, "corpus.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(fixtureYAML), 0o644))

	fromSnapshot, err := Open(snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"org-1", "org-2", "org-empty"}, fromSnapshot.Organizations())

	fromFixture, err := Open(fixturePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"org-1", "org-2"}, fromFixture.Organizations())

	_, err = Open(filepath.Join(dir, "corpus.csv"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
