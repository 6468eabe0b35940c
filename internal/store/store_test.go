package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save([]byte(`[{"identifier":"a"}]`)))
	data, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, `[{"identifier":"a"}]`, string(data))

	// Overwrite replaces, not appends.
	require.NoError(t, st.Save([]byte(`[]`)))
	data, err = st.Load()
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFileStore_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Save([]byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, slotFileName, entries[0].Name())
}

func TestFileStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	st, err := NewFileStore(dir)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Save([]byte(`[]`)))
	assert.FileExists(t, filepath.Join(dir, slotFileName))
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()

	_, err := st.Load()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, st.Writes())

	require.NoError(t, st.Save([]byte("x")))
	data, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	assert.True(t, st.Writes())
}

func TestMemoryStore_SaveErr(t *testing.T) {
	st := NewMemoryStore()
	st.SaveErr = assert.AnError

	assert.Error(t, st.Save([]byte("x")))
	_, err := st.Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	fileStore, err := Open(BackendFile, dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, fileStore)
	fileStore.Close()

	memStore, err := Open(BackendMemory, dir)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, memStore)

	// Empty kind defaults to the file backend.
	defStore, err := Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, defStore)
	defStore.Close()

	_, err = Open("carrier-pigeon", dir)
	assert.ErrorContains(t, err, "unknown store backend")
}
