package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	st, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.Load()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save([]byte(`[{"identifier":"a"}]`)))
	data, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, `[{"identifier":"a"}]`, string(data))

	require.NoError(t, st.Save([]byte(`[]`)))
	data, err = st.Load()
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	require.NoError(t, st.Save([]byte(`["kept"]`)))
	require.NoError(t, st.Close())

	st2, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	defer st2.Close()

	data, err := st2.Load()
	require.NoError(t, err)
	assert.Equal(t, `["kept"]`, string(data))
}
