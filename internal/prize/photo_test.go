package prize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePhoto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bear.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG-ish"), 0644))

	url, err := EncodePhoto(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"), "got %q", url)
}

func TestEncodePhoto_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0644))

	_, err := EncodePhoto(path)
	assert.ErrorContains(t, err, "unsupported photo format")
}

func TestEncodePhoto_MissingFile(t *testing.T) {
	_, err := EncodePhoto(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}

func TestEncodePhoto_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "huge.png")
	require.NoError(t, os.WriteFile(path, make([]byte, maxPhotoBytes+1), 0644))

	_, err := EncodePhoto(path)
	assert.ErrorContains(t, err, "limit")
}
