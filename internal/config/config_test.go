package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 500*time.Millisecond, cfg.SaveDelay())
	assert.Equal(t, 3*time.Second, cfg.SavedNotice())
}

func TestLoadFrom_ReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store: sqlite
theme: dark
save_delay_ms: 250
saved_notice_ms: 1500
data_dir: /tmp/claw
`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 250*time.Millisecond, cfg.SaveDelay())
	assert.Equal(t, 1500*time.Millisecond, cfg.SavedNotice())

	dir, err := cfg.ResolveDataDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/claw", dir)
}

func TestLoadFrom_MalformedIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err, "a typo must not silently reset preferences")
}

func TestLoadFrom_NonPositiveDurationsFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("save_delay_ms: -10\nsaved_notice_ms: 0\n"), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.SaveDelayMS)
	assert.Equal(t, 3000, cfg.SavedNoticeMS)
}

func TestPartialConfigKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "file", cfg.Store)
	assert.Equal(t, 500, cfg.SaveDelayMS)
}
