package cacheconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCacheConfigCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAGCACHE_CONFIG_DIR", dir)

	cfg, err := NewCacheConfig("dagcache-test")
	require.NoError(t, err)
	assert.Equal(t, DiagnosticsNull, cfg.Behavior.Diagnostics)

	_, err = os.Stat(filepath.Join(dir, "cache-config.yml"))
	assert.NoError(t, err)
}

func TestNewCacheConfigMergesUserOverrideOverDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAGCACHE_CONFIG_DIR", dir)

	err := os.WriteFile(filepath.Join(dir, "cache-config.yml"), []byte("diagnostics: textual\nabbreviate: true\n"), 0o644)
	require.NoError(t, err)

	cfg, err := NewCacheConfig("dagcache-test")
	require.NoError(t, err)
	assert.Equal(t, DiagnosticsTextual, cfg.Behavior.Diagnostics)
	assert.True(t, cfg.Behavior.Abbreviate)
}

func TestNewCacheConfigRejectsUnknownDiagnosticsKind(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAGCACHE_CONFIG_DIR", dir)

	err := os.WriteFile(filepath.Join(dir, "cache-config.yml"), []byte("diagnostics: bogus\n"), 0o644)
	require.NoError(t, err)

	_, err = NewCacheConfig("dagcache-test")
	assert.Error(t, err)
}

func TestBOMIsStrippedBeforeUnmarshal(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAGCACHE_CONFIG_DIR", dir)

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("diagnostics: visgraph\n")...)
	err := os.WriteFile(filepath.Join(dir, "cache-config.yml"), withBOM, 0o644)
	require.NoError(t, err)

	cfg, err := NewCacheConfig("dagcache-test")
	require.NoError(t, err)
	assert.Equal(t, DiagnosticsVisgraph, cfg.Behavior.Diagnostics)
}
