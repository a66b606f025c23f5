package cacheconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophe-duc/dagcache/pkg/cache"
)

func TestBuildDiagnosticsNull(t *testing.T) {
	diag, closer, err := BuildDiagnostics(GetDefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.IsType(t, cache.BaseDiagnostics{}, diag)
}

func TestBuildDiagnosticsVisgraphFlushesOnClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.dot")

	diag, closer, err := BuildDiagnostics(CacheBehaviorConfig{
		Diagnostics:        DiagnosticsVisgraph,
		VisgraphOutputPath: path,
	})
	require.NoError(t, err)
	require.NotNil(t, closer)

	diag.OnBuild(cache.BuilderID(1), nil)
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "digraph")
}
