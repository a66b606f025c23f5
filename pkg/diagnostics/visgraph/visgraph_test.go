package visgraph

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophe-duc/dagcache/pkg/cache"
)

func TestGenerationBumpsOnBuildAndInvalidate(t *testing.T) {
	e := New()
	assert.Equal(t, 0, e.Generation())

	e.OnBuild(cache.BuilderID(1), nil)
	assert.Equal(t, 1, e.Generation())

	e.OnInvalidate(cache.BuilderID(1), []cache.BuilderID{1})
	assert.Equal(t, 2, e.Generation())
}

func TestDOTChangesAcrossBuildThenInvalidate(t *testing.T) {
	e := New()
	e.RecordEdge(cache.BuilderID(2), cache.BuilderID(1))
	e.OnBuild(cache.BuilderID(1), nil)
	e.OnBuild(cache.BuilderID(2), nil)
	before := e.DOT()

	e.OnInvalidate(cache.BuilderID(1), []cache.BuilderID{1, 2})
	after := e.DOT()

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  0,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	require.NoError(t, err)
	assert.NotEmpty(t, text, "invalidating every node must change the rendered shapes")
	assert.Contains(t, before, "shape=box")
	assert.NotContains(t, after, "shape=box")
}
