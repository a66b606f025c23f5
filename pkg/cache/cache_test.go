package cache

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLeaf is a builder with no dependencies, whose Build call count is
// observable, and whose output can be flipped via its own dyn state.
type countingLeaf struct {
	builds int
	value  int
}

func (b *countingLeaf) Build(r *Resolver[int]) (int, error) {
	b.builds++
	return *r.State() + b.value, nil
}

func (b *countingLeaf) InitDynState() int { return 0 }

// sumNode depends on two leaves and sums their artifacts.
type sumNode struct {
	builds int
	left   Blueprint[int, int]
	right  Blueprint[int, int]
}

func (b *sumNode) Build(r *Resolver[struct{}]) (int, error) {
	b.builds++
	l, err := Resolve(r, b.left)
	if err != nil {
		return 0, err
	}
	rr, err := Resolve(r, b.right)
	if err != nil {
		return 0, err
	}
	return l + rr, nil
}

func (b *sumNode) InitDynState() struct{} { return struct{}{} }

func TestGetMemoizesAndDoesNotRebuild(t *testing.T) {
	c := New()
	leaf := &countingLeaf{value: 10}
	bp := NewBlueprint[int, int](leaf)

	v1, err := Get(c, bp)
	require.NoError(t, err)
	assert.Equal(t, 10, v1)

	v2, err := Get(c, bp)
	require.NoError(t, err)
	assert.Equal(t, 10, v2)
	assert.Equal(t, 1, leaf.builds, "second Get must hit the memoized artifact, not rebuild")
}

func TestLookupDoesNotBuild(t *testing.T) {
	c := New()
	leaf := &countingLeaf{value: 5}
	bp := NewBlueprint[int, int](leaf)

	_, ok := Lookup(c, bp)
	assert.False(t, ok)
	assert.Equal(t, 0, leaf.builds)
	assert.False(t, IsBuilderKnown(c, bp))

	_, err := Get(c, bp)
	require.NoError(t, err)

	v, ok := Lookup(c, bp)
	assert.True(t, ok)
	assert.Equal(t, 5, v)
	assert.True(t, IsBuilderKnown(c, bp))
}

func TestSharedDependencyBuildsIdenticalChildOnce(t *testing.T) {
	c := New()
	shared := &countingLeaf{value: 3}
	sharedBP := NewBlueprint[int, int](shared)

	left := &sumNode{left: sharedBP, right: sharedBP}
	right := &sumNode{left: sharedBP, right: sharedBP}
	leftBP := NewBlueprint[int, struct{}](left)
	rightBP := NewBlueprint[int, struct{}](right)

	lv, err := Get(c, leftBP)
	require.NoError(t, err)
	rv, err := Get(c, rightBP)
	require.NoError(t, err)

	assert.Equal(t, 6, lv)
	assert.Equal(t, 6, rv)
	assert.Equal(t, 1, shared.builds, "shared dependency must only build once across two independent parents")
}

func TestInvalidatePropagatesToDependentsNotSiblings(t *testing.T) {
	c := New()
	root := &countingLeaf{value: 1}
	rootBP := NewBlueprint[int, int](root)

	mid := &sumNode{left: rootBP, right: rootBP}
	midBP := NewBlueprint[int, struct{}](mid)

	sibling := &countingLeaf{value: 100}
	siblingBP := NewBlueprint[int, int](sibling)

	_, err := Get(c, midBP)
	require.NoError(t, err)
	_, err = Get(c, siblingBP)
	require.NoError(t, err)
	assert.Equal(t, 1, root.builds)
	assert.Equal(t, 1, mid.builds)
	assert.Equal(t, 1, sibling.builds)

	Invalidate(c, rootBP)

	_, ok := Lookup(c, midBP)
	assert.False(t, ok, "mid's artifact must be dropped: it transitively depends on root")
	_, ok = Lookup(c, siblingBP)
	assert.True(t, ok, "sibling does not depend on root and must be untouched")

	_, err = Get(c, midBP)
	require.NoError(t, err)
	assert.Equal(t, 2, root.builds)
	assert.Equal(t, 2, mid.builds)
	assert.Equal(t, 1, sibling.builds)
}

func TestDynStateDrivesRebuild(t *testing.T) {
	c := New()
	leaf := &countingLeaf{value: 1}
	bp := NewBlueprint[int, int](leaf)

	v1, err := Get(c, bp)
	require.NoError(t, err)
	assert.Equal(t, 1, v1)

	*DynStateMut(c, bp) = 41

	v2, err := Get(c, bp)
	require.NoError(t, err)
	assert.Equal(t, 42, v2)
	assert.Equal(t, 2, leaf.builds)
}

func TestPurgeDropsDynStateButKeepsBuilderKnown(t *testing.T) {
	c := New()
	leaf := &countingLeaf{value: 1}
	bp := NewBlueprint[int, int](leaf)

	*DynStateMut(c, bp) = 9
	_, err := Get(c, bp)
	require.NoError(t, err)

	Purge(c, bp)
	assert.True(t, IsBuilderKnown(c, bp), "purge forgets dyn state and artifact, not builder registration")

	s := DynState(c, bp)
	assert.Equal(t, 0, *s, "dyn state must be reinitialized after purge")
}

func TestClearArtifactsKeepsDynStateClearAllResetsEverything(t *testing.T) {
	c := New()
	leaf := &countingLeaf{value: 1}
	bp := NewBlueprint[int, int](leaf)
	*DynStateMut(c, bp) = 7
	_, err := Get(c, bp)
	require.NoError(t, err)

	ClearArtifacts(c)
	_, ok := Lookup(c, bp)
	assert.False(t, ok)
	assert.Equal(t, 7, *DynState(c, bp))

	_, err = Get(c, bp)
	require.NoError(t, err)
	ClearAll(c)
	assert.False(t, IsBuilderKnown(c, bp))
	assert.Equal(t, 0, NumberOfKnownBuilders(c))
}

func TestGCReclaimsDroppedWeakBuilderOnly(t *testing.T) {
	c := New()
	strong := &countingLeaf{value: 1}
	strongBP := NewBlueprint[int, int](strong)
	_, err := Get(c, strongBP)
	require.NoError(t, err)

	func() {
		// This Blueprint is never returned or stashed anywhere: once this
		// closure returns, nothing strongly references the builder it wraps
		// (the cache's own bookkeeping always downgrades to weak on
		// registration), even though it was created via the plain,
		// strong-by-default NewBlueprint constructor.
		doomed := &countingLeaf{value: 2}
		doomedBP := NewBlueprint[int, int](doomed)
		_, err := Get(c, doomedBP)
		require.NoError(t, err)
	}()

	before := NumberOfKnownBuilders(c)
	require.Equal(t, 2, before)

	// Force a collection cycle so the doomed builder's weak reference fails to
	// upgrade.
	runtime.GC()
	runtime.GC()
	collected := GC(c)

	assert.Equal(t, 1, collected, "exactly the builder with no surviving strong reference must be collected")
	assert.Equal(t, before-1, NumberOfKnownBuilders(c))
	assert.True(t, IsBuilderKnown(c, strongBP), "GC must never remove a builder still reachable through a live strong ref")
}

func TestGCReclaimsNewWeakBlueprintOnceCallersOwnStrongRefIsDropped(t *testing.T) {
	c := New()

	weakVal := &countingLeaf{value: 2}
	weakBP := NewWeakBlueprint[countingLeaf, int, int](weakVal)
	_, err := Get(c, weakBP)
	require.NoError(t, err)
	assert.Equal(t, 1, NumberOfKnownBuilders(c))

	weakVal = nil // drop the caller's only strong reference
	runtime.GC()
	runtime.GC()
	collected := GC(c)

	assert.Equal(t, 1, collected)
	assert.Equal(t, 0, NumberOfKnownBuilders(c))
}

func TestGetRefAndGetClonedAndGetShared(t *testing.T) {
	c := New()
	leaf := &countingLeaf{value: 1}
	bp := NewBlueprint[int, int](leaf)

	ref, err := GetRef(c, bp)
	require.NoError(t, err)
	*ref = 999

	v, err := Get(c, bp)
	require.NoError(t, err)
	assert.Equal(t, 999, v, "GetRef must point at the same storage Get reads")

	cloned, err := GetCloned(c, bp)
	require.NoError(t, err)
	assert.Equal(t, 999, cloned)

	shared, err := GetShared(c, bp)
	require.NoError(t, err)
	assert.Equal(t, 999, shared)
}
