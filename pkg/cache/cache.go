package cache

// Cache is the single-threaded artifact cache: the direct, non-generic handle
// produced by New. All type-specific work happens in the free functions below
// (Get, Lookup, GetRef, ...) since Go methods cannot introduce their own type
// parameters beyond the receiver's.
//
// A Cache must not be used from more than one goroutine at a time; wrap it in a
// Locked (see locked.go) if concurrent access is required.
type Cache struct {
	raw *raw
}

// New returns an empty Cache with no diagnostics hook.
func New() *Cache {
	return &Cache{raw: newRaw(nil)}
}

// NewWithDiagnostics returns an empty Cache reporting every event to diag.
func NewWithDiagnostics(diag Diagnostics) *Cache {
	return &Cache{raw: newRaw(diag)}
}

// Invalidate drops the memoized artifact for bp's builder and for every builder
// that transitively depends on it. Dyn state and builder registration survive.
func Invalidate[A any, S any](c *Cache, bp Blueprint[A, S]) {
	c.raw.invalidate(bp.id)
}

// Purge is like Invalidate, but also forgets bp's builder's own dynamic state.
func Purge[A any, S any](c *Cache, bp Blueprint[A, S]) {
	c.raw.purge(bp.id)
}

// ClearArtifacts drops every memoized artifact in c, keeping dyn state, builder
// registrations and dependency edges.
func ClearArtifacts(c *Cache) { c.raw.clearArtifacts() }

// ClearAll resets c entirely: every builder becomes unknown again.
func ClearAll(c *Cache) { c.raw.clearAll() }

// GC drops any builder whose reference can no longer be upgraded, along with its
// artifact, dyn state and dependency edges. A dead builder on which another
// builder's memoized artifact still depends is kept until that artifact is gone.
// It returns the number of builders collected. The cache's own bookkeeping always holds its builders weakly (see
// raw.go's build/dynStatePtr), so a builder registered through NewBlueprint is
// collected too, once its Blueprint (and every clone of it) becomes
// unreachable; a builder with a live strong reference held anywhere - typically
// a reachable Blueprint - is never collected.
func GC(c *Cache) int { return c.raw.gc() }

// IsBuilderKnown reports whether c currently tracks bp's builder: it has been
// built (or a build attempted) or had its dyn state accessed, and has not since
// been dropped by ClearAll or GC.
func IsBuilderKnown[A any, S any](c *Cache, bp Blueprint[A, S]) bool {
	return c.raw.isKnown(bp.id)
}

// NumberOfKnownBuilders returns how many distinct builders c currently tracks.
func NumberOfKnownBuilders(c *Cache) int { return c.raw.numKnown() }

// Get resolves bp, building its artifact if not already memoized, and returns a
// value copy.
func Get[A any, S any](c *Cache, bp Blueprint[A, S]) (A, error) {
	v, err := c.raw.get(bp.id, bp.builder)
	if err != nil {
		var zero A
		return zero, err
	}
	return *(v.(*A)), nil
}

// GetRef is like Get but returns a pointer into the cache's stored artifact.
func GetRef[A any, S any](c *Cache, bp Blueprint[A, S]) (*A, error) {
	v, err := c.raw.get(bp.id, bp.builder)
	if err != nil {
		return nil, err
	}
	return v.(*A), nil
}

// GetCloned is like Get, but uses A's Cloner implementation if it has one.
func GetCloned[A any, S any](c *Cache, bp Blueprint[A, S]) (A, error) {
	v, err := c.raw.get(bp.id, bp.builder)
	if err != nil {
		var zero A
		return zero, err
	}
	ptr := v.(*A)
	if cl, ok := any(*ptr).(Cloner[A]); ok {
		return cl.CloneArtifact(), nil
	}
	return *ptr, nil
}

// GetShared is like Get, but uses A's Shared implementation if it has one,
// handing out a reference-counted acquisition of the artifact instead of a copy
// or a bare pointer.
func GetShared[A any, S any](c *Cache, bp Blueprint[A, S]) (A, error) {
	v, err := c.raw.get(bp.id, bp.builder)
	if err != nil {
		var zero A
		return zero, err
	}
	ptr := v.(*A)
	if sh, ok := any(*ptr).(Shared[A]); ok {
		return sh.Acquire(), nil
	}
	return *ptr, nil
}

// Lookup returns bp's memoized artifact without attempting a build. The bool is
// false if bp's builder has no memoized artifact (never built, or invalidated).
func Lookup[A any, S any](c *Cache, bp Blueprint[A, S]) (A, bool) {
	v, ok := c.raw.lookup(bp.id)
	if !ok {
		var zero A
		return zero, false
	}
	return *(v.(*A)), true
}

// LookupRef is the pointer form of Lookup.
func LookupRef[A any, S any](c *Cache, bp Blueprint[A, S]) (*A, bool) {
	v, ok := c.raw.lookup(bp.id)
	if !ok {
		return nil, false
	}
	return v.(*A), true
}

// LookupCloned is the Cloner-aware form of Lookup.
func LookupCloned[A any, S any](c *Cache, bp Blueprint[A, S]) (A, bool) {
	v, ok := c.raw.lookup(bp.id)
	if !ok {
		var zero A
		return zero, false
	}
	ptr := v.(*A)
	if cl, ok := any(*ptr).(Cloner[A]); ok {
		return cl.CloneArtifact(), true
	}
	return *ptr, true
}

// LookupShared is the Shared-aware form of Lookup.
func LookupShared[A any, S any](c *Cache, bp Blueprint[A, S]) (A, bool) {
	v, ok := c.raw.lookup(bp.id)
	if !ok {
		var zero A
		return zero, false
	}
	ptr := v.(*A)
	if sh, ok := any(*ptr).(Shared[A]); ok {
		return sh.Acquire(), true
	}
	return *ptr, true
}

// GetDynState returns bp's builder's dynamic state, initializing it (without
// building the artifact) if this is the first time bp's builder has been seen.
func GetDynState[A any, S any](c *Cache, bp Blueprint[A, S]) *S {
	return c.raw.dynStatePtr(bp.id, bp.builder).(*S)
}

// DynState is an alias of GetDynState kept for readability at call sites that
// only ever read dyn state and never build (e.g. diagnostics probes).
func DynState[A any, S any](c *Cache, bp Blueprint[A, S]) *S {
	return GetDynState(c, bp)
}
